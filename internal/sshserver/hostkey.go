package sshserver

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/pkg/errors"
	gossh "golang.org/x/crypto/ssh"

	"pipeterm/internal/config"
)

const hostKeyBits = 2048

// LoadOrGenerateHostKey returns the PEM host key at path, creating an RSA
// key (and an authorized_keys style path.pub next to it) on first run.
func LoadOrGenerateHostKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if _, err := gossh.ParsePrivateKey(data); err != nil {
			return nil, errors.Wrapf(err, "parsing host key %s", path)
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading host key %s", path)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, hostKeyBits)
	if err != nil {
		return nil, errors.Wrap(err, "generating host key")
	}
	data = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := config.EnsureDir(path); err != nil {
		return nil, errors.Wrap(err, "creating host key directory")
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, errors.Wrapf(err, "writing host key %s", path)
	}

	pub, err := gossh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "deriving public key")
	}
	if err := os.WriteFile(path+".pub", gossh.MarshalAuthorizedKey(pub), 0644); err != nil {
		return nil, errors.Wrapf(err, "writing public key %s.pub", path)
	}
	return data, nil
}

// Fingerprint is the SHA256 fingerprint clients are shown for a PEM key.
func Fingerprint(pemBytes []byte) (string, error) {
	signer, err := gossh.ParsePrivateKey(pemBytes)
	if err != nil {
		return "", errors.Wrap(err, "parsing host key")
	}
	return gossh.FingerprintSHA256(signer.PublicKey()), nil
}
