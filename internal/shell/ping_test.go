package shell

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/bxcodec/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeterm/internal/rng"
)

var icmpLine = regexp.MustCompile(`^64 bytes from (\S+): icmp_seq=(\d) ttl=114 time=(\d+\.\d) ms$`)

func TestPingLiteralIP(t *testing.T) {
	s, _ := newTestSession(t, &rng.Sequence{Floats: []float64{0, 0.5, 0.999, 0.25}})
	res := s.Execute("ping 8.8.8.8")
	require.Len(t, res.Lines, pingCount+4)

	times := []string{"10.0", "30.0", "50.0", "20.0"}
	for i := 0; i < pingCount; i++ {
		m := icmpLine.FindStringSubmatch(res.Lines[i])
		require.NotNil(t, m, res.Lines[i])
		assert.Equal(t, "8.8.8.8", m[1])
		assert.Equal(t, fmt.Sprint(i+1), m[2])
		assert.Equal(t, times[i], m[3])
	}
	assert.Equal(t, "--- 8.8.8.8 ping statistics ---", res.Lines[pingCount+1])
	assert.Equal(t, "4 packets transmitted, 4 received, 0% packet loss, time 3004ms", res.Lines[pingCount+2])
	// literal addresses are never memoized
	assert.Zero(t, s.KnownHosts())
}

func TestPingSequenceOrderIgnoresLatency(t *testing.T) {
	for i := 0; i < 20; i++ {
		s, _ := newTestSession(t, rng.New(int64(i+1)))
		res := s.Execute("ping 8.8.8.8")
		for seq := 1; seq <= pingCount; seq++ {
			m := icmpLine.FindStringSubmatch(res.Lines[seq-1])
			require.NotNil(t, m)
			assert.Equal(t, fmt.Sprint(seq), m[2])
		}
	}
}

func TestPingHostnameIsMemoized(t *testing.T) {
	s, _ := newTestSession(t, &rng.Sequence{Ints: []int{10, 20, 30, 40, 50, 60, 70, 80}})
	host := "myhost.com"

	first := s.Execute("ping " + host)
	ip, ok := s.HostIP(host)
	require.True(t, ok)
	assert.Equal(t, "10.20.30.40", ip)

	second := s.Execute("ping " + host)
	assert.Equal(t, first.Lines[0][:len("64 bytes from 10.20.30.40")], second.Lines[0][:len("64 bytes from 10.20.30.40")])
	again, _ := s.HostIP(host)
	assert.Equal(t, ip, again)

	s.Execute("ping other.org")
	other, ok := s.HostIP("other.org")
	require.True(t, ok)
	assert.Equal(t, "50.60.70.80", other)
	assert.Equal(t, 2, s.KnownHosts())
}

func TestPingRandomHostnames(t *testing.T) {
	s, _ := newTestSession(t, rng.New(7))
	seen := map[string]string{}
	for i := 0; i < 10; i++ {
		host := faker.DomainName()
		require.True(t, ValidPingTarget(host), host)
		s.Execute("ping " + host)
		ip, ok := s.HostIP(host)
		require.True(t, ok)
		if prev, dup := seen[host]; dup {
			assert.Equal(t, prev, ip)
		}
		seen[host] = ip
	}
	assert.Equal(t, len(seen), s.KnownHosts())
}

func TestPingInvalidTarget(t *testing.T) {
	s, _ := newTestSession(t, nil)
	for _, input := range []string{"ping not a domain", "ping bad_host!", "ping -c", "ping nodot"} {
		res := s.Execute(input)
		target := input[len("ping "):]
		assert.Equal(t, []string{fmt.Sprintf("ping: %s: Name or service not known", target)}, res.Lines)
	}
	assert.Zero(t, s.KnownHosts())
}

func TestPingMissingTarget(t *testing.T) {
	s, _ := newTestSession(t, nil)
	assert.Equal(t, []string{"ping: usage error: Destination address required"}, s.Execute("ping").Lines)
}

func TestPingLocalhostGetsFakeAddress(t *testing.T) {
	s, _ := newTestSession(t, &rng.Sequence{Ints: []int{1, 2, 3, 4}})
	s.Execute("ping localhost")
	ip, ok := s.HostIP("localhost")
	require.True(t, ok)
	assert.Equal(t, "1.2.3.4", ip)
}

func TestValidPingTarget(t *testing.T) {
	for target, want := range map[string]bool{
		"8.8.8.8":        true,
		"999.1.1.1":      true,
		"example.com":    true,
		"a-b.example.io": true,
		"localhost":      true,
		"0.0.0.0":        true,
		"-bad.com":       false,
		"example":        false,
		"example.c":      false,
		"not a domain":   false,
		"ex ample.com":   false,
		"example.com/x":  false,
	} {
		assert.Equal(t, want, ValidPingTarget(target), target)
	}
	assert.False(t, ValidPingTarget(""))
}
