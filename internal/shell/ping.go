package shell

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ipv4Pattern   = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)
	domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

	reservedTargets = map[string]bool{
		"localhost":       true,
		"127.0.0.1":       true,
		"0.0.0.0":         true,
		"255.255.255.255": true,
	}
)

// pingCount is how many echo replies a transcript shows.
const pingCount = 4

// ValidPingTarget reports whether target is an IPv4 literal, a simple
// domain name or one of the reserved names.
func ValidPingTarget(target string) bool {
	return reservedTargets[target] || ipv4Pattern.MatchString(target) || domainPattern.MatchString(target)
}

// ping synthesizes an ICMP transcript. Arguments are rejoined with single
// spaces so "ping not a domain" is rejected as a single target.
func (s *Session) ping(args []string) Result {
	if len(args) == 0 {
		return respond("ping: usage error: Destination address required")
	}
	target := strings.Join(args, " ")
	if !ValidPingTarget(target) {
		return respond(fmt.Sprintf("ping: %s: Name or service not known", target))
	}
	ip := s.resolve(target)

	lines := make([]string, 0, pingCount+4)
	for seq := 1; seq <= pingCount; seq++ {
		ms := 10 + s.rand.Float64()*40
		lines = append(lines, fmt.Sprintf("64 bytes from %s: icmp_seq=%d ttl=114 time=%.1f ms", ip, seq, ms))
	}
	// The summary is fixed text and does not follow the replies above.
	lines = append(lines,
		"",
		fmt.Sprintf("--- %s ping statistics ---", target),
		"4 packets transmitted, 4 received, 0% packet loss, time 3004ms",
		"rtt min/avg/max/mdev = 12.417/27.903/46.288/12.551 ms",
	)
	return respond(lines...)
}

// resolve returns target itself for IPv4 literals and otherwise the
// memoized fake address, drawing one on first sight.
func (s *Session) resolve(target string) string {
	if ipv4Pattern.MatchString(target) {
		return target
	}
	if ip, ok := s.hosts[target]; ok {
		return ip
	}
	ip := fmt.Sprintf("%d.%d.%d.%d", s.rand.Intn(256), s.rand.Intn(256), s.rand.Intn(256), s.rand.Intn(256))
	s.hosts[target] = ip
	return ip
}
