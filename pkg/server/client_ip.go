package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// proxyMatcher reports whether an address belongs to a trusted proxy.
type proxyMatcher struct {
	prefixes []netip.Prefix
}

// newProxyMatcher parses IPs and CIDRs. Invalid entries are logged and
// skipped. It returns nil when nothing is trusted.
func newProxyMatcher(entries []string, logger *slog.Logger) *proxyMatcher {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				if logger != nil {
					logger.Warn("invalid trusted proxy CIDR", "entry", entry, "error", err)
				}
				continue
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			if logger != nil {
				logger.Warn("invalid trusted proxy IP", "entry", entry)
			}
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	if len(prefixes) == 0 {
		return nil
	}
	return &proxyMatcher{prefixes: prefixes}
}

func (m *proxyMatcher) IsTrusted(addr netip.Addr) bool {
	if m == nil || !addr.IsValid() {
		return false
	}
	addr = addr.Unmap()
	for _, p := range m.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the address of the client that sent r. Forwarding
// headers are only believed when the peer is a trusted proxy; the
// right-most untrusted hop wins.
func clientIP(r *http.Request, trusted *proxyMatcher) netip.Addr {
	remote := parseHostAddr(r.RemoteAddr)
	if !remote.IsValid() || !trusted.IsTrusted(remote) {
		return remote
	}

	hops := forwardedFor(r.Header.Get("Forwarded"))
	if len(hops) == 0 {
		hops = xForwardedFor(r.Header.Get("X-Forwarded-For"))
	}
	if len(hops) == 0 {
		return remote
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if !trusted.IsTrusted(hops[i]) {
			return hops[i]
		}
	}
	return hops[0]
}

// forwardedFor extracts the for= parameters of an RFC 7239 header.
func forwardedFor(header string) []netip.Addr {
	var out []netip.Addr
	for _, element := range strings.Split(header, ",") {
		for _, pair := range strings.Split(element, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "for") {
				continue
			}
			if addr := parseHostAddr(value); addr.IsValid() {
				out = append(out, addr)
			}
		}
	}
	return out
}

func xForwardedFor(header string) []netip.Addr {
	var out []netip.Addr
	for _, part := range strings.Split(header, ",") {
		if addr := parseHostAddr(part); addr.IsValid() {
			out = append(out, addr)
		}
	}
	return out
}

// parseHostAddr accepts "ip", "ip:port", "[v6]:port" and quoted forms.
// Unknown or obfuscated identifiers give the zero Addr.
func parseHostAddr(value string) netip.Addr {
	host := strings.Trim(strings.TrimSpace(value), `"`)
	if host == "" || strings.EqualFold(host, "unknown") {
		return netip.Addr{}
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if zone := strings.IndexByte(host, '%'); zone >= 0 {
		host = host[:zone]
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}
