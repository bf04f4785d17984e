package server

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	trusted := newProxyMatcher([]string{"10.0.0.0/8", "192.0.2.1", "bogus", "2001:db8::/32"}, nil)

	tests := []struct {
		name      string
		remote    string
		forwarded string
		xff       string
		trusted   *proxyMatcher
		want      string
	}{
		{name: "direct", remote: "203.0.113.5:1234", want: "203.0.113.5"},
		{name: "untrusted peer ignores headers", remote: "203.0.113.5:1234", xff: "198.51.100.1", trusted: trusted, want: "203.0.113.5"},
		{name: "nothing trusted ignores headers", remote: "10.1.1.1:80", xff: "198.51.100.1", want: "10.1.1.1"},
		{name: "trusted peer uses xff", remote: "10.1.1.1:80", xff: "198.51.100.1", trusted: trusted, want: "198.51.100.1"},
		{name: "right-most untrusted hop", remote: "10.1.1.1:80", xff: "1.1.1.1, 198.51.100.1, 10.2.2.2", trusted: trusted, want: "198.51.100.1"},
		{name: "all hops trusted", remote: "10.1.1.1:80", xff: "10.3.3.3, 192.0.2.1", trusted: trusted, want: "10.3.3.3"},
		{name: "forwarded wins over xff", remote: "192.0.2.1:443", forwarded: `for=198.51.100.7;proto=https`, xff: "1.1.1.1", trusted: trusted, want: "198.51.100.7"},
		{name: "forwarded ipv6", remote: "10.1.1.1:80", forwarded: `for="[2001:db9::1]:4711"`, trusted: trusted, want: "2001:db9::1"},
		{name: "forwarded unknown falls back", remote: "10.1.1.1:80", forwarded: "for=unknown", trusted: trusted, want: "10.1.1.1"},
		{name: "mapped ipv4 peer", remote: "[::ffff:10.1.1.1]:80", xff: "198.51.100.2", trusted: trusted, want: "198.51.100.2"},
		{name: "garbage remote", remote: "not-an-ip", want: "invalid IP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("Forwarded", tt.forwarded)
			}
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if got := clientIP(r, tt.trusted).String(); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewProxyMatcherEmpty(t *testing.T) {
	if m := newProxyMatcher([]string{"", " ", "nope"}, nil); m != nil {
		t.Errorf("newProxyMatcher() = %+v, want nil", m)
	}
}
