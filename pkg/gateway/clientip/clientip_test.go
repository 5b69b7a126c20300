package clientip

import (
	"net/http/httptest"
	"testing"
)

func TestResolveUsesRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/artists", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	if got := Resolve(r, false); got != "203.0.113.7" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolveIgnoresProxyHeadersByDefault(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/artists", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("X-Forwarded-For", "198.51.100.9")
	if got := Resolve(r, false); got != "203.0.113.7" {
		t.Fatalf("Resolve = %q, proxy header should be ignored", got)
	}
}

func TestResolveTrustedProxyHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"cloudflare", "CF-Connecting-IP", "198.51.100.1", "198.51.100.1"},
		{"real ip", "X-Real-IP", "198.51.100.2", "198.51.100.2"},
		{"xff single", "X-Forwarded-For", "198.51.100.3", "198.51.100.3"},
		{"xff chain takes leftmost", "X-Forwarded-For", "198.51.100.4, 10.0.0.1", "198.51.100.4"},
		{"xff with port", "X-Forwarded-For", "198.51.100.5:8080", "198.51.100.5"},
		{"garbage falls back", "X-Forwarded-For", "not-an-ip", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "203.0.113.7:51234"
			r.Header.Set(tt.header, tt.value)
			if got := Resolve(r, true); got != tt.want {
				t.Fatalf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveIPv6(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "[2001:db8::1]:443"
	if got := Resolve(r, false); got != "2001:db8::1" {
		t.Fatalf("Resolve = %q", got)
	}
}
