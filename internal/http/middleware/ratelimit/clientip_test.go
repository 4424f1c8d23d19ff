package ratelimit

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{name: "host port split", remoteAddr: "10.0.0.1:54321", want: "10.0.0.1"},
		{name: "no port falls back to remote addr", remoteAddr: "not-a-hostport", want: "not-a-hostport"},
		{name: "empty remote addr", remoteAddr: "", want: "unknown"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "http://example/", nil)
			r.RemoteAddr = tc.remoteAddr

			if got := clientIP(r); got != tc.want {
				t.Fatalf("clientIP(%q) = %q, want %q", tc.remoteAddr, got, tc.want)
			}
		})
	}
}
