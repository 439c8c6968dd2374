package urlcheck

import (
	"errors"
	"net"
	"testing"
)

func TestCheckScheme(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://history.nasa.gov/afj/", false},
		{"http://history.nasa.gov/afj/", false},
		{"HTTP://history.nasa.gov/", false},
		{"ftp://history.nasa.gov/data", true},
		{"javascript:alert(1)", true},
		{"file:///etc/passwd", true},
		{"", true},
	}
	for _, tt := range tests {
		err := CheckScheme(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckScheme(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

// WHAT: literal private and loopback IPs are refused; public ones pass.
// WHY: a hostile URL list must not be able to point the scraper at
// link-local metadata services or in-cluster addresses.
func TestCheckPublicLiteralIPs(t *testing.T) {
	tests := []struct {
		url     string
		wantErr error
	}{
		{"http://8.8.8.8/page.html", nil},
		{"http://1.1.1.1/", nil},
		{"http://[2001:4860:4860::8888]/", nil},
		{"http://127.0.0.1/admin", ErrPrivateHost},
		{"http://10.0.0.1/internal", ErrPrivateHost},
		{"http://172.16.0.1/secret", ErrPrivateHost},
		{"http://192.168.1.1/api", ErrPrivateHost},
		{"http://169.254.169.254/meta", ErrPrivateHost},
		{"http://0.0.0.0/", ErrPrivateHost},
		{"http://[::1]/api", ErrPrivateHost},
		{"http://[fc00::1]/", ErrPrivateHost},
		{"http://[fe80::1]/", ErrPrivateHost},
		{"ftp://8.8.8.8/", ErrScheme},
	}
	for _, tt := range tests {
		err := CheckPublic(tt.url)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("CheckPublic(%q) = %v, want nil", tt.url, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CheckPublic(%q) = %v, want %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestCheckPublicNoHost(t *testing.T) {
	if err := CheckPublic("http://"); err == nil {
		t.Error("expected error for URL without host")
	}
}

// WHAT: hostnames are resolved and checked against the same rules.
func TestCheckPublicResolvesHostname(t *testing.T) {
	if _, err := net.LookupHost("localhost"); err != nil {
		t.Skip("no resolver available")
	}
	if err := CheckPublic("http://localhost:8080/x"); !errors.Is(err, ErrPrivateHost) {
		t.Errorf("CheckPublic(localhost) = %v, want ErrPrivateHost", err)
	}
}

func TestIsPrivate(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"192.168.0.1", true},
		{"169.254.1.1", true},
		{"0.0.0.0", true},
		{"::1", true},
		{"fc00::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false},
	}
	for _, tt := range tests {
		ip := net.ParseIP(tt.ip)
		if ip == nil {
			t.Fatalf("parse IP %q", tt.ip)
		}
		if got := isPrivate(ip); got != tt.private {
			t.Errorf("isPrivate(%s) = %v, want %v", tt.ip, got, tt.private)
		}
	}
}
