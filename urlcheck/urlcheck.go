// Package urlcheck validates fetch targets before the scraper touches
// them. CheckScheme is the baseline every fetch goes through; CheckPublic
// additionally refuses hosts that are, or resolve to, private or
// loopback addresses, for deployments that scrape URL lists they do not
// fully trust.
package urlcheck

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	// ErrScheme is returned for any scheme other than http or https.
	ErrScheme = errors.New("urlcheck: only http and https are allowed")

	// ErrPrivateHost is returned when the host is, or resolves to, a
	// private, loopback, or link-local address.
	ErrPrivateHost = errors.New("urlcheck: host is private or loopback")
)

// CheckScheme verifies that rawURL parses and uses http or https.
func CheckScheme(rawURL string) error {
	_, err := parse(rawURL)
	return err
}

// CheckPublic verifies the scheme and that the host is a public
// address. Literal IPs are checked directly; hostnames are resolved
// and every returned address must be public. A DNS failure passes:
// the dial will surface the real error.
func CheckPublic(rawURL string) error {
	u, err := parse(rawURL)
	if err != nil {
		return err
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("urlcheck: url %q has no host", rawURL)
	}

	if ip := net.ParseIP(host); ip != nil {
		if isPrivate(ip) {
			return fmt.Errorf("%w: %s", ErrPrivateHost, host)
		}
		return nil
	}

	addrs, err := net.LookupHost(host)
	if err != nil {
		return nil
	}
	for _, a := range addrs {
		if ip := net.ParseIP(a); ip != nil && isPrivate(ip) {
			return fmt.Errorf("%w: %s resolves to %s", ErrPrivateHost, host, a)
		}
	}
	return nil
}

func parse(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("urlcheck: parse %q: %w", rawURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	}
	return nil, fmt.Errorf("%w: got %q", ErrScheme, u.Scheme)
}

func isPrivate(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
