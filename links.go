package verilens

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidateSocialLink checks that a link is an absolute http(s) URL with a
// plausible registered domain. Bare IP addresses are rejected; the upstream
// service only ingests links to hosted social platforms.
func ValidateSocialLink(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("%w: link is empty", ErrInvalidLink)
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLink, link)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %s must use http or https", ErrInvalidLink, link)
	}
	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("%w: %s has no host", ErrInvalidLink, link)
	}
	if net.ParseIP(host) != nil {
		return fmt.Errorf("%w: %s must use a domain, not an IP address", ErrInvalidLink, link)
	}
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return fmt.Errorf("%w: %s has no valid domain", ErrInvalidLink, link)
	}
	return nil
}
