package pagekeep

import "strings"

// Whitelist is the set of domains for which capture is permitted.
type Whitelist []string

// Match reports whether hostname equals an entry or is a subdomain of one.
// An empty whitelist matches nothing.
func (w Whitelist) Match(hostname string) bool {
	for _, domain := range w {
		if domain == "" {
			continue
		}
		if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
			return true
		}
	}
	return false
}

// IsWhitelisted reports whether hostname matches any of domains.
func IsWhitelisted(hostname string, domains []string) bool {
	return Whitelist(domains).Match(hostname)
}
