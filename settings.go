package pagekeep

import (
	"context"
	"net/url"
	"slices"
	"strings"
)

// DefaultServerURL is the content server used until one is configured.
const DefaultServerURL = "http://localhost:5000"

// Settings holds the user-configurable capture settings.
type Settings struct {
	WhitelistedDomains []string `json:"whitelistedDomains"`
	ServerURL          string   `json:"serverUrl"`
}

// DefaultSettings returns the settings applied on first install.
func DefaultSettings() *Settings {
	return &Settings{
		WhitelistedDomains: []string{},
		ServerURL:          DefaultServerURL,
	}
}

// Whitelist returns the whitelisted domains as a Whitelist.
func (s *Settings) Whitelist() Whitelist {
	return Whitelist(s.WhitelistedDomains)
}

// Validate returns an error if the settings contain invalid fields.
func (s *Settings) Validate() error {
	u, err := url.Parse(s.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "server URL must be an absolute http(s) URL: %q", s.ServerURL)
	}
	for _, domain := range s.WhitelistedDomains {
		if err := ValidateDomain(domain); err != nil {
			return err
		}
	}
	return nil
}

// SettingsUpdate represents fields that can be updated on the settings.
// Nil fields are left unchanged.
type SettingsUpdate struct {
	WhitelistedDomains *[]string `json:"whitelistedDomains"`
	ServerURL          *string   `json:"serverUrl"`
}

// SettingsService represents the persistent settings store.
type SettingsService interface {
	// Settings returns the current settings. Keys that were never written
	// take their default values.
	Settings(ctx context.Context) (*Settings, error)

	// UpdateSettings persists a partial update and returns the result.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (*Settings, error)
}

// ValidateDomain returns an error unless domain is a bare hostname.
func ValidateDomain(domain string) error {
	if domain == "" {
		return Errorf(EINVALID, "domain required")
	}
	if strings.Contains(domain, "://") || strings.ContainsAny(domain, "/ \t") {
		return Errorf(EINVALID, "domain must be a bare hostname: %q", domain)
	}
	return nil
}

// AddDomain adds domain to the whitelist. Adding a domain that is already
// present leaves the whitelist unchanged.
func AddDomain(ctx context.Context, s SettingsService, domain string) (*Settings, error) {
	domain = strings.TrimSpace(domain)
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}

	current, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(current.WhitelistedDomains, domain) {
		return current, nil
	}

	domains := append(slices.Clone(current.WhitelistedDomains), domain)
	return s.UpdateSettings(ctx, SettingsUpdate{WhitelistedDomains: &domains})
}

// RemoveDomain removes domain from the whitelist.
// Returns ENOTFOUND if the domain is not whitelisted.
func RemoveDomain(ctx context.Context, s SettingsService, domain string) (*Settings, error) {
	domain = strings.TrimSpace(domain)

	current, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(current.WhitelistedDomains, domain) {
		return nil, Errorf(ENOTFOUND, "domain %q is not whitelisted", domain)
	}

	domains := slices.DeleteFunc(slices.Clone(current.WhitelistedDomains), func(d string) bool {
		return d == domain
	})
	return s.UpdateSettings(ctx, SettingsUpdate{WhitelistedDomains: &domains})
}
