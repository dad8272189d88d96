package pagekeep_test

import (
	"testing"

	"github.com/fwojciec/pagekeep"
	"github.com/stretchr/testify/assert"
)

func TestWhitelist_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hostname  string
		whitelist pagekeep.Whitelist
		want      bool
	}{
		{"exact match", "example.com", pagekeep.Whitelist{"example.com"}, true},
		{"subdomain", "blog.example.com", pagekeep.Whitelist{"example.com"}, true},
		{"nested subdomain", "a.b.example.com", pagekeep.Whitelist{"example.com"}, true},
		{"suffix without dot boundary", "notexample.com", pagekeep.Whitelist{"example.com"}, false},
		{"entry as prefix of hostname", "example.com.evil.com", pagekeep.Whitelist{"example.com"}, false},
		{"parent of entry", "example.com", pagekeep.Whitelist{"blog.example.com"}, false},
		{"second entry matches", "docs.go.dev", pagekeep.Whitelist{"example.com", "go.dev"}, true},
		{"empty whitelist", "example.com", pagekeep.Whitelist{}, false},
		{"nil whitelist", "example.com", nil, false},
		{"empty entry never matches", "example.com.", pagekeep.Whitelist{""}, false},
		{"port is not stripped", "example.com:8080", pagekeep.Whitelist{"example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.whitelist.Match(tt.hostname))
		})
	}
}

func TestIsWhitelisted(t *testing.T) {
	t.Parallel()

	assert.True(t, pagekeep.IsWhitelisted("blog.example.com", []string{"example.com"}))
	assert.False(t, pagekeep.IsWhitelisted("example.com.evil.com", []string{"example.com"}))
	assert.False(t, pagekeep.IsWhitelisted("example.com", nil))
}
