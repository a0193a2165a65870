// Package shikimori is a client for the Shikimori manga tracker.
//
// It covers the OAuth2 authorization-code flow, the user_rates library entries and the manga
// search endpoint. Every authenticated call goes through a transport that refreshes the
// session once on HTTP 401 and resends the request.
package shikimori

import (
	"strings"
)

const (
	DefaultBaseURL     = "https://shikimori.one"
	DefaultRedirectURI = "shikisync://shikimori-auth"
)

// Config is the immutable set of endpoints and client credentials the client is built with.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// RedirectURI is the private-scheme callback registered with the OAuth application.
	RedirectURI string
}

// DefaultConfig returns the public endpoints with no credentials.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		RedirectURI: DefaultRedirectURI,
	}
}

// Validate checks that the credentials needed for the token endpoint are present.
func (c Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	return nil
}

func (c Config) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c Config) redirect() string {
	if c.RedirectURI == "" {
		return DefaultRedirectURI
	}
	return c.RedirectURI
}
