// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"io"
	"net/http"

	"github.com/shikisync/shikisync/log"
)

// authTransport signs every request and, on HTTP 401, refreshes the session once and resends.
// Any other outcome is returned as is.
type authTransport struct {
	auth *AuthManager
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	signed := req.Clone(req.Context())
	access, err := t.auth.authenticate(signed)
	if err != nil {
		closeBody(req)
		return nil, err
	}

	resp, err := t.base.RoundTrip(signed)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// The body was consumed by the first attempt and cannot be sent again.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}

	log.Debugf("shikimori: %s %s unauthorized, refreshing session", req.Method, req.URL.Path)

	if _, err := t.auth.refreshStale(req.Context(), access); err != nil {
		drain(resp)
		return nil, err
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			drain(resp)
			return nil, err
		}
		retry.Body = body
	}

	if _, err := t.auth.authenticate(retry); err != nil {
		drain(resp)
		return nil, err
	}

	drain(resp)
	return t.base.RoundTrip(retry)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
