// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shikisync/shikisync/log"
	"golang.org/x/oauth2"
)

// TokenStore persists the session token between runs.
// Load returns nil, nil when nothing is stored.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(*oauth2.Token) error
	Delete() error
}

// AuthManager owns the OAuth2 session: building the authorization URL, exchanging codes,
// refreshing tokens and signing requests.
type AuthManager struct {
	cfg    Config
	oauth  *oauth2.Config
	store  TokenStore
	client *http.Client

	token     atomic.Pointer[oauth2.Token]
	refreshMu sync.Mutex
}

// NewAuthManager creates a manager without a session. store may be nil to keep the token in memory only.
// The client is used for the token endpoint and must not sign requests itself.
func NewAuthManager(cfg Config, store TokenStore, client *http.Client) *AuthManager {
	if client == nil {
		client = http.DefaultClient
	}

	return &AuthManager{
		cfg:    cfg,
		store:  store,
		client: client,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.redirect(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.base() + "/oauth/authorize",
				TokenURL:  cfg.base() + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// AuthURL is the page the user opens to grant access.
// It carries client_id, redirect_uri and response_type=code, and no state.
func (a *AuthManager) AuthURL() string {
	return a.oauth.AuthCodeURL("")
}

// ExchangeCode trades an authorization code for a token, which becomes the session token.
func (a *AuthManager) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, &AuthError{Op: "exchange code", Err: err}
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &AuthError{Op: "exchange code", Err: errors.New("authorization code is empty")}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.client)
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		log.Errorf("shikimori: exchange code: %s", err)
		return nil, &AuthError{Op: "exchange code", Err: err}
	}

	token = withIssuedAt(token)
	if err := a.SetToken(token); err != nil {
		return nil, err
	}

	log.Info("shikimori: session started")
	return token, nil
}

// RefreshRequest builds the refresh_token grant. It does not send it.
func (a *AuthManager) RefreshRequest(ctx context.Context, refreshToken string) (*http.Request, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.oauth.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Refresh exchanges the current refresh token for a new session token.
func (a *AuthManager) Refresh(ctx context.Context) (*oauth2.Token, error) {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	return a.refreshLocked(ctx)
}

// refreshStale refreshes only if the session still holds the access token that was rejected.
// Concurrent 401s therefore cause a single refresh.
func (a *AuthManager) refreshStale(ctx context.Context, stale string) (*oauth2.Token, error) {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	if current := a.token.Load(); current != nil && current.AccessToken != stale {
		return current, nil
	}

	return a.refreshLocked(ctx)
}

func (a *AuthManager) refreshLocked(ctx context.Context) (*oauth2.Token, error) {
	current := a.token.Load()
	if current == nil || current.RefreshToken == "" {
		return nil, &AuthError{Op: "refresh", Err: ErrNotAuthenticated}
	}

	req, err := a.RefreshRequest(ctx, current.RefreshToken)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Err: err}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("shikimori: refresh rejected with status %d", resp.StatusCode)
		return nil, &AuthError{
			Op:  "refresh",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	token, err := parseToken(body, time.Now())
	if err != nil {
		return nil, &AuthError{Op: "refresh", Err: err}
	}

	// Shikimori rotates refresh tokens, but keep the old one if the response omits it.
	if token.RefreshToken == "" {
		token.RefreshToken = current.RefreshToken
	}

	if err := a.SetToken(token); err != nil {
		return nil, err
	}

	log.Info("shikimori: session refreshed")
	return token, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	CreatedAt    int64  `json:"created_at"`
}

func parseToken(body []byte, now time.Time) (*oauth2.Token, error) {
	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, errors.New("token response is missing access_token")
	}

	token := &oauth2.Token{
		AccessToken:  resp.AccessToken,
		TokenType:    resp.TokenType,
		RefreshToken: resp.RefreshToken,
	}

	if resp.ExpiresIn > 0 {
		issued := now
		if resp.CreatedAt > 0 {
			issued = time.Unix(resp.CreatedAt, 0)
		}
		token.Expiry = issued.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	return token, nil
}

// withIssuedAt counts the expiry from created_at, as parseToken does.
// oauth2 counts expires_in from the time the response arrived.
func withIssuedAt(token *oauth2.Token) *oauth2.Token {
	created, expiresIn := extraInt(token, "created_at"), extraInt(token, "expires_in")
	if created <= 0 || expiresIn <= 0 {
		return token
	}

	token.Expiry = time.Unix(created, 0).Add(time.Duration(expiresIn) * time.Second)
	return token
}

func extraInt(token *oauth2.Token, key string) int64 {
	switch v := token.Extra(key).(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Authenticate signs req with the current access token.
func (a *AuthManager) Authenticate(req *http.Request) error {
	_, err := a.authenticate(req)
	return err
}

func (a *AuthManager) authenticate(req *http.Request) (string, error) {
	token := a.token.Load()
	if token == nil || token.AccessToken == "" {
		return "", ErrNotAuthenticated
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return token.AccessToken, nil
}

// Token returns the session token, or nil without a session.
func (a *AuthManager) Token() *oauth2.Token {
	return a.token.Load()
}

// SetToken replaces the session token and persists it.
func (a *AuthManager) SetToken(token *oauth2.Token) error {
	if token == nil {
		return errors.New("token is nil")
	}

	a.token.Store(token)

	if a.store == nil {
		return nil
	}

	if err := a.store.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Restore loads a persisted token into the session. It reports whether one was found.
func (a *AuthManager) Restore() (bool, error) {
	if a.store == nil {
		return false, nil
	}

	token, err := a.store.Load()
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	if token == nil {
		return false, nil
	}

	a.token.Store(token)
	return true, nil
}

// Logout drops the session and the persisted token.
func (a *AuthManager) Logout() error {
	a.token.Store(nil)

	if a.store == nil {
		return nil
	}
	return a.store.Delete()
}
