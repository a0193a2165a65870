// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/track"
	"github.com/sirupsen/logrus"
)

// SearchLimit is the number of results requested from the mangas index.
const SearchLimit = 20

// Client performs library and search calls for the session held by an AuthManager.
type Client struct {
	cfg  Config
	auth *AuthManager
	http *http.Client
}

// NewClient wraps base with the signing transport. A nil base uses http.DefaultClient.
func NewClient(cfg Config, auth *AuthManager, base *http.Client) *Client {
	if base == nil {
		base = http.DefaultClient
	}

	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		cfg:  cfg,
		auth: auth,
		http: &http.Client{
			Timeout:       base.Timeout,
			Jar:           base.Jar,
			CheckRedirect: base.CheckRedirect,
			Transport:     &authTransport{auth: auth, base: transport},
		},
	}
}

// Auth returns the session manager the client signs with.
func (c *Client) Auth() *AuthManager {
	return c.auth
}

// AddOrUpdate upserts the library entry of record for userID.
// Chapters and score are truncated to integers. The returned record is record itself
// with LibraryID set; it is left untouched when the call fails.
func (c *Client) AddOrUpdate(ctx context.Context, record *track.Record, userID int) (*track.Record, error) {
	status, err := ToRemoteStatus(record.Status)
	if err != nil {
		return nil, err
	}

	payload := userRatePayload{
		UserRate: userRateBody{
			UserID:     userID,
			TargetID:   record.RemoteID,
			TargetType: targetTypeManga,
			Chapters:   int(record.LastChapterRead),
			Score:      int(record.Score),
			Status:     status,
		},
	}

	var rate userRate
	if err := c.do(ctx, http.MethodPost, "/api/v2/user_rates", nil, payload, &rate); err != nil {
		return nil, err
	}

	if rate.ID == nil {
		return nil, &ParseError{
			URL: c.cfg.base() + "/api/v2/user_rates",
			Err: errors.New("response is missing id"),
		}
	}

	record.LibraryID = *rate.ID
	return record, nil
}

// Update is AddOrUpdate: the endpoint upserts by target.
func (c *Client) Update(ctx context.Context, record *track.Record, userID int) (*track.Record, error) {
	return c.AddOrUpdate(ctx, record, userID)
}

// Delete removes the library entry addressed by record.LibraryID.
func (c *Client) Delete(ctx context.Context, record *track.Record) error {
	endpoint := "/api/v2/user_rates/" + strconv.FormatInt(record.LibraryID, 10)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

// Find looks up the library entry of userID for record.RemoteID.
// It returns nil, nil when there is none and an *AmbiguousEntryError when there are several.
// The result is a new record; record is not modified.
func (c *Client) Find(ctx context.Context, record *track.Record, userID int) (*track.Record, error) {
	var m manga
	if err := c.do(ctx, http.MethodGet, "/api/mangas/"+strconv.FormatInt(record.RemoteID, 10), nil, nil, &m); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))
	query.Set("target_id", strconv.FormatInt(record.RemoteID, 10))
	query.Set("target_type", targetTypeManga)

	var rates []userRate
	if err := c.do(ctx, http.MethodGet, "/api/v2/user_rates", query, nil, &rates); err != nil {
		return nil, err
	}

	switch len(rates) {
	case 0:
		return nil, nil
	case 1:
	default:
		err := &AmbiguousEntryError{UserID: userID, TargetID: record.RemoteID, Count: len(rates)}
		log.Error(err)
		return nil, err
	}

	rate := rates[0]
	if rate.ID == nil {
		return nil, &ParseError{URL: c.cfg.base() + "/api/v2/user_rates", Err: errors.New("entry is missing id")}
	}

	status, err := ToLocalStatus(rate.Status)
	if err != nil {
		return nil, err
	}

	return &track.Record{
		RemoteID:        record.RemoteID,
		LibraryID:       *rate.ID,
		LastChapterRead: rate.Chapters,
		Score:           float64(rate.Score),
		Status:          status,
		Title:           m.Name,
		TotalChapters:   m.Chapters,
		TrackingURL:     c.cfg.base() + m.URL,
	}, nil
}

// Search queries the mangas index by popularity. At most SearchLimit results are returned.
func (c *Client) Search(ctx context.Context, q string) ([]track.SearchResult, error) {
	query := url.Values{}
	query.Set("order", "popularity")
	query.Set("search", q)
	query.Set("limit", strconv.Itoa(SearchLimit))

	var mangas []manga
	if err := c.do(ctx, http.MethodGet, "/api/mangas", query, nil, &mangas); err != nil {
		return nil, err
	}

	if len(mangas) > SearchLimit {
		mangas = mangas[:SearchLimit]
	}

	base := c.cfg.base()
	return lo.Map(mangas, func(m manga, _ int) track.SearchResult {
		return track.SearchResult{
			RemoteID:         m.ID,
			Title:            m.Name,
			TotalChapters:    max(m.Chapters, 0),
			CoverURL:         base + m.Image.Preview,
			Score:            float64(m.Score),
			TrackingURL:      base + m.URL,
			PublishingStatus: m.Status,
			PublishingType:   m.Kind,
			StartDate:        lo.FromPtr(m.AiredOn),
		}
	}), nil
}

// CurrentUser returns the account behind the session.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user struct {
		ID       *int   `json:"id"`
		Nickname string `json:"nickname"`
		Avatar   string `json:"avatar"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/users/whoami", nil, nil, &user); err != nil {
		return nil, err
	}

	if user.ID == nil {
		return nil, &ParseError{URL: c.cfg.base() + "/api/users/whoami", Err: errors.New("response is missing id")}
	}

	return &User{ID: *user.ID, Nickname: user.Nickname, Avatar: user.Avatar}, nil
}

// CurrentUserID returns the id that scopes library entries.
func (c *Client) CurrentUserID(ctx context.Context) (int, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	target := c.cfg.base() + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	entry := log.WithFields(logrus.Fields{"method": method, "url": target})

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &TransportError{Method: method, URL: target, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	entry.Debug("shikimori: request")

	resp, err := c.http.Do(req)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			entry.Error(authErr)
			return authErr
		}
		if errors.Is(err, ErrNotAuthenticated) {
			return ErrNotAuthenticated
		}

		entry.Error(err)
		return &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		err := &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
		entry.WithField("status", resp.StatusCode).Error(err)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		entry.Error(err)
		return &ParseError{URL: target, Err: err}
	}

	return nil
}
