package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/metafates/gache"
	"github.com/shikisync/shikisync/auth"
	"github.com/shikisync/shikisync/config"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/network"
	"github.com/shikisync/shikisync/shikimori"
	"github.com/shikisync/shikisync/where"
)

type cachedUser struct {
	Token    string `json:"token"`
	ID       int    `json:"id"`
	Nickname string `json:"nickname"`
}

// userCache saves a whoami call per run. It is keyed by the access token it was fetched with.
var userCache = gache.New[*cachedUser](&gache.Options{
	Path:       where.Session(),
	Lifetime:   24 * time.Hour,
	FileSystem: &filesystem.GacheFs{},
})

type session struct {
	auth   *shikimori.AuthManager
	client *shikimori.Client
}

func newSession() (*session, error) {
	cfg := config.Shikimori()
	httpClient := network.New(config.Timeout())

	manager := shikimori.NewAuthManager(cfg, auth.NewKeyringStore(), httpClient)
	if _, err := manager.Restore(); err != nil {
		return nil, err
	}

	return &session{
		auth:   manager,
		client: shikimori.NewClient(cfg, manager, httpClient),
	}, nil
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func (s *session) user(ctx context.Context) (*cachedUser, error) {
	token := s.auth.Token()
	if token == nil {
		return nil, shikimori.ErrNotAuthenticated
	}

	if cached, expired, err := userCache.Get(); err == nil && !expired && cached != nil && cached.Token == fingerprint(token.AccessToken) {
		return cached, nil
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	// The call may have refreshed the session.
	cached := &cachedUser{
		Token:    fingerprint(s.auth.Token().AccessToken),
		ID:       user.ID,
		Nickname: user.Nickname,
	}
	_ = userCache.Set(cached)
	return cached, nil
}

func (s *session) userID(ctx context.Context) (int, error) {
	user, err := s.user(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

var mangaURL = regexp.MustCompile(`/mangas/[a-z]*(\d+)`)

// parseRemoteID accepts a numeric id or a Shikimori manga URL.
func parseRemoteID(arg string) (int64, error) {
	if m := mangaURL.FindStringSubmatch(arg); m != nil {
		arg = m[1]
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid manga id %q", arg)
	}
	return id, nil
}
