package shikimori

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const (
	testClientID     = "client"
	testClientSecret = "secret"
	testUserID       = 42
)

// fakeAPI is an in-memory Shikimori with just enough behaviour for the client.
type fakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []string
	access    string
	refresh   string
	refreshes int
	issuedAt  int64
	rejectAll bool
	failWith  int
	nextID    int64
	rates     []userRate
	mangas    map[int64]manga
	search    string
	payload   []byte
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		access:  "access-1",
		refresh: "refresh-1",
		nextID:  100,
		mangas:  make(map[int64]manga),
		search:  "[]",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", f.token)
	mux.HandleFunc("POST /api/v2/user_rates", f.authorized(f.upsert))
	mux.HandleFunc("GET /api/v2/user_rates", f.authorized(f.list))
	mux.HandleFunc("DELETE /api/v2/user_rates/{id}", f.authorized(f.remove))
	mux.HandleFunc("GET /api/mangas", f.authorized(f.index))
	mux.HandleFunc("GET /api/mangas/{id}", f.authorized(f.manga))
	mux.HandleFunc("GET /api/users/whoami", f.authorized(f.whoami))

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.RequestURI())
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))

	return f
}

func (f *fakeAPI) config() Config {
	return Config{
		BaseURL:      f.URL,
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
	}
}

// session returns a manager holding the token the fake currently accepts.
func (f *fakeAPI) session(store TokenStore) *AuthManager {
	auth := NewAuthManager(f.config(), store, f.Client())
	_ = auth.SetToken(&oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1", TokenType: "Bearer"})
	return auth
}

func (f *fakeAPI) client() (*Client, *AuthManager) {
	auth := f.session(nil)
	return NewClient(f.config(), auth, f.Client()), auth
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeAPI) Refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

func (f *fakeAPI) addRate(userID int, targetID int64, status string, chapters float64, score int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.rates = append(f.rates, userRate{
		ID:         &id,
		UserID:     userID,
		TargetID:   targetID,
		TargetType: targetTypeManga,
		Status:     status,
		Chapters:   chapters,
		Score:      score,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) authorized(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		access, reject, fail := f.access, f.rejectAll, f.failWith
		f.mu.Unlock()

		if reject || r.Header.Get("Authorization") != "Bearer "+access {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			return
		}
		if fail != 0 {
			http.Error(w, "boom", fail)
			return
		}
		h(w, r)
	}
}

func (f *fakeAPI) token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if r.PostForm.Get("client_id") != testClientID || r.PostForm.Get("client_secret") != testClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") != "good-code" || r.PostForm.Get("redirect_uri") != DefaultRedirectURI {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		f.access, f.refresh = "access-code", "refresh-code"
	case "refresh_token":
		if r.PostForm.Get("refresh_token") != f.refresh {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		f.refreshes++
		f.access = "access-r" + strconv.Itoa(f.refreshes)
		f.refresh = "refresh-r" + strconv.Itoa(f.refreshes)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}

	createdAt := f.issuedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  f.access,
		"refresh_token": f.refresh,
		"token_type":    "Bearer",
		"expires_in":    86400,
		"scope":         "user_rates",
		"created_at":    createdAt,
	})
}

func (f *fakeAPI) upsert(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var p userRatePayload
	if err := json.Unmarshal(body, &p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.payload = body

	in := p.UserRate
	for i := range f.rates {
		rate := &f.rates[i]
		if rate.UserID == in.UserID && rate.TargetID == in.TargetID {
			rate.Chapters, rate.Score, rate.Status = float64(in.Chapters), in.Score, in.Status
			writeJSON(w, http.StatusOK, rate)
			return
		}
	}

	id := f.nextID
	f.nextID++
	rate := userRate{
		ID:         &id,
		UserID:     in.UserID,
		TargetID:   in.TargetID,
		TargetType: in.TargetType,
		Score:      in.Score,
		Status:     in.Status,
		Chapters:   float64(in.Chapters),
	}
	f.rates = append(f.rates, rate)
	writeJSON(w, http.StatusCreated, rate)
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.Atoi(r.URL.Query().Get("user_id"))
	targetID, _ := strconv.ParseInt(r.URL.Query().Get("target_id"), 10, 64)

	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []userRate{}
	for _, rate := range f.rates {
		if rate.UserID == userID && rate.TargetID == targetID {
			matches = append(matches, rate)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}

func (f *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, rate := range f.rates {
		if *rate.ID == id {
			f.rates = append(f.rates[:i], f.rates[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
}

func (f *fakeAPI) manga(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	f.mu.Lock()
	m, ok := f.mangas[id]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found", "code": "404"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (f *fakeAPI) index(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	body := f.search
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) whoami(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"id": testUserID, "nickname": "tester", "avatar": "/system/users/x48/42.png"})
}

// searchItems renders n mangas the way the index endpoint does, with string scores.
func searchItems(n int) string {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"id":       i + 1,
			"name":     fmt.Sprintf("Manga %d", i+1),
			"russian":  "",
			"image":    map[string]string{"original": "/orig.jpg", "preview": fmt.Sprintf("/system/mangas/preview/%d.jpg", i+1)},
			"url":      fmt.Sprintf("/mangas/%d", i+1),
			"kind":     "manga",
			"score":    "8.5",
			"status":   "ongoing",
			"volumes":  0,
			"chapters": i,
			"aired_on": "2001-02-03",
		}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

type memStore struct {
	mu      sync.Mutex
	token   *oauth2.Token
	saves   int
	deletes int
}

func (s *memStore) Load() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.saves++
	return nil
}

func (s *memStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.deletes++
	return nil
}
