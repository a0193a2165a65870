// Package shikimori is a client for the Shikimori manga tracker.
package shikimori

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const targetTypeManga = "Manga"

type userRatePayload struct {
	UserRate userRateBody `json:"user_rate"`
}

type userRateBody struct {
	UserID     int    `json:"user_id"`
	TargetID   int64  `json:"target_id"`
	TargetType string `json:"target_type"`
	Chapters   int    `json:"chapters"`
	Score      int    `json:"score"`
	Status     string `json:"status"`
}

type userRate struct {
	ID         *int64  `json:"id"`
	UserID     int     `json:"user_id"`
	TargetID   int64   `json:"target_id"`
	TargetType string  `json:"target_type"`
	Score      int     `json:"score"`
	Status     string  `json:"status"`
	Chapters   float64 `json:"chapters"`
}

type image struct {
	Original string `json:"original"`
	Preview  string `json:"preview"`
}

type manga struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Russian  string    `json:"russian"`
	URL      string    `json:"url"`
	Kind     string    `json:"kind"`
	Score    flexFloat `json:"score"`
	Status   string    `json:"status"`
	Chapters int64     `json:"chapters"`
	Volumes  int64     `json:"volumes"`
	AiredOn  *string   `json:"aired_on"`
	Image    image     `json:"image"`
}

// User is the account behind the session.
type User struct {
	ID       int    `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// flexFloat accepts both 8.5 and "8.5"; the mangas index sends scores as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
