// Package track defines the local progress record and the search projection shared by trackers and stores.
package track

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Status is the local reading status of a record.
type Status int

const (
	Reading Status = iota + 1
	Completed
	OnHold
	Dropped
	PlanToRead
	Rereading
)

var statusNames = map[Status]string{
	Reading:    "reading",
	Completed:  "completed",
	OnHold:     "on-hold",
	Dropped:    "dropped",
	PlanToRead: "plan-to-read",
	Rereading:  "rereading",
}

// Statuses returns every local status in declaration order.
func Statuses() []Status {
	return []Status{Reading, Completed, OnHold, Dropped, PlanToRead, Rereading}
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus parses the human name of a status, as printed by String.
func ParseStatus(name string) (Status, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q, expected one of %s", name, strings.Join(StatusNames(), ", "))
}

// StatusNames lists the human names of all statuses.
func StatusNames() []string {
	return lo.Map(Statuses(), func(s Status, _ int) string {
		return s.String()
	})
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// JSONSchema describes Status as a string enum.
func (Status) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: lo.Map(StatusNames(), func(n string, _ int) any { return n }),
	}
}

// Record is the local progress for a single manga.
// LibraryID is zero until the record has been created or found remotely.
type Record struct {
	RemoteID        int64   `json:"remote_id" jsonschema:"description=Identifier of the manga on the tracker"`
	LibraryID       int64   `json:"library_id,omitempty" jsonschema:"description=Identifier of the user's library entry"`
	LastChapterRead float64 `json:"last_chapter_read" jsonschema:"minimum=0"`
	Score           float64 `json:"score" jsonschema:"minimum=0,maximum=10"`
	Status          Status  `json:"status,omitempty"`
	Title           string  `json:"title,omitempty"`
	TotalChapters   int64   `json:"total_chapters,omitempty" jsonschema:"minimum=0"`
	TrackingURL     string  `json:"tracking_url,omitempty"`
}

// Synced reports whether the record is bound to a remote library entry.
func (r *Record) Synced() bool {
	return r.LibraryID != 0
}

func (r *Record) String() string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("#%d", r.RemoteID)
}

// SearchResult is a read-only projection of a search hit.
type SearchResult struct {
	RemoteID         int64   `json:"remote_id"`
	Title            string  `json:"title"`
	TotalChapters    int64   `json:"total_chapters"`
	CoverURL         string  `json:"cover_url"`
	Score            float64 `json:"score"`
	TrackingURL      string  `json:"tracking_url"`
	PublishingStatus string  `json:"publishing_status"`
	PublishingType   string  `json:"publishing_type"`
	StartDate        string  `json:"start_date"`
	Summary          string  `json:"summary"`
}
