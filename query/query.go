// Package query remembers past searches and suggests them back.
package query

import (
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/where"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank     int       `json:"rank"`
	Query    string    `json:"query"`
	LastUsed time.Time `json:"last_used"`
}

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*queryRecord)

func load() map[string]*queryRecord {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*queryRecord)
	}
	return cached
}

// Remember records q, raising its rank by weight. Empty queries are ignored.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := load()
	if record, ok := cached[q]; ok {
		record.Rank += weight
		record.LastUsed = time.Now()
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q, LastUsed: time.Now()}
	}

	clear(suggestionCache)
	return cacher.Set(cached)
}

// Forget removes q from the history.
func Forget(q string) error {
	cached := load()
	delete(cached, sanitize(q))
	clear(suggestionCache)
	return cacher.Set(cached)
}

// Suggest returns the best past query matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns past queries fuzzily matching q, highest rank first, most recent on ties.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	records, ok := suggestionCache[q]
	if !ok {
		for _, record := range load() {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return b.LastUsed.Compare(a.LastUsed)
		})

		suggestionCache[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
