// Package progress is the local store of tracked manga, one record per remote id.
package progress

import (
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/track"
	"github.com/shikisync/shikisync/where"
)

var cacher = gache.New[map[string]*track.Record](
	&gache.Options{
		Path:       where.Progress(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func encode(remoteID int64) string {
	return strconv.FormatInt(remoteID, 10)
}

// All returns every stored record keyed by remote id.
func All() (map[string]*track.Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*track.Record), nil
	}
	return cached, nil
}

// List returns the stored records ordered by title.
func List() ([]*track.Record, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}

	records := lo.Values(all)
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Title == records[j].Title {
			return records[i].RemoteID < records[j].RemoteID
		}
		return strings.ToLower(records[i].Title) < strings.ToLower(records[j].Title)
	})
	return records, nil
}

// Get returns the record for remoteID if there is one.
func Get(remoteID int64) (mo.Option[*track.Record], error) {
	all, err := All()
	if err != nil {
		return mo.None[*track.Record](), err
	}

	if record, ok := all[encode(remoteID)]; ok {
		return mo.Some(record), nil
	}
	return mo.None[*track.Record](), nil
}

// Save stores record, replacing any previous one for the same manga.
// A record that lost its library id keeps the stored one unless cleared through Unlink.
func Save(record *track.Record) error {
	all, err := All()
	if err != nil {
		return err
	}

	saved := *record
	if existing, ok := all[encode(record.RemoteID)]; ok && saved.LibraryID == 0 {
		saved.LibraryID = existing.LibraryID
	}

	all[encode(record.RemoteID)] = &saved
	return cacher.Set(all)
}

// Unlink clears the library id of the stored record, after its remote entry was deleted.
func Unlink(remoteID int64) error {
	all, err := All()
	if err != nil {
		return err
	}

	record, ok := all[encode(remoteID)]
	if !ok {
		return nil
	}

	record.LibraryID = 0
	return cacher.Set(all)
}

// Remove deletes the record for remoteID.
func Remove(remoteID int64) error {
	all, err := All()
	if err != nil {
		return err
	}

	delete(all, encode(remoteID))
	return cacher.Set(all)
}

// FindByTitle returns the stored record whose title is closest to title.
func FindByTitle(title string) (mo.Option[*track.Record], error) {
	records, err := List()
	if err != nil {
		return mo.None[*track.Record](), err
	}

	records = lo.Filter(records, func(r *track.Record, _ int) bool {
		return r.Title != ""
	})
	if len(records) == 0 {
		return mo.None[*track.Record](), nil
	}

	title = strings.ToLower(title)
	closest := lo.MinBy(records, func(a, b *track.Record) bool {
		return levenshtein.Distance(title, strings.ToLower(a.Title)) < levenshtein.Distance(title, strings.ToLower(b.Title))
	})
	return mo.Some(closest), nil
}

// Schema describes the file behind the store.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(map[string]*track.Record{})
	schema.Title = "shikisync progress"
	schema.Description = "Local reading progress keyed by Shikimori manga id"
	return schema
}
