package progress

import (
	"encoding/json"
	"testing"

	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/track"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestProgress(t *testing.T) {
	Convey("Given an empty store", t, func() {
		So(cacher.Set(map[string]*track.Record{}), ShouldBeNil)

		Convey("Nothing is found", func() {
			record, err := Get(13)
			So(err, ShouldBeNil)
			So(record.IsPresent(), ShouldBeFalse)
		})

		Convey("When records are saved", func() {
			So(Save(&track.Record{RemoteID: 13, Title: "Berserk", LibraryID: 100, Status: track.Reading, LastChapterRead: 3}), ShouldBeNil)
			So(Save(&track.Record{RemoteID: 2, Title: "Akira", Status: track.Completed}), ShouldBeNil)

			Convey("Then they are listed by title", func() {
				records, err := List()
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 2)
				So(records[0].Title, ShouldEqual, "Akira")
				So(records[1].Title, ShouldEqual, "Berserk")
			})

			Convey("Then the store keeps a copy", func() {
				record := &track.Record{RemoteID: 7, Title: "Monster", Status: track.Reading}
				So(Save(record), ShouldBeNil)
				record.Title = "changed"

				got, err := Get(7)
				So(err, ShouldBeNil)
				So(got.MustGet().Title, ShouldEqual, "Monster")
			})

			Convey("Then saving without a library id keeps the stored one", func() {
				So(Save(&track.Record{RemoteID: 13, Title: "Berserk", Status: track.OnHold, LastChapterRead: 5}), ShouldBeNil)
				got, _ := Get(13)
				So(got.MustGet().LibraryID, ShouldEqual, 100)
				So(got.MustGet().LastChapterRead, ShouldEqual, 5)
			})

			Convey("Then unlinking clears the library id", func() {
				So(Unlink(13), ShouldBeNil)
				got, _ := Get(13)
				So(got.MustGet().Synced(), ShouldBeFalse)
				So(Unlink(999), ShouldBeNil)
			})

			Convey("Then the closest title is found", func() {
				got, err := FindByTitle("berserc")
				So(err, ShouldBeNil)
				So(got.MustGet().RemoteID, ShouldEqual, 13)
			})

			Convey("Then a record can be removed", func() {
				So(Remove(2), ShouldBeNil)
				got, _ := Get(2)
				So(got.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("FindByTitle on an empty store finds nothing", func() {
			got, err := FindByTitle("anything")
			So(err, ShouldBeNil)
			So(got.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes records with a status enum", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "last_chapter_read")
		So(string(data), ShouldContainSubstring, "plan-to-read")
	})
}
