package util

import (
	"testing"

	"github.com/shikisync/shikisync/filesystem"
	"github.com/spf13/afero"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "entry", "entries"), ShouldEqual, "1 entry")
		So(Quantify(0, "entry", "entries"), ShouldEqual, "0 entries")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("cache directory"), ShouldEqual, "Cache directory")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate("Berserk", 20), ShouldEqual, "Berserk")
		So(Truncate("Yotsuba to!", 6), ShouldEqual, "Yotsu…")
		So(Truncate("Yotsuba to!", 0), ShouldEqual, "Yotsuba to!")
	})
}

func TestWrap(t *testing.T) {
	Convey("Wrap", t, func() {
		So(Wrap("one piece", 3), ShouldEqual, "one\npiece")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1.5, 0.5), ShouldEqual, 0.5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files on the in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		fs := filesystem.API()
		So(afero.WriteFile(fs, "/data/queue.jsonl", []byte("{}"), 0o644), ShouldBeNil)

		Convey("A file is removed", func() {
			So(Delete("/data/queue.jsonl"), ShouldBeNil)
			exists, _ := afero.Exists(fs, "/data/queue.jsonl")
			So(exists, ShouldBeFalse)
		})

		Convey("A directory is removed recursively", func() {
			So(Delete("/data"), ShouldBeNil)
			exists, _ := afero.DirExists(fs, "/data")
			So(exists, ShouldBeFalse)
		})

		Convey("A missing path is an error", func() {
			So(Delete("/nope"), ShouldNotBeNil)
		})
	})
}
