package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shikisync/shikisync/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPrune(t *testing.T) {
	Convey("Given a directory with old and fresh files", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		fs := filesystem.API()
		dir := "/logs"
		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		So(fs.MkdirAll(dir, 0o755), ShouldBeNil)

		write := func(name string, age time.Duration) string {
			path := filepath.Join(dir, name)
			So(fs.WriteFile(path, []byte("x"), 0o644), ShouldBeNil)
			So(fs.Chtimes(path, now.Add(-age), now.Add(-age)), ShouldBeNil)
			return path
		}

		old := write("2024-01-01.log", 60*24*time.Hour)
		fresh := write("2024-05-30.log", 2*24*time.Hour)

		Convey("Only files older than the ttl are removed", func() {
			removed, err := Prune(dir, TTL, now)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 1)

			exists, _ := fs.Exists(old)
			So(exists, ShouldBeFalse)
			exists, _ = fs.Exists(fresh)
			So(exists, ShouldBeTrue)
		})

		Convey("A missing directory is not an error", func() {
			removed, err := Prune("/nowhere", TTL, now)
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 0)
		})
	})
}
