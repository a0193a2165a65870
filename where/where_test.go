package where

import (
	"path/filepath"
	"testing"

	"github.com/shikisync/shikisync/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPaths(t *testing.T) {
	Convey("Given a custom config path", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		t.Setenv(EnvConfigPath, "/custom/shikisync")

		Convey("Config honors the override and creates it", func() {
			So(Config(), ShouldEqual, "/custom/shikisync")
			exists, err := filesystem.API().DirExists("/custom/shikisync")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Config-scoped files live under it", func() {
			So(Progress(), ShouldEqual, filepath.Join("/custom/shikisync", "progress.json"))
			So(Queue(), ShouldEqual, filepath.Join("/custom/shikisync", "queue.jsonl"))
			So(Logs(), ShouldEqual, filepath.Join("/custom/shikisync", "logs"))
		})
	})
}
