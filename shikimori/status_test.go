package shikimori

import (
	"errors"
	"testing"

	"github.com/shikisync/shikisync/track"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStatusMapping(t *testing.T) {
	Convey("Given every local status", t, func() {
		seen := make(map[string]bool)

		for _, s := range track.Statuses() {
			remote, err := ToRemoteStatus(s)
			So(err, ShouldBeNil)
			So(seen[remote], ShouldBeFalse)
			seen[remote] = true

			Convey("Then "+s.String()+" survives a round trip", func() {
				local, err := ToLocalStatus(remote)
				So(err, ShouldBeNil)
				So(local, ShouldEqual, s)
			})
		}

		Convey("The remote vocabulary is the user_rates one", func() {
			remote, _ := ToRemoteStatus(track.Reading)
			So(remote, ShouldEqual, "watching")
			remote, _ = ToRemoteStatus(track.PlanToRead)
			So(remote, ShouldEqual, "planned")
			remote, _ = ToRemoteStatus(track.Rereading)
			So(remote, ShouldEqual, "rewatching")
		})
	})

	Convey("Given an unknown remote token", t, func() {
		_, err := ToLocalStatus("reading")

		Convey("Then it fails with UnrecognizedStatusError", func() {
			var unrecognized *UnrecognizedStatusError
			So(errors.As(err, &unrecognized), ShouldBeTrue)
			So(unrecognized.Status, ShouldEqual, "reading")
		})
	})

	Convey("Given a status outside the enum", t, func() {
		_, err := ToRemoteStatus(track.Status(99))

		Convey("Then it fails with UnrecognizedStatusError", func() {
			var unrecognized *UnrecognizedStatusError
			So(errors.As(err, &unrecognized), ShouldBeTrue)
		})
	})
}
