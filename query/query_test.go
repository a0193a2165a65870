package query

import (
	"testing"

	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)
		So(cacher.Set(map[string]*queryRecord{}), ShouldBeNil)
		clear(suggestionCache)

		So(Remember("one piece", 1), ShouldBeNil)
		So(Remember("  One   PIECE ", 1), ShouldBeNil)
		So(Remember("one punch-man", 1), ShouldBeNil)

		Convey("Repeated queries rank higher", func() {
			So(SuggestMany("one"), ShouldResemble, []string{"one piece", "one punch-man"})
			So(Suggest("op").MustGet(), ShouldEqual, "one piece")
		})

		Convey("Suggestions are refreshed after remembering", func() {
			_ = SuggestMany("one")
			So(Remember("one punch-man", 5), ShouldBeNil)
			So(SuggestMany("one")[0], ShouldEqual, "one punch-man")
		})

		Convey("Forgotten queries are not suggested", func() {
			So(Forget("ONE PIECE"), ShouldBeNil)
			So(SuggestMany("one"), ShouldResemble, []string{"one punch-man"})
		})

		Convey("Empty queries are ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
			So(len(load()), ShouldEqual, 2)
		})

		Convey("Nothing is suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("one"), ShouldBeEmpty)
			So(Suggest("one").IsAbsent(), ShouldBeTrue)
		})
	})
}
