package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shikisync/shikisync/filesystem"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/shikimori"
	"github.com/shikisync/shikisync/where"
	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	convey.Convey("Given the in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()
		t.Setenv(where.EnvConfigPath, "/cfg")
		viper.Reset()

		convey.Convey("Setup succeeds without a config file", func() {
			convey.So(Setup(), convey.ShouldBeNil)

			for name, field := range Default {
				convey.So(viper.Get(name), convey.ShouldEqual, field.Value)
			}
		})

		convey.Convey("A config file overrides defaults", func() {
			convey.So(afero.WriteFile(filesystem.API(), "/cfg/shikisync.toml", []byte(`
[shikimori]
client_id = "id"
client_secret = "secret"
timeout = 5
`), 0o644), convey.ShouldBeNil)

			convey.So(Setup(), convey.ShouldBeNil)

			cfg := Shikimori()
			convey.So(cfg.ClientID, convey.ShouldEqual, "id")
			convey.So(cfg.ClientSecret, convey.ShouldEqual, "secret")
			convey.So(cfg.BaseURL, convey.ShouldEqual, shikimori.DefaultBaseURL)
			convey.So(cfg.RedirectURI, convey.ShouldEqual, shikimori.DefaultRedirectURI)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(Timeout(), convey.ShouldEqual, 5*time.Second)
		})

		convey.Convey("Environment variables override the file", func() {
			t.Setenv("SHIKISYNC_SHIKIMORI_BASE_URL", "http://localhost:3000")
			convey.So(Setup(), convey.ShouldBeNil)
			convey.So(Shikimori().BaseURL, convey.ShouldEqual, "http://localhost:3000")
		})

		convey.Convey("A malformed file is an error", func() {
			convey.So(afero.WriteFile(filesystem.API(), "/cfg/shikisync.toml", []byte("[shikimori"), 0o644), convey.ShouldBeNil)
			convey.So(Setup(), convey.ShouldNotBeNil)
		})
	})
}

func TestField(t *testing.T) {
	convey.Convey("Given a registered field", t, func() {
		field := Default[key.ShikimoriClientID]

		convey.Convey("Its env name carries the app prefix", func() {
			convey.So(field.Env(), convey.ShouldEqual, "SHIKISYNC_SHIKIMORI_CLIENT_ID")
		})

		convey.Convey("It is rendered for config info", func() {
			convey.So(field.Pretty(), convey.ShouldContainSubstring, key.ShikimoriClientID)
		})

		convey.Convey("Its JSON shows the type", func() {
			data, err := json.Marshal(&field)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"type":"string"`)
		})

		convey.Convey("EnvKeyReplacer turns dots into underscores", func() {
			convey.So(EnvKeyReplacer.Replace("sync.queue_failures"), convey.ShouldEqual, "sync_queue_failures")
		})
	})
}
