package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/constant"
	"github.com/shikisync/shikisync/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := struct {
			App, Version, Revision, BuiltAt, BuiltBy string
			OS, Arch, UserAgent                      string
		}{
			App:       constant.App,
			Version:   constant.Version,
			Revision:  constant.Revision,
			BuiltAt:   strings.TrimSpace(constant.BuiltAt),
			BuiltBy:   constant.BuiltBy,
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			UserAgent: constant.UserAgent,
		}

		t, err := template.New("version").Funcs(template.FuncMap{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(style.Purple),
		}).Parse(`{{ magenta .App }} {{ bold .Version }}

  {{ faint "Revision" }}   {{ .Revision }}
  {{ faint "Built at" }}   {{ .BuiltAt }}
  {{ faint "Built by" }}   {{ .BuiltBy }}
  {{ faint "Platform" }}   {{ .OS }}/{{ .Arch }}
  {{ faint "Agent" }}      {{ .UserAgent }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), info))
	},
}
