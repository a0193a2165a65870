// Package cmd implements the shikisync command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/constant"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/shikimori"
	"github.com/shikisync/shikisync/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant (emoji, kaomoji, plain, squares, nerd)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))
}

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Keep local manga progress in sync with Shikimori",
	Long: style.Bold(constant.App) + "\n" +
		style.New().Italic(true).Foreground(style.Purple).Render("    - keep local manga progress in sync with your Shikimori library"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}
		handleErr(cmd.Help())
	},
}

// Execute runs the CLI. Interrupting cancels in-flight requests.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))

	if hint := hintFor(err); hint != "" {
		_, _ = fmt.Fprintln(os.Stderr, style.Faint(hint))
	}
	os.Exit(1)
}

func hintFor(err error) string {
	var (
		authErr   *shikimori.AuthError
		transport *shikimori.TransportError
	)

	switch {
	case errors.Is(err, shikimori.ErrMissingCredentials):
		return "Set shikimori.client_id and shikimori.client_secret with `shikisync config set`"
	case errors.Is(err, shikimori.ErrNotAuthenticated), errors.As(err, &authErr):
		return "Run `shikisync auth login` to start a new session"
	case errors.Is(err, shikimori.ErrAmbiguousEntry):
		return "Remove the duplicate entries on the website, then try again"
	case errors.As(err, &transport) && transport.StatusCode == 0:
		return "Shikimori could not be reached, check your connection"
	default:
		return ""
	}
}
