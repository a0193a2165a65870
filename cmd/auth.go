package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/config"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/open"
	"github.com/shikisync/shikisync/style"
	"github.com/shikisync/shikisync/util"
	"github.com/shikisync/shikisync/where"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)

	authLoginCmd.Flags().StringP("code", "c", "", "Authorization code copied from the redirect")
	authLoginCmd.Flags().Bool("no-browser", false, "Print the authorization URL without opening it")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Shikimori session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize shikisync with your Shikimori account",
	Long: `Open the Shikimori authorization page and exchange the returned code for a session.
The redirect goes to a private-scheme URI, so copy the "code" parameter from it and paste it here.
The session is stored in the system keyring.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Shikimori()
		handleErr(cfg.Validate())

		s, err := newSession()
		handleErr(err)

		code := lo.Must(cmd.Flags().GetString("code"))
		if code == "" {
			url := s.auth.AuthURL()
			fmt.Printf("%s %s\n", icon.Get(icon.Link), style.Underline(url))

			if !lo.Must(cmd.Flags().GetBool("no-browser")) {
				if err := open.Start(url); err != nil {
					log.Warn("open browser: " + err.Error())
				}
			}

			handleErr(survey.AskOne(&survey.Input{
				Message: "Authorization code",
				Help:    "The value of the code parameter in the redirect URI",
			}, &code, survey.WithValidator(survey.Required)))
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Exchanging code...", icon.Get(icon.Progress)))
		_, err = s.auth.ExchangeCode(cmd.Context(), extractCode(code))
		erase()
		handleErr(err)

		_ = util.Delete(where.Session())

		user, err := s.user(cmd.Context())
		handleErr(err)

		fmt.Printf("%s Logged in as %s\n", icon.Get(icon.Success), style.Fg(style.Purple)(user.Nickname))
	},
}

// extractCode accepts either the bare code or the full redirect URI.
func extractCode(input string) string {
	input = strings.TrimSpace(input)
	if _, after, ok := strings.Cut(input, "code="); ok {
		code, _, _ := strings.Cut(after, "&")
		return code
	}
	return input
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the Shikimori session",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession()
		if err != nil {
			// A corrupted token still has to be removable.
			log.Warn(err)
		}

		if s != nil {
			handleErr(s.auth.Logout())
		}
		_ = util.Delete(where.Session())

		fmt.Printf("%s Logged out\n", icon.Get(icon.Success))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a session is stored and when it expires",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession()
		handleErr(err)

		token := s.auth.Token()
		if token == nil {
			fmt.Printf("%s Not logged in\n", icon.Get(icon.Warn))
			return
		}

		switch {
		case token.Expiry.IsZero():
			fmt.Printf("%s Logged in\n", icon.Get(icon.Success))
		case token.Expiry.Before(time.Now()):
			fmt.Printf("%s Access token expired %s ago, it will be refreshed on the next call\n",
				icon.Get(icon.Warn), time.Since(token.Expiry).Round(time.Minute))
		default:
			fmt.Printf("%s Logged in, access token valid for %s\n",
				icon.Get(icon.Success), time.Until(token.Expiry).Round(time.Minute))
		}

		if token.RefreshToken == "" {
			handleErr(errors.New("the stored session cannot be refreshed"))
		}
	},
}
