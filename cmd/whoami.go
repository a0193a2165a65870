package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the Shikimori account of the session",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession()
		handleErr(err)

		user, err := s.user(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(map[string]any{
				"id":       user.ID,
				"nickname": user.Nickname,
			}))
			return
		}

		fmt.Printf("%s %s\n", style.Fg(style.Purple)(user.Nickname), style.Faint(fmt.Sprintf("#%d", user.ID)))
	},
}
