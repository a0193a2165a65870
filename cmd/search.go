package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/query"
	"github.com/shikisync/shikisync/style"
	"github.com/shikisync/shikisync/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	searchCmd.Flags().IntP("limit", "l", 0, "Show at most this many results")
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Shikimori for manga by popularity",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")

		s, err := newSession()
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Searching %s...", icon.Get(icon.Progress), style.Fg(style.Purple)(q)))
		results, err := s.client.Search(cmd.Context(), q)
		erase()
		handleErr(err)

		if len(results) > 0 {
			if err := query.Remember(q, 1); err != nil {
				log.Warn(err)
			}
		}

		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && len(results) > limit {
			results = results[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(results))
			return
		}

		if len(results) == 0 {
			fmt.Printf("%s Nothing found for %s\n", icon.Get(icon.Warn), style.Fg(style.Purple)(q))
			if suggestion, ok := query.Suggest(q).Get(); ok && suggestion != strings.ToLower(q) {
				fmt.Printf("Did you mean %s?\n", style.Fg(style.Yellow)(suggestion))
			}
			return
		}

		width := util.TerminalWidth(80)
		for i, r := range results {
			printSearchResult(i, r, width)
		}
	},
}
