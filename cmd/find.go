package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/progress"
	"github.com/shikisync/shikisync/track"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	findCmd.Flags().Bool("save", true, "Save the found record to the local progress store")
	lo.Must0(viper.BindPFlag(key.SyncSaveOnFind, findCmd.Flags().Lookup("save")))
}

var findCmd = &cobra.Command{
	Use:   "find <manga id or url>",
	Short: "Look up your library entry for a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteID, err := parseRemoteID(args[0])
		handleErr(err)

		s, err := newSession()
		handleErr(err)

		userID, err := s.userID(cmd.Context())
		handleErr(err)

		found, err := s.client.Find(cmd.Context(), &track.Record{RemoteID: remoteID}, userID)
		handleErr(err)

		if found == nil {
			fmt.Printf("%s Manga %d is not in your library\n", icon.Get(icon.Warn), remoteID)
			return
		}

		if viper.GetBool(key.SyncSaveOnFind) {
			handleErr(progress.Save(found))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(found))
			return
		}

		printRecord(found)
	},
}
