package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/internal/sync"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/progress"
	"github.com/shikisync/shikisync/track"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var deleteCmd = &cobra.Command{
	Use:     "delete <manga id or url>",
	Aliases: []string{"rm"},
	Short:   "Remove a manga from your Shikimori library",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteID, err := parseRemoteID(args[0])
		handleErr(err)

		s, err := newSession()
		handleErr(err)

		stored, err := progress.Get(remoteID)
		handleErr(err)

		record, ok := stored.Get()
		if !ok || !record.Synced() {
			userID, err := s.userID(cmd.Context())
			handleErr(err)

			record, err = s.client.Find(cmd.Context(), &track.Record{RemoteID: remoteID}, userID)
			handleErr(err)

			if record == nil {
				fmt.Printf("%s Manga %d is not in your library\n", icon.Get(icon.Warn), remoteID)
				return
			}
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirm bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete %s from your library?", record),
			}, &confirm))
			if !confirm {
				return
			}
		}

		err = s.client.Delete(cmd.Context(), record)
		if queueable(err) {
			handleErr(sync.Enqueue(sync.ActionDelete, record, 0))
			fmt.Printf("%s Shikimori is unreachable, queued deletion of %s\n", icon.Get(icon.Queue), record)
			return
		}
		handleErr(err)

		if _, err := sync.Discard(remoteID); err != nil {
			log.Warnf("sync: discarding queued mutations of %d: %s", remoteID, err)
		}
		handleErr(progress.Unlink(remoteID))
		fmt.Printf("%s Deleted %s\n", icon.Get(icon.Success), record)
	},
}
