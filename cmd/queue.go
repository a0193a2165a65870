package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/internal/sync"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/progress"
	"github.com/shikisync/shikisync/style"
	"github.com/shikisync/shikisync/track"
	"github.com/shikisync/shikisync/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.AddCommand(queueListCmd, queueFlushCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect and replay updates that could not reach Shikimori",
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued updates",
	Run: func(cmd *cobra.Command, args []string) {
		pending, err := sync.Pending()
		handleErr(err)

		if len(pending) == 0 {
			fmt.Printf("%s Queue is empty\n", icon.Get(icon.Success))
			return
		}

		for _, m := range pending {
			fmt.Printf("%s %s %s %s\n",
				style.Faint(time.Unix(m.Timestamp, 0).Format(time.DateTime)),
				style.Fg(style.Yellow)(fmt.Sprintf("%-6s", m.Action)),
				m.Record.String(),
				style.Faint(formatChapters(m.Record.LastChapterRead, m.Record.TotalChapters)),
			)
		}
	},
}

var queueFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Replay queued updates",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := newSession()
		handleErr(err)

		userID, err := s.userID(cmd.Context())
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Replaying queue...", icon.Get(icon.Progress)))
		result, err := sync.Flush(cmd.Context(), &sessionTracker{session: s, fallbackUser: userID})
		erase()
		handleErr(err)

		for _, m := range result.Applied {
			record := m.Record
			switch m.Action {
			case sync.ActionUpdate:
				err = progress.Save(&record)
			case sync.ActionDelete:
				err = progress.Unlink(record.RemoteID)
			}
			if err != nil {
				log.Warn(err)
			}
		}

		fmt.Printf("%s %s applied\n", icon.Get(icon.Success), util.Quantify(len(result.Applied), "update", "updates"))
		if len(result.Failed) > 0 {
			fmt.Printf("%s %s still queued\n", icon.Get(icon.Queue), util.Quantify(len(result.Failed), "update", "updates"))
			for _, err := range result.Errors {
				fmt.Println(style.Faint("  " + err.Error()))
			}
		}
	},
}

// sessionTracker replays against the current account. Mutations queued before the user id was known carry 0.
type sessionTracker struct {
	*session
	fallbackUser int
}

func (t *sessionTracker) AddOrUpdate(ctx context.Context, record *track.Record, userID int) (*track.Record, error) {
	if userID == 0 {
		userID = t.fallbackUser
	}
	return t.client.AddOrUpdate(ctx, record, userID)
}

func (t *sessionTracker) Delete(ctx context.Context, record *track.Record) error {
	return t.client.Delete(ctx, record)
}
