package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/internal/sync"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/log"
	"github.com/shikisync/shikisync/progress"
	"github.com/shikisync/shikisync/shikimori"
	"github.com/shikisync/shikisync/track"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Float64P("chapter", "c", 0, "Last chapter read")
	syncCmd.Flags().Float64P("score", "s", 0, "Score from 0 to 10")
	syncCmd.Flags().StringP("status", "S", "", "Reading status")
	lo.Must0(syncCmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return track.StatusNames(), cobra.ShellCompDirectiveNoFileComp
	}))

	syncCmd.Flags().Bool("queue", true, "Queue the update when Shikimori cannot be reached")
	lo.Must0(viper.BindPFlag(key.SyncQueueFailures, syncCmd.Flags().Lookup("queue")))
}

var syncCmd = &cobra.Command{
	Use:     "sync <manga id or url>",
	Aliases: []string{"update"},
	Short:   "Update local progress and push it to your Shikimori library",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteID, err := parseRemoteID(args[0])
		handleErr(err)

		stored, err := progress.Get(remoteID)
		handleErr(err)

		record := stored.OrElse(&track.Record{RemoteID: remoteID, Status: track.Reading})

		flags := cmd.Flags()
		if flags.Changed("chapter") {
			chapter := lo.Must(flags.GetFloat64("chapter"))
			if chapter < 0 {
				handleErr(errors.New("chapter cannot be negative"))
			}
			record.LastChapterRead = chapter
		}
		if flags.Changed("score") {
			score := lo.Must(flags.GetFloat64("score"))
			if score < 0 || score > 10 {
				handleErr(errors.New("score must be between 0 and 10"))
			}
			record.Score = score
		}
		if flags.Changed("status") {
			status, err := track.ParseStatus(lo.Must(flags.GetString("status")))
			handleErr(err)
			record.Status = status
		}

		handleErr(progress.Save(record))

		s, err := newSession()
		handleErr(err)

		handleErr(pushUpdate(cmd.Context(), s, record))
	},
}

func pushUpdate(ctx context.Context, s *session, record *track.Record) error {
	userID, err := s.userID(ctx)
	if err == nil {
		_, err = s.client.AddOrUpdate(ctx, record, userID)
	}

	if queueable(err) {
		if err := sync.Enqueue(sync.ActionUpdate, record, userID); err != nil {
			return err
		}
		fmt.Printf("%s Shikimori is unreachable, queued %s\n", icon.Get(icon.Queue), record)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := sync.Discard(record.RemoteID); err != nil {
		log.Warnf("sync: discarding queued mutations of %d: %s", record.RemoteID, err)
	}

	if err := progress.Save(record); err != nil {
		return err
	}

	fmt.Printf("%s Synced %s\n", icon.Get(icon.Success), record)
	printRecord(record)
	return nil
}

// queueable reports failures worth retrying later: no response or a server-side error.
func queueable(err error) bool {
	if err == nil || !viper.GetBool(key.SyncQueueFailures) {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var transport *shikimori.TransportError
	if !errors.As(err, &transport) {
		return false
	}
	return transport.StatusCode == 0 || transport.StatusCode >= 500
}
