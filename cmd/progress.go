package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/progress"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.AddCommand(progressListCmd, progressShowCmd, progressRemoveCmd, progressSchemaCmd)
	progressListCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Manage the local progress store",
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally tracked manga",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := progress.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(records))
			return
		}

		if len(records) == 0 {
			fmt.Printf("%s Nothing tracked yet\n", icon.Get(icon.Warn))
			return
		}

		for i, record := range records {
			printRecord(record)
			if i < len(records)-1 {
				fmt.Println()
			}
		}
	},
}

var progressShowCmd = &cobra.Command{
	Use:   "show <manga id, url or title>",
	Short: "Show a tracked manga, matching titles approximately",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if remoteID, err := parseRemoteID(args[0]); err == nil {
			stored, err := progress.Get(remoteID)
			handleErr(err)
			if record, ok := stored.Get(); ok {
				printRecord(record)
				return
			}
		}

		closest, err := progress.FindByTitle(args[0])
		handleErr(err)

		record, ok := closest.Get()
		if !ok {
			fmt.Printf("%s Nothing tracked yet\n", icon.Get(icon.Warn))
			return
		}
		printRecord(record)
	},
}

var progressRemoveCmd = &cobra.Command{
	Use:   "remove <manga id or url>",
	Short: "Forget a manga locally. The Shikimori entry is kept",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		remoteID, err := parseRemoteID(args[0])
		handleErr(err)

		handleErr(progress.Remove(remoteID))
		fmt.Printf("%s Removed %d\n", icon.Get(icon.Success), remoteID)
	},
}

var progressSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the progress file",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(progress.Schema()))
	},
}
