package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/shikisync/shikisync/config"
	"github.com/shikisync/shikisync/icon"
	"github.com/shikisync/shikisync/key"
	"github.com/shikisync/shikisync/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

func done(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(style.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print fields as JSON")
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing config file")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Shikimori credentials, sync behaviour and output settings",
	Long: `Settings live in shikisync.toml under the config directory (see "shikisync where").
Each key can also be set with an environment variable, e.g. SHIKISYNC_SHIKIMORI_CLIENT_ID.`,
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe keys with their current and default values",
	Example:           "  shikisync config info shikimori.client_id sync.queue_failures",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		names := args
		if len(names) == 0 {
			names = config.Keys()
		}

		fields := lo.Map(names, func(name string, _ int) config.Field {
			field, err := config.Lookup(name)
			handleErr(err)
			return field
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i := range fields {
			if i > 0 {
				fmt.Fprint(cmd.OutOrStdout(), "\n\n")
			}
			fmt.Fprint(cmd.OutOrStdout(), fields[i].Pretty())
		}
		fmt.Fprintln(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a key",
	Example:           "  shikisync config get shikimori.base_url",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.Lookup(args[0])
		handleErr(err)
		fmt.Fprintln(cmd.OutOrStdout(), viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key in the config file",
	Example: `  shikisync config set shikimori.client_id <id>
  shikisync config set shikimori.timeout 30
  shikisync config set sync.queue_failures false`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		value, err := config.Set(args[0], args[1])
		handleErr(err)

		shown := fmt.Sprint(value)
		if args[0] == key.ShikimoriClientSecret {
			shown = "********"
		}
		done("%s = %s", style.Fg(style.Purple)(args[0]), style.Fg(style.Yellow)(shown))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore keys to their defaults",
	Example:           "  shikisync config reset logs.level\n  shikisync config reset --all",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(errors.New("pass keys to reset or --all, not both"))
		}

		handleErr(config.Reset(args...))
		if all {
			done("reset every key")
			return
		}
		done("reset %s", style.Fg(style.Purple)(fmt.Sprint(args)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the effective configuration to shikisync.toml",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(config.Write(lo.Must(cmd.Flags().GetBool("force"))))
		done("wrote %s", config.Path())
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete shikisync.toml",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(config.Delete())
		done("deleted %s", config.Path())
	},
}
