package cmd

import (
	"os"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/icon"
	"github.com/anisan-cli/avbridge/key"
	"github.com/anisan-cli/avbridge/scenario"
	"github.com/anisan-cli/avbridge/style"
	"github.com/anisan-cli/avbridge/util"
	"github.com/anisan-cli/avbridge/video"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().BoolP("json", "j", false, "Print adapter events as JSON lines")
	simulateCmd.Flags().StringP("platform", "p", "", "User agent of the simulated platform")
	lo.Must0(viper.BindPFlag(key.PlayerPlatform, simulateCmd.Flags().Lookup("platform")))

	simulateCmd.SetOut(os.Stdout)
}

// simulateCmd plays a scripted session against the simulated decoder.
var simulateCmd = &cobra.Command{
	Use:   "simulate [script]",
	Short: "Play a scripted session against a simulated decoder",
	Long: `Play a scripted session against a simulated decoder and print every adapter event.
Relative script paths that do not exist are looked up in the scripts directory (see "avbridge where --scripts").`,
	Example: "  avbridge simulate subtitles.json --json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		asJSON := lo.Must(cmd.Flags().GetBool("json"))

		script, err := scenario.Load(args[0])
		handleErr(err)

		width := 0
		if w, _, err := util.TerminalSize(); err == nil {
			width = w
		}

		opts := video.DefaultOptions()
		opts.Surface = &scenario.Terminal{Out: cmd.OutOrStdout(), Width: width}
		printer := &scenario.Printer{Out: cmd.OutOrStdout(), JSON: asJSON}

		if !asJSON {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Play), style.Bold("playing"), style.Fg(color.Yellow)(script.Name))
		}

		handleErr(scenario.Run(script, opts, printer.Listen))

		if !asJSON {
			cmd.Printf("%s %s played\n", style.Fg(color.Green)(icon.Get(icon.Success)), util.Quantify(len(script.Steps), "step", "steps"))
		}
	},
}
