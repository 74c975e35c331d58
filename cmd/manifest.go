package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/style"
	"github.com/anisan-cli/avbridge/video"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	manifestCmd.SetOut(os.Stdout)
}

// manifestCmd prints the properties, commands and events the adapter supports.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Display the properties, commands and events supported by the adapter",
	Run: func(cmd *cobra.Command, args []string) {
		m := video.Describe()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(m))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		list := func(items []string) string {
			return style.Fg(color.Yellow)(strings.Join(items, ", "))
		}

		cmd.Println(header(m.Name))
		cmd.Printf("%s %v\n", style.Faint("external"), m.External)
		cmd.Printf("%s %s\n", style.Faint("props   "), list(m.Props))
		cmd.Printf("%s %s\n", style.Faint("commands"), list(lo.Map(m.Commands, func(c video.Command, _ int) string { return string(c) })))
		cmd.Printf("%s %s\n", style.Faint("events  "), list(lo.Map(m.Events, func(e video.EventKind, _ int) string { return string(e) })))
	},
}
