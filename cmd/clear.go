package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/icon"
	"github.com/anisan-cli/avbridge/style"
	"github.com/anisan-cli/avbridge/util"
	"github.com/anisan-cli/avbridge/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	flag     string
	short    string
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", "c", where.Cache},
	{"tracks data cache", "tracks-data", "t", where.TracksData},
	{"logs directory", "logs", "l", where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.SetOut(os.Stdout)

	for _, target := range clearTargets {
		clearCmd.Flags().BoolP(target.flag, target.short, false, "clear "+target.name)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached track metadata and logs",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			name := util.Capitalize(target.name)
			erase := util.PrintErasable(icon.Get(icon.Progress) + " Clearing " + name + "...")
			err := util.Delete(target.location())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}

			cmd.Printf("%s %s cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)), name)
		}
	},
}
