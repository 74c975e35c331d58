// Package cmd implements the command-line interface for avbridge.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/avbridge/color"
	"github.com/anisan-cli/avbridge/constant"
	"github.com/anisan-cli/avbridge/icon"
	"github.com/anisan-cli/avbridge/key"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))
}

// rootCmd defines the entry point for the avbridge application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Bridge a callback-driven hardware decoder to a property/command/event player interface",
	Long: style.New().Bold(true).Foreground(color.HiPurple).Render(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Drive a hardware media decoder through observable properties, commands and events"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
