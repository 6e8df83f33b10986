package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "drmind",
	Short: "Dr. Mind is a mood journal that answers every entry with comfort and suggestions.",
	Long: `Dr. Mind records a mood and a journal entry, scores its sentiment and
replies with a comfort message and three suggestions, asking hosted text
models first and falling back to built-in rules when none answer.

Running drmind without a subcommand starts the web server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./drmind.yaml)")

	rootCmd.AddCommand(serveCmd, exportCmd, moodsCmd, respondCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
