// Command seawindow is the one-shot CLI: evaluate the configured spots once
// and print a go/no-go report to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seawindow",
	Short: "Go/no-go window advisor for marine forecast feeds",
	Long: `seawindow evaluates hourly marine forecast feeds against safety rules
(wind, gusts, waves, visibility, thunderstorms) and reports, per spot,
either the earliest valid daylight activity window or the first rule
violation that prevents one.

Quick start:
  seawindow report --dir public                 # evaluate the default spots
  seawindow report --dir public --spots gammarth-port,el-haouaria
  seawindow report --url https://example.org/feeds --format json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
