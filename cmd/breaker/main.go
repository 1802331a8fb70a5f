// breaker is a terminal breakout game.
//
// Usage:
//
//	breaker play [style]     - Play one round set (edges, momentum or unaltered)
//	breaker menu             - Pick a control style interactively
//	breaker list             - List the control styles
//	breaker scores [style]   - Show high scores
//	breaker serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Render frames per second (default: 60)
//	--tick-rate <rate>    - Physics ticks per second (default: 60)
//	--db <path>           - Set database path (default: ~/.breaker/scores.db)
//	--config <path>       - Custom breakout.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--control <style>     - edges, momentum or unaltered
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaker/internal/games/breakout"
)

var (
	// Global flags
	flagFPS        int
	flagTickRate   int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagControl    string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Breaker - break bricks in your terminal",
	Long: `Breaker is a terminal breakout game with three paddle control styles.

Available commands:
  play     - Play directly with one control style
  menu     - Interactive control style picker
  list     - Show all control styles
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  breaker play
  breaker play momentum --difficulty hard
  breaker menu
  breaker serve --ssh :2222
  breaker scores unaltered`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Render frames per second")
	pf.IntVar(&flagTickRate, "tick-rate", 60, "Physics ticks per second")
	pf.StringVar(&flagDBPath, "db", "~/.breaker/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom breakout.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagControl, "control", "", "Control style: edges, momentum, unaltered (default from config)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies the global flags before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	breakout.SetLogger(logger)
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)

	if flagDifficulty != "" && !validPreset(flagDifficulty) {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	logger.Debug("starting", "command", cmd.Name(), "tick_rate", flagTickRate, "fps", flagFPS)
	return nil
}
