package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sanchez314c/claude-clear/cmd/claude-clear/app"
	"github.com/sanchez314c/claude-clear/internal/config"
	"github.com/sanchez314c/claude-clear/internal/version"
	"github.com/sanchez314c/claude-clear/pkg/logger"
	"github.com/sanchez314c/claude-clear/pkg/report"
)

var (
	// Global flags
	cfgPath   string
	verbosity int
	noColor   bool

	// Clean command flags
	dryRun    bool
	assumeYes bool

	// Backups command flags
	prune bool
	keep  int

	// Populated in PersistentPreRunE
	cfg config.Config
	log logger.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, app.ErrAborted) {
			// Already reported by the renderer; a decline is not a crash
			// but still maps to a non-zero exit.
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "claude-clear [flags]",
	Short: "Clean Claude Code's bloated configuration file",
	Long: `claude-clear v` + version.Version + `
========================================

Shrinks ~/.claude.json by clearing accumulated chat and history fields
while leaving every other setting untouched. A timestamped backup is
written next to the original before any change.`,
	Example: `  claude-clear              # Run cleanup
  claude-clear --dry-run    # Preview what would be cleaned
  claude-clear status       # Show configuration file state
  claude-clear backups      # List backups
  claude-clear backups --prune --keep 3`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		// Command line flags override the environment.
		if cmd.Flags().Changed("path") {
			cfg.Path = cfgPath
		}
		if noColor {
			cfg.NoColor = true
		}
		if verbosity > 0 {
			cfg.Verbose = verbosity
		}

		log = logger.NewLogger(logger.Config{
			Verbosity: cfg.Verbose,
			Output:    os.Stderr,
		})

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		printBanner()

		application := app.New(&cfg, app.Deps{Log: log})
		return application.Clean(app.CleanOptions{
			DryRun:    dryRun,
			AssumeYes: assumeYes,
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configuration file state and recent backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		printBanner()

		application := app.New(&cfg, app.Deps{Log: log})
		return application.Status()
	},
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List claude-clear backup files",
	Long: `Lists the timestamped backup files written next to the configuration
file. With --prune, all but the newest backups are deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("keep") {
			keep = cfg.KeepBackups
		}

		application := app.New(&cfg, app.Deps{Log: log})
		return application.Backups(prune, keep)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flag("full").Value.String() == "true" {
			fmt.Print(version.FullVersion())
		} else {
			fmt.Println(version.Version)
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgPath, "path", "", "configuration file path (default ~/.claude.json)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Clean command flags
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be cleaned without making changes")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt for small files")

	// Backups command flags
	backupsCmd.Flags().BoolVar(&prune, "prune", false, "delete all but the newest backups")
	backupsCmd.Flags().IntVar(&keep, "keep", config.DefaultKeepBackups, "number of backups to keep when pruning")

	// Version command flags
	versionCmd.Flags().BoolP("full", "f", false, "show full version information")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(backupsCmd)
	rootCmd.AddCommand(versionCmd)
}

// printBanner shows the banner on interactive runs only.
func printBanner() {
	if cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}
	report.NewRenderer(os.Stdout, true).Banner(version.Version)
}
