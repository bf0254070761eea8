/*
Package app provides the application container and orchestration for
claude-clear. It wires configuration, filesystem access, logging and
presentation together and runs the cleaning pipeline:

	load -> confirm (small files) -> backup -> sanitize -> atomic write -> summary

The pipeline is fully synchronous. The backup is always written before the
destructive write, and the write itself is staged through a temporary file
and rename, so every failure before the final rename leaves the original
file intact. There is no locking on the configuration file: two concurrent
invocations race, which is an accepted limitation of the tool.

Usage:

	application := app.New(cfg, app.Deps{})
	if err := application.Clean(app.CleanOptions{DryRun: false}); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/sanchez314c/claude-clear/internal/config"
	"github.com/sanchez314c/claude-clear/pkg/configfile"
	"github.com/sanchez314c/claude-clear/pkg/logger"
	"github.com/sanchez314c/claude-clear/pkg/report"
	"github.com/sanchez314c/claude-clear/pkg/sanitize"
)

// ErrAborted is returned when the user declines the confirmation prompt.
// It is a clean no-op, not a failure of the pipeline.
var ErrAborted = errors.New("cleanup aborted by user")

// SmallFileSize is the threshold (100 KiB) below which a real run asks for
// confirmation before cleaning.
const SmallFileSize = 100 * 1024

// largeConfigSize is the size above which the status command flags the
// configuration file as worth cleaning.
const largeConfigSize = 1024 * 1024

// recentBackupCount is how many backups the status command lists.
const recentBackupCount = 5

// CleanOptions controls a single cleaning run.
type CleanOptions struct {
	// DryRun computes and reports the effect without mutating anything.
	DryRun bool

	// AssumeYes skips the small-file confirmation prompt.
	AssumeYes bool
}

// Deps holds the application's injectable collaborators. Zero-valued
// fields are given production defaults by New.
type Deps struct {
	Fs       afero.Fs
	Log      logger.Logger
	Confirm  Confirmer
	Renderer *report.Renderer
	Clock    func() time.Time
}

// App is the application container.
type App struct {
	config   *config.Config
	fs       afero.Fs
	log      logger.Logger
	confirm  Confirmer
	renderer *report.Renderer
	clock    func() time.Time
}

// New creates a new application instance.
func New(cfg *config.Config, deps Deps) *App {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Log == nil {
		deps.Log = logger.NewLogger(logger.Config{Verbosity: cfg.Verbose})
	}
	if deps.Renderer == nil {
		deps.Renderer = report.NewRenderer(os.Stdout, !cfg.NoColor)
	}
	if deps.Confirm == nil {
		deps.Confirm = &TerminalConfirmer{In: os.Stdin, Out: os.Stdout}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	return &App{
		config:   cfg,
		fs:       deps.Fs,
		log:      deps.Log,
		confirm:  deps.Confirm,
		renderer: deps.Renderer,
		clock:    deps.Clock,
	}
}

// Clean runs the full cleaning pipeline against the configured path.
func (a *App) Clean(opts CleanOptions) error {
	log := a.log.WithFields(logger.Fields{
		"path":   a.config.Path,
		"dryRun": opts.DryRun,
	})
	log.Info("Starting cleanup")

	doc, err := configfile.Load(a.fs, a.config.Path)
	if err != nil {
		log.WithFields(logger.Fields{"error": err.Error()}).Error("Failed to load configuration")
		return err
	}

	a.renderer.FileSize(doc.Size)

	if doc.Size < SmallFileSize && !opts.DryRun {
		a.renderer.SmallFileWarning(doc.Size)
		if !opts.AssumeYes {
			ok, err := a.confirm.Confirm("Clean anyway? (y/N): ")
			if err != nil {
				return err
			}
			if !ok {
				log.Info("Cleanup declined by user")
				a.renderer.Cancelled()
				return ErrAborted
			}
		}
	}

	if opts.DryRun {
		a.renderer.DryRunNote()
	}

	var backupName string
	if !opts.DryRun {
		now := a.clock()
		backupName = filepath.Base(configfile.BackupPath(a.config.Path, now))
		a.renderer.CreatingBackup(backupName)

		backupPath, err := configfile.WriteBackup(a.fs, doc, now)
		if err != nil {
			log.WithFields(logger.Fields{"error": err.Error()}).Error("Backup failed, aborting")
			return err
		}
		log.WithFields(logger.Fields{"backup": backupPath}).Debug("Backup written")
	}

	engine := sanitize.NewEngine(sanitize.Config{DryRun: opts.DryRun}, a.log, a.renderer.Notice)
	cleaned, rep, err := engine.Run(doc.Raw)
	if err != nil {
		return err
	}

	if rep.Empty() {
		a.renderer.NothingToClean()
	}

	summary := report.Summary{
		Report:       rep,
		OriginalSize: doc.Size,
		BackupName:   backupName,
		DryRun:       opts.DryRun,
	}

	if !opts.DryRun {
		a.renderer.Writing()
		if err := configfile.Save(a.fs, a.config.Path, cleaned); err != nil {
			log.WithFields(logger.Fields{"error": err.Error()}).Error("Write failed")
			return err
		}

		info, err := a.fs.Stat(a.config.Path)
		if err != nil {
			return err
		}
		summary.NewSize = info.Size()
	}

	a.renderer.Summary(summary)

	log.WithFields(logger.Fields{
		"projectsCleared": rep.ProjectsCleared,
		"topLevelCleared": rep.TopLevelCleared,
		"bytesFreed":      rep.BytesFreed,
	}).Info("Cleanup complete")

	return nil
}

// Status reports the state of the configuration file and recent backups.
func (a *App) Status() error {
	info, err := a.fs.Stat(a.config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			a.renderer.Warn("⚠ Claude configuration not found at %s", a.config.Path)
			return nil
		}
		return err
	}

	if info.Size() > largeConfigSize {
		a.renderer.Warn("⚠ Configuration file is large: %s", report.MB(info.Size()))
		a.renderer.Detail("   Run 'claude-clear' to clean it")
	} else {
		a.renderer.Good("✓ Configuration file is clean: %s", report.KB(info.Size()))
	}

	backups, err := configfile.ListBackups(a.fs, a.config.Path)
	if err != nil {
		return err
	}

	a.renderer.Head("\n📋 Recent backups:")
	if len(backups) == 0 {
		a.renderer.Detail("   No backups found")
		return nil
	}

	for i, b := range backups {
		if i == recentBackupCount {
			a.renderer.Detail("   ... and %d more", len(backups)-recentBackupCount)
			break
		}
		a.renderer.Detail("   %s  %s", filepath.Base(b.Path), report.KB(b.Size))
	}

	return nil
}

// Backups lists the backup files next to the configuration file and, when
// prune is set, removes all but the newest keep of them.
func (a *App) Backups(prune bool, keep int) error {
	backups, err := configfile.ListBackups(a.fs, a.config.Path)
	if err != nil {
		return err
	}

	a.renderer.Head("📋 Backups for %s:", a.config.Path)
	if len(backups) == 0 {
		a.renderer.Detail("   No backups found")
		return nil
	}

	for _, b := range backups {
		a.renderer.Detail("   %s  %s", filepath.Base(b.Path), report.KB(b.Size))
	}

	if !prune {
		return nil
	}

	deleted, err := configfile.PruneBackups(a.fs, a.config.Path, keep)
	if err != nil {
		return err
	}

	for _, path := range deleted {
		a.renderer.Detail("   Deleted: %s", filepath.Base(path))
	}
	a.renderer.Good("✓ Pruned %d backup(s)", len(deleted))

	a.log.WithFields(logger.Fields{
		"deleted": len(deleted),
		"kept":    len(backups) - len(deleted),
	}).Info("Backups pruned")

	return nil
}
