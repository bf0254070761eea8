/*
Package report presents the outcome of a cleaning run: per-field notice
lines while the engine works, and a final summary combining the engine's
report with the before/after file sizes measured on disk.

Two size numbers are deliberately kept apart: the engine's estimate (sum of
serialized sizes of removed substructures) and the actual file-size delta.
They answer different questions and the summary prints both.

All styling happens here, at the presentation boundary. The rest of the
application never emits escape codes.
*/
package report

import "github.com/sanchez314c/claude-clear/pkg/sanitize"

// Summary combines the sanitization report with the file sizes measured
// independently on disk.
type Summary struct {
	// Report is the engine's account of what it removed.
	Report sanitize.Report

	// OriginalSize is the file size in bytes before any write.
	OriginalSize int64

	// NewSize is the file size in bytes after the final write. Only valid
	// when DryRun is false.
	NewSize int64

	// BackupName is the base name of the backup file, empty on dry runs.
	BackupName string

	// DryRun marks a run that made no changes on disk.
	DryRun bool
}

// Reduction returns the actual on-disk size reduction in bytes and as a
// percentage of the original size. Only meaningful on a real run.
func (s Summary) Reduction() (int64, float64) {
	saved := s.OriginalSize - s.NewSize
	if s.OriginalSize == 0 {
		return saved, 0
	}
	return saved, float64(saved) / float64(s.OriginalSize) * 100
}
