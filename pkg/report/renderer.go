package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sanchez314c/claude-clear/pkg/sanitize"
)

// idDisplayLimit is the number of project-id characters shown in a notice
// line before truncation.
const idDisplayLimit = 30

// Renderer writes human-readable output for a cleaning run.
type Renderer struct {
	out io.Writer

	purple *color.Color
	white  *color.Color
	gray   *color.Color
	yellow *color.Color
	cyan   *color.Color
	green  *color.Color
	blue   *color.Color
}

// NewRenderer creates a Renderer writing to out. When colors is false all
// styling is disabled.
func NewRenderer(out io.Writer, colors bool) *Renderer {
	r := &Renderer{
		out:    out,
		purple: color.New(color.FgMagenta),
		white:  color.New(color.FgWhite, color.Bold),
		gray:   color.New(color.FgHiBlack),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		blue:   color.New(color.FgBlue),
	}

	if !colors {
		for _, c := range []*color.Color{r.purple, r.white, r.gray, r.yellow, r.cyan, r.green, r.blue} {
			c.DisableColor()
		}
	}

	return r
}

// Banner prints the application banner.
func (r *Renderer) Banner(version string) {
	banner := `╔══════════════════════════════════════════════════════════════╗
║                   🧹  Claude Clear  v` + version + `                     ║
║        Clean Claude Code's bloated configuration file        ║
╚══════════════════════════════════════════════════════════════╝`
	r.purple.Fprintln(r.out, banner)
	fmt.Fprintln(r.out)
}

// FileSize reports the current size of the configuration file.
func (r *Renderer) FileSize(size int64) {
	r.white.Fprintf(r.out, "📁 Current file size: %s\n", MB(size))
}

// SmallFileWarning notes that the file is already below the confirmation
// threshold.
func (r *Renderer) SmallFileWarning(size int64) {
	r.yellow.Fprintf(r.out, "⚠ File is already small (%s)\n", KB(size))
}

// DryRunNote announces that no changes will be made.
func (r *Renderer) DryRunNote() {
	r.cyan.Fprintln(r.out, "🔍 Dry run mode - no changes will be made")
}

// CreatingBackup reports the backup destination before the snapshot is
// written.
func (r *Renderer) CreatingBackup(name string) {
	r.blue.Fprintf(r.out, "💾 Creating backup: %s\n", name)
}

// Writing reports that the cleaned file is being persisted.
func (r *Renderer) Writing() {
	r.gray.Fprintln(r.out, "✍️  Writing cleaned file...")
}

// Notice prints a single per-field notice line. Large project histories are
// highlighted; array-valued fields include their entry count.
func (r *Renderer) Notice(n sanitize.Notice) {
	switch {
	case n.Project == "":
		r.gray.Fprintf(r.out, "  🧹 %s (%s)\n", n.Field, KB(n.Size))
	case n.Field == sanitize.HistoryField && n.Large:
		r.yellow.Fprintf(r.out, "  🧹 Large history: %s (%s)\n", truncateID(n.Project), MB(n.Size))
	case n.Field == sanitize.HistoryField:
		r.gray.Fprintf(r.out, "  🧹 History: %s (%d entries)\n", truncateID(n.Project), n.Entries)
	default:
		r.gray.Fprintf(r.out, "  🧹 %s: %s\n", n.Field, truncateID(n.Project))
	}
}

// Summary prints the final report block.
func (r *Renderer) Summary(s Summary) {
	fmt.Fprintln(r.out)
	r.white.Fprintln(r.out, "📊 Summary:")
	r.cyan.Fprintf(r.out, "   - %d project histories cleared\n", s.Report.ProjectsCleared)
	if s.Report.TopLevelCleared > 0 {
		r.cyan.Fprintf(r.out, "   - %d top-level chat fields cleared\n", s.Report.TopLevelCleared)
	}
	r.cyan.Fprintf(r.out, "   - Total chat data: %s (estimated)\n", MB(s.Report.BytesFreed))

	if s.DryRun {
		fmt.Fprintln(r.out)
		r.yellow.Fprintf(r.out, "💡 Dry run complete. Would reduce by approximately %s. Run without --dry-run to actually clean.\n", MB(s.Report.BytesFreed))
		return
	}

	saved, pct := s.Reduction()
	fmt.Fprintln(r.out)
	r.green.Fprintln(r.out, "✨ Success!")
	r.white.Fprintf(r.out, "   Original: %s\n", MB(s.OriginalSize))
	r.white.Fprintf(r.out, "   New size: %s\n", KB(s.NewSize))
	r.green.Fprintf(r.out, "   Reduced by: %.1f%% (%s actual)\n", pct, MB(saved))
	fmt.Fprintln(r.out)
	r.blue.Fprintf(r.out, "💡 Backup saved to: %s\n", s.BackupName)
}

// NothingToClean reports that the engine found no chat data.
func (r *Renderer) NothingToClean() {
	r.green.Fprintln(r.out, "✨ Nothing to clean - no chat data found")
}

// Cancelled reports a user abort.
func (r *Renderer) Cancelled() {
	r.gray.Fprintln(r.out, "Cleanup cancelled")
}

// Head prints a section heading, used by the status and backups commands.
func (r *Renderer) Head(format string, args ...interface{}) {
	r.white.Fprintf(r.out, format+"\n", args...)
}

// Good prints a positive status line.
func (r *Renderer) Good(format string, args ...interface{}) {
	r.green.Fprintf(r.out, format+"\n", args...)
}

// Warn prints a warning status line.
func (r *Renderer) Warn(format string, args ...interface{}) {
	r.yellow.Fprintf(r.out, format+"\n", args...)
}

// Detail prints a secondary detail line.
func (r *Renderer) Detail(format string, args ...interface{}) {
	r.gray.Fprintf(r.out, format+"\n", args...)
}

func truncateID(id string) string {
	if len(id) <= idDisplayLimit {
		return id
	}
	return id[:idDisplayLimit] + "..."
}

// MB formats a byte count in megabytes, matching the summary output.
func MB(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
}

// KB formats a byte count in kilobytes.
func KB(n int64) string {
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
