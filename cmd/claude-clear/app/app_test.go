package app

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/sanchez314c/claude-clear/internal/config"
	"github.com/sanchez314c/claude-clear/pkg/configfile"
	"github.com/sanchez314c/claude-clear/pkg/logger"
	"github.com/sanchez314c/claude-clear/pkg/report"
)

const configPath = "/home/user/.claude.json"

var fixedTime = time.Date(2025, 8, 30, 14, 22, 33, 0, time.UTC)

const sampleConfig = `{"projects":{"p1":{"history":[1,2,3],"messages":["hi"],"allowedTools":["Bash"]}},"globalHistory":[9,9],"other":"keep"}`

type harness struct {
	app *App
	fs  afero.Fs
	out *bytes.Buffer
}

func newHarness(t *testing.T, content string, confirm Confirmer) *harness {
	t.Helper()

	fs := afero.NewMemMapFs()
	if content != "" {
		require.NoError(t, afero.WriteFile(fs, configPath, []byte(content), 0o644))
	}

	var out bytes.Buffer
	cfg := &config.Config{Path: configPath, KeepBackups: 2}

	application := New(cfg, Deps{
		Fs:       fs,
		Log:      logger.NewLogger(logger.Config{Output: io.Discard}),
		Confirm:  confirm,
		Renderer: report.NewRenderer(&out, false),
		Clock:    func() time.Time { return fixedTime },
	})

	return &harness{app: application, fs: fs, out: &out}
}

func (h *harness) readConfig(t *testing.T) string {
	t.Helper()
	raw, err := afero.ReadFile(h.fs, configPath)
	require.NoError(t, err)
	return string(raw)
}

func TestCleanFullPipeline(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(true))

	require.NoError(t, h.app.Clean(CleanOptions{}))

	cleaned := h.readConfig(t)
	assert.Equal(t, "[]", gjson.Get(cleaned, "projects.p1.history").Raw)
	assert.Equal(t, "[]", gjson.Get(cleaned, "projects.p1.messages").Raw)
	assert.Equal(t, "[]", gjson.Get(cleaned, "globalHistory").Raw)
	assert.Equal(t, "keep", gjson.Get(cleaned, "other").String())
	assert.Equal(t, `["Bash"]`, gjson.Get(cleaned, "projects.p1.allowedTools").Raw)

	// The backup holds the pre-mutation document.
	backup, err := afero.ReadFile(h.fs, configPath+".backup.20250830_142233")
	require.NoError(t, err)
	assert.JSONEq(t, sampleConfig, string(backup))

	output := h.out.String()
	assert.Contains(t, output, "1 project histories cleared")
	assert.Contains(t, output, "1 top-level chat fields cleared")
	assert.Contains(t, output, "Success!")
	assert.Contains(t, output, ".claude.json.backup.20250830_142233")
}

func TestCleanDryRunLeavesFileUntouched(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(true))

	require.NoError(t, h.app.Clean(CleanOptions{DryRun: true}))

	assert.Equal(t, sampleConfig, h.readConfig(t))

	// No backup on a dry run.
	backups, err := configfile.ListBackups(h.fs, configPath)
	require.NoError(t, err)
	assert.Empty(t, backups)

	output := h.out.String()
	assert.Contains(t, output, "Dry run mode")
	assert.Contains(t, output, "1 project histories cleared")
	assert.Contains(t, output, "Would reduce by approximately")
	assert.NotContains(t, output, "Creating backup")
}

func TestCleanSmallFileDeclined(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(false))

	err := h.app.Clean(CleanOptions{})
	require.ErrorIs(t, err, ErrAborted)

	// Declining aborts before the backup and the write.
	assert.Equal(t, sampleConfig, h.readConfig(t))
	backups, err := configfile.ListBackups(h.fs, configPath)
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.Contains(t, h.out.String(), "already small")
}

func TestCleanSmallFileAssumeYes(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(false))

	require.NoError(t, h.app.Clean(CleanOptions{AssumeYes: true}))
	assert.Contains(t, h.out.String(), "Success!")
}

func TestCleanLargeFileSkipsPrompt(t *testing.T) {
	// Pad the file over the confirmation threshold; the declining
	// confirmer must never be consulted.
	padded := `{"projects":{"p1":{"history":["` + strings.Repeat("x", 2*1024*1024) + `"]}}}`
	h := newHarness(t, padded, StaticConfirmer(false))

	require.NoError(t, h.app.Clean(CleanOptions{}))
	assert.Contains(t, h.out.String(), "Large history")
}

func TestCleanDryRunNeverPrompts(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(false))

	require.NoError(t, h.app.Clean(CleanOptions{DryRun: true}))
}

func TestCleanMissingFile(t *testing.T) {
	h := newHarness(t, "", StaticConfirmer(true))

	var notFound *configfile.NotFoundError
	require.ErrorAs(t, h.app.Clean(CleanOptions{}), &notFound)
}

func TestCleanMalformedFile(t *testing.T) {
	h := newHarness(t, `{"projects":`, StaticConfirmer(true))

	var malformed *configfile.MalformedError
	require.ErrorAs(t, h.app.Clean(CleanOptions{}), &malformed)

	// Original untouched.
	assert.Equal(t, `{"projects":`, h.readConfig(t))
}

func TestCleanSecondRunIsFixedPoint(t *testing.T) {
	h := newHarness(t, sampleConfig, StaticConfirmer(true))
	require.NoError(t, h.app.Clean(CleanOptions{}))
	first := h.readConfig(t)

	h.out.Reset()
	require.NoError(t, h.app.Clean(CleanOptions{}))

	assert.Equal(t, first, h.readConfig(t))
	output := h.out.String()
	assert.Contains(t, output, "Nothing to clean")
	assert.Contains(t, output, "0 project histories cleared")
}

func TestStatus(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		h := newHarness(t, "", StaticConfirmer(true))
		require.NoError(t, h.app.Status())
		assert.Contains(t, h.out.String(), "not found")
	})

	t.Run("clean file with backups", func(t *testing.T) {
		h := newHarness(t, `{"a":1}`, StaticConfirmer(true))
		require.NoError(t, afero.WriteFile(h.fs, configPath+".backup.20250830_120000", []byte(`{}`), 0o600))

		require.NoError(t, h.app.Status())
		output := h.out.String()
		assert.Contains(t, output, "Configuration file is clean")
		assert.Contains(t, output, ".claude.json.backup.20250830_120000")
	})

	t.Run("large file", func(t *testing.T) {
		big := `{"junk":"` + strings.Repeat("x", 2*1024*1024) + `"}`
		h := newHarness(t, big, StaticConfirmer(true))

		require.NoError(t, h.app.Status())
		assert.Contains(t, h.out.String(), "Configuration file is large")
	})
}

func TestBackups(t *testing.T) {
	h := newHarness(t, `{"a":1}`, StaticConfirmer(true))
	for _, stamp := range []string{"20250828_120000", "20250829_120000", "20250830_120000"} {
		require.NoError(t, afero.WriteFile(h.fs, configPath+".backup."+stamp, []byte(`{}`), 0o600))
	}

	require.NoError(t, h.app.Backups(false, 2))
	assert.Contains(t, h.out.String(), ".claude.json.backup.20250829_120000")

	h.out.Reset()
	require.NoError(t, h.app.Backups(true, 2))

	backups, err := configfile.ListBackups(h.fs, configPath)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Contains(t, h.out.String(), "Pruned 1 backup(s)")
}

func TestTerminalConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "YES\n", true},
		{"no", "n\n", false},
		{"default is no", "\n", false},
		{"eof is no", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := &TerminalConfirmer{In: strings.NewReader(tt.input), Out: &out}

			ok, err := c.Confirm("Clean anyway? (y/N): ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Contains(t, out.String(), "Clean anyway?")
		})
	}
}
