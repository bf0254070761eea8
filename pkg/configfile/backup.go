package configfile

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/pretty"
)

// backupTimeFormat gives backup names second resolution. Two runs within
// the same second collide on the same name; the later write wins.
const backupTimeFormat = "20060102_150405"

const backupInfix = ".backup."

// Backup describes a single backup file next to the configuration file.
type Backup struct {
	Path      string
	Size      int64
	Timestamp time.Time
}

// BackupPath returns the backup destination for path at the given time,
// e.g. /home/user/.claude.json.backup.20250830_142233.
func BackupPath(path string, t time.Time) string {
	return path + backupInfix + t.Format(backupTimeFormat)
}

// WriteBackup snapshots the pre-mutation document to a timestamped sibling
// of the original path, pretty-printed with two-space indentation. It
// returns the backup path. Returns *BackupError on I/O failure.
func WriteBackup(fs afero.Fs, doc *Document, now time.Time) (string, error) {
	dest := BackupPath(doc.Path, now)

	if err := afero.WriteFile(fs, dest, pretty.Pretty(doc.Raw), 0o600); err != nil {
		return "", &BackupError{Path: dest, Err: err}
	}

	return dest, nil
}

// ListBackups returns the backups siblings of path, newest first.
func ListBackups(fs afero.Fs, path string) ([]Backup, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + backupInfix

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	var backups []Backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		stamp, err := time.Parse(backupTimeFormat, strings.TrimPrefix(entry.Name(), prefix))
		if err != nil {
			// Not one of ours, e.g. a hand-renamed copy.
			continue
		}

		backups = append(backups, Backup{
			Path:      filepath.Join(dir, entry.Name()),
			Size:      entry.Size(),
			Timestamp: stamp,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// PruneBackups removes all but the newest keep backups of path and returns
// the paths it deleted.
func PruneBackups(fs afero.Fs, path string, keep int) ([]string, error) {
	backups, err := ListBackups(fs, path)
	if err != nil {
		return nil, err
	}

	if keep < 0 {
		keep = 0
	}
	if len(backups) <= keep {
		return nil, nil
	}

	var deleted []string
	for _, b := range backups[keep:] {
		if err := fs.Remove(b.Path); err != nil {
			return deleted, err
		}
		deleted = append(deleted, b.Path)
	}

	return deleted, nil
}
