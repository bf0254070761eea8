package configfile

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/pretty"
)

// Save persists the document bytes to path, pretty-printed with two-space
// indentation. The bytes are staged in a temporary file in the same
// directory and renamed into place, so a failed write leaves the original
// file untouched. Returns *WriteError on I/O failure.
func Save(fs afero.Fs, path string, raw []byte) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := afero.TempFile(fs, dir, base+".tmp-")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(pretty.Pretty(raw)); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
