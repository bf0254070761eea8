/*
Package configfile handles all filesystem access to the Claude configuration
document: loading and validating it, snapshotting it to a timestamped backup,
and persisting the cleaned result atomically.

The document is kept as raw JSON bytes throughout. Nothing in this package
round-trips the document through Go maps, so fields the cleaner does not
touch stay byte-identical on disk (modulo re-indentation).

Basic usage:

	doc, err := configfile.Load(fs, path)
	if err != nil {
	    return err
	}

	backupPath, err := configfile.WriteBackup(fs, doc, time.Now())
	if err != nil {
	    return err
	}

	if err := configfile.Save(fs, doc.Path, cleaned); err != nil {
	    return err
	}

All operations go through an afero.Fs so tests can run on an in-memory
filesystem.
*/
package configfile

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Document is the configuration file as read from disk: the raw JSON bytes
// plus the on-disk size at load time.
type Document struct {
	// Path is the location the document was loaded from.
	Path string

	// Raw holds the document bytes exactly as read.
	Raw []byte

	// Size is the file size in bytes at load time.
	Size int64
}

// Load reads and validates the configuration document at path. It performs
// no mutation and is safe to call repeatedly.
//
// Returns *NotFoundError if the file does not exist and *MalformedError if
// the contents are not a valid JSON object.
func Load(fs afero.Fs, path string) (*Document, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	// encoding/json gives the byte offset of a syntax error, gjson does not.
	var probe interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		malformed := &MalformedError{Path: path, Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			malformed.Offset = syntaxErr.Offset
		}
		return nil, malformed
	}

	if !gjson.ParseBytes(raw).IsObject() {
		return nil, &MalformedError{Path: path, Err: errNotAnObject}
	}

	return &Document{
		Path: path,
		Raw:  raw,
		Size: info.Size(),
	}, nil
}
