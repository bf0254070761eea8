/*
Package sanitize implements the cleaning transform for the Claude
configuration document: it locates chat/history fields at project and
document scope, clears them in a type-preserving way, and reports what was
removed.

The engine operates on raw JSON bytes with gjson/sjson rather than decoded
Go values. Untouched fields are never re-encoded, key order is preserved,
and large documents are not copied into intermediate structures.

Clearing is type-preserving: an array-valued field becomes [], an
object-valued field becomes {}, and scalar fields are deleted outright.
A field is only acted on when it is present and truthy; empty or null
values are left alone, which makes the transform a fixed point on its own
output.

Basic usage:

	engine := sanitize.NewEngine(sanitize.Config{DryRun: false}, log, notify)
	cleaned, report, err := engine.Run(doc.Raw)
*/
package sanitize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sanchez314c/claude-clear/pkg/logger"
)

// Config holds the engine configuration.
type Config struct {
	// DryRun computes the report and emits notices without mutating the
	// document.
	DryRun bool
}

// Engine performs the cleaning transform over a configuration document.
type Engine struct {
	config Config
	log    logger.Logger
	notify NoticeFunc
}

// NewEngine creates a new Engine. notify may be nil.
func NewEngine(config Config, log logger.Logger, notify NoticeFunc) *Engine {
	return &Engine{
		config: config,
		log:    log,
		notify: notify,
	}
}

// Run applies the transform to the raw document bytes and returns the
// resulting document plus a report of what was removed. On a dry run the
// input is returned unchanged but the report is identical to a real run.
func (e *Engine) Run(raw []byte) ([]byte, Report, error) {
	out := raw
	var report Report
	var mutErr error

	root := gjson.ParseBytes(raw)

	if projects := root.Get("projects"); projects.Exists() && projects.IsObject() {
		projects.ForEach(func(id, project gjson.Result) bool {
			if !project.IsObject() {
				return true
			}
			out, mutErr = e.cleanProject(out, id.String(), project, &report)
			return mutErr == nil
		})
		if mutErr != nil {
			return nil, Report{}, fmt.Errorf("clearing project fields: %w", mutErr)
		}
	}

	for _, field := range topLevelChatFields {
		value := root.Get(field)
		if !truthy(value) {
			continue
		}

		size := int64(len(value.Raw))
		report.BytesFreed += size
		report.TopLevelCleared++
		e.emit(Notice{
			Field:   field,
			Size:    size,
			Entries: entryCount(value),
			Large:   size > LargeFieldSize,
		})

		if e.config.DryRun {
			continue
		}
		if out, mutErr = clearField(out, field, value); mutErr != nil {
			return nil, Report{}, fmt.Errorf("clearing %s: %w", field, mutErr)
		}
	}

	e.log.WithFields(logger.Fields{
		"projectsCleared": report.ProjectsCleared,
		"topLevelCleared": report.TopLevelCleared,
		"bytesFreed":      report.BytesFreed,
		"dryRun":          e.config.DryRun,
	}).Debug("Sanitization pass complete")

	return out, report, nil
}

// cleanProject clears the history field and the remaining chat fields of a
// single project entry.
func (e *Engine) cleanProject(out []byte, id string, project gjson.Result, report *Report) ([]byte, error) {
	base := "projects." + escapeKey(id)

	if history := project.Get(HistoryField); truthy(history) {
		size := int64(len(history.Raw))
		report.ProjectsCleared++
		report.BytesFreed += size
		e.emit(Notice{
			Project: id,
			Field:   HistoryField,
			Size:    size,
			Entries: entryCount(history),
			Large:   size > LargeFieldSize,
		})

		if !e.config.DryRun {
			var err error
			out, err = sjson.SetRawBytes(out, base+"."+HistoryField, []byte("[]"))
			if err != nil {
				return nil, err
			}
		}
	}

	for _, field := range projectChatFields {
		value := project.Get(field)
		if !truthy(value) {
			continue
		}

		size := int64(len(value.Raw))
		report.BytesFreed += size
		e.emit(Notice{
			Project: id,
			Field:   field,
			Size:    size,
			Entries: entryCount(value),
			Large:   size > LargeFieldSize,
		})

		if !e.config.DryRun {
			var err error
			out, err = clearField(out, base+"."+field, value)
			if err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

func (e *Engine) emit(n Notice) {
	if e.notify != nil {
		e.notify(n)
	}
}

// clearField applies the type-preserving clearing rule: arrays become [],
// objects become {}, scalars are deleted.
func clearField(raw []byte, path string, value gjson.Result) ([]byte, error) {
	switch {
	case value.IsArray():
		return sjson.SetRawBytes(raw, path, []byte("[]"))
	case value.IsObject():
		return sjson.SetRawBytes(raw, path, []byte("{}"))
	default:
		return sjson.DeleteBytes(raw, path)
	}
}

// truthy reports whether a field is present and carries a non-empty value.
// Null, false, zero, "" and empty containers are all left untouched.
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		empty := true
		v.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return !empty
	}
}

// entryCount returns the element count for array values, -1 otherwise.
func entryCount(v gjson.Result) int {
	if !v.IsArray() {
		return -1
	}
	return len(v.Array())
}

// escapeKey escapes a project identifier for use in a gjson/sjson path.
// Project keys are opaque strings (often absolute paths) and may contain
// path-syntax characters.
func escapeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '|', '#', '@', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
