package sanitize

// Report accumulates what the engine removed (or, on a dry run, would
// remove). A dry run produces the same Report as a real run on the same
// input.
type Report struct {
	// ProjectsCleared is the number of projects whose history was cleared.
	ProjectsCleared int

	// TopLevelCleared is the number of document-scope chat fields cleared.
	TopLevelCleared int

	// BytesFreed is the sum of the serialized sizes of all removed
	// substructures. This is an estimate, distinct from the actual
	// file-size delta measured after the write.
	BytesFreed int64
}

// Empty reports whether the engine found nothing to clear.
func (r Report) Empty() bool {
	return r.ProjectsCleared == 0 && r.TopLevelCleared == 0 && r.BytesFreed == 0
}

// Notice describes a single field the engine cleared (or would clear).
// Notices are emitted in document order while the engine runs.
type Notice struct {
	// Project is the project identifier, empty for document-scope fields.
	Project string

	// Field is the cleared field name.
	Field string

	// Size is the serialized size of the field's prior value in bytes.
	Size int64

	// Entries is the element count for array-valued fields, -1 otherwise.
	Entries int

	// Large marks a field whose serialized size exceeds LargeFieldSize.
	Large bool
}

// NoticeFunc receives notices as the engine emits them. A nil NoticeFunc
// disables notice emission.
type NoticeFunc func(Notice)
