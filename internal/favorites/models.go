// Package favorites maintains the persisted, ordered list of favorite
// location names.
package favorites

import "errors"

// Favorites errors.
var (
	ErrEmptyName = errors.New("favorite name is empty")
)

// SchemaVersion is the current persisted document version. Version 0
// documents (a bare name list from before versioning) are migrated on load.
const SchemaVersion = 1

// Document is the persisted favorites record. It is always read and
// written whole.
type Document struct {
	SchemaVersion int      `json:"schemaVersion"`
	Names         []string `json:"names"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{SchemaVersion: SchemaVersion}
}
