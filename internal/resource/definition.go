// Package resource implements a generic CRUD engine over gorm. Each record
// type is described once by a Definition and served by an Engine.
package resource

import (
	"net/url"

	"gorm.io/gorm"
)

type Operation string

const (
	OpList     Operation = "list"
	OpRetrieve Operation = "retrieve"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "destroy"
	OpAction   Operation = "action"
	OpQuery    Operation = "query"
)

// Access is the privilege an operation requires.
type Access int

const (
	Public Access = iota
	Staff
)

func (a Access) String() string {
	if a == Staff {
		return "staff"
	}
	return "public"
}

type AccessTable map[Operation]Access

// CuratedAccess is the table for content maintained by staff: anyone reads
// active records, only staff write.
func CuratedAccess() AccessTable {
	return AccessTable{
		OpList:     Public,
		OpRetrieve: Public,
		OpQuery:    Public,
		OpCreate:   Staff,
		OpUpdate:   Staff,
		OpDelete:   Staff,
		OpAction:   Staff,
	}
}

// InboundAccess is the table for public submission channels: anyone creates,
// only staff read or change what was submitted.
func InboundAccess() AccessTable {
	return AccessTable{
		OpList:     Staff,
		OpRetrieve: Staff,
		OpQuery:    Staff,
		OpCreate:   Public,
		OpUpdate:   Staff,
		OpDelete:   Staff,
		OpAction:   Staff,
	}
}

// NamedQuery is a predefined view beyond list and get.
type NamedQuery struct {
	Name string
	// Access applies in addition to the definition's OpQuery entry.
	Access Access
	// Params are required query parameters.
	Params []string
	// Scope narrows the query; nil means no extra condition.
	Scope func(db *gorm.DB, params url.Values) (*gorm.DB, error)
	// Ordering overrides the definition's default ordering.
	Ordering []string
	// Limit caps the result size; zero means unbounded.
	Limit int
}

// Action is a state transition applied to records by id. Assign maps JSON
// field names to their new values; Delete removes the records instead.
type Action struct {
	Name   string
	Assign map[string]any
	Delete bool
}

func SetFlag(name, field string, value bool) Action {
	return Action{Name: name, Assign: map[string]any{field: value}}
}

var (
	Activate   = SetFlag("activate", "is_active", true)
	Deactivate = SetFlag("deactivate", "is_active", false)
	Remove     = Action{Name: "delete", Delete: true}
)

// Reference declares that Field holds the id of a row of Model.
type Reference struct {
	Field string
	Model any
}

// Definition describes one record type. Field names are JSON names.
type Definition[T any] struct {
	// Name is the URL segment, e.g. "tenders".
	Name string
	New  func() *T

	// Ordering is the default sort; a "-" prefix sorts descending. id
	// ascending is always appended as the tiebreaker.
	Ordering []string
	Unique   []string
	Filters  []string
	Search   []string

	// ServerControlled fields may only be written by privileged callers.
	ServerControlled []string
	// ReadOnly fields are never writable, in addition to id and timestamps.
	ReadOnly []string

	Preloads   []string
	References []Reference
	Queries    []NamedQuery
	Actions    []Action
	Access     AccessTable
	Display    Display
}

func (d *Definition[T]) access(op Operation) Access {
	if d.Access == nil {
		return CuratedAccess()[op]
	}
	if a, ok := d.Access[op]; ok {
		return a
	}
	return Staff
}
