package models

import (
	"encoding/json"
	"slices"
)

// ElementState is the ownership state of an element.
type ElementState int

const (
	// ElementAvailable means the element is neither taken nor reserved.
	ElementAvailable ElementState = iota
	// ElementTaken means the element is assigned to a named owner.
	ElementTaken
	// ElementReserved means the element is held for a future assignment.
	ElementReserved
)

// String returns the lower-case name of the state.
func (s ElementState) String() string {
	switch s {
	case ElementTaken:
		return "taken"
	case ElementReserved:
		return "reserved"
	default:
		return "available"
	}
}

// Element is a view of a single element computed from an [ElementsDB]. It is never stored.
type Element struct {
	MID      string `json:"mid"`                // MID is the element identifier.
	Name     string `json:"name,omitempty"`     // Name is the owner's display name, set only for taken elements.
	Reserved bool   `json:"reserved,omitempty"` // Reserved is true for reserved, not yet owned elements.
	Taken    bool   `json:"-"`                  // Taken is true when MID is a key of [ElementsDB.Taken], even for an empty Name.
}

// State returns the ownership state of the element.
func (e Element) State() ElementState {
	switch {
	case e.Taken:
		return ElementTaken
	case e.Reserved:
		return ElementReserved
	default:
		return ElementAvailable
	}
}

// ElementsDB is the element ownership table.
//
// Taken and Reserved are meant to be disjoint, but nothing enforces it; lookups give Taken precedence.
type ElementsDB struct {
	Taken    map[string]string `json:"taken"`    // Taken maps an element identifier to its owner's display name.
	Reserved []string          `json:"reserved"` // Reserved lists the identifiers held for future assignment.
}

// NewElementsDB returns the empty table (`taken = {}`, `reserved = []`).
func NewElementsDB() ElementsDB {
	return ElementsDB{
		Taken:    map[string]string{},
		Reserved: []string{},
	}
}

// UnmarshalJSON decodes both payload variants served by the `elements` endpoint:
// the canonical `{"taken": {...}, "reserved": [...]}` and the older `{"reserved_elements": {...}}`,
// whose entries are merged into Taken.
func (db *ElementsDB) UnmarshalJSON(data []byte) error {
	var payload struct {
		Taken            map[string]string `json:"taken"`
		Reserved         []string          `json:"reserved"`
		ReservedElements map[string]string `json:"reserved_elements"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	result := NewElementsDB()
	for mid, name := range payload.Taken {
		result.Taken[mid] = name
	}
	for mid, name := range payload.ReservedElements {
		if _, ok := result.Taken[mid]; !ok {
			result.Taken[mid] = name
		}
	}
	if payload.Reserved != nil {
		result.Reserved = append(result.Reserved, payload.Reserved...)
	}

	*db = result
	return nil
}

// Clone returns an independent copy of the table. Nil collections clone into empty ones.
func (db ElementsDB) Clone() ElementsDB {
	clone := NewElementsDB()
	for mid, name := range db.Taken {
		clone.Taken[mid] = name
	}
	clone.Reserved = append(clone.Reserved, db.Reserved...)
	return clone
}

// IsAvailable reports whether the identifier is neither taken nor reserved.
//
// Args:
//   - mid: The element identifier.
//
// Returns:
//   - bool: False if mid is a key of Taken or a member of Reserved, true otherwise.
func (db ElementsDB) IsAvailable(mid string) bool {
	if _, ok := db.Taken[mid]; ok {
		return false
	}
	return !slices.Contains(db.Reserved, mid)
}

// Resolve returns the [Element] view of an identifier.
//
// Taken is checked first and wins over Reserved when an identifier appears in both.
//
// Args:
//   - mid: The element identifier.
//
// Returns:
//   - Element: {mid, name} when taken, {mid, reserved} when reserved, {mid} otherwise.
func (db ElementsDB) Resolve(mid string) Element {
	if name, ok := db.Taken[mid]; ok {
		return Element{MID: mid, Name: name, Taken: true}
	}

	if slices.Contains(db.Reserved, mid) {
		return Element{MID: mid, Reserved: true}
	}

	return Element{MID: mid}
}
