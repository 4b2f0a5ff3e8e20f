package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewElementsDB(t *testing.T) {
	db := NewElementsDB()

	assert.NotNil(t, db.Taken)
	assert.NotNil(t, db.Reserved)
	assert.Empty(t, db.Taken)
	assert.Empty(t, db.Reserved)

	data, err := json.Marshal(db)
	require.NoError(t, err)
	assert.JSONEq(t, `{"taken":{},"reserved":[]}`, string(data))
}

func TestElementsDB_IsAvailable(t *testing.T) {
	db := ElementsDB{
		Taken:    map[string]string{"pv-a1": "Ana", "pv-a2": ""},
		Reserved: []string{"pv-b2"},
	}

	assert.False(t, db.IsAvailable("pv-a1"))
	assert.False(t, db.IsAvailable("pv-a2"), "taken with an empty name")
	assert.False(t, db.IsAvailable("pv-b2"))
	assert.True(t, db.IsAvailable("pv-a3"))

	// The zero value has nothing taken
	assert.True(t, ElementsDB{}.IsAvailable("pv-a1"))
}

func TestElementsDB_Resolve(t *testing.T) {
	db := ElementsDB{
		Taken:    map[string]string{"pv-a1": "Ana", "pv-a2": ""},
		Reserved: []string{"pv-b2"},
	}

	assert.Equal(t, Element{MID: "pv-a1", Name: "Ana", Taken: true}, db.Resolve("pv-a1"))
	assert.Equal(t, Element{MID: "pv-a2", Taken: true}, db.Resolve("pv-a2"))
	assert.Equal(t, Element{MID: "pv-b2", Reserved: true}, db.Resolve("pv-b2"))
	assert.Equal(t, Element{MID: "pv-a3"}, db.Resolve("pv-a3"))

	assert.Equal(t, ElementTaken, db.Resolve("pv-a2").State())
	assert.Equal(t, ElementReserved, db.Resolve("pv-b2").State())
	assert.Equal(t, ElementAvailable, db.Resolve("pv-a3").State())
}

func TestElementsDB_ResolveTakenWins(t *testing.T) {
	db := ElementsDB{
		Taken:    map[string]string{"X": "Owner"},
		Reserved: []string{"X"},
	}

	assert.Equal(t, Element{MID: "X", Name: "Owner", Taken: true}, db.Resolve("X"))
	assert.False(t, db.IsAvailable("X"))
}

func TestElementsDB_AvailableIffResolvesBare(t *testing.T) {
	db := ElementsDB{
		Taken:    map[string]string{"pv-a1": "Ana", "pv-c3": "Cy"},
		Reserved: []string{"pv-a1", "pv-b2", "wr-1"},
	}

	for _, mid := range AllMIDs() {
		element := db.Resolve(mid)
		assert.Equal(t, mid, element.MID)
		assert.Equal(t, db.IsAvailable(mid), element == Element{MID: mid}, mid)
	}
}

func TestElementsDB_UnmarshalJSON(t *testing.T) {
	var db ElementsDB
	require.NoError(t, json.Unmarshal([]byte(`{"taken":{"pv-a1":"Ana"},"reserved":["pv-b2"]}`), &db))
	assert.Equal(t, map[string]string{"pv-a1": "Ana"}, db.Taken)
	assert.Equal(t, []string{"pv-b2"}, db.Reserved)

	// Missing fields decode to empty collections
	require.NoError(t, json.Unmarshal([]byte(`{}`), &db))
	assert.Equal(t, NewElementsDB(), db)

	require.NoError(t, json.Unmarshal([]byte(`{"taken":null,"reserved":null}`), &db))
	assert.Equal(t, NewElementsDB(), db)

	assert.Error(t, json.Unmarshal([]byte(`{"taken":[]}`), &db))
}

func TestElementsDB_UnmarshalLegacyJSON(t *testing.T) {
	var db ElementsDB
	require.NoError(t, json.Unmarshal([]byte(`{"reserved_elements":{"pv-a1":"Ana","wr-2":"Wu"}}`), &db))

	assert.Equal(t, map[string]string{"pv-a1": "Ana", "wr-2": "Wu"}, db.Taken)
	assert.Empty(t, db.Reserved)
	assert.Equal(t, "Ana", db.Resolve("pv-a1").Name)

	// The canonical field wins when both are present
	require.NoError(t, json.Unmarshal([]byte(`{"taken":{"pv-a1":"Ana"},"reserved_elements":{"pv-a1":"Old","pv-a2":"Bo"}}`), &db))
	assert.Equal(t, map[string]string{"pv-a1": "Ana", "pv-a2": "Bo"}, db.Taken)
}

func TestElementsDB_Clone(t *testing.T) {
	db := ElementsDB{
		Taken:    map[string]string{"pv-a1": "Ana"},
		Reserved: []string{"pv-b2"},
	}

	clone := db.Clone()
	clone.Taken["pv-a2"] = "Bo"
	clone.Reserved[0] = "pv-b3"

	assert.Len(t, db.Taken, 1)
	assert.Equal(t, []string{"pv-b2"}, db.Reserved)

	assert.Equal(t, NewElementsDB(), ElementsDB{}.Clone())
}

func TestElementState_String(t *testing.T) {
	assert.Equal(t, "available", ElementAvailable.String())
	assert.Equal(t, "taken", ElementTaken.String())
	assert.Equal(t, "reserved", ElementReserved.String())
}
