package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventID_Native(t *testing.T) {
	id := NativeID("a1b2c3")

	assert.Equal(t, "a1b2c3", id.String())
	assert.False(t, id.IsDerived())
	assert.Empty(t, id.SourceID(), "native ids have no source record")
	assert.False(t, id.IsZero())
}

func TestEventID_Derived(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		sourceId string
		rendered string
	}{
		{"todo", DomainTodo, "42", "todo-42"},
		{"transaction", DomainTransaction, "tx9", "transaction-tx9"},
		{"note", DomainNote, "n-1", "note-n-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DerivedID(tt.domain, tt.sourceId)

			assert.Equal(t, tt.rendered, id.String())
			assert.True(t, id.IsDerived())
			assert.Equal(t, tt.domain, id.Domain())
			assert.Equal(t, tt.sourceId, id.SourceID())
		})
	}
}

func TestEventID_TextRoundTrip(t *testing.T) {
	ids := []EventID{
		NativeID("plain"),
		DerivedID(DomainTodo, "7"),
		DerivedID(DomainTransaction, "abc"),
		DerivedID(DomainNote, "note-within-note"),
	}
	for _, original := range ids {
		t.Run(original.String(), func(t *testing.T) {
			text, err := original.MarshalText()
			require.NoError(t, err)

			var parsed EventID
			require.NoError(t, parsed.UnmarshalText(text))
			assert.Equal(t, original.String(), parsed.String())
			assert.Equal(t, original.IsDerived(), parsed.IsDerived())
			if original.IsDerived() {
				assert.Equal(t, original.Domain(), parsed.Domain())
			}
		})
	}
}

func TestEventID_UnmarshalPlainString(t *testing.T) {
	// an id without a known domain prefix stays native
	var id EventID
	require.NoError(t, id.UnmarshalText([]byte("meeting-2024")))

	assert.False(t, id.IsDerived())
	assert.Equal(t, "meeting-2024", id.String())
}

func TestEventID_JSONEmbedding(t *testing.T) {
	event := Event{ID: DerivedID(DomainTodo, "11"), Title: "Buy milk"}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"todo-11"`)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.ID.IsDerived())
	assert.Equal(t, DomainTodo, decoded.ID.Domain())
	assert.Equal(t, "11", decoded.ID.SourceID())
}
