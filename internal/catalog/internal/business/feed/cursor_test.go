package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := NewCursor()
	c.Offset = 40
	c.PersonalOffset = 12
	c.Extend([]string{"a", "b", "c"}, 100)

	encoded, err := c.Encode()
	require.NoError(t, err)

	decoded, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, c.SessionID, decoded.SessionID)
	assert.Equal(t, 40, decoded.Offset)
	assert.Equal(t, 12, decoded.PersonalOffset)
	assert.Equal(t, []string{"a", "b", "c"}, decoded.Seen)
}

func TestDecodeCursorEmptyStartsSession(t *testing.T) {
	c, err := DecodeCursor("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.SessionID)
	assert.Zero(t, c.Offset)
	assert.Empty(t, c.Seen)
}

func TestDecodeCursorGarbage(t *testing.T) {
	_, err := DecodeCursor("not a cursor!!")
	assert.ErrorIs(t, err, ErrBadCursor)

	_, err = DecodeCursor("bm90IGpzb24")
	assert.ErrorIs(t, err, ErrBadCursor)
}

func TestCursorExtendSkipsDuplicates(t *testing.T) {
	c := NewCursor()
	c.Extend([]string{"a", "b"}, 100)
	c.Extend([]string{"b", "c"}, 100)
	assert.Equal(t, []string{"a", "b", "c"}, c.Seen)
}

func TestCursorExtendEvictsOldestPastCap(t *testing.T) {
	c := NewCursor()
	c.Extend([]string{"a", "b", "c", "d", "e"}, 3)
	assert.Equal(t, []string{"c", "d", "e"}, c.Seen)
}
