package util

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID_IsSortedAndUnique(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewULID()
		require.True(t, IsULID(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
	assert.False(t, IsULID("not-a-ulid"))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))
	assert.False(t, TimeToNullTime(time.Time{}).Valid)

	n := 7
	assert.Equal(t, &n, NullInt64ToIntPtr(IntPtrToNullInt64(&n)))
	assert.Nil(t, NullInt64ToIntPtr(IntPtrToNullInt64(nil)))

	f := 88.5
	assert.Equal(t, &f, NullFloat64ToFloatPtr(FloatPtrToNullFloat64(&f)))
	assert.Nil(t, NullFloat64ToFloatPtr(FloatPtrToNullFloat64(nil)))
}
