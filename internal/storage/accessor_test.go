package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fontpair/internal/testutil"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAccessor_JSONRoundTrip(t *testing.T) {
	a := NewAccessor(newTestFileStore("", 0), &testutil.MockLogger{})

	a.WriteJSON("k", sample{Name: "x", Count: 2})

	var got sample
	require.True(t, a.ReadJSON("k", &got))
	assert.Equal(t, sample{Name: "x", Count: 2}, got)
}

func TestAccessor_ReadJSON_Missing(t *testing.T) {
	a := NewAccessor(newTestFileStore("", 0), &testutil.MockLogger{})
	var got []sample
	assert.False(t, a.ReadJSON("missing", &got))
	assert.Nil(t, got)
}

func TestAccessor_ReadJSON_Malformed(t *testing.T) {
	store := newTestFileStore("", 0)
	require.NoError(t, store.Set("k", []byte("{not json")))

	logger := &testutil.MockLogger{}
	a := NewAccessor(store, logger)

	var got []sample
	assert.False(t, a.ReadJSON("k", &got))
	assert.Equal(t, 1, logger.Count("error"))
}

func TestAccessor_ReadJSON_TypeMismatchLeavesZeroValue(t *testing.T) {
	store := newTestFileStore("", 0)
	require.NoError(t, store.Set("k", []byte(`{"name":"kept","count":"three"}`)))

	logger := &testutil.MockLogger{}
	a := NewAccessor(store, logger)

	var got sample
	assert.False(t, a.ReadJSON("k", &got))
	assert.Equal(t, sample{}, got)
	assert.Equal(t, 1, logger.Count("error"))
}

func TestAccessor_WriteFailureIsSwallowed(t *testing.T) {
	store := testutil.NewMockStore()
	store.FailWrites = true
	logger := &testutil.MockLogger{}
	a := NewAccessor(store, logger)

	assert.NotPanics(t, func() {
		a.WriteJSON("k", sample{Name: "x"})
		a.WriteString("s", "v")
	})
	assert.Equal(t, 2, logger.Count("error"))

	_, ok := a.ReadString("s")
	assert.False(t, ok)
}

func TestAccessor_QuotaFailureKeepsPrevious(t *testing.T) {
	store := newTestFileStore("", 40)
	a := NewAccessor(store, &testutil.MockLogger{})

	a.WriteString("k", "small")
	a.WriteString("k", "this value is far too large for the configured quota")

	val, ok := a.ReadString("k")
	require.True(t, ok)
	assert.Equal(t, "small", val)
}

func TestAccessor_Delete(t *testing.T) {
	a := NewAccessor(newTestFileStore("", 0), &testutil.MockLogger{})
	a.WriteString("k", "v")
	a.Delete("k")

	_, ok := a.ReadString("k")
	assert.False(t, ok)
}
