package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink(t *testing.T) {
	ctx := context.Background()
	sink := NewMemory()

	_, err := sink.Get(ctx, "form-a")
	assert.ErrorIs(t, err, ErrNoDraft)

	require.NoError(t, sink.Put(ctx, "form-a", []byte(`[{"label":"Bio"}]`)))
	doc, err := sink.Get(ctx, "form-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"label":"Bio"}]`), doc)

	// later writes replace the slot in full
	require.NoError(t, sink.Put(ctx, "form-a", []byte(`[]`)))
	doc, err = sink.Get(ctx, "form-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), doc)

	require.NoError(t, sink.Clear(ctx, "form-a"))
	_, err = sink.Get(ctx, "form-a")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestMemorySinkCopiesPayload(t *testing.T) {
	ctx := context.Background()
	sink := NewMemory()

	payload := []byte(`{"a":1}`)
	require.NoError(t, sink.Put(ctx, "k", payload))
	payload[0] = 'X'

	doc, err := sink.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, byte('{'), doc[0])
}

func TestNoopSink(t *testing.T) {
	ctx := context.Background()
	var sink Noop

	require.NoError(t, sink.Put(ctx, "k", []byte("ignored")))
	_, err := sink.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNoDraft)
	require.NoError(t, sink.Clear(ctx, "k"))
}
