package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotPayload struct {
	ID    string   `json:"id"`
	Notes []string `json:"notes"`
}

func TestSnapshotCodec_SmallPayloadStaysPlain(t *testing.T) {
	codec, err := NewSnapshotCodec()
	require.NoError(t, err)

	in := snapshotPayload{ID: "AUTO-20240110180000-a1b2c3d4", Notes: []string{"ok"}}

	data, algo, err := codec.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, algo)
	assert.Contains(t, string(data), in.ID)

	var out snapshotPayload
	require.NoError(t, codec.Decode(data, algo, &out))
	assert.Equal(t, in, out)
}

func TestSnapshotCodec_LargePayloadCompressed(t *testing.T) {
	codec, err := NewSnapshotCodec()
	require.NoError(t, err)

	in := snapshotPayload{
		ID:    "MAN-20240110180000-a1b2c3d4",
		Notes: []string{strings.Repeat("pedidos semanales ", 2048)},
	}

	data, algo, err := codec.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, CompressionZstd, algo)
	assert.NotContains(t, string(data), "pedidos semanales")

	var out snapshotPayload
	require.NoError(t, codec.Decode(data, algo, &out))
	assert.Equal(t, in, out)
}
