package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionAlgo specifies the compression algorithm used for stored
// report snapshots.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// SnapshotCodec serializes report bodies for storage. Bodies above the
// threshold are zstd-compressed; small ones are stored as plain JSON so
// they stay inspectable with psql.
type SnapshotCodec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int // bytes
}

// NewSnapshotCodec creates a codec with a 10KB compression threshold.
func NewSnapshotCodec() (*SnapshotCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotCodec{
		encoder:   encoder,
		decoder:   decoder,
		threshold: 10 * 1024,
	}, nil
}

// Encode marshals v to JSON and compresses it when large enough.
func (c *SnapshotCodec) Encode(v any) ([]byte, CompressionAlgo, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, CompressionNone, fmt.Errorf("marshal snapshot: %w", err)
	}

	if len(raw) <= c.threshold {
		return raw, CompressionNone, nil
	}
	return c.encoder.EncodeAll(raw, nil), CompressionZstd, nil
}

// Decode reverses Encode into v.
func (c *SnapshotCodec) Decode(data []byte, algo CompressionAlgo, v any) error {
	raw := data
	if algo == CompressionZstd {
		decompressed, err := c.decoder.DecodeAll(data, nil)
		if err != nil {
			return fmt.Errorf("decompress snapshot: %w", err)
		}
		raw = decompressed
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return nil
}
