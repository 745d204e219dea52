package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
)

// lz4MaxBlockSize caps the buffer Decompress grows to when the original size
// is unknown, and the size an envelope may declare for an LZ4 payload.
const lz4MaxBlockSize = 128 * 1024 * 1024

// lz4MaxExpansion is the largest ratio between a decoded LZ4 block and its
// compressed form: each length extension byte adds at most 255 bytes.
const lz4MaxExpansion = 255

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block compression.
//
// It has the fastest decompression of the built-in codecs. LZ4 blocks do not
// record their decompressed size, so a bare Decompress grows its buffer until
// the block fits; envelopes opened with Open pass the exact size instead.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses data as a single LZ4 block with a pooled compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses a single LZ4 block of unknown original size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for bufSize := len(data) * 4; ; bufSize *= 2 {
		if bufSize > lz4MaxBlockSize {
			bufSize = lz4MaxBlockSize
		}

		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize == lz4MaxBlockSize {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}
}

// decompressSized decompresses a block whose original size is known from an
// envelope header. The size is untrusted and is bounded before allocating.
func (c LZ4Compressor) decompressSized(data []byte, size int) ([]byte, error) {
	if size > lz4MaxBlockSize {
		return nil, fmt.Errorf("%w: declared lz4 size %d exceeds the %d byte limit",
			errs.ErrCorruptEnvelope, size, lz4MaxBlockSize)
	}
	if size > len(data)*lz4MaxExpansion {
		return nil, fmt.Errorf("%w: declared lz4 size %d cannot be restored from %d compressed bytes",
			errs.ErrCorruptEnvelope, size, len(data))
	}
	if len(data) == 0 {
		return nil, nil
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return buf[:n], nil
}
