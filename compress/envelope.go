package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/borsh/endian"
	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
)

// HeaderSize is the size of the envelope header written by Seal.
const HeaderSize = 5

// Seal compresses an encoding and wraps it in an envelope:
//
//	offset 0: compression type (1 byte, format.CompressionType)
//	offset 1: original length  (u32, little-endian)
//	offset 5: compressed payload
//
// The envelope is a transport container; the payload inside it is an
// ordinary Borsh encoding once opened.
func Seal(compressionType format.CompressionType, data []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	return SealWith(codec, data)
}

// SealWith is like Seal but uses the given codec.
func SealWith(codec Codec, data []byte) ([]byte, error) {
	sealed, _, err := SealWithStats(codec, data)
	return sealed, err
}

// SealWithStats is like SealWith and also reports the compression statistics
// of the payload. The envelope header is not counted in Stats.CompressedSize.
func SealWithStats(codec Codec, data []byte) ([]byte, Stats, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, Stats{}, fmt.Errorf("%w: payload of %d bytes exceeds u32 length", errs.ErrOverflow, len(data))
	}

	payload, stats, err := CompressWithStats(codec, data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", codec.Type(), err)
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, byte(codec.Type()))
	out = engine.AppendUint32(out, uint32(len(data)))

	return append(out, payload...), stats, nil
}

// Open reverses Seal and returns the original encoding.
//
// Returns:
//   - errs.ErrInvalidCompression for a short header or an unknown type
//   - the codec error for a corrupted payload
//   - errs.ErrCorruptEnvelope when the declared length cannot be restored from
//     the payload or differs from the restored length
func Open(sealed []byte) ([]byte, error) {
	if len(sealed) < HeaderSize {
		return nil, fmt.Errorf("%w: envelope of %d bytes is shorter than its header", errs.ErrInvalidCompression, len(sealed))
	}

	codec, err := GetCodec(format.CompressionType(sealed[0]))
	if err != nil {
		return nil, err
	}

	size := int(endian.GetLittleEndianEngine().Uint32(sealed[1:HeaderSize]))
	payload := sealed[HeaderSize:]

	var data []byte
	if sd, ok := codec.(sizedDecompressor); ok {
		data, err = sd.decompressSized(payload, size)
	} else {
		data, err = codec.Decompress(payload)
	}
	if err != nil {
		return nil, err
	}

	if len(data) != size {
		return nil, fmt.Errorf("%w: restored %d bytes, envelope declares %d", errs.ErrCorruptEnvelope, len(data), size)
	}

	return data, nil
}
