package compress

import (
	"fmt"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
)

// Compressor compresses a finished Borsh encoding.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// It returns an error when the input is corrupted or was produced by a
// different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
//
// All built-in codecs are stateless values backed by pooled encoders and are
// safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor

	// Type reports the algorithm, as recorded in a sealed envelope.
	Type() format.CompressionType
}

// sizedDecompressor is implemented by codecs whose block format does not
// record the decompressed size.
type sizedDecompressor interface {
	decompressSized(data []byte, size int) ([]byte, error)
}

// Stats describes one compression of an encoded value.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns the compressed size divided by the original size.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage. Negative values mean
// the compressed form is larger than the input.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// CompressWithStats compresses data with codec and reports the sizes.
func CompressWithStats(codec Codec, data []byte) ([]byte, Stats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, err
	}

	return out, Stats{
		Algorithm:      codec.Type(),
		OriginalSize:   len(data),
		CompressedSize: len(out),
	}, nil
}

// CreateCodec creates a new Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
