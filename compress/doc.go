// Package compress provides optional compression for finished Borsh encodings.
//
// Borsh itself never compresses: an encoding is canonical and its bytes are
// what gets hashed or signed. Compression is an outer layer applied to the
// complete encoding when it is stored or transported, and removed before the
// bytes are consumed.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Usage
//
// Look up a shared codec by type:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(encoded)
//
// Or seal the encoding in a self-describing envelope that records the
// algorithm and the original length:
//
//	sealed, err := compress.Seal(format.CompressionS2, encoded)
//	...
//	encoded, err = compress.Open(sealed)
//
// # Thread Safety
//
// The built-in codecs are stateless values backed by pooled encoders and
// decoders; they are safe for concurrent use.
package compress
