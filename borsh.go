// Package borsh encodes values in Borsh, the Binary Object Representation
// Serializer for Hashing.
//
// Borsh is canonical: every value has exactly one encoding, so encodings can
// be hashed, signed and compared byte for byte. There is no self-description
// on the wire; sender and receiver share the schema.
//
// # Core Features
//
//   - Fixed-width little-endian integers, including 128-bit u128 and i128
//   - Length-prefixed strings, byte sequences and arrays (u32 length)
//   - Options, structs, enums and fixed-size byte arrays
//   - Explicit schemas with typed bindings instead of reflection
//   - xxHash64 fingerprints of encodings
//   - Optional compression envelope (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Encoding a value built directly:
//
//	import (
//	    "github.com/arloliu/borsh"
//	    "github.com/arloliu/borsh/value"
//	)
//
//	v := value.NewStruct("Transfer",
//	    value.F("amount", value.U128FromUint64(300)),
//	    value.F("memo", value.Some(value.String("hi"))),
//	)
//	data, err := borsh.Encode(v)
//
// Encoding Go values through a schema binding:
//
//	reg := schema.NewRegistry()
//	reg.MustDefine("Point", schema.Field("x", schema.U8()), schema.Field("y", schema.U16()))
//
//	points := schema.MustBind(reg, "Point",
//	    schema.Access("x", func(p Point) value.Value { return value.U8(p.X) }),
//	    schema.Access("y", func(p Point) value.Value { return value.U16(p.Y) }),
//	)
//	data, err := borsh.Marshal(points.Valuer(Point{X: 1, Y: 2}), encoder.WithRegistry(reg))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoder
// package. For streaming into your own sink or reusing one encoder for many
// values, use the encoder package directly.
package borsh

import (
	"io"

	"github.com/arloliu/borsh/compress"
	"github.com/arloliu/borsh/encoder"
	"github.com/arloliu/borsh/encoding"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/internal/hash"
	"github.com/arloliu/borsh/internal/pool"
	"github.com/arloliu/borsh/value"
)

// Option configures the encoder used by the functions in this package.
// See encoder.WithLogger, encoder.WithMaxDepth, encoder.WithStrictUTF8,
// encoder.WithRejectNaN and encoder.WithRegistry.
type Option = encoder.Option

// Encode returns the Borsh encoding of v.
//
// The encoding is built in a pooled buffer and copied out, so the returned
// slice is owned by the caller. On error the result is nil.
//
// Example:
//
//	data, _ := borsh.Encode(value.U32(1)) // 01 00 00 00
func Encode(v value.Value, opts ...Option) ([]byte, error) {
	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	if err := EncodeTo(buf, v, opts...); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// EncodeTo appends the Borsh encoding of v to sink.
//
// On error sink may hold a partial prefix of the encoding.
func EncodeTo(sink encoding.Sink, v value.Value, opts ...Option) error {
	enc, err := encoder.New(sink, opts...)
	if err != nil {
		return err
	}

	return enc.Write(v)
}

// EncodeToWriter writes the Borsh encoding of v to w and returns the number
// of bytes written.
func EncodeToWriter(w io.Writer, v value.Value, opts ...Option) (int64, error) {
	sink := encoding.NewWriterSink(w)
	if err := EncodeTo(sink, v, opts...); err != nil {
		return sink.Written(), err
	}

	return sink.Written(), sink.Err()
}

// Marshal returns the Borsh encoding of the value presented by vr.
func Marshal(vr value.Valuer, opts ...Option) ([]byte, error) {
	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	enc, err := encoder.New(buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := enc.WriteValuer(vr); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// EncodedSize returns the length of the Borsh encoding of v without
// producing it.
func EncodedSize(v value.Value, opts ...Option) (int, error) {
	var counter encoding.CountingSink
	if err := EncodeTo(&counter, v, opts...); err != nil {
		return 0, err
	}

	return counter.Len(), nil
}

// Fingerprint returns the xxHash64 of the Borsh encoding of v.
//
// Since the encoding is canonical, equal values always have equal
// fingerprints. The encoding is hashed as it is produced and never held in
// memory as a whole.
func Fingerprint(v value.Value, opts ...Option) (uint64, error) {
	digest := hash.NewDigest()
	if err := EncodeTo(digest, v, opts...); err != nil {
		return 0, err
	}

	return digest.Sum64(), nil
}

// EncodeCompressed encodes v and seals the encoding in a compression
// envelope (see compress.Seal). The envelope is not itself Borsh; use
// Decompress to recover the encoding.
func EncodeCompressed(v value.Value, compression format.CompressionType, opts ...Option) ([]byte, error) {
	sealed, _, err := EncodeCompressedWithStats(v, compression, opts...)
	return sealed, err
}

// EncodeCompressedWithStats is like EncodeCompressed and also reports how
// well the encoding compressed.
func EncodeCompressedWithStats(v value.Value, compression format.CompressionType, opts ...Option) ([]byte, compress.Stats, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, compress.Stats{}, err
	}

	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	if err := EncodeTo(buf, v, opts...); err != nil {
		return nil, compress.Stats{}, err
	}

	return compress.SealWithStats(codec, buf.Bytes())
}

// Decompress opens an envelope produced by EncodeCompressed and returns the
// Borsh encoding inside it.
func Decompress(sealed []byte) ([]byte, error) {
	return compress.Open(sealed)
}
