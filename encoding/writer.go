package encoding

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/arloliu/borsh/endian"
	"github.com/arloliu/borsh/errs"
)

// MaxLength is the largest length a u32 length prefix can carry.
const MaxLength = math.MaxUint32

var (
	twoPow127 = new(big.Int).Lsh(big.NewInt(1), 127)
	twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// Writer appends Borsh encodings of scalar and length-prefixed values to a Sink.
//
// It covers the primitive layer (fixed-width integers, floats and bools) and
// the extended layer (128-bit integers, strings, byte sequences, fixed byte
// arrays and option tags). Composite values are handled by the encoder
// package, which drives a Writer.
//
// A Writer keeps no state between calls other than its configuration: every
// method appends to the sink and nothing is ever rewritten. Methods that can
// fail validate their input before appending, so a failed call leaves the
// sink untouched.
type Writer struct {
	sink       Sink
	grower     Grower // sink as a Grower, nil if it cannot reserve capacity
	engine     endian.EndianEngine
	strictUTF8 bool
	scratch    [16]byte
}

// NewWriter creates a Writer appending to sink in little-endian byte order.
func NewWriter(sink Sink) *Writer {
	grower, _ := sink.(Grower)

	return &Writer{
		sink:   sink,
		grower: grower,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Sink returns the sink the Writer appends to.
func (w *Writer) Sink() Sink {
	return w.sink
}

// Reset points the Writer at a new sink, keeping its configuration.
func (w *Writer) Reset(sink Sink) {
	w.sink = sink
	w.grower, _ = sink.(Grower)
}

// SetStrictUTF8 makes WriteString reject strings that are not valid UTF-8.
// By default strings are written byte for byte.
func (w *Writer) SetStrictUTF8(strict bool) {
	w.strictUTF8 = strict
}

// WriteU8 appends v as one byte.
func (w *Writer) WriteU8(v uint8) {
	w.sink.AppendByte(v)
}

// WriteU16 appends v as 2 little-endian bytes.
func (w *Writer) WriteU16(v uint16) {
	w.sink.Append(w.engine.AppendUint16(w.scratch[:0], v))
}

// WriteU32 appends v as 4 little-endian bytes.
func (w *Writer) WriteU32(v uint32) {
	w.sink.Append(w.engine.AppendUint32(w.scratch[:0], v))
}

// WriteU64 appends v as 8 little-endian bytes.
func (w *Writer) WriteU64(v uint64) {
	w.sink.Append(w.engine.AppendUint64(w.scratch[:0], v))
}

// WriteI8 appends v as one two's complement byte.
func (w *Writer) WriteI8(v int8) {
	w.WriteU8(uint8(v)) //nolint:gosec
}

// WriteI16 appends v as 2 little-endian two's complement bytes.
func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v)) //nolint:gosec
}

// WriteI32 appends v as 4 little-endian two's complement bytes.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v)) //nolint:gosec
}

// WriteI64 appends v as 8 little-endian two's complement bytes.
func (w *Writer) WriteI64(v int64) {
	w.WriteU64(uint64(v)) //nolint:gosec
}

// WriteF32 appends the IEEE-754 bits of v as 4 little-endian bytes.
func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteF64 appends the IEEE-754 bits of v as 8 little-endian bytes.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteBool appends 0x01 for true and 0x00 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.sink.AppendByte(1)
		return
	}
	w.sink.AppendByte(0)
}

// WriteU128 appends v as 16 little-endian bytes.
//
// The magnitude of v is extracted big-endian and zero-padded to 16 bytes,
// then written low half first. v is never truncated or wrapped.
//
// Returns:
//   - errs.ErrNilValue if v is nil
//   - errs.ErrUnderflow if v is negative
//   - errs.ErrOverflow if v needs more than 128 bits
func (w *Writer) WriteU128(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: u128", errs.ErrNilValue)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("%w: u128 value %s is negative", errs.ErrUnderflow, v)
	}
	if n := v.BitLen(); n > 128 {
		return fmt.Errorf("%w: u128 value needs %d bits", errs.ErrOverflow, n)
	}

	w.appendUint128(v)

	return nil
}

// WriteI128 appends v as 16 little-endian two's complement bytes.
//
// Returns:
//   - errs.ErrNilValue if v is nil
//   - errs.ErrUnderflow if v < -2^127
//   - errs.ErrOverflow if v >= 2^127
func (w *Writer) WriteI128(v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: i128", errs.ErrNilValue)
	}

	if v.Sign() >= 0 {
		if v.Cmp(twoPow127) >= 0 {
			return fmt.Errorf("%w: i128 value %s exceeds 2^127-1", errs.ErrOverflow, v)
		}
		w.appendUint128(v)

		return nil
	}

	if new(big.Int).Neg(v).Cmp(twoPow127) > 0 {
		return fmt.Errorf("%w: i128 value %s is below -2^127", errs.ErrUnderflow, v)
	}
	w.appendUint128(new(big.Int).Add(v, twoPow128))

	return nil
}

// appendUint128 writes a non-negative value known to fit in 128 bits.
func (w *Writer) appendUint128(v *big.Int) {
	v.FillBytes(w.scratch[:])
	u := endian.Uint128FromBigEndian(w.scratch[:])
	w.sink.Append(endian.AppendUint128(w.engine, w.scratch[:0], u))
}

// WriteLength appends n as a u32 length prefix.
//
// Returns errs.ErrUnderflow for a negative n and errs.ErrOverflow when n does
// not fit in 32 bits.
func (w *Writer) WriteLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: length %d is negative", errs.ErrUnderflow, n)
	}
	if uint64(n) > MaxLength {
		return fmt.Errorf("%w: length %d exceeds u32 range", errs.ErrOverflow, n)
	}

	w.WriteU32(uint32(n))

	return nil
}

// WriteBytes appends a u32 length prefix followed by the raw bytes of b.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.WriteLength(len(b)); err != nil {
		return err
	}
	w.reserve(len(b))
	w.sink.Append(b)

	return nil
}

// WriteString appends s exactly like WriteBytes appends its UTF-8 bytes.
// No normalization is applied and no BOM is written.
//
// In strict mode, returns errs.ErrInvalidUTF8 when s is not valid UTF-8.
func (w *Writer) WriteString(s string) error {
	if w.strictUTF8 && !utf8.ValidString(s) {
		return errs.ErrInvalidUTF8
	}
	if err := w.WriteLength(len(s)); err != nil {
		return err
	}
	w.reserve(len(s))
	w.sink.Append([]byte(s))

	return nil
}

// WriteFixedArray appends the raw bytes of b with no length prefix.
//
// size is the length declared by the schema; both sides of the wire know it,
// so it is never written. The caller must pass len(b) == size, otherwise
// errs.ErrPreconditionViolation is returned and nothing is written.
func (w *Writer) WriteFixedArray(b []byte, size int) error {
	if len(b) != size {
		return fmt.Errorf("%w: got %d bytes, declared %d", errs.ErrPreconditionViolation, len(b), size)
	}
	w.sink.Append(b)

	return nil
}

func (w *Writer) reserve(n int) {
	if w.grower != nil {
		w.grower.Grow(n)
	}
}

// WriteOptionalTag appends the option tag: 1 when a payload follows, 0 otherwise.
func (w *Writer) WriteOptionalTag(present bool) {
	w.WriteBool(present)
}
