// Package encoder writes composite Borsh values.
//
// An Encoder walks a value.Value tree and appends its canonical encoding to a
// sink through an encoding.Writer:
//
//	buf := pool.GetEncodeBuffer()
//	defer pool.PutEncodeBuffer(buf)
//
//	enc, err := encoder.New(buf)
//	if err != nil {
//	    return err
//	}
//	if err := enc.Write(v); err != nil {
//	    return err
//	}
//
// Structs are written field by field in declared order with no separators or
// names, options as a tag byte plus payload, enums as a u8 variant index plus
// payload, and arrays as a u32 count followed by the elements.
//
// An Encoder holds no state between top-level writes. On error the write
// stops at once and the sink may hold a partial prefix; nothing already
// appended is ever rewritten.
package encoder

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/borsh/encoding"
	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/internal/options"
	"github.com/arloliu/borsh/schema"
	"github.com/arloliu/borsh/value"
	"go.uber.org/zap"
)

// Encoder writes value trees to a sink.
//
// Note: The Encoder is NOT thread-safe. Each instance, and the sink it
// writes to, should be used by a single goroutine at a time.
type Encoder struct {
	w          *encoding.Writer
	logger     *zap.Logger
	registry   *schema.Registry
	maxDepth   int
	strictUTF8 bool
	rejectNaN  bool
}

// New creates an Encoder appending to sink.
//
// Parameters:
//   - sink: destination of the encoded bytes
//   - opts: optional configuration (WithLogger, WithMaxDepth, WithStrictUTF8,
//     WithRejectNaN, WithRegistry)
//
// Returns:
//   - *Encoder: the configured encoder
//   - error: errs.ErrNilValue for a nil sink, or the first option error
func New(sink encoding.Sink, opts ...Option) (*Encoder, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: sink", errs.ErrNilValue)
	}

	e := &Encoder{maxDepth: DefaultMaxDepth}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.logger == nil {
		e.logger = Logger()
	}

	e.w = encoding.NewWriter(sink)
	e.w.SetStrictUTF8(e.strictUTF8)

	return e, nil
}

// Sink returns the sink the encoder appends to.
func (e *Encoder) Sink() encoding.Sink {
	return e.w.Sink()
}

// Reset points the encoder at a new sink, keeping its configuration.
func (e *Encoder) Reset(sink encoding.Sink) {
	e.w.Reset(sink)
}

// Write appends the encoding of v.
//
// Errors returned by Write wrap one of the errs sentinels and, for nested
// values, an *Error naming the failing field path.
func (e *Encoder) Write(v value.Value) error {
	if err := e.write(v, 0, false); err != nil {
		e.logFailure(v, err)
		return err
	}

	return nil
}

// WriteArray appends values as an array: a u32 element count followed by each
// element's encoding, with no padding.
//
// All elements must share one shape (see value.Homogeneous); otherwise
// errs.ErrSchemaMismatch is returned before anything is written.
func (e *Encoder) WriteArray(values []value.Value) error {
	if err := e.writeArray(values, 0, false); err != nil {
		e.logFailure(value.Array{Items: values}, err)
		return err
	}

	return nil
}

// WriteValuer appends the encoding of the value presented by vr.
func (e *Encoder) WriteValuer(vr value.Valuer) error {
	if vr == nil {
		return fmt.Errorf("%w: valuer", errs.ErrNilValue)
	}

	v, err := vr.BorshValue()
	if err != nil {
		return fmt.Errorf("borsh value: %w", err)
	}

	return e.Write(v)
}

// Size returns the number of bytes Write would append for v without
// producing them. The encoder's sink is left untouched.
func (e *Encoder) Size(v value.Value) (int, error) {
	var counter encoding.CountingSink

	sink := e.w.Sink()
	e.w.Reset(&counter)
	defer e.w.Reset(sink)

	if err := e.Write(v); err != nil {
		return 0, err
	}

	return counter.Len(), nil
}

// write dispatches on the variant of v. checked reports whether an enclosing
// struct was already validated against the registry.
func (e *Encoder) write(v value.Value, depth int, checked bool) error {
	if v == nil {
		return errs.ErrNilValue
	}

	switch x := v.(type) {
	case value.U8:
		e.w.WriteU8(uint8(x))
	case value.U16:
		e.w.WriteU16(uint16(x))
	case value.U32:
		e.w.WriteU32(uint32(x))
	case value.U64:
		e.w.WriteU64(uint64(x))
	case value.U128:
		return e.w.WriteU128(x.Int)
	case value.I8:
		e.w.WriteI8(int8(x))
	case value.I16:
		e.w.WriteI16(int16(x))
	case value.I32:
		e.w.WriteI32(int32(x))
	case value.I64:
		e.w.WriteI64(int64(x))
	case value.I128:
		return e.w.WriteI128(x.Int)
	case value.F32:
		if e.rejectNaN && math.IsNaN(float64(x)) {
			return fmt.Errorf("%w: f32", errs.ErrNaN)
		}
		e.w.WriteF32(float32(x))
	case value.F64:
		if e.rejectNaN && math.IsNaN(float64(x)) {
			return fmt.Errorf("%w: f64", errs.ErrNaN)
		}
		e.w.WriteF64(float64(x))
	case value.Bool:
		e.w.WriteBool(bool(x))
	case value.Unit:
		// zero-sized
	case value.Bytes:
		return e.w.WriteBytes(x)
	case value.String:
		return e.w.WriteString(string(x))
	case value.FixedArray:
		return e.w.WriteFixedArray(x.Data, x.Len)
	case value.Optional:
		return e.writeOptional(x, depth, checked)
	case value.Struct:
		return e.writeStruct(x, depth, checked)
	case value.Enum:
		return e.writeEnum(x, depth, checked)
	case value.Array:
		return e.writeArray(x.Items, depth, checked)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v)
	}

	return nil
}

func (e *Encoder) enter(depth int) (int, error) {
	depth++
	if depth > e.maxDepth {
		return depth, fmt.Errorf("%w: limit %d", errs.ErrMaxDepthExceeded, e.maxDepth)
	}

	return depth, nil
}

func (e *Encoder) writeOptional(o value.Optional, depth int, checked bool) error {
	depth, err := e.enter(depth)
	if err != nil {
		return err
	}

	e.w.WriteOptionalTag(o.Present())
	if !o.Present() {
		return nil
	}

	return e.write(o.Value, depth, checked)
}

func (e *Encoder) writeStruct(s value.Struct, depth int, checked bool) error {
	depth, err := e.enter(depth)
	if err != nil {
		return err
	}

	if e.registry != nil && !checked && s.Name != "" {
		if err := e.registry.Validate(s); err != nil {
			return err
		}
		checked = true
	}

	for _, f := range s.Fields {
		if err := e.write(f.Value, depth, checked); err != nil {
			return atSegment(err, f.Name)
		}
	}

	return nil
}

func (e *Encoder) writeEnum(en value.Enum, depth int, checked bool) error {
	depth, err := e.enter(depth)
	if err != nil {
		return err
	}

	e.w.WriteU8(en.Variant)
	if en.Payload == nil {
		return nil
	}

	return e.write(en.Payload, depth, checked)
}

func (e *Encoder) writeArray(items []value.Value, depth int, checked bool) error {
	depth, err := e.enter(depth)
	if err != nil {
		return err
	}

	if i, ok := value.Homogeneous(items); !ok {
		return atSegment(
			fmt.Errorf("%w: array element shape differs from the preceding elements", errs.ErrSchemaMismatch),
			"["+strconv.Itoa(i)+"]",
		)
	}

	if err := e.w.WriteLength(len(items)); err != nil {
		return err
	}

	for i, item := range items {
		if err := e.write(item, depth, checked); err != nil {
			return atSegment(err, "["+strconv.Itoa(i)+"]")
		}
	}

	return nil
}

func (e *Encoder) logFailure(v value.Value, err error) {
	if ce := e.logger.Check(zap.DebugLevel, "borsh encode failed"); ce != nil {
		fields := []zap.Field{zap.Error(err)}
		if v != nil {
			fields = append(fields, zap.Stringer("kind", v.Kind()))
		}
		if path := ErrorPath(err); path != "" {
			fields = append(fields, zap.String("path", path))
		}
		ce.Write(fields...)
	}
}
