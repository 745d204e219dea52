// Package errs defines the sentinel errors returned by the borsh packages.
//
// Errors are returned wrapped with additional context, for example
//
//	fmt.Errorf("%w: value needs %d bits", errs.ErrOverflow, n)
//
// so callers should compare with errors.Is rather than by equality.
package errs

import "errors"

// Encoding errors.
var (
	// ErrUnderflow is returned when a negative value is given where an unsigned one is required.
	ErrUnderflow = errors.New("integer underflow")
	// ErrOverflow is returned when a value exceeds its declared bit width,
	// including the u32 length prefix of strings, byte sequences and arrays.
	ErrOverflow = errors.New("integer overflow")
	// ErrUnsupportedType is returned when a value variant is not part of the dispatch table.
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrPreconditionViolation is returned when a fixed-length byte array does not match
	// its declared length.
	ErrPreconditionViolation = errors.New("fixed array length mismatch")
	// ErrNilValue is returned when a nil value or a nil big integer is encoded.
	ErrNilValue = errors.New("nil value")
	// ErrInvalidUTF8 is returned in strict mode when a string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")
	// ErrNaN is returned when NaN rejection is enabled and a float is NaN.
	ErrNaN = errors.New("NaN float value")
	// ErrMaxDepthExceeded is returned when a value nests deeper than the configured limit.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")
	// ErrSchemaMismatch is returned when a value does not conform to its declared schema,
	// or when array elements do not share one shape.
	ErrSchemaMismatch = errors.New("value does not match schema")
)

// Schema definition errors.
var (
	ErrDuplicateField = errors.New("duplicate field name")
	ErrDuplicateType  = errors.New("struct type already defined")
	ErrUnknownType    = errors.New("unknown struct type")
	ErrCyclicSchema   = errors.New("cyclic schema")
	ErrInvalidSchema  = errors.New("invalid schema declaration")
)

// Compression errors.
var (
	// ErrInvalidCompression is returned for an unknown compression type or an
	// envelope too short to hold its header.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrCorruptEnvelope is returned when an envelope's declared length is
	// implausible for its payload or differs from the restored length.
	ErrCorruptEnvelope = errors.New("corrupt compression envelope")
)
