package encoding

import "io"

// Sink is an append-only destination for encoded bytes.
//
// Encoders only ever append; they never read back, seek or rewind.
// A Sink is owned by one encode call at a time: concurrent writers to the
// same Sink are a caller error and are not guarded against.
type Sink interface {
	Append(data []byte)
	AppendByte(b byte)
}

// Grower is implemented by sinks that can reserve capacity ahead of an
// append. A Writer reserves room for the payload of strings and byte
// sequences once their length prefix has been validated.
type Grower interface {
	Grow(n int)
}

// WriterSink adapts an io.Writer to the Sink interface.
//
// Write errors are sticky: after the first failure every further append is
// dropped and Err reports the original error. Wrap the writer in a
// bufio.Writer when it is unbuffered.
type WriterSink struct {
	w       io.Writer
	err     error
	written int64
	one     [1]byte
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink creates a Sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Append writes data to the underlying writer.
func (s *WriterSink) Append(data []byte) {
	if s.err != nil || len(data) == 0 {
		return
	}

	n, err := s.w.Write(data)
	s.written += int64(n)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	s.err = err
}

// AppendByte writes a single byte to the underlying writer.
func (s *WriterSink) AppendByte(b byte) {
	s.one[0] = b
	s.Append(s.one[:])
}

// Err returns the first error reported by the underlying writer, if any.
func (s *WriterSink) Err() error {
	return s.err
}

// Written returns the number of bytes accepted by the underlying writer.
func (s *WriterSink) Written() int64 {
	return s.written
}

// CountingSink discards data and only records how many bytes were appended.
// It is used to compute encoded sizes without materializing the output.
type CountingSink struct {
	n int
}

var _ Sink = (*CountingSink)(nil)

// Append counts len(data) bytes.
func (s *CountingSink) Append(data []byte) {
	s.n += len(data)
}

// AppendByte counts one byte.
func (s *CountingSink) AppendByte(byte) {
	s.n++
}

// Len returns the number of bytes counted so far.
func (s *CountingSink) Len() int {
	return s.n
}

// Reset sets the count back to zero.
func (s *CountingSink) Reset() {
	s.n = 0
}
