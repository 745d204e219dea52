package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of an encoded payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates an xxHash64 over appended bytes. It has the Append and
// AppendByte methods of an encoding sink, so a value can be fingerprinted
// without materializing its encoding.
type Digest struct {
	d   *xxhash.Digest
	one [1]byte
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Append hashes data.
func (d *Digest) Append(data []byte) {
	_, _ = d.d.Write(data)
}

// AppendByte hashes a single byte.
func (d *Digest) AppendByte(b byte) {
	d.one[0] = b
	_, _ = d.d.Write(d.one[:])
}

// Sum64 returns the hash of everything appended so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Reset discards everything appended so far.
func (d *Digest) Reset() {
	d.d.Reset()
}
