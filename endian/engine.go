// Package endian provides byte order utilities for the borsh encoders.
//
// Borsh fixes the byte order of every multi-byte integer and float to
// little-endian. This package wraps Go's encoding/binary byte orders behind
// the EndianEngine interface, which combines ByteOrder and AppendByteOrder,
// and adds the 128-bit helpers that encoding/binary does not provide.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, 1) // 01 00 00 00
//	buf = endian.AppendUint128(engine, buf, endian.Uint128{Lo: 300})
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Uint128 is an unsigned 128-bit integer split into two 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Uint128FromBigEndian builds a Uint128 from a 16-byte big-endian magnitude,
// such as the output of big.Int.FillBytes.
//
// Panics if b is shorter than 16 bytes.
func Uint128FromBigEndian(b []byte) Uint128 {
	_ = b[15]

	be := GetBigEndianEngine()

	return Uint128{
		Hi: be.Uint64(b[0:8]),
		Lo: be.Uint64(b[8:16]),
	}
}

// IsLittleEndian reports whether engine writes the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 1
}

// AppendUint128 appends the 16-byte representation of v to b in the byte order of engine.
func AppendUint128(engine EndianEngine, b []byte, v Uint128) []byte {
	if IsLittleEndian(engine) {
		b = engine.AppendUint64(b, v.Lo)
		return engine.AppendUint64(b, v.Hi)
	}

	b = engine.AppendUint64(b, v.Hi)

	return engine.AppendUint64(b, v.Lo)
}

// GetLittleEndianEngine returns the little-endian engine, the only byte order Borsh uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// It is never used on the Borsh wire; it reads the magnitudes produced by
// big.Int.FillBytes.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
