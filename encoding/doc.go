// Package encoding implements the primitive and extended layers of the Borsh
// wire format on top of an append-only Sink.
//
// # Wire Format
//
// All multi-byte integers and floats are little-endian:
//
//	u8/i8/bool          1 byte
//	u16/i16             2 bytes
//	u32/i32/f32         4 bytes
//	u64/i64/f64         8 bytes
//	u128/i128           16 bytes
//	string, bytes       u32 length || raw bytes
//	fixed byte array    raw bytes (length comes from the schema)
//	option tag          u8, 0 = absent, 1 = present
//
// Strings are written as their raw UTF-8 bytes, with no normalization.
//
// # Usage
//
//	buf := pool.GetEncodeBuffer()
//	defer pool.PutEncodeBuffer(buf)
//
//	w := encoding.NewWriter(buf)
//	w.WriteU32(1)                       // 01 00 00 00
//	_ = w.WriteString("hi")             // 02 00 00 00 68 69
//	_ = w.WriteU128(big.NewInt(300))    // 2c 01 00 ... 00
//
// # Sinks
//
// Any type with Append and AppendByte is a Sink. The package provides
// WriterSink for io.Writer destinations and CountingSink for size-only
// passes; the in-memory buffer lives in internal/pool.
//
// Writers and sinks are not safe for concurrent use.
package encoding
