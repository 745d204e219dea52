package format

type (
	Kind            uint8
	CompressionType uint8
)

// Value kinds. The zero Kind is invalid.
const (
	KindU8 Kind = iota + 1
	KindU16
	KindU32
	KindU64
	KindU128
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindF32
	KindF64
	KindBool
	KindUnit
	KindBytes
	KindString
	KindOptional
	KindStruct
	KindEnum
	KindFixedArray
	KindArray
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var kindNames = map[Kind]string{
	KindU8:         "u8",
	KindU16:        "u16",
	KindU32:        "u32",
	KindU64:        "u64",
	KindU128:       "u128",
	KindI8:         "i8",
	KindI16:        "i16",
	KindI32:        "i32",
	KindI64:        "i64",
	KindI128:       "i128",
	KindF32:        "f32",
	KindF64:        "f64",
	KindBool:       "bool",
	KindUnit:       "unit",
	KindBytes:      "bytes",
	KindString:     "string",
	KindOptional:   "option",
	KindStruct:     "struct",
	KindEnum:       "enum",
	KindFixedArray: "fixed_array",
	KindArray:      "array",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// ParseKind returns the Kind named by s, as printed by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}

	return 0, false
}

// FixedWidth returns the encoded width of fixed-width scalar kinds.
// It returns false for variable-width and composite kinds.
func (k Kind) FixedWidth() (int, bool) {
	switch k { //nolint: exhaustive
	case KindU8, KindI8, KindBool:
		return 1, true
	case KindU16, KindI16:
		return 2, true
	case KindU32, KindI32, KindF32:
		return 4, true
	case KindU64, KindI64, KindF64:
		return 8, true
	case KindU128, KindI128:
		return 16, true
	case KindUnit:
		return 0, true
	default:
		return 0, false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a case-sensitive lower-case compression name
// ("none", "zstd", "s2", "lz4").
func ParseCompression(s string) (CompressionType, bool) {
	switch s {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
