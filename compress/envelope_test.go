package compress

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
)

func TestSealOpen(t *testing.T) {
	payloads := map[string][]byte{
		"empty":  {},
		"byte":   {0x01},
		"string": {0x02, 0x00, 0x00, 0x00, 0x68, 0x69},
		"array":  borshLikePayload(512),
	}

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				sealed, err := Seal(ct, data)
				require.NoError(t, err)
				require.GreaterOrEqual(t, len(sealed), HeaderSize)
				require.Equal(t, byte(ct), sealed[0])
				require.Equal(t, []byte{byte(len(data)), byte(len(data) >> 8), 0, 0}, sealed[1:HeaderSize])

				opened, err := Open(sealed)
				require.NoError(t, err)
				require.Len(t, opened, len(data))
				if len(data) > 0 {
					require.Equal(t, data, opened)
				}
			})
		}
	}
}

func TestSeal_NoneKeepsPayloadVisible(t *testing.T) {
	data := []byte{0x2c, 0x01}

	sealed, err := Seal(format.CompressionNone, data)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(format.CompressionNone), 0x02, 0x00, 0x00, 0x00, 0x2c, 0x01}, sealed)
}

func TestSealWithStats(t *testing.T) {
	data := borshLikePayload(256)

	sealed, stats, err := SealWithStats(NewS2Compressor(), data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, len(data), stats.OriginalSize)
	require.Equal(t, len(sealed)-HeaderSize, stats.CompressedSize)

	opened, err := Open(sealed)
	require.NoError(t, err)
	require.Equal(t, data, opened)
}

func TestSeal_InvalidCompression(t *testing.T) {
	_, err := Seal(format.CompressionType(42), []byte{1})
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestOpen_Errors(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		_, err := Open([]byte{byte(format.CompressionZstd), 0x01})
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Open([]byte{0x7f, 0, 0, 0, 0})
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("length mismatch", func(t *testing.T) {
		sealed, err := Seal(format.CompressionNone, []byte{1, 2, 3})
		require.NoError(t, err)
		sealed[1] = 9

		_, err = Open(sealed)
		require.ErrorIs(t, err, errs.ErrCorruptEnvelope)
	})

	t.Run("lz4 declared size over limit", func(t *testing.T) {
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)

		_, err := Open([]byte{byte(format.CompressionLZ4), 0xff, 0xff, 0xff, 0xff, 0x00})
		require.ErrorIs(t, err, errs.ErrCorruptEnvelope)

		runtime.ReadMemStats(&after)
		require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "the declared size must not be allocated")
	})

	t.Run("lz4 declared size beyond expansion bound", func(t *testing.T) {
		sealed, err := Seal(format.CompressionLZ4, borshLikePayload(64))
		require.NoError(t, err)

		size := uint32(len(sealed)-HeaderSize)*lz4MaxExpansion + 1
		sealed[1], sealed[2], sealed[3], sealed[4] = byte(size), byte(size>>8), byte(size>>16), byte(size>>24)

		_, err = Open(sealed)
		require.ErrorIs(t, err, errs.ErrCorruptEnvelope)
	})

	t.Run("lz4 empty payload with declared size", func(t *testing.T) {
		_, err := Open([]byte{byte(format.CompressionLZ4), 0x10, 0, 0, 0})
		require.ErrorIs(t, err, errs.ErrCorruptEnvelope)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		sealed, err := Seal(format.CompressionS2, borshLikePayload(64))
		require.NoError(t, err)
		for i := HeaderSize; i < len(sealed); i++ {
			sealed[i] = 0xff
		}

		_, err = Open(sealed)
		require.Error(t, err)
	})
}
