package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/borsh/compress"
	"github.com/arloliu/borsh/encoder"
	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/internal/hash"
)

func writeDoc(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { encoder.SetLogger(nil) })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"borshenc"}, args...))

	return strings.TrimSpace(out.String()), err
}

const pointDoc = `
value:
  type: struct
  name: Point
  fields:
    - {name: x, type: u8, value: 1}
    - {name: y, type: u16, value: 2}
`

func TestEncodeCommand_Hex(t *testing.T) {
	out, err := run(t, "encode", "--input", writeDoc(t, pointDoc))
	require.NoError(t, err)
	require.Equal(t, "010200", out)
}

func TestEncodeCommand_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.bin")

	_, err := run(t, "--verbose", "encode", "-i", writeDoc(t, pointDoc), "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x00}, data)
}

func TestEncodeCommand_Compressed(t *testing.T) {
	for _, name := range []string{"zstd", "s2", "lz4"} {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, "encode", "--input", writeDoc(t, pointDoc), "--compress", name)
			require.NoError(t, err)

			sealed, err := hex.DecodeString(out)
			require.NoError(t, err)

			opened, err := compress.Open(sealed)
			require.NoError(t, err)
			require.Equal(t, []byte{0x01, 0x02, 0x00}, opened)
		})
	}

	_, err := run(t, "encode", "--input", writeDoc(t, pointDoc), "--compress", "brotli")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestFingerprintCommand(t *testing.T) {
	out, err := run(t, "fingerprint", "--input", writeDoc(t, pointDoc))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%016x", hash.Sum([]byte{0x01, 0x02, 0x00})), out)
}

func TestSizeCommand(t *testing.T) {
	out, err := run(t, "size", "--input", writeDoc(t, "value: {type: string, value: hello}"))
	require.NoError(t, err)
	require.Equal(t, "9", out)
}

func TestCommands_Errors(t *testing.T) {
	_, err := run(t, "size")
	require.ErrorContains(t, err, "--input is required")

	_, err = run(t, "size", "--input", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "encode", "--strict-utf8", "--input", writeDoc(t, "value: {type: bytes, value: ff}"))
	require.NoError(t, err, "strict UTF-8 only applies to strings")

	_, err = run(t, "encode", "--input", writeDoc(t, `
structs:
  - name: Point
    fields:
      - {name: x, type: u8}
      - {name: y, type: u8}
`+pointDoc))
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	_, err = run(t, "encode", "--reject-nan", "--input", writeDoc(t, "value: {type: f64, value: .nan}"))
	require.ErrorIs(t, err, errs.ErrNaN)
}
