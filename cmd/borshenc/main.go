package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/arloliu/borsh"
	"github.com/arloliu/borsh/compress"
	"github.com/arloliu/borsh/encoder"
	"github.com/arloliu/borsh/errs"
	"github.com/arloliu/borsh/format"
	"github.com/arloliu/borsh/value"
)

var (
	verbose = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log encoding details and failures to stderr",
	}
	input = cli.StringFlag{
		Name:  "input, i",
		Usage: "YAML document describing the value to encode",
	}
	output = cli.StringFlag{
		Name:  "output, o",
		Usage: "File to write the encoding to; hex is printed to stdout when omitted",
	}
	compression = cli.StringFlag{
		Name:  "compress, c",
		Usage: "Seal the encoding in a compression envelope: none, zstd, s2 or lz4",
		Value: "none",
	}
	strictUTF8 = cli.BoolFlag{
		Name:  "strict-utf8",
		Usage: "Reject strings that are not valid UTF-8",
	}
	rejectNaN = cli.BoolFlag{
		Name:  "reject-nan",
		Usage: "Reject NaN floats",
	}
)

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "borshenc"
	app.Usage = "Encode values described in YAML documents as Borsh"
	app.Version = "v0.1.0"
	app.Flags = []cli.Flag{verbose}
	app.Before = func(c *cli.Context) error {
		logger, err := buildLogger(c.GlobalBool(verbose.Name))
		if err != nil {
			return err
		}
		encoder.SetLogger(logger)

		return nil
	}
	app.After = func(*cli.Context) error {
		_ = encoder.Logger().Sync()
		return nil
	}

	encodeFlags := []cli.Flag{input, strictUTF8, rejectNaN}
	app.Commands = []cli.Command{
		{
			Name:   "encode",
			Usage:  "Encode a document",
			Flags:  append([]cli.Flag{output, compression}, encodeFlags...),
			Action: encodeAction,
		},
		{
			Name:   "fingerprint",
			Usage:  "Print the xxHash64 of a document's encoding",
			Flags:  encodeFlags,
			Action: fingerprintAction,
		},
		{
			Name:   "size",
			Usage:  "Print the length of a document's encoding",
			Flags:  encodeFlags,
			Action: sizeAction,
		},
	}

	return app
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

// loadValue reads the document named by --input and returns its value with
// the encoder options the flags and document ask for.
func loadValue(c *cli.Context) (value.Value, []borsh.Option, error) {
	path := c.String("input")
	if path == "" {
		return nil, nil, fmt.Errorf("--input is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	v, reg, err := parseDocument(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	var opts []borsh.Option
	if reg != nil {
		opts = append(opts, encoder.WithRegistry(reg))
	}
	if c.Bool(strictUTF8.Name) {
		opts = append(opts, encoder.WithStrictUTF8())
	}
	if c.Bool(rejectNaN.Name) {
		opts = append(opts, encoder.WithRejectNaN())
	}

	return v, opts, nil
}

func encodeAction(c *cli.Context) error {
	ct, ok := format.ParseCompression(c.String("compress"))
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrInvalidCompression, c.String("compress"))
	}

	v, opts, err := loadValue(c)
	if err != nil {
		return err
	}

	logger := encoder.Logger()

	var data []byte
	if ct == format.CompressionNone {
		data, err = borsh.Encode(v, opts...)
		if err != nil {
			return err
		}
		logger.Debug("encoded document", zap.String("input", c.String("input")), zap.Int("size", len(data)))
	} else {
		var stats compress.Stats
		data, stats, err = borsh.EncodeCompressedWithStats(v, ct, opts...)
		if err != nil {
			return err
		}
		logger.Debug("encoded and compressed document",
			zap.String("input", c.String("input")),
			zap.Stringer("algorithm", stats.Algorithm),
			zap.Int("original", stats.OriginalSize),
			zap.Int("compressed", stats.CompressedSize),
			zap.Float64("savings_pct", stats.SpaceSavings()),
		)
	}

	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, data, 0o600); err != nil {
			return err
		}
		logger.Info("wrote encoding", zap.String("output", out), zap.Int("bytes", len(data)))

		return nil
	}

	_, err = fmt.Fprintln(c.App.Writer, hex.EncodeToString(data))

	return err
}

func fingerprintAction(c *cli.Context) error {
	v, opts, err := loadValue(c)
	if err != nil {
		return err
	}

	fp, err := borsh.Fingerprint(v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.App.Writer, "%016x\n", fp)

	return err
}

func sizeAction(c *cli.Context) error {
	v, opts, err := loadValue(c)
	if err != nil {
		return err
	}

	size, err := borsh.EncodedSize(v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, size)

	return err
}
