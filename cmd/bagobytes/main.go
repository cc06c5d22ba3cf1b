// Command bagobytes writes a zlib compressed, Base64 encoded rendition of a
// file to stdout, or restores the file from such a rendition.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/bagobytes"
	"github.com/arloliu/bagobytes/compress"
	"github.com/arloliu/bagobytes/internal/config"
	"github.com/arloliu/bagobytes/internal/hash"
	"github.com/arloliu/bagobytes/internal/selftest"
)

const usage = "Produces to stdout a zlib compressed, base64 encoded rendition of the file's contents."

var errVerifyWithDecode = errors.New("--verify cannot be combined with --decode")

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the tool and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return 0
	}

	code := 1
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	if msg := err.Error(); msg != "" {
		fmt.Fprintf(stderr, "Fatal error: %s\n", msg)
	}

	return code
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "bagobytes",
		Usage:     usage,
		ArgsUsage: "FILE",
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are mapped by run.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load settings from a YAML `FILE`",
			},
			&cli.BoolFlag{
				Name:    "decode",
				Aliases: []string{"d"},
				Usage:   "treat FILE as encoded text and write the original contents",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "decode the encoded text again and compare it with the file (encoding only)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
			&cli.IntFlag{
				Name:  "chunk-capacity",
				Usage: "intermediate buffer size in `BYTES`",
			},
		},
		Action: func(c *cli.Context) error {
			return action(c, stdout, stderr)
		},
	}
}

func action(c *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := append(cfg.CodecOptions(), compress.WithLogger(logger))

	switch c.NArg() {
	case 0:
		fmt.Fprintf(stderr, "Usage: %s [options] FILE\n%s\n", c.App.Name, usage)

		return runSelfTest(logger, opts)
	case 1:
	default:
		return fmt.Errorf("expected one FILE argument, got %d", c.NArg())
	}

	// The verify setting of a config file only applies to encoding.
	if c.Bool("decode") && c.IsSet("verify") {
		return errVerifyWithDecode
	}

	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if c.Bool("decode") {
		return decodeFile(stdout, data, opts)
	}

	return encodeFile(stdout, logger, path, data, cfg.Verify, opts)
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("chunk-capacity") {
		cfg.ChunkCapacity = c.Int("chunk-capacity")
	}
	if c.IsSet("verify") {
		cfg.Verify = c.Bool("verify")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, stderr io.Writer) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		level,
	)

	return zap.New(core).Named("bagobytes"), nil
}

func runSelfTest(logger *zap.Logger, opts []compress.CodecOption) error {
	codec, err := compress.NewChunkedCodec(opts...)
	if err != nil {
		return err
	}

	if err := selftest.Run(codec); err != nil {
		return fmt.Errorf("self-test failed: %w", err)
	}

	logger.Info("self-test passed",
		zap.Int("base64_vectors", len(selftest.Base64Vectors)),
		zap.Int("deflate_samples", len(selftest.DeflateSamples)),
	)

	// Running without a file is a usage error even when the self-test passes.
	return cli.Exit("", 1)
}

func encodeFile(stdout io.Writer, logger *zap.Logger, path string, data []byte, verify bool, opts []compress.CodecOption) error {
	text, stats, err := bagobytes.EncodeFileWithStats(data, opts...)
	if err != nil {
		return err
	}

	if verify {
		if err := bagobytes.Verify(data, text, opts...); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	logger.Info("encoded file",
		zap.String("path", path),
		zap.String("fingerprint", fmt.Sprintf("%016x", hash.Sum(data))),
		zap.Int64("original_size", stats.OriginalSize),
		zap.Int64("compressed_size", stats.CompressedSize),
		zap.Int64("encoded_size", stats.EncodedSize),
		zap.Float64("ratio", stats.CompressionRatio()),
		zap.Duration("duration", stats.Duration),
		zap.Bool("verified", verify),
	)

	_, err = io.WriteString(stdout, text+"\n")

	return err
}

func decodeFile(stdout io.Writer, data []byte, opts []compress.CodecOption) error {
	restored, err := bagobytes.DecodeText(strings.TrimSpace(string(data)), opts...)
	if err != nil {
		return err
	}

	_, err = stdout.Write(restored)

	return err
}
