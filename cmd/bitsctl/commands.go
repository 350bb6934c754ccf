package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/dump"
	"github.com/danmuck/bitsctl/internal/input"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/protocol/eval"
	"github.com/danmuck/bitsctl/internal/protocol/packet"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errNoTransmission = errors.New("no transmission: pass -hex, a positional hex string, or -input")

type options struct {
	configPath  string
	inputPath   string
	hex         string
	maxDepth    int
	format      string
	overflow    string
	metricsFile string
	logLevel    string
	cborPath    string
}

func newFlagSet(cmd string, stderr io.Writer) (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "TOML config file")
	fs.StringVar(&opts.inputPath, "input", "", "input file; the first non-blank line is the transmission")
	fs.StringVar(&opts.hex, "hex", "", "transmission as hex")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "maximum packet nesting, 0 for unlimited")
	fs.StringVar(&opts.overflow, "overflow", config.OverflowBig, "value width: big or uint64")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to this textfile")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	if cmd == "dump" {
		fs.StringVar(&opts.format, "format", string(dump.FormatText), "text, expr, json, yaml or cbor")
	}
	if cmd == "encode" {
		fs.StringVar(&opts.cborPath, "cbor", "", "read the tree from a CBOR dump instead of a transmission")
	}
	return fs, opts
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func resolveConfig(fs *flag.FlagSet, opts *options) (config.DecoderConfig, error) {
	cfg := config.DefaultDecoderConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = loadRunConfig(opts.configPath, cfg)
		if err != nil {
			return config.DecoderConfig{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = opts.inputPath
		case "max-depth":
			cfg.MaxDepth = opts.maxDepth
		case "format":
			cfg.Format = opts.format
		case "overflow":
			cfg.Overflow = opts.overflow
		case "metrics-file":
			cfg.MetricsFile = opts.metricsFile
		case "log-level":
			cfg.LogLevel = opts.logLevel
		}
	})
	cfg.Overflow = strings.ToLower(strings.TrimSpace(cfg.Overflow))
	if err := config.ValidateDecoderConfig(cfg); err != nil {
		return config.DecoderConfig{}, err
	}
	return cfg, nil
}

func transmission(opts *options, args []string, cfg config.DecoderConfig) (string, error) {
	if v := strings.TrimSpace(opts.hex); v != "" {
		return v, nil
	}
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	if cfg.Input == "" {
		return "", errNoTransmission
	}
	lines, err := input.ReadLines(cfg.Input)
	if err != nil {
		return "", err
	}
	return input.Transmission(lines)
}

func runCommand(cmd string, args []string, stdout, stderr io.Writer) error {
	fs, opts := newFlagSet(cmd, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logging.ConfigureRuntime()
	cfg, err := resolveConfig(fs, opts)
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" && os.Getenv(logging.EnvLogLevel) == "" {
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	logger := log.With().
		Str("run", uuid.NewString()).
		Str("cmd", cmd).
		Logger()

	if opts.cborPath != "" {
		p, err := loadDump(logger, opts.cborPath)
		if err != nil {
			return err
		}
		return report(cmd, stdout, p, cfg)
	}

	hex, err := transmission(opts, fs.Args(), cfg)
	if err != nil {
		return err
	}

	p, err := decode(logger, hex, cfg)
	if cfg.MetricsFile != "" {
		if werr := observability.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Warn().Err(werr).Str("path", cfg.MetricsFile).Msg("metrics textfile write failed")
		}
	}
	if err != nil {
		return err
	}
	return report(cmd, stdout, p, cfg)
}

func decode(logger zerolog.Logger, hex string, cfg config.DecoderConfig) (*packet.Packet, error) {
	start := time.Now()
	p, err := packet.DecodeWithOptions(hex, packet.Options{MaxDepth: cfg.MaxDepth})
	elapsed := time.Since(start)
	if err != nil {
		kind := packet.ErrorKind(err)
		observability.RecordDecodeError(kind, elapsed)
		logger.Error().Err(err).Str("kind", kind).Int("hex_len", len(hex)).Msg("decode failed")
		return nil, err
	}
	stats := eval.Collect(p)
	observability.RecordDecode(stats.Count, elapsed)
	logger.Debug().
		Int("hex_len", len(hex)).
		Int("packets", stats.Count).
		Int("depth", stats.Depth).
		Int("literals", stats.Literals).
		Dur("elapsed", elapsed).
		Msg("decoded transmission")
	return p, nil
}

// loadDump rebuilds a packet tree from a CBOR dump written by "dump -format cbor".
func loadDump(logger zerolog.Logger, path string) (*packet.Packet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cbor dump (%s): %w", path, err)
	}
	n, err := dump.DecodeCBOR(data)
	if err != nil {
		return nil, err
	}
	p, err := n.Packet()
	if err != nil {
		return nil, fmt.Errorf("rebuild tree from %s: %w", path, err)
	}
	logger.Debug().Str("path", path).Int("packets", eval.Collect(p).Count).Msg("loaded cbor dump")
	return p, nil
}

func report(cmd string, w io.Writer, p *packet.Packet, cfg config.DecoderConfig) error {
	switch cmd {
	case "run":
		value, err := evaluate(p, cfg.Overflow)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "part1: %d\npart2: %s\n", eval.SumVersions(p), value)
		return err
	case "versions":
		_, err := fmt.Fprintln(w, eval.SumVersions(p))
		return err
	case "eval":
		value, err := evaluate(p, cfg.Overflow)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, value)
		return err
	case "dump":
		format, err := dump.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}
		return dump.Write(w, p, format)
	case "encode":
		out, err := packet.EncodeHex(p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func evaluate(p *packet.Packet, overflow string) (*big.Int, error) {
	if overflow == config.OverflowUint64 {
		v, err := eval.EvaluateUint64(p)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(v), nil
	}
	return eval.Evaluate(p)
}
