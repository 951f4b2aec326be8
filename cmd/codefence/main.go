package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/codefence"
	"pkt.systems/version"
)

const (
	defaultChunkSize = 3
	defaultDelay     = 20 * time.Millisecond
	defaultInclude   = "*.md"
	markersEnv       = "CODEFENCE_MARKERS"
)

func init() {
	version.SetDefaultModule("pkt.systems/codefence")
}

func main() {
	var (
		simulate     bool
		simChunkSize int
		simDelay     time.Duration
		markersName  string
		colorFlag    string
		listMarkers  bool
		outPath      string
		validate     bool
		include      string
		traceLevel   string
	)

	flags := pflag.NewFlagSet("codefence", pflag.ExitOnError)
	flags.BoolVar(&simulate, "simulate", false, "Stream simulator (use default delay and chunk size)")
	flags.IntVar(&simChunkSize, "simulate-chunk", defaultChunkSize, "Bytes per simulated chunk")
	flags.DurationVar(&simDelay, "simulate-delay", defaultDelay, "Delay per simulated chunk")
	flags.StringVarP(&markersName, "markers", "m", "", "Marker vocabulary (default: ansi on a color terminal, html otherwise)")
	flags.StringVar(&colorFlag, "color", "auto", "Color when no --markers is given: auto|on|off")
	flags.BoolVar(&listMarkers, "list-markers", false, "List available marker vocabularies")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&validate, "validate", false, "Reject input that is not UTF-8 text")
	flags.StringVar(&include, "include", defaultInclude, "Glob for files taken from directory inputs")
	flags.StringVar(&traceLevel, "trace", "Error", "Trace level: Error|Info|Debug")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: codefence [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files, directories, file:// or http(s):// URLs.")
		fmt.Fprintln(os.Stderr, "If no input is provided, text is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listMarkers {
		printMarkers(os.Stdout)
		return
	}

	level, err := resolveTraceLevel(traceLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --trace %q: %v\n", traceLevel, err)
		os.Exit(2)
	}
	tracer := gologadapter.New()
	tracer.SetTraceLevel(level)

	matcher, err := newIncludeMatcher(include)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --include: %v\n", err)
		os.Exit(2)
	}

	reader, closer, err := openInputs(flags.Args(), matcher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	markers, err := resolveMarkers(markersName, os.Getenv(markersEnv), colorFlag, isTerminal(writer))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printMarkers(os.Stderr)
		os.Exit(2)
	}

	if err := run(runConfig{
		reader:    reader,
		writer:    writer,
		markers:   markers,
		validate:  validate,
		tracer:    tracer,
		simulate:  simulate,
		chunkSize: simChunkSize,
		delay:     simDelay,
		warn:      os.Stderr,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	reader    io.Reader
	writer    io.Writer
	markers   codefence.Markers
	validate  bool
	tracer    tracing.Trace
	simulate  bool
	chunkSize int
	delay     time.Duration
	warn      io.Writer
}

func run(cfg runConfig) error {
	out := cfg.writer
	var sink *ansiSink
	if isANSI(cfg.markers) {
		sink = newANSISink(cfg.writer)
		out = sink
	}
	opts := []codefence.Option{
		codefence.WithMarkers(cfg.markers),
		codefence.WithValidation(cfg.validate),
	}
	if cfg.tracer != nil {
		opts = append(opts, codefence.WithTracer(cfg.tracer))
	}
	onEOF := func(mode codefence.Mode, buffered int) {
		if mode != codefence.ModeText && cfg.warn != nil {
			fmt.Fprintf(cfg.warn, "warning: input ended in %s mode with %d bytes held back\n", mode, buffered)
		}
	}
	var err error
	if cfg.simulate {
		err = codefence.StreamSimulate(codefence.StreamSimulateRequest{
			Reader:    cfg.reader,
			Writer:    out,
			ChunkSize: cfg.chunkSize,
			Delay:     cfg.delay,
			Options:   opts,
			OnEOF:     onEOF,
		})
	} else {
		err = codefence.Render(codefence.RenderRequest{
			Reader:  cfg.reader,
			Writer:  out,
			Options: opts,
			OnEOF:   onEOF,
		})
	}
	if sink != nil {
		if cerr := sink.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write: %w", cerr)
		}
	}
	return err
}

// resolveMarkers picks the vocabulary: an explicit name, then the
// environment, then ANSI or HTML depending on color support.
func resolveMarkers(name, envName, colorMode string, terminal bool) (codefence.Markers, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = strings.TrimSpace(envName)
	}
	if name != "" {
		m, ok := codefence.MarkersByName(name)
		if !ok {
			return codefence.Markers{}, fmt.Errorf("unknown markers %q", name)
		}
		return m, nil
	}
	color, err := resolveColor(colorMode, terminal)
	if err != nil {
		return codefence.Markers{}, fmt.Errorf("invalid --color %q: %w", colorMode, err)
	}
	if color {
		m, _ := codefence.MarkersByName("ansi")
		return m, nil
	}
	return codefence.DefaultMarkers(), nil
}

func resolveColor(mode string, terminal bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return terminal && codefence.DetectColor(), nil
	case "on", "true", "1", "yes", "always":
		return true, nil
	case "off", "false", "0", "no", "never":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func resolveTraceLevel(level string) (tracing.TraceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	default:
		return tracing.LevelError, fmt.Errorf("expected Error|Info|Debug")
	}
}

func isANSI(m codefence.Markers) bool {
	return strings.HasPrefix(m.InlineOpen, "\x1b[") || strings.HasPrefix(m.BlockOpen, "\x1b[")
}

func resolveOutput(p string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(p) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(p)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
