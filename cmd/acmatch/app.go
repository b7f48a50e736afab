package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/coregx/acmatch/internal/config"
	"github.com/coregx/acmatch/internal/logging"
	"github.com/coregx/acmatch/internal/metrics"
	"github.com/coregx/acmatch/internal/scan"
)

// Exit statuses, as in grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type options struct {
	patterns    []string
	configPath  string
	runes       bool
	filesOnly   bool
	count       bool
	first       bool
	workers     int
	metricsFile string
	logLevel    string
	jsonLog     bool
	help        bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("acmatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringArrayVarP(&opts.patterns, "pattern", "p", nil, "literal pattern (repeatable)")
	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML pattern file (env ACMATCH_CONFIG)")
	fs.BoolVarP(&opts.runes, "runes", "r", false, "match on runes; offsets are rune offsets")
	fs.BoolVarP(&opts.filesOnly, "files-with-matches", "l", false, "only print names of files with a match")
	fs.BoolVar(&opts.count, "count", false, "print per-file match counts")
	fs.BoolVar(&opts.first, "first", false, "stop each file at its first match")
	fs.IntVarP(&opts.workers, "workers", "j", 0, "concurrent files (default GOMAXPROCS)")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus text metrics on exit")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "zerolog level")
	fs.BoolVar(&opts.jsonLog, "json-log", false, "JSON logs instead of console")
	fs.BoolVarP(&opts.help, "help", "h", false, "show this help")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: acmatch [flags] [FILE...]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Searches each FILE, or standard input, for every pattern and prints")
		fmt.Fprintln(stderr, "<file>:<offset>:<pattern-name> per match.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment Variables:")
		fmt.Fprintln(stderr, "  ACMATCH_CONFIG     Path to config file")
		fmt.Fprintln(stderr, "  ACMATCH_LOG_LEVEL  Log level")
		fmt.Fprintln(stderr, "  ACMATCH_WORKERS    Concurrent files")
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

// run executes the command and returns its exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return exitError
	}
	if opts.help {
		fs.Usage()
		return exitMatch
	}

	if err := logging.Setup(stderr, opts.logLevel, opts.jsonLog); err != nil {
		fmt.Fprintf(stderr, "acmatch: %v\n", err)
		return exitError
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		log.Error().Stack().Err(err).Msg("failed to load configuration")
		return exitError
	}
	if !fs.Changed("log-level") && cfg.LogLevel != opts.logLevel {
		if err := logging.Setup(stderr, cfg.LogLevel, opts.jsonLog); err != nil {
			log.Error().Err(err).Msg("failed to configure logging")
			return exitError
		}
	}

	var m *metrics.Metrics
	if opts.metricsFile != "" {
		m = metrics.New()
	}

	mode := scan.All
	switch {
	case opts.filesOnly, opts.first:
		mode = scan.First
	case opts.count:
		mode = scan.Count
	}
	scanner, err := scan.New(cfg, scan.Options{
		Workers: cfg.Workers,
		Mode:    mode,
		Metrics: m,
		Stdin:   stdin,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build scanner")
		return exitError
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{scan.Stdin}
	}
	results, runErr := scanner.Run(ctx, paths)

	code := exitNoMatch
	if err := writeResults(stdout, scanner, results, opts); err != nil {
		log.Error().Err(err).Msg("failed to write output")
		code = exitError
	}
	for _, r := range results {
		if r.Err != nil {
			code = exitError
		} else if r.Count > 0 && code == exitNoMatch {
			code = exitMatch
		}
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("scan interrupted")
		code = exitError
	}

	if err := m.WriteFile(opts.metricsFile); err != nil {
		log.Error().Err(err).Msg("failed to write metrics")
		code = exitError
	}
	return code
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(opts *options, fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.AddLiterals(opts.patterns...)
	if fs.Changed("runes") {
		cfg.Runes = opts.runes
	}
	if fs.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

func writeResults(w io.Writer, s *scan.Scanner, results []scan.Result, opts *options) error {
	out := bufio.NewWriter(w)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		switch {
		case opts.filesOnly:
			if r.Count > 0 {
				fmt.Fprintln(out, r.Path)
			}
		case opts.count:
			fmt.Fprintf(out, "%s:%d\n", r.Path, r.Count)
		default:
			for _, h := range r.Hits {
				fmt.Fprintln(out, s.Format(r.Path, h))
			}
		}
	}
	return out.Flush()
}
