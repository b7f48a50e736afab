// Package scan runs one prepared automaton over many inputs concurrently.
package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/coregx/acmatch"
	"github.com/coregx/acmatch/internal/config"
	"github.com/coregx/acmatch/internal/metrics"
)

// Stdin is the path that names standard input.
const Stdin = "-"

// Mode selects how much of each input is reported.
type Mode int

const (
	// All reports every match.
	All Mode = iota
	// First stops each input at its first match.
	First
	// Count only counts matches.
	Count
)

// Hit is one match in an input.
type Hit struct {
	// Offset of the first matched element. Rune offset in rune mode.
	Offset int
	// Pattern indexes the enabled pattern list.
	Pattern int
}

// Result is the outcome of scanning one input.
type Result struct {
	Path  string
	Hits  []Hit
	Count int
	Err   error
}

// Options configure a Scanner.
type Options struct {
	Workers int
	Mode    Mode
	Metrics *metrics.Metrics
	// Stdin replaces os.Stdin for the "-" path.
	Stdin io.Reader
}

// searcher runs the shared automaton over raw input.
type searcher interface {
	search(data []byte, fn func(Hit) bool)
	stats() acmatch.Stats
}

type byteSearcher struct {
	m acmatch.Matcher[byte, acmatch.String]
}

func (s byteSearcher) search(data []byte, fn func(Hit) bool) {
	for match := range s.m.All(acmatch.Bytes(data)) {
		if !fn(Hit{Offset: match.Start, Pattern: match.ID}) {
			return
		}
	}
}

func (s byteSearcher) stats() acmatch.Stats { return s.m.Automaton().Stats() }

type runeSearcher struct {
	m acmatch.Matcher[rune, acmatch.Runes]
}

func (s runeSearcher) search(data []byte, fn func(Hit) bool) {
	for match := range s.m.All(acmatch.Runes([]rune(string(data)))) {
		if !fn(Hit{Offset: match.Start, Pattern: match.ID}) {
			return
		}
	}
}

func (s runeSearcher) stats() acmatch.Stats { return s.m.Automaton().Stats() }

// Scanner searches inputs for a fixed pattern set. It is safe for
// concurrent use once built.
type Scanner struct {
	patterns []config.Pattern
	searcher searcher
	opts     Options
}

// New builds and prepares the automaton for the enabled patterns of cfg.
func New(cfg *config.Config, opts Options) (*Scanner, error) {
	patterns := cfg.Enabled()
	if len(patterns) == 0 {
		return nil, errors.New("no patterns to search for")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	s := &Scanner{patterns: patterns, opts: opts}
	if cfg.Runes {
		ac, err := acmatch.NewWithConfig[rune, acmatch.Runes](cfg.Library())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create automaton")
		}
		for _, p := range patterns {
			ac.Add(acmatch.Runes(p.Text))
		}
		s.searcher = runeSearcher{m: ac.Matcher()}
	} else {
		ac, err := acmatch.NewWithConfig[byte, acmatch.String](cfg.Library())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create automaton")
		}
		for _, p := range patterns {
			ac.Add(acmatch.String(p.Text))
		}
		s.searcher = byteSearcher{m: ac.Matcher()}
	}

	st := s.searcher.stats()
	log.Debug().Int("patterns", st.Patterns).Int("states", st.States).Bool("runes", cfg.Runes).
		Msg("automaton prepared")
	return s, nil
}

// Patterns returns the enabled patterns; Hit.Pattern indexes this slice.
func (s *Scanner) Patterns() []config.Pattern {
	return s.patterns
}

// Stats returns the shared automaton's statistics.
func (s *Scanner) Stats() acmatch.Stats {
	return s.searcher.stats()
}

// Run scans every path and returns one Result per path, in path order.
// Per-input failures are reported in Result.Err. The returned error is
// non-nil only if the worker pool fails or ctx is done.
func (s *Scanner) Run(ctx context.Context, paths []string) ([]Result, error) {
	pool, err := ants.NewPool(s.opts.Workers, ants.WithPanicHandler(func(r interface{}) {
		log.Error().Interface("panic", r).Msg("scan worker panic")
	}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create worker pool")
	}
	defer pool.Release()

	results := make([]Result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].Path = path
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = errors.Errorf("panic scanning %s: %v", path, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			s.scanOne(&results[i])
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i].Err = errors.Wrap(err, "failed to submit scan")
		}
	}
	wg.Wait()

	for i := range results {
		if results[i].Err != nil {
			s.opts.Metrics.FileError()
			log.Error().Err(results[i].Err).Str("file", results[i].Path).Msg("scan failed")
		}
	}
	s.opts.Metrics.SetAutomaton(s.searcher.stats())
	return results, ctx.Err()
}

// ScanBytes scans data directly.
func (s *Scanner) ScanBytes(name string, data []byte) Result {
	r := Result{Path: name}
	s.search(&r, data)
	return r
}

func (s *Scanner) scanOne(r *Result) {
	data, release, err := s.load(r.Path)
	if err != nil {
		r.Err = err
		return
	}
	defer release()

	start := time.Now()
	s.search(r, data)
	s.opts.Metrics.ObserveFile(len(data), time.Since(start))
	log.Debug().Str("file", r.Path).Int("bytes", len(data)).Int("matches", r.Count).Msg("scanned")
}

func (s *Scanner) search(r *Result, data []byte) {
	var perPattern []int
	if s.opts.Metrics != nil {
		perPattern = make([]int, len(s.patterns))
	}
	s.searcher.search(data, func(h Hit) bool {
		r.Count++
		if perPattern != nil {
			perPattern[h.Pattern]++
		}
		if s.opts.Mode != Count {
			r.Hits = append(r.Hits, h)
		}
		return s.opts.Mode != First
	})
	for i, n := range perPattern {
		s.opts.Metrics.AddMatches(s.patterns[i].Label(), n)
	}
}

func (s *Scanner) load(path string) ([]byte, func(), error) {
	if path == Stdin {
		data, err := io.ReadAll(s.opts.Stdin)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to read standard input")
		}
		return data, func() {}, nil
	}
	return loadFile(path)
}

// Label returns the name printed for hit h.
func (s *Scanner) Label(h Hit) string {
	return s.patterns[h.Pattern].Label()
}

// Format renders h in the "<file>:<offset>:<pattern-name>" output form.
func (s *Scanner) Format(path string, h Hit) string {
	return fmt.Sprintf("%s:%d:%s", path, h.Offset, s.Label(h))
}
