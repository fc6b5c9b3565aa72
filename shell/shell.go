// Package shell holds the presentation state around lookups: the submitted input, the loading
// flag and the last outcome.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	iiInterfaces "github.com/voxtmault/ifsc-integration/interfaces"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	"github.com/voxtmault/ifsc-integration/render"
)

const Prompt = "IFSC Code: "

// State is a snapshot of what the user currently sees.
type State struct {
	Loading bool
	Input   string
	Outcome *iiModels.LookupOutcome
}

type Shell struct {
	lookup iiInterfaces.Lookup

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	state  State
}

func New(lookup iiInterfaces.Lookup) *Shell {
	return &Shell{lookup: lookup}
}

// Submit runs a lookup for code. A newer Submit cancels this one, and only the latest submission
// may store its outcome. The returned bool reports whether the outcome was stored.
func (s *Shell) Submit(ctx context.Context, code string) (*iiModels.LookupOutcome, bool) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Loading = true
	s.state.Input = code
	s.mu.Unlock()

	defer cancel()

	outcome := s.lookup.Lookup(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq {
		slog.Debug("discarding superseded lookup", "code", code)
		return outcome, false
	}

	s.state.Outcome = outcome
	s.state.Loading = false
	s.cancel = nil

	return outcome, true
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Run reads one code per line from in and writes the rendered outcome to out until in is
// exhausted or ctx is done. Blank lines are ignored.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	// Scan blocks on the reader and cannot observe ctx, so it runs on its own goroutine.
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprint(out, Prompt)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return eris.Wrap(err, "reading input")
					}
				default:
				}
				fmt.Fprintln(out)
				return nil
			}

			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return nil
			}

			code := strings.TrimSpace(line)
			if code != "" {
				outcome, _ := s.Submit(ctx, code)
				if err := render.Write(out, outcome); err != nil {
					return eris.Wrap(err, "rendering outcome")
				}
				fmt.Fprintln(out)
			}

			fmt.Fprint(out, Prompt)
		}
	}
}
