// Command ptrwatch explores the ownership protocol against a live registry.
//
// In script mode a comma-separated op list is replayed and the final state
// printed:
//
//	ptrwatch -script "new=alpha,clone=1,downgrade=1,release=1,lock=3"
//
// Interactive mode (-i) opens a TUI showing handles, live control blocks and
// the lifecycle event log as operations are applied.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/iahmad1337/sharedptr"
)

func main() {
	var (
		script      = flag.String("script", "", "Comma-separated ops (new=V, adopt=V, clone=N, release=N, downgrade=N, lock=N)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log block lifecycle to stderr")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sharedptr.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *script == "" {
		fmt.Fprintln(os.Stderr, "Usage: ptrwatch -script \"new=alpha,clone=1,release=1\"")
		fmt.Fprintln(os.Stderr, "       ptrwatch -i  (interactive mode)")
		os.Exit(1)
	}

	if err := runScript(*script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScript(script string) error {
	s := newSession()
	for _, op := range strings.Split(script, ",") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		if err := s.apply(op); err != nil {
			return fmt.Errorf("op %q: %w", op, err)
		}
	}

	fmt.Printf("Handles:\n")
	for _, h := range s.handles {
		fmt.Printf("  %s\n", h.describe())
	}
	fmt.Printf("Live blocks: %d\n", s.reg.Live())
	fmt.Printf("Events:\n")
	for _, line := range s.log {
		fmt.Printf("  %s\n", line)
	}
	return nil
}

// session owns a registry, the handles created so far and the lifecycle
// event log. Both modes drive it through apply.
type session struct {
	reg     *sharedptr.Registry
	handles []*handleEntry
	log     []string
}

type handleEntry struct {
	name     string
	s        sharedptr.Shared[string]
	w        sharedptr.Weak[string]
	weak     bool
	released bool
}

func newSession() *session {
	s := &session{reg: sharedptr.NewRegistry()}
	s.reg.Subscribe(s)
	return s
}

func (s *session) OnBlockEvent(e sharedptr.Event) {
	var what string
	switch e.Type {
	case sharedptr.EventBlockAllocated:
		what = "allocated"
	case sharedptr.EventPayloadDestroyed:
		what = "payload destroyed"
	case sharedptr.EventBlockFreed:
		what = "freed"
	}
	s.log = append(s.log, fmt.Sprintf("block %d %s (strong=%d weak=%d)", e.Slot, what, e.Strong, e.Weak))
}

// apply executes one op of the form name or name=arg.
func (s *session) apply(op string) error {
	name, arg, _ := strings.Cut(op, "=")
	switch name {
	case "new":
		h := sharedptr.NewIn(s.reg, arg)
		s.add(&handleEntry{s: h})
	case "adopt":
		value := arg
		h, err := sharedptr.AdoptIn(s.reg, &value, func(p *string) {
			s.log = append(s.log, fmt.Sprintf("drop %q", *p))
		})
		if err != nil {
			return err
		}
		s.add(&handleEntry{s: h})
	case "clone":
		h, err := s.entry(arg)
		if err != nil {
			return err
		}
		if h.weak {
			s.add(&handleEntry{w: h.w.Clone(), weak: true})
		} else {
			s.add(&handleEntry{s: h.s.Clone()})
		}
	case "downgrade":
		h, err := s.entry(arg)
		if err != nil {
			return err
		}
		if h.weak {
			return fmt.Errorf("cannot downgrade a weak handle")
		}
		s.add(&handleEntry{w: h.s.Downgrade(), weak: true})
	case "lock":
		h, err := s.entry(arg)
		if err != nil {
			return err
		}
		if !h.weak {
			return fmt.Errorf("lock needs a weak handle")
		}
		s.add(&handleEntry{s: h.w.Lock()})
	case "release":
		h, err := s.entry(arg)
		if err != nil {
			return err
		}
		s.release(h)
	default:
		return fmt.Errorf("unknown op %q", name)
	}
	return nil
}

func (s *session) add(h *handleEntry) {
	kind := "s"
	if h.weak {
		kind = "w"
	}
	h.name = fmt.Sprintf("%s%d", kind, len(s.handles)+1)
	s.handles = append(s.handles, h)
}

func (s *session) entry(arg string) (*handleEntry, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.handles) {
		return nil, fmt.Errorf("no handle %q", arg)
	}
	h := s.handles[n-1]
	if h.released {
		return nil, fmt.Errorf("handle %s already released", h.name)
	}
	return h, nil
}

func (s *session) release(h *handleEntry) {
	if h.released {
		return
	}
	if h.weak {
		h.w.Release()
	} else {
		h.s.Release()
	}
	h.released = true
}

func (h *handleEntry) describe() string {
	switch {
	case h.released:
		return fmt.Sprintf("%s: released", h.name)
	case h.weak:
		state := "alive"
		if h.w.Expired() {
			state = "expired"
		}
		return fmt.Sprintf("%s: weak, %s, use_count=%d", h.name, state, h.w.UseCount())
	case !h.s.Valid():
		return fmt.Sprintf("%s: shared, empty", h.name)
	default:
		return fmt.Sprintf("%s: shared, %q, use_count=%d", h.name, h.s.Value(), h.s.UseCount())
	}
}
