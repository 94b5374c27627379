package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Level controls how much of the event stream is written.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelError               // failures only
	LevelPhase               // conversions and their passes
	LevelDetail              // plus batch items
	LevelDebug               // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("unknown trace level %q (want %s)", s, strings.Join(levelNames[:], "|"))
}

// admits reports whether non-failure events of scope pass the filter.
func (l Level) admits(scope Scope) bool {
	switch {
	case l <= LevelError:
		return false
	case l == LevelPhase:
		return scope <= ScopePass
	case l == LevelDetail:
		return scope <= ScopeItem
	}
	return true
}

// Scope orders events from coarse to fine.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one command or API call
	ScopePass                    // normalize, lex, serialize
	ScopeItem                    // one line of a batch
)

var scopeNames = [...]string{ScopeDriver: "driver", ScopePass: "pass", ScopeItem: "item"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	// KindError is written at every enabled level.
	KindError
)

var (
	kindNames = [...]string{KindBegin: "begin", KindEnd: "end", KindPoint: "point", KindError: "error"}
	kindMarks = [...]string{KindBegin: "→", KindEnd: "←", KindPoint: "•", KindError: "!"}
)

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one record of the stream. Seq is assigned by the tracer that
// writes it.
type Event struct {
	Time    time.Time
	Seq     uint64
	Kind    Kind
	Scope   Scope
	Span    uint64 // 0 for points and failures
	Parent  uint64
	Name    string // "convert", "lex", "item:3"
	Detail  string
	Elapsed time.Duration // KindEnd only
	Attrs   map[string]string
}

// Tracer receives events; implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	// Close flushes buffered output and releases the sink.
	Close() error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Close() error { return nil }

// Nop discards everything. It is what FromContext returns for a bare context.
var Nop Tracer = nopTracer{}

// Config describes where and how much to trace.
type Config struct {
	Level  Level
	Format Format
	// Output wins over OutputPath. An empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
}

// New builds a stream tracer for cfg, or Nop when cfg.Level is LevelOff.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}

	w := cfg.Output
	switch {
	case w != nil:
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		w = unclosable{os.Stderr}
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("open trace output: %w", err)
		}
		w = f
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

// unclosable keeps Close away from stderr.
type unclosable struct{ io.Writer }
