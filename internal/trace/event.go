package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of an operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of an operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeCommand covers a whole CLI invocation.
	ScopeCommand Scope = iota + 1
	// ScopeBatch covers one batch file.
	ScopeBatch
	// ScopeJob covers a single expression inside a batch or the REPL.
	ScopeJob
	ScopeOp // single arithmetic operation
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeBatch:
		return "batch"
	case ScopeJob:
		return "job"
	case ScopeOp:
		return "op"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID
	Name     string            // e.g. "eval", "batch", "job"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}

// Point emits an instant event under the given parent span.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
