// Package trace observes a capability set.  A Tracer wraps any
// system.Interface and records every crossing of the capability
// boundary into an in-memory table, which can be queried while the
// program runs or flushed when it exits.
package trace

import (
	"log/slog"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/nolibc/go/proc"
	"github.com/nolibc/go/system"
)

const table = "events"

// Schema lays out the event log: one table, keyed by sequence number
// and queryable by process identifier.
var Schema = memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		table: {
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"pid": {
					Name:    "pid",
					Indexer: proc.PIDIndexer{},
				},
			},
		},
	},
}

// Event is one crossing of the capability boundary.
type Event struct {
	ID   uint64
	PID  proc.PID
	Op   string // strlen, write or exit
	FD   int    // descriptor for write; -1 otherwise
	N    int    // measured length, bytes written, or status code
	Err  string // error text; empty on success
	Time time.Time
}

func (ev Event) ProcessID() proc.PID {
	return ev.PID
}

// Config assembles a Tracer around a delegate capability set.
type Config struct {
	// Sys is the delegate that does the real work.  Defaults to
	// system.Hosted over the process's own streams.
	Sys system.Interface

	// PID is attributed to every event.  Drawn fresh when zero.
	PID proc.PID

	// OnExit, when set, receives the full event log just before Exit
	// delegates.  It is the last chance to observe anything.
	OnExit func([]Event)
}

func (cfg Config) New() (*Tracer, error) {
	if cfg.Sys == nil {
		cfg.Sys = system.Hosted{}
	}
	if cfg.PID == (proc.PID{}) {
		cfg.PID = proc.NewPID()
	}

	db, err := memdb.NewMemDB(&Schema)
	if err != nil {
		return nil, errors.Wrap(err, "event log schema")
	}

	return &Tracer{
		sys:    cfg.Sys,
		pid:    cfg.PID,
		onExit: cfg.OnExit,
		db:     db,
	}, nil
}

var _ system.Interface = (*Tracer)(nil)

// Tracer is a capability set that records before it reports.  It is
// safe for concurrent use whenever its delegate is.
type Tracer struct {
	sys    system.Interface
	pid    proc.PID
	onExit func([]Event)
	db     *memdb.MemDB
	seq    atomic.Uint64
}

func (t *Tracer) ProcessID() proc.PID {
	return t.pid
}

// Strlen measures p through the delegate, then records the result.
func (t *Tracer) Strlen(p []byte) int {
	n := t.sys.Strlen(p)
	t.record("strlen", -1, n, nil)
	return n
}

// Write submits p through the delegate, then records the outcome.
func (t *Tracer) Write(fd int, p []byte) (int, error) {
	n, err := t.sys.Write(fd, p)
	t.record("write", fd, n, err)
	return n, err
}

// Exit records the status, hands the full log to the OnExit hook, and
// delegates.  The delegate does not return; if it does anyway, Exit
// panics rather than resume a terminated program.
func (t *Tracer) Exit(code int) {
	t.record("exit", -1, code, nil)

	if t.onExit != nil {
		t.onExit(t.All())
	}

	t.sys.Exit(code)
	panic("trace: exit delegate returned")
}

// All returns every recorded event, oldest first.
func (t *Tracer) All() []Event {
	txn := t.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, "id")
	if err != nil {
		slog.Error("failed to query event log",
			"reason", err)
		return nil
	}

	return collect(it)
}

// ForPID returns the events attributed to pid, oldest first.
func (t *Tracer) ForPID(pid proc.PID) []Event {
	txn := t.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, "pid", pid)
	if err != nil {
		slog.Error("failed to query event log",
			"reason", err,
			"pid", pid)
		return nil
	}

	return collect(it)
}

func collect(it memdb.ResultIterator) (events []Event) {
	for obj := it.Next(); obj != nil; obj = it.Next() {
		events = append(events, obj.(Event))
	}

	return
}

func (t *Tracer) record(op string, fd, n int, err error) {
	ev := Event{
		ID:   t.seq.Inc(),
		PID:  t.pid,
		Op:   op,
		FD:   fd,
		N:    n,
		Time: time.Now(),
	}
	if err != nil {
		ev.Err = err.Error()
	}

	txn := t.db.Txn(true)
	if err := txn.Insert(table, ev); err != nil {
		txn.Abort()
		slog.Warn("failed to record event",
			"reason", err,
			"op", op)
		return
	}

	txn.Commit()
}
