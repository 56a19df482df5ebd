// Package app hosts the checkout sessions of every register served by this
// process.
package app

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
)

var ErrInvalidTerminal = errors.New("terminal id is required")

// SessionFactory builds the session for a register seen for the first time.
type SessionFactory func(terminalID string) *order.Session

// NewSessionFactory shares deps between registers and tags each register's
// logger with its id.
func NewSessionFactory(taxRate decimal.Decimal, deps order.Deps) SessionFactory {
	return func(terminalID string) *order.Session {
		d := deps
		logger := d.Logger
		if logger == nil {
			logger = slog.Default()
		}
		d.Logger = logger.With(slog.String("terminal_id", terminalID))
		return order.NewSession(terminalID, taxRate, d)
	}
}

type terminal struct {
	mu      sync.Mutex
	session *order.Session
}

// Registry owns one order.Session per terminal id. Calls for the same
// terminal are serialized; different terminals proceed in parallel.
type Registry struct {
	mu         sync.Mutex
	terminals  map[string]*terminal
	newSession SessionFactory
}

func NewRegistry(f SessionFactory) *Registry {
	return &Registry{terminals: make(map[string]*terminal), newSession: f}
}

// Do runs fn with exclusive access to the session of terminalID, creating the
// session on first use.
func (r *Registry) Do(terminalID string, fn func(*order.Session) error) error {
	t, err := r.terminal(terminalID)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.session)
}

// Terminals lists the registers that have a session, sorted.
func (r *Registry) Terminals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.terminals))
	for id := range r.terminals {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) terminal(id string) (*terminal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidTerminal
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminals[id]
	if !ok {
		t = &terminal{session: r.newSession(id)}
		r.terminals[id] = t
	}
	return t, nil
}
