package store

import (
	"sync"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/campus"
)

type State string

// Collection states
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

type Options struct {
	// LastWriteWins applies every fetch response in arrival order, even one issued before a newer fetch.
	LastWriteWins bool
}

// Collection is the client side snapshot of one API collection.
// It is only mutated through its own methods; readers always get copies.
type Collection[T campus.Entity] struct {
	name string
	opts Options

	mu       sync.RWMutex
	items    []T
	errMsg   string
	outcome  State // of the last applied fetch
	issued   uint64
	inflight int
}

func NewCollection[T campus.Entity](name string, opts Options) *Collection[T] {
	return &Collection[T]{name: name, opts: opts, outcome: StateIdle}
}

func (c *Collection[T]) Name() string { return c.name }

// Items returns a copy of the records.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with the given _id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Loading reports whether a fetch is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Err returns the message of the last failed fetch, or "" when the last applied fetch succeeded.
func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

func (c *Collection[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.inflight > 0 {
		return StateLoading
	}
	return c.outcome
}

// begin marks a fetch as issued and returns its generation.
func (c *Collection[T]) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.inflight++
	return c.issued
}

// finish ends the fetch of generation gen. On success items replace the records wholesale;
// on failure the records are kept and err is stored. It returns false when the response was stale.
func (c *Collection[T]) finish(gen uint64, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if gen != c.issued && !c.opts.LastWriteWins {
		return false
	}
	if err != nil {
		c.errMsg = core.Message(err)
		c.outcome = StateFailed
		return true
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.errMsg = ""
	c.outcome = StateReady
	return true
}

func (c *Collection[T]) add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// replace swaps the record with the same _id as item. Unknown records are ignored.
func (c *Collection[T]) replace(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(item.EntityID()); i >= 0 {
		c.items[i] = item
	}
}

func (c *Collection[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(id); i >= 0 {
		items := make([]T, 0, len(c.items)-1)
		items = append(items, c.items[:i]...)
		c.items = append(items, c.items[i+1:]...)
	}
}

// set replaces the records without touching the fetch state.
func (c *Collection[T]) set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
}

// index must be called with mu held.
func (c *Collection[T]) index(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}
