package core

// Entry binds a registered listener to the limiter bounding its
// concurrency. Entries are immutable after registration and shared
// between the dispatch loop and every handler task spawned for them.
type Entry struct {
	listener Listener
	limiter  *Limiter
}

func newEntry(l Listener) *Entry {
	return &Entry{
		listener: l,
		limiter:  NewLimiter(maxConcurrentTasks(l)),
	}
}

// Listener returns the registered listener.
func (e *Entry) Listener() Listener { return e.listener }

// Limiter returns the permit pool bounding this listener's concurrency.
func (e *Entry) Limiter() *Limiter { return e.limiter }

// ExchangeName returns the exchange the entry is bound to.
func (e *Entry) ExchangeName() string { return e.listener.ExchangeName() }

// MaxConcurrentTasks returns the entry's concurrency bound.
func (e *Entry) MaxConcurrentTasks() int { return e.limiter.Capacity() }

// Registry is the ordered collection of registered listeners. It is
// built before the dispatch loop starts and never mutated afterwards, so
// lookups need no synchronization.
//
// Lookup resolves by first-match on exact exchange-name equality:
// registering two listeners for the same exchange is not rejected, and
// the first one registered receives every delivery for that exchange.
type Registry struct {
	entries []*Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a listener, creating its limiter from the listener's
// concurrency bound. Duplicate exchange names are not rejected.
func (r *Registry) Add(l Listener) *Entry {
	e := newEntry(l)
	r.entries = append(r.entries, e)
	return e
}

// Lookup returns the first entry registered for the given exchange, or
// nil when no listener matches.
func (r *Registry) Lookup(exchange string) *Entry {
	for _, e := range r.entries {
		if e.ExchangeName() == exchange {
			return e
		}
	}
	return nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }
