// Package store holds the in-memory todo collection and the draft text,
// and notifies subscribers after every change.
//
// Nothing is persisted: a Store lives as long as the process that created it.
package store

import (
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tada-live/internal/model"
)

// Snapshot is a consistent, read-only copy of the store at one point in time.
// Version grows by one with every change, so a larger Version is newer.
type Snapshot struct {
	Todos   []model.Todo
	Draft   string
	Version uint64
}

// CompletedCount counts the completed todos in the snapshot.
func (s Snapshot) CompletedCount() int {
	n := 0
	for _, t := range s.Todos {
		if t.Completed {
			n++
		}
	}
	return n
}

// Len is the total number of todos in the snapshot.
func (s Snapshot) Len() int { return len(s.Todos) }

// Listener receives the post-mutation snapshot.
type Listener func(Snapshot)

// IDGenerator returns a fresh todo identifier.
type IDGenerator func() string

// Option configures a Store.
type Option func(*Store)

// WithLogger routes command tracing to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator replaces the default UUID generator.
// An ID that is still live is rejected; after maxIDAttempts collisions the
// store falls back to a UUID.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// SequentialIDs returns a generator yielding "1", "2", "3", ...
func SequentialIDs() IDGenerator {
	var n atomic.Uint64
	return func() string {
		return strconv.FormatUint(n.Add(1), 10)
	}
}

const maxIDAttempts = 3

type subscription struct {
	id uint64
	fn Listener
}

// Store is the single owner of the todo list and the draft text.
type Store struct {
	mu      sync.RWMutex
	todos   []model.Todo
	draft   string
	version uint64

	subMu  sync.Mutex
	subs   []subscription
	nextID uint64

	newID IDGenerator
	log   *log.Logger
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		todos: []model.Todo{},
		newID: uuid.NewString,
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn and returns a function that removes it.
// Listeners run synchronously, in registration order, after each change.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()

	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

// AddTodo appends a new, not completed todo and clears the draft.
// Blank text (after trimming) is ignored: nothing is added, the draft is
// left as is, and false is returned.
func (s *Store) AddTodo(text string) (model.Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.log.Debug("add ignored", "reason", "blank text")
		return model.Todo{}, false
	}

	s.mu.Lock()
	t := model.Todo{ID: s.freshID(), Text: text}
	s.todos = append(s.todos, t)
	s.draft = ""
	s.version++
	total := len(s.todos)
	s.mu.Unlock()

	s.log.Debug("todo added", "id", t.ID, "text", t.Text, "total", total)
	s.notify()
	return t, true
}

// ToggleCompleted flips the completed flag of the todo with the given id.
// Unknown ids are ignored.
func (s *Store) ToggleCompleted(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("toggle ignored", "id", id, "reason", "not found")
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.version++
	completed := s.todos[i].Completed
	s.mu.Unlock()

	s.log.Debug("todo toggled", "id", id, "completed", completed)
	s.notify()
	return true
}

// DeleteTodo removes the todo with the given id, keeping the order of the
// others. Unknown ids are ignored.
func (s *Store) DeleteTodo(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Debug("delete ignored", "id", id, "reason", "not found")
		return false
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	s.version++
	total := len(s.todos)
	s.mu.Unlock()

	s.log.Debug("todo deleted", "id", id, "total", total)
	s.notify()
	return true
}

// SetDraftText replaces the draft. No validation happens here.
func (s *Store) SetDraftText(text string) {
	s.mu.Lock()
	if s.draft == text {
		s.mu.Unlock()
		return
	}
	s.draft = text
	s.version++
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todos := make([]model.Todo, len(s.todos))
	copy(todos, s.todos)
	return Snapshot{Todos: todos, Draft: s.draft, Version: s.version}
}

// CompletedCount is always recomputed from the current todos.
func (s *Store) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.todos {
		if t.Completed {
			n++
		}
	}
	return n
}

// Len returns the number of todos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

// caller holds s.mu
func (s *Store) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id
		}
		s.log.Warn("id generator returned a live id", "id", id, "attempt", i+1)
	}
	for {
		if id := uuid.NewString(); s.indexOf(id) < 0 {
			return id
		}
	}
}

// caller holds s.mu
func (s *Store) indexOf(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
