package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada-live/internal/store"
)

// snapshotMsg carries a store notification into the Bubble Tea loop.
type snapshotMsg struct {
	snap store.Snapshot
}

// bridge turns store notifications into tea messages.
// It keeps at most one pending snapshot: a newer one replaces an older one.
// Ordering is decided by Snapshot.Version, not by arrival.
type bridge struct {
	mu     sync.Mutex
	closed bool
	ch     chan snapshotMsg
	unsub  func()
}

func subscribe(s *store.Store) *bridge {
	b := &bridge{ch: make(chan snapshotMsg, 1)}
	b.unsub = s.Subscribe(b.push)
	return b
}

func (b *bridge) push(snap store.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case <-b.ch:
	default:
	}
	b.ch <- snapshotMsg{snap: snap}
}

// wait blocks until the next notification.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (b *bridge) close() {
	b.unsub()
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
