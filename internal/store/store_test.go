package store

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada-live/internal/model"
)

func texts(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.Text)
	}
	return out
}

func countCompleted(todos []model.Todo) int {
	n := 0
	for _, t := range todos {
		if t.Completed {
			n++
		}
	}
	return n
}

func TestNewIsEmpty(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	if len(snap.Todos) != 0 {
		t.Errorf("Todos: got %d, want 0", len(snap.Todos))
	}
	if snap.Draft != "" {
		t.Errorf("Draft: got %q, want empty", snap.Draft)
	}
	if s.CompletedCount() != 0 {
		t.Errorf("CompletedCount: got %d, want 0", s.CompletedCount())
	}
}

func TestAddTodoIgnoresBlankText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.SetDraftText("keep me")
			notified := 0
			s.Subscribe(func(Snapshot) { notified++ })

			if _, ok := s.AddTodo(tt.text); ok {
				t.Fatalf("AddTodo(%q): got ok, want ignored", tt.text)
			}
			if s.Len() != 0 {
				t.Errorf("Len: got %d, want 0", s.Len())
			}
			if got := s.Snapshot().Draft; got != "keep me" {
				t.Errorf("Draft: got %q, want %q", got, "keep me")
			}
			if notified != 0 {
				t.Errorf("notifications: got %d, want 0", notified)
			}
		})
	}
}

func TestAddTodoAppends(t *testing.T) {
	s := New(WithIDGenerator(SequentialIDs()))
	s.AddTodo("first")
	s.SetDraftText("Buy milk")

	todo, ok := s.AddTodo("Buy milk")
	if !ok {
		t.Fatal("AddTodo: got ignored, want added")
	}
	snap := s.Snapshot()
	if len(snap.Todos) != 2 {
		t.Fatalf("Len: got %d, want 2", len(snap.Todos))
	}
	last := snap.Todos[1]
	if last != todo {
		t.Errorf("last todo: got %+v, want %+v", last, todo)
	}
	if last.Text != "Buy milk" || last.Completed {
		t.Errorf("last todo: got %+v, want text %q not completed", last, "Buy milk")
	}
	if last.ID == snap.Todos[0].ID {
		t.Errorf("ID %q reused", last.ID)
	}
	if snap.Draft != "" {
		t.Errorf("Draft: got %q, want cleared", snap.Draft)
	}
}

func TestAddTodoStoresTrimmedText(t *testing.T) {
	s := New()
	todo, ok := s.AddTodo("  Wash car \n")
	if !ok {
		t.Fatal("AddTodo: got ignored")
	}
	if todo.Text != "Wash car" {
		t.Errorf("Text: got %q, want %q", todo.Text, "Wash car")
	}
}

func TestIDsAreUnique(t *testing.T) {
	gens := map[string]func() *Store{
		"uuid":       func() *Store { return New() },
		"sequential": func() *Store { return New(WithIDGenerator(SequentialIDs())) },
	}
	for name, mk := range gens {
		t.Run(name, func(t *testing.T) {
			s := mk()
			for i := 0; i < 500; i++ {
				s.AddTodo(fmt.Sprintf("item %d", i))
			}
			seen := make(map[string]bool)
			for _, todo := range s.Snapshot().Todos {
				if seen[todo.ID] {
					t.Fatalf("duplicate id %q", todo.ID)
				}
				seen[todo.ID] = true
			}
		})
	}
}

func TestLiveIDsAreNotReused(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})
	s := New(WithLogger(l), WithIDGenerator(func() string { return "same" }))

	a, _ := s.AddTodo("a")
	b, _ := s.AddTodo("b")
	c, _ := s.AddTodo("c")
	if a.ID != "same" {
		t.Errorf("first id: got %q, want %q", a.ID, "same")
	}
	if a.ID == b.ID || a.ID == c.ID || b.ID == c.ID {
		t.Fatalf("duplicate ids: %q %q %q", a.ID, b.ID, c.ID)
	}

	// every id still addresses exactly its own todo
	s.ToggleCompleted(b.ID)
	s.DeleteTodo(a.ID)
	snap := s.Snapshot()
	if got, want := fmt.Sprint(texts(snap.Todos)), "[b c]"; got != want {
		t.Errorf("todos: got %s, want %s", got, want)
	}
	if !snap.Todos[0].Completed || snap.Todos[1].Completed {
		t.Errorf("completed flags: got %+v", snap.Todos)
	}
	if !strings.Contains(buf.String(), "live id") {
		t.Errorf("no warning logged:\n%s", buf.String())
	}

	// a freed id can be handed out again
	d, _ := s.AddTodo("d")
	if d.ID != "same" {
		t.Errorf("after delete: got %q, want %q", d.ID, "same")
	}
}

func TestVersionGrowsOnlyOnChange(t *testing.T) {
	s := New()
	v := func() uint64 { return s.Snapshot().Version }
	if v() != 0 {
		t.Fatalf("new store: got version %d", v())
	}

	steps := []struct {
		name    string
		do      func()
		changed bool
	}{
		{"blank add", func() { s.AddTodo("  ") }, false},
		{"add", func() { s.AddTodo("a") }, true},
		{"draft", func() { s.SetDraftText("x") }, true},
		{"same draft", func() { s.SetDraftText("x") }, false},
		{"toggle missing", func() { s.ToggleCompleted("nope") }, false},
		{"toggle", func() { s.ToggleCompleted(s.Snapshot().Todos[0].ID) }, true},
		{"delete missing", func() { s.DeleteTodo("nope") }, false},
		{"delete", func() { s.DeleteTodo(s.Snapshot().Todos[0].ID) }, true},
	}
	for _, step := range steps {
		before := v()
		step.do()
		after := v()
		if step.changed && after != before+1 {
			t.Errorf("%s: version %d -> %d, want +1", step.name, before, after)
		}
		if !step.changed && after != before {
			t.Errorf("%s: version %d -> %d, want unchanged", step.name, before, after)
		}
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := New()
	todo, _ := s.AddTodo("Read book")

	if !s.ToggleCompleted(todo.ID) {
		t.Fatal("first toggle: got not found")
	}
	if got := s.Snapshot().Todos[0].Completed; !got {
		t.Errorf("after one toggle: got %v, want true", got)
	}
	s.ToggleCompleted(todo.ID)
	if got := s.Snapshot().Todos[0].Completed; got {
		t.Errorf("after two toggles: got %v, want false", got)
	}
}

func TestToggleMissingIDLeavesStateUntouched(t *testing.T) {
	s := New()
	a, _ := s.AddTodo("a")
	s.ToggleCompleted(a.ID)
	s.AddTodo("b")
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })
	if s.ToggleCompleted("nonexistent") {
		t.Error("ToggleCompleted(nonexistent): got found")
	}

	after := s.Snapshot()
	if fmt.Sprintf("%#v", before) != fmt.Sprintf("%#v", after) {
		t.Errorf("state changed:\nbefore %#v\nafter  %#v", before, after)
	}
	if notified != 0 {
		t.Errorf("notifications: got %d, want 0", notified)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := New(WithIDGenerator(SequentialIDs()))
	a, _ := s.AddTodo("a")
	b, _ := s.AddTodo("b")
	c, _ := s.AddTodo("c")

	if !s.DeleteTodo(b.ID) {
		t.Fatal("DeleteTodo: got not found")
	}
	snap := s.Snapshot()
	if len(snap.Todos) != 2 || snap.Todos[0].ID != a.ID || snap.Todos[1].ID != c.ID {
		t.Errorf("todos: got %v, want [a c]", texts(snap.Todos))
	}

	if s.DeleteTodo(b.ID) {
		t.Error("second delete: got found")
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	a, _ := s.AddTodo("a")
	s.AddTodo("b")
	snap := s.Snapshot()

	s.ToggleCompleted(a.ID)
	s.DeleteTodo(a.ID)

	if len(snap.Todos) != 2 || snap.Todos[0].Completed {
		t.Errorf("old snapshot mutated: %+v", snap.Todos)
	}
}

func TestCountInvariant(t *testing.T) {
	s := New(WithIDGenerator(SequentialIDs()))
	check := func(step string) {
		t.Helper()
		snap := s.Snapshot()
		want := countCompleted(snap.Todos)
		if got := s.CompletedCount(); got != want {
			t.Fatalf("%s: CompletedCount got %d, want %d", step, got, want)
		}
		if got := snap.CompletedCount(); got != want {
			t.Fatalf("%s: Snapshot.CompletedCount got %d, want %d", step, got, want)
		}
	}

	ids := []string{}
	for i := 0; i < 20; i++ {
		todo, _ := s.AddTodo(fmt.Sprintf("t%d", i))
		ids = append(ids, todo.ID)
		check("add")
	}
	for i, id := range ids {
		if i%3 == 0 {
			s.ToggleCompleted(id)
			check("toggle")
		}
	}
	for i, id := range ids {
		if i%4 == 0 {
			s.DeleteTodo(id)
			check("delete")
		}
		if i%5 == 0 {
			s.ToggleCompleted(id)
			check("toggle after delete")
		}
	}
}

func TestScenario(t *testing.T) {
	s := New()
	wash, _ := s.AddTodo("Wash car")
	read, _ := s.AddTodo("Read book")
	s.ToggleCompleted(wash.ID)

	snap := s.Snapshot()
	want := []model.Todo{
		{ID: wash.ID, Text: "Wash car", Completed: true},
		{ID: read.ID, Text: "Read book", Completed: false},
	}
	if fmt.Sprint(snap.Todos) != fmt.Sprint(want) {
		t.Errorf("todos: got %+v, want %+v", snap.Todos, want)
	}
	if s.CompletedCount() != 1 || s.Len() != 2 {
		t.Errorf("counts: got %d/%d, want 1/2", s.CompletedCount(), s.Len())
	}

	s.DeleteTodo(read.ID)
	snap = s.Snapshot()
	want = want[:1]
	if fmt.Sprint(snap.Todos) != fmt.Sprint(want) {
		t.Errorf("todos after delete: got %+v, want %+v", snap.Todos, want)
	}
	if s.CompletedCount() != 1 || s.Len() != 1 {
		t.Errorf("counts after delete: got %d/%d, want 1/1", s.CompletedCount(), s.Len())
	}
}

func TestSubscribersSeeAppliedState(t *testing.T) {
	s := New()
	var order []string
	var got []Snapshot
	s.Subscribe(func(snap Snapshot) {
		order = append(order, "first")
		got = append(got, snap)
		// reading back from inside a listener must not deadlock
		if s.Len() != len(snap.Todos) {
			t.Errorf("listener saw Len %d, snapshot %d", s.Len(), len(snap.Todos))
		}
	})
	unsub := s.Subscribe(func(Snapshot) { order = append(order, "second") })

	s.SetDraftText("x")
	todo, _ := s.AddTodo("x")
	unsub()
	unsub()
	s.ToggleCompleted(todo.ID)

	wantOrder := []string{"first", "second", "first", "second", "first"}
	if strings.Join(order, ",") != strings.Join(wantOrder, ",") {
		t.Errorf("order: got %v, want %v", order, wantOrder)
	}
	if len(got) != 3 {
		t.Fatalf("snapshots: got %d, want 3", len(got))
	}
	if got[0].Draft != "x" || len(got[0].Todos) != 0 {
		t.Errorf("draft snapshot: got %+v", got[0])
	}
	if got[1].Draft != "" || len(got[1].Todos) != 1 {
		t.Errorf("add snapshot: got %+v", got[1])
	}
	if !got[2].Todos[0].Completed {
		t.Errorf("toggle snapshot: got %+v", got[2])
	}
}

func TestSetDraftTextSameValueDoesNotNotify(t *testing.T) {
	s := New()
	n := 0
	s.Subscribe(func(Snapshot) { n++ })
	s.SetDraftText("a")
	s.SetDraftText("a")
	s.SetDraftText("")
	if n != 2 {
		t.Errorf("notifications: got %d, want 2", n)
	}
}

func TestConcurrentReadsAreConsistent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			todo, _ := s.AddTodo("item")
			s.ToggleCompleted(todo.ID)
		}
	}()
	for i := 0; i < 200; i++ {
		snap := s.Snapshot()
		if c := snap.CompletedCount(); c > snap.Len() {
			t.Fatalf("completed %d > total %d", c, snap.Len())
		}
	}
	wg.Wait()
	if s.CompletedCount() != 200 {
		t.Errorf("CompletedCount: got %d, want 200", s.CompletedCount())
	}
}

func TestWithLoggerTracesCommands(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := New(WithLogger(l), WithIDGenerator(SequentialIDs()))

	s.AddTodo("Wash car")
	s.ToggleCompleted("missing")

	out := buf.String()
	for _, want := range []string{"todo added", "Wash car", "toggle ignored", "missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
