package frontier

import (
	"errors"
	"reflect"
	"testing"
)

func TestEnqueueNew(t *testing.T) {
	f := New()

	added := f.EnqueueNew([]string{"в", "б", "а", "б"})
	if want := []string{"а", "б", "в"}; !reflect.DeepEqual(added, want) {
		t.Errorf("first batch added %v, want %v", added, want)
	}

	added = f.EnqueueNew([]string{"г", "а", "в"})
	if want := []string{"г"}; !reflect.DeepEqual(added, want) {
		t.Errorf("second batch added %v, want %v", added, want)
	}

	if f.Len() != 4 || f.SeenCount() != 4 {
		t.Errorf("Len() = %d, SeenCount() = %d; want 4, 4", f.Len(), f.SeenCount())
	}
	if want := []string{"а", "б", "в", "г"}; !reflect.DeepEqual(f.Pending(), want) {
		t.Errorf("Pending() = %v, want %v", f.Pending(), want)
	}
}

func TestEnqueueDoesNotMutateInput(t *testing.T) {
	in := []string{"c", "a", "b"}
	New().EnqueueNew(in)
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(in, want) {
		t.Errorf("input changed to %v", in)
	}
}

func TestDequeueFIFO(t *testing.T) {
	f := New()
	f.EnqueueNew([]string{"b", "a"})
	f.EnqueueNew([]string{"c"})

	var got []string
	for f.Len() > 0 {
		w, err := f.DequeueNext()
		if err != nil {
			t.Fatalf("DequeueNext() error = %v", err)
		}
		got = append(got, w)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("dequeued %v, want %v", got, want)
	}
}

func TestDequeuedWordsAreNotRequeued(t *testing.T) {
	f := New()
	f.EnqueueNew([]string{"a"})
	if _, err := f.DequeueNext(); err != nil {
		t.Fatal(err)
	}
	if added := f.EnqueueNew([]string{"a"}); len(added) != 0 {
		t.Errorf("processed word re-enqueued: %v", added)
	}
	if !f.Contains("a") {
		t.Error("dequeued word must stay seen")
	}
}

func TestDequeueEmpty(t *testing.T) {
	f := New()
	w, err := f.DequeueNext()
	if !errors.Is(err, ErrEmptyFrontier) {
		t.Fatalf("expected ErrEmptyFrontier, got %v", err)
	}
	if w != "" {
		t.Errorf("expected empty word, got %q", w)
	}
}

func TestMarkSeen(t *testing.T) {
	f := New()
	f.MarkSeen("seed")
	if added := f.EnqueueNew([]string{"seed", "other"}); !reflect.DeepEqual(added, []string{"other"}) {
		t.Errorf("added %v, want [other]", added)
	}
	if f.Len() != 1 || f.SeenCount() != 2 {
		t.Errorf("Len() = %d, SeenCount() = %d; want 1, 2", f.Len(), f.SeenCount())
	}
}

// seen must equal the union of all enqueued words and the queue must hold
// first occurrences not yet dequeued, in order.
func TestQueueSeenInvariant(t *testing.T) {
	batches := [][]string{
		{"d", "b"},
		{"b", "a", "e"},
		{"c", "d"},
		{},
		{"f", "a"},
	}

	f := New()
	union := map[string]bool{}
	var order []string
	dequeued := 0
	for i, batch := range batches {
		f.EnqueueNew(batch)
		for _, w := range f.Pending() {
			if !union[w] {
				union[w] = true
				order = append(order, w)
			}
		}
		for _, w := range batch {
			if !f.Contains(w) {
				t.Errorf("batch %d: %q not seen", i, w)
			}
		}
		if i%2 == 1 {
			w, err := f.DequeueNext()
			if err != nil {
				t.Fatal(err)
			}
			if w != order[dequeued] {
				t.Errorf("dequeued %q, want %q", w, order[dequeued])
			}
			dequeued++
		}
	}

	if f.SeenCount() != len(union) {
		t.Errorf("SeenCount() = %d, want %d", f.SeenCount(), len(union))
	}
	if !reflect.DeepEqual(f.Pending(), order[dequeued:]) {
		t.Errorf("Pending() = %v, want %v", f.Pending(), order[dequeued:])
	}
}
