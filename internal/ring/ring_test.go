package ring

import "testing"

func TestPushPopFIFO(t *testing.T) {
	var b Buffer
	for _, c := range []byte("abc") {
		if !b.Push(c) {
			t.Fatalf("Push(%q) failed unexpectedly", c)
		}
	}
	for _, want := range []byte("abc") {
		got, ok := b.Pop()
		if !ok || got != want {
			t.Errorf("Pop() = %q, %v; want %q, true", got, ok, want)
		}
	}
	if !b.Empty() {
		t.Errorf("buffer should be empty after draining")
	}
}

func TestPopEmptyReportsFalse(t *testing.T) {
	var b Buffer
	if _, ok := b.Pop(); ok {
		t.Errorf("Pop on empty buffer should report false")
	}
}

func TestFullDropsNewestFirstWins(t *testing.T) {
	var b Buffer
	// capacity usable slots = capacity-1; fill exactly to that.
	for i := 0; i < capacity-1; i++ {
		if !b.Push(byte(i)) {
			t.Fatalf("Push #%d should have succeeded", i)
		}
	}
	// One more push must be rejected, not overwrite the oldest sample.
	if b.Push(0xFF) {
		t.Errorf("Push into a full buffer should report false")
	}
	first, ok := b.Pop()
	if !ok || first != 0 {
		t.Errorf("first sample was overwritten: got %d, want 0 (first-wins policy violated)", first)
	}
}

func TestWrapAround(t *testing.T) {
	var b Buffer
	for round := 0; round < 3; round++ {
		for i := 0; i < capacity-1; i++ {
			b.Push(byte(i))
		}
		for i := 0; i < capacity-1; i++ {
			got, ok := b.Pop()
			if !ok || got != byte(i) {
				t.Fatalf("round %d: Pop() = %d, %v; want %d, true", round, got, ok, i)
			}
		}
	}
}
