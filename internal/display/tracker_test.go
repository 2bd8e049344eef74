package display

import "testing"

func TestTracker_NewlyFlushedAdvances(t *testing.T) {
	tr := NewTracker()

	start, end := tr.NewlyFlushed("m1", KindText, 5)
	if start != 0 || end != 5 {
		t.Fatalf("first flush = [%d,%d), want [0,5)", start, end)
	}
	start, end = tr.NewlyFlushed("m1", KindText, 9)
	if start != 5 || end != 9 {
		t.Fatalf("second flush = [%d,%d), want [5,9)", start, end)
	}
}

func TestTracker_NewlyFlushedDuplicateIsNoop(t *testing.T) {
	tr := NewTracker()
	tr.NewlyFlushed("m1", KindText, 5)

	start, end := tr.NewlyFlushed("m1", KindText, 5)
	if start != end {
		t.Fatalf("duplicate snapshot flushed [%d,%d), want empty", start, end)
	}
	start, end = tr.NewlyFlushed("m1", KindText, 3)
	if start != end {
		t.Fatalf("shrinking snapshot flushed [%d,%d), want empty", start, end)
	}
}

func TestTracker_ChannelsAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.NewlyFlushed("m1", KindText, 5)

	start, end := tr.NewlyFlushed("m1", KindThinking, 3)
	if start != 0 || end != 3 {
		t.Fatalf("thinking flush = [%d,%d), want [0,3)", start, end)
	}
	start, end = tr.NewlyFlushed("m2", KindText, 2)
	if start != 0 || end != 2 {
		t.Fatalf("other message flush = [%d,%d), want [0,2)", start, end)
	}
}

func TestTracker_MarkOnce(t *testing.T) {
	tr := NewTracker()

	trueCount := 0
	for i := 0; i < 5; i++ {
		if tr.MarkOnce("m1", "t1:header") {
			trueCount++
		}
	}
	if trueCount != 1 {
		t.Fatalf("MarkOnce returned true %d times, want exactly once", trueCount)
	}
	if !tr.MarkOnce("m1", "t1:result") {
		t.Fatal("different marker key should be independent")
	}
	if !tr.MarkOnce("m2", "t1:header") {
		t.Fatal("same marker under a different message should be independent")
	}
}

func TestTracker_FinalizeDiscardsState(t *testing.T) {
	tr := NewTracker()
	tr.NewlyFlushed("m1", KindText, 5)
	tr.MarkOnce("m1", "t1:header")
	tr.NewlyFlushedField("m1", "t1", "command", 4)

	tr.Finalize("m1")

	if start, end := tr.NewlyFlushed("m1", KindText, 5); start != 0 || end != 5 {
		t.Fatalf("flush after finalize = [%d,%d), want fresh [0,5)", start, end)
	}
	if !tr.MarkOnce("m1", "t1:header") {
		t.Fatal("marker should reset after finalize")
	}
	if start, end := tr.NewlyFlushedField("m1", "t1", "command", 4); start != 0 || end != 4 {
		t.Fatalf("field flush after finalize = [%d,%d), want fresh [0,4)", start, end)
	}
}

func TestTracker_ReleaseToolDropsFieldCursors(t *testing.T) {
	tr := NewTracker()
	tr.NewlyFlushedField("m1", "t1", "code", 10)

	tr.ReleaseTool("t1")

	if start, end := tr.NewlyFlushedField("m1", "t1", "code", 10); start != 0 || end != 10 {
		t.Fatalf("field flush after release = [%d,%d), want fresh [0,10)", start, end)
	}
	// Releasing an unknown block must not panic.
	tr.ReleaseTool("nope")
}
