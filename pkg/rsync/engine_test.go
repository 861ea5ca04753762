package rsync

import (
	"bytes"
	"math/rand"
	"testing"
)

const testBlockSize = 4

// signAndDiff runs the Sign and Diff passes over in-memory base/new buffers
// using testBlockSize, mirroring the concrete end-to-end scenarios.
func signAndDiff(t *testing.T, base, newData []byte) *Delta {
	t.Helper()

	signature, err := Sign(NewInMemoryBlockSource(base, testBlockSize), false)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	delta, err := Diff(signature, NewInMemoryWindowSource(newData, testBlockSize), false)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	return delta
}

// applyPatch runs the Patch pass over an in-memory base buffer and delta,
// returning the reconstructed bytes.
func applyPatch(t *testing.T, base []byte, delta *Delta) []byte {
	t.Helper()

	sink := NewInMemorySink()
	err := Patch(delta, NewInMemoryBlockSource(base, delta.BlockSize), sink, false, nil)
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	return sink.Bytes()
}

func assertInserts(t *testing.T, delta *Delta, want map[uint32][]byte) {
	t.Helper()
	if len(delta.Inserts) != len(want) {
		t.Fatalf("inserts = %v, want %v", delta.Inserts, want)
	}
	for key, data := range want {
		got, ok := delta.Inserts[key]
		if !ok || !bytes.Equal(got, data) {
			t.Errorf("Inserts[%d] = %v, want %v", key, got, data)
		}
	}
}

func assertDeletes(t *testing.T, delta *Delta, want map[uint32]uint32) {
	t.Helper()
	if len(delta.Deletes) != len(want) {
		t.Fatalf("deletes = %v, want %v", delta.Deletes, want)
	}
	for key, run := range want {
		if got := delta.Deletes[key]; got != run {
			t.Errorf("Deletes[%d] = %d, want %d", key, got, run)
		}
	}
}

var base20 = []byte{
	1, 1, 1, 1,
	2, 2, 2, 2,
	3, 3, 3, 3,
	4, 4, 4, 4,
	5, 5, 5, 5,
}

func TestScenarioAppend(t *testing.T) {
	n := append(append([]byte{}, base20...), 0, 0)
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, map[uint32][]byte{5: {0, 0}})
	assertDeletes(t, delta, nil)
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioInsertInMiddle(t *testing.T) {
	n := []byte{1, 1, 1, 1, 2, 2, 2, 2, 0, 0, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5}
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, map[uint32][]byte{2: {0, 0}})
	assertDeletes(t, delta, nil)
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioPrepend(t *testing.T) {
	n := append([]byte{0, 0}, base20...)
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, map[uint32][]byte{0: {0, 0}})
	assertDeletes(t, delta, nil)
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioMixedInsertAndDelete(t *testing.T) {
	n := []byte{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 0, 0, 4, 4, 4, 5, 5, 5, 5}
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, map[uint32][]byte{2: {3, 3, 3, 0, 0, 4, 4, 4}})
	assertDeletes(t, delta, map[uint32]uint32{2: 2})
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioTruncateLastBlock(t *testing.T) {
	n := base20[:16]
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, nil)
	assertDeletes(t, delta, map[uint32]uint32{4: 1})
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioTruncateFirstBlock(t *testing.T) {
	n := base20[4:]
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, nil)
	assertDeletes(t, delta, map[uint32]uint32{0: 1})
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioEmptyNew(t *testing.T) {
	n := []byte{}
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, nil)
	assertDeletes(t, delta, map[uint32]uint32{0: 5})
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioCompletelyDifferentData(t *testing.T) {
	n := []byte{6, 6, 6, 6, 6}
	delta := signAndDiff(t, base20, n)
	assertInserts(t, delta, map[uint32][]byte{0: {6, 6, 6, 6, 6}})
	assertDeletes(t, delta, map[uint32]uint32{0: 5})
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, n) {
		t.Fatalf("patch result = %v, want %v", got, n)
	}
}

func TestScenarioBothEmpty(t *testing.T) {
	delta := signAndDiff(t, nil, nil)
	assertInserts(t, delta, nil)
	assertDeletes(t, delta, nil)
	if got := applyPatch(t, nil, delta); len(got) != 0 {
		t.Fatalf("patch result = %v, want empty", got)
	}
}

func TestScenarioIdentical(t *testing.T) {
	delta := signAndDiff(t, base20, base20)
	assertInserts(t, delta, nil)
	assertDeletes(t, delta, nil)
	if got := applyPatch(t, base20, delta); !bytes.Equal(got, base20) {
		t.Fatalf("patch result = %v, want %v", got, base20)
	}
}

func TestIntegrityMismatchAbortsBeforeWriting(t *testing.T) {
	delta := NewDelta(4)
	delta.ContentHash = []byte{1, 2, 3, 4, 5}

	sink := NewInMemorySink()
	err := Patch(delta, NewInMemoryBlockSource(base20, 4), sink, true, []byte{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error with matching hash: %v", err)
	}

	sink = NewInMemorySink()
	err = Patch(delta, NewInMemoryBlockSource(base20, 4), sink, true, []byte{6, 7, 8, 9, 10})
	if !IsKind(err, KindIntegrityMismatch) {
		t.Fatalf("expected KindIntegrityMismatch, got %v", err)
	}
	if len(sink.Bytes()) != 0 {
		t.Fatalf("sink received bytes before integrity check failed: %v", sink.Bytes())
	}
}

// testDataGenerator produces deterministic pseudo-random byte buffers and
// mutated derivatives, for round-trip fuzzing of the sign/diff/patch cycle.
type testDataGenerator struct {
	rng *rand.Rand
}

func newTestDataGenerator(seed int64) *testDataGenerator {
	return &testDataGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *testDataGenerator) bytes(length int) []byte {
	buf := make([]byte, length)
	g.rng.Read(buf)
	return buf
}

func (g *testDataGenerator) mutate(data []byte, mutations int) []byte {
	mutated := append([]byte{}, data...)
	for i := 0; i < mutations && len(mutated) > 0; i++ {
		mutated[g.rng.Intn(len(mutated))] = byte(g.rng.Intn(256))
	}
	return mutated
}

func TestRoundTripIdentityWithRandomMutations(t *testing.T) {
	generator := newTestDataGenerator(42)

	cases := []struct {
		name      string
		baseLen   int
		mutations int
	}{
		{"small-no-mutation", 100, 0},
		{"small-few-mutations", 100, 5},
		{"medium-many-mutations", 5000, 50},
		{"large-sparse-mutations", 50000, 10},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			base := generator.bytes(c.baseLen)
			newData := generator.mutate(base, c.mutations)

			delta := signAndDiff(t, base, newData)
			got := applyPatch(t, base, delta)
			if !bytes.Equal(got, newData) {
				t.Fatalf("round-trip mismatch for %s: got %d bytes, want %d bytes", c.name, len(got), len(newData))
			}
		})
	}
}

func TestRoundTripWithAppendAndTruncate(t *testing.T) {
	generator := newTestDataGenerator(7)
	base := generator.bytes(1000)

	appended := append(append([]byte{}, base...), generator.bytes(200)...)
	delta := signAndDiff(t, base, appended)
	if got := applyPatch(t, base, delta); !bytes.Equal(got, appended) {
		t.Fatalf("append round-trip mismatch")
	}

	truncated := base[:600]
	delta = signAndDiff(t, base, truncated)
	if got := applyPatch(t, base, delta); !bytes.Equal(got, truncated) {
		t.Fatalf("truncate round-trip mismatch")
	}
}
