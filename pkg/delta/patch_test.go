package delta

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

// TestApplyEmptyScript verifies that an empty script reproduces the base.
func TestApplyEmptyScript(t *testing.T) {
	base := []byte("unchanged")
	patched, err := Apply(base, nil)
	if err != nil {
		t.Fatal("apply failed:", err)
	}
	if !bytes.Equal(patched, base) {
		t.Errorf("patched data incorrect: %q != %q", patched, base)
	}
}

// TestApplyInsertOnly verifies splicing inserted data into the base.
func TestApplyInsertOnly(t *testing.T) {
	patched, err := Apply([]byte("hello world"), []Operation{
		NewInsert(5, []byte(" there")),
	})
	if err != nil {
		t.Fatal("apply failed:", err)
	}
	if string(patched) != "hello there world" {
		t.Errorf("patched data incorrect: %q", patched)
	}
}

// TestApplyRemoveOnly verifies skipping base bytes.
func TestApplyRemoveOnly(t *testing.T) {
	patched, err := Apply([]byte("hello cruel world"), []Operation{
		NewRemove(5, 6),
	})
	if err != nil {
		t.Fatal("apply failed:", err)
	}
	if string(patched) != "hello world" {
		t.Errorf("patched data incorrect: %q", patched)
	}
}

// TestApplyOffsetRegressionRejected verifies that scripts with regressing
// offsets are rejected.
func TestApplyOffsetRegressionRejected(t *testing.T) {
	_, err := Apply([]byte("0123456789"), []Operation{
		NewRemove(5, 1),
		NewInsert(2, []byte("x")),
	})
	if err == nil {
		t.Error("script with regressing offsets accepted")
	}
}

// TestApplyOverlongRemovalRejected verifies that removals extending past the
// end of the base are rejected.
func TestApplyOverlongRemovalRejected(t *testing.T) {
	_, err := Apply([]byte("0123"), []Operation{
		NewRemove(0, 5),
	})
	if err == nil {
		t.Error("removal past end of base accepted")
	}
}

// TestApplyUnreachableOffsetRejected verifies that an offset that cannot be
// reached by copying base bytes is rejected.
func TestApplyUnreachableOffsetRejected(t *testing.T) {
	_, err := Apply([]byte("0123"), []Operation{
		NewInsert(10, []byte("x")),
	})
	if err == nil {
		t.Error("unreachable operation offset accepted")
	}
}

// TestApplyToWriterFailure verifies that destination write failures surface.
func TestApplyToWriterFailure(t *testing.T) {
	err := ApplyTo(&failingWriter{}, []byte("base data"), []Operation{
		NewInsert(0, []byte("new")),
	})
	if err == nil {
		t.Error("destination write failure not surfaced")
	}
}

// failingWriter fails every write.
type failingWriter struct{}

func (w *failingWriter) Write(buffer []byte) (int, error) {
	return 0, errors.New("simulated write failure")
}
