package delta

import (
	"bytes"
	"testing"
)

// TestOperationNilInvalid verifies that a nil operation is treated as invalid.
func TestOperationNilInvalid(t *testing.T) {
	var operation *Operation
	if operation.EnsureValid() == nil {
		t.Error("nil operation considered valid")
	}
}

// TestOperationZeroValueInvalid verifies that the zero-value operation (no
// data, no removal length) is treated as invalid.
func TestOperationZeroValueInvalid(t *testing.T) {
	operation := &Operation{}
	if operation.EnsureValid() == nil {
		t.Error("zero-value operation considered valid")
	}
}

// TestOperationMixedVariantInvalid verifies that an operation carrying both
// data and a removal length is treated as invalid.
func TestOperationMixedVariantInvalid(t *testing.T) {
	operation := &Operation{Data: []byte{0}, Length: 4}
	if operation.EnsureValid() == nil {
		t.Error("operation with data and removal length considered valid")
	}
}

// TestOperationInsertValid verifies a valid insert operation.
func TestOperationInsertValid(t *testing.T) {
	operation := NewInsert(10, []byte("data"))
	if err := operation.EnsureValid(); err != nil {
		t.Error("valid insert operation considered invalid:", err)
	}
	if operation.Kind() != Insert {
		t.Error("insert operation kind incorrect:", operation.Kind())
	}
}

// TestOperationRemoveValid verifies a valid remove operation.
func TestOperationRemoveValid(t *testing.T) {
	operation := NewRemove(10, 4)
	if err := operation.EnsureValid(); err != nil {
		t.Error("valid remove operation considered invalid:", err)
	}
	if operation.Kind() != Remove {
		t.Error("remove operation kind incorrect:", operation.Kind())
	}
}

// TestNewInsertCopies verifies that insert construction copies the provided
// buffer rather than aliasing it.
func TestNewInsertCopies(t *testing.T) {
	buffer := []byte("mutable")
	operation := NewInsert(0, buffer)
	buffer[0] = 'X'
	if !bytes.Equal(operation.Data, []byte("mutable")) {
		t.Error("insert operation aliases caller buffer")
	}
}

// TestOperationCopyIndependent verifies that copied operations do not share
// data buffers.
func TestOperationCopyIndependent(t *testing.T) {
	original := NewInsert(5, []byte("shared?"))
	duplicate := original.Copy()
	original.Data[0] = 'X'
	if bytes.Equal(original.Data, duplicate.Data) {
		t.Error("operation copy shares data buffer")
	}
	if duplicate.Offset != 5 {
		t.Error("operation copy offset incorrect:", duplicate.Offset)
	}
}

// TestOperationKindString verifies kind formatting.
func TestOperationKindString(t *testing.T) {
	if Insert.String() != "insert" || Remove.String() != "remove" {
		t.Error("operation kind formatting incorrect")
	}
}
