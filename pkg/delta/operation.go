package delta

import (
	"github.com/pkg/errors"
)

// OperationKind identifies the two operation variants.
type OperationKind uint8

const (
	// Insert injects new bytes into the reconstructed output.
	Insert OperationKind = iota
	// Remove skips bytes of the base that would otherwise be copied.
	Remove
)

// String provides a human-readable representation of an operation kind.
func (k OperationKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Operation is a single edit step. Insert operations carry the bytes to
// inject at Offset in the reconstructed output; Remove operations carry the
// number of base bytes to skip at Offset. The variant is discriminated by the
// presence of data: operations with data are inserts, operations without are
// removes.
type Operation struct {
	// Offset is the position in the reconstructed output at which the
	// operation applies.
	Offset uint64
	// Data is the injected byte run for insert operations. It is owned by the
	// operation and never aliases scanner state.
	Data []byte
	// Length is the number of base bytes to skip for remove operations.
	Length uint64
}

// NewInsert creates an insert operation, copying the provided bytes so that
// the operation remains valid after the source buffer is reused.
func NewInsert(offset uint64, data []byte) Operation {
	owned := make([]byte, len(data))
	copy(owned, data)
	return Operation{Offset: offset, Data: owned}
}

// NewRemove creates a remove operation.
func NewRemove(offset, length uint64) Operation {
	return Operation{Offset: offset, Length: length}
}

// Kind returns the operation's variant.
func (o *Operation) Kind() OperationKind {
	if len(o.Data) > 0 {
		return Insert
	}
	return Remove
}

// EnsureValid verifies that operation invariants are respected.
func (o *Operation) EnsureValid() error {
	// A nil operation is not valid.
	if o == nil {
		return errors.New("nil operation")
	}

	// Ensure that exactly one variant is populated.
	if len(o.Data) > 0 {
		if o.Length != 0 {
			return errors.New("insert operation with non-0 removal length")
		}
	} else if o.Length == 0 {
		return errors.New("remove operation with 0 removal length")
	}

	// Success.
	return nil
}

// Copy creates a deep copy of an operation.
func (o *Operation) Copy() Operation {
	if len(o.Data) > 0 {
		return NewInsert(o.Offset, o.Data)
	}
	return Operation{Offset: o.Offset, Length: o.Length}
}
