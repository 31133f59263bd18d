package delta

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// ApplyTo reconstructs the target by streaming it to a destination writer.
// Base bytes are copied to the output by default; at each insert offset the
// operation's data is injected, and at each remove offset the operation's
// length of base bytes is skipped. Operations must be provided in the order
// Diff emitted them.
func ApplyTo(destination io.Writer, base []byte, operations []Operation) error {
	// produced tracks the number of output bytes written; cursor tracks the
	// number of base bytes consumed.
	var produced, cursor uint64

	for i := range operations {
		operation := &operations[i]

		// Copy base bytes until the output reaches the operation's offset.
		if operation.Offset < produced {
			return errors.New("operation offset regresses")
		}
		gap := operation.Offset - produced
		if gap > uint64(len(base))-cursor {
			return errors.New("operation offset beyond available base data")
		}
		if gap > 0 {
			if _, err := destination.Write(base[cursor : cursor+gap]); err != nil {
				return errors.Wrap(err, "unable to copy base data")
			}
			cursor += gap
			produced += gap
		}

		// Apply the operation.
		switch operation.Kind() {
		case Insert:
			if _, err := destination.Write(operation.Data); err != nil {
				return errors.Wrap(err, "unable to write inserted data")
			}
			produced += uint64(len(operation.Data))
		case Remove:
			if operation.Length > uint64(len(base))-cursor {
				return errors.New("removal length exceeds available base data")
			}
			cursor += operation.Length
		}
	}

	// Copy any remaining base bytes.
	if cursor < uint64(len(base)) {
		if _, err := destination.Write(base[cursor:]); err != nil {
			return errors.Wrap(err, "unable to copy trailing base data")
		}
	}

	// Success.
	return nil
}

// Apply reconstructs the target as a byte slice.
func Apply(base []byte, operations []Operation) ([]byte, error) {
	output := bytes.NewBuffer(nil)
	if err := ApplyTo(output, base, operations); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
