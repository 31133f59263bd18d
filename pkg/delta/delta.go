package delta

import (
	"bytes"
	"hash"
	"io"

	"github.com/pkg/errors"

	"github.com/rsdiff-io/rsdiff/pkg/rolling"
)

// differ holds the state of a single delta computation. It lives only for the
// duration of one Diff call.
type differ struct {
	// signature is the indexed signature of the base.
	signature *IndexedSignature
	// window is the sliding view over the target.
	window *window
	// hasher is the rolling checksum over the current window frame.
	hasher rolling.Hasher
	// strong is the strong hasher used to confirm candidate matches.
	strong hash.Hash
	// insBuffer accumulates unmatched target bytes between matches.
	insBuffer []byte
	// lastMatched is the ordinal of the most recently matched base block, or
	// -1 before any match. Matches must be strictly increasing in ordinal.
	lastMatched int64
	// operations is the accumulated edit script.
	operations []Operation
}

// probe checks whether the current window frame matches a base block. A
// candidate found by weak hash is confirmed by strong hash and must lie
// strictly after the last matched block: the Insert/Remove script can only
// reference base blocks in order, so a base block at or before the last
// matched block degrades into an insert and a remove rather than a match.
func (d *differ) probe() (uint32, bool) {
	// Probe the index by weak hash.
	candidate, ok := d.signature.lookup(d.hasher.Digest())
	if !ok {
		return 0, false
	}

	// Enforce match ordering.
	if int64(candidate.Index) <= d.lastMatched {
		return 0, false
	}

	// Confirm with the strong hash over the frame bytes.
	front, back := d.window.frame()
	d.strong.Write(front)
	d.strong.Write(back)
	if sumStrong(d.strong) != candidate.Strong {
		return 0, false
	}

	// Matched.
	return candidate.Index, true
}

// advance moves the window one byte forward and updates the rolling hasher
// with the bytes that left and entered the frame. It returns the byte that
// left the frame, if any.
func (d *differ) advance() (byte, bool, error) {
	tail, haveTail, head, haveHead, err := d.window.moveForward()
	if err != nil {
		return 0, false, err
	}
	if haveTail {
		d.hasher.Remove(tail)
	}
	if haveHead {
		d.hasher.Insert(head)
	}
	return tail, haveTail, nil
}

// flushInsert emits any pending insert operation.
func (d *differ) flushInsert() {
	if len(d.insBuffer) == 0 {
		return
	}
	offset := d.window.bytesRead - uint64(len(d.insBuffer))
	d.operations = append(d.operations, NewInsert(offset, d.insBuffer))
	d.insBuffer = d.insBuffer[:0]
}

// run drives the scan loop to completion.
func (d *differ) run() error {
	blockSize := int(d.signature.BlockSize)

	// Prime the rolling hasher over the initial frame.
	d.hasher.Update(d.window.front)

	// Walk the target byte by byte.
	for d.window.hasFrame() {
		if match, ok := d.probe(); ok {
			// Emit target bytes accumulated since the previous match.
			d.flushInsert()

			// A gap in matched ordinals means the intervening base blocks
			// have no counterpart in the target.
			if int64(match) > d.lastMatched+1 {
				skipped := uint64(int64(match) - d.lastMatched - 1)
				d.operations = append(
					d.operations,
					NewRemove(d.window.bytesRead, skipped*d.signature.BlockSize),
				)
			}
			d.lastMatched = int64(match)

			// Jump the window past the matched block, re-priming the hasher
			// over the following block as it slides.
			for i := 0; i < blockSize; i++ {
				if d.window.onBoundary() && d.window.frameSize() == 0 {
					break
				}
				if _, _, err := d.advance(); err != nil {
					return errors.Wrap(err, "unable to advance past match")
				}
			}
		} else {
			// No match at this position: the byte leaving the frame belongs
			// to no base block and joins the pending insert run.
			tail, haveTail, err := d.advance()
			if err != nil {
				return errors.Wrap(err, "unable to advance window")
			}
			if haveTail {
				d.insBuffer = append(d.insBuffer, tail)
			}
		}
	}

	// Emit any trailing insert run.
	d.flushInsert()

	// Account for a matched prefix of the base followed by an unmatched tail.
	originalBlocks := blockCount(d.signature.OriginalLength, d.signature.BlockSize)
	if matched := uint64(d.lastMatched + 1); matched < originalBlocks {
		d.operations = append(
			d.operations,
			NewRemove(d.window.bytesRead, d.signature.OriginalLength-matched*d.signature.BlockSize),
		)
	}

	// Success.
	return nil
}

// Diff computes the edit script that transforms the base described by the
// indexed signature into the target stream. Operations are returned in
// emission order: offsets are non-decreasing within each operation kind, but
// inserts and removes may interleave. The only failure mode is a read error
// from the target; any byte sequence produces a valid script.
func Diff(signature *IndexedSignature, target io.Reader) ([]Operation, error) {
	window, err := newWindow(target, int(signature.BlockSize))
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialize window")
	}
	d := &differ{
		signature:   signature,
		window:      window,
		strong:      newStrongHasher(),
		lastMatched: -1,
	}
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.operations, nil
}

// DiffBytes computes the edit script between two in-memory buffers. It
// selects a block size from the longer of the two buffers, builds and indexes
// the base signature, and diffs the target against it. In-memory reads cannot
// fail, so errors panic.
func DiffBytes(base, target []byte) []Operation {
	// Size blocks off the longer buffer.
	length := uint64(len(base))
	if targetLength := uint64(len(target)); targetLength > length {
		length = targetLength
	}
	blockSize := OptimalBlockSize(length)

	// Build, index, and diff.
	signature := NewSignature(base, blockSize).Index()
	operations, err := Diff(signature, bytes.NewReader(target))
	if err != nil {
		panic(errors.Wrap(err, "in-memory diff failure"))
	}
	return operations
}
