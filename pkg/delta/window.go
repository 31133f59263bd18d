package delta

import (
	"io"
)

// window is a sliding, byte-granular view over a target stream. It maintains
// two adjacent frames of up to blockSize bytes each; the logical current block
// is front[offset:] followed by back[:offset], which always has length
// frameSize. Advancing the window one byte reports the byte leaving the view
// on the left and the byte entering it on the right, allowing a rolling hasher
// to be updated incrementally.
type window struct {
	// front is the frame currently being consumed.
	front []byte
	// back is the frame adjacent to front, refilled from the source as front
	// is exhausted.
	back []byte
	// blockSize is the frame capacity.
	blockSize int
	// offset is the consumption cursor within front.
	offset int
	// bytesRead is the cumulative number of advance steps taken.
	bytesRead uint64
	// source is the underlying target stream.
	source io.Reader
}

// fill reads up to len(buffer) bytes from a reader, returning the prefix of
// the buffer that was populated. Unlike io.ReadFull, a short read due to end
// of stream is not an error.
func fill(reader io.Reader, buffer []byte) ([]byte, error) {
	n, err := io.ReadFull(reader, buffer)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return buffer[:n], err
}

// newWindow creates a window over the source, priming both frames.
func newWindow(source io.Reader, blockSize int) (*window, error) {
	front, err := fill(source, make([]byte, blockSize))
	if err != nil {
		return nil, err
	}
	back, err := fill(source, make([]byte, blockSize))
	if err != nil {
		return nil, err
	}
	return &window{
		front:     front,
		back:      back,
		blockSize: blockSize,
		source:    source,
	}, nil
}

// frame returns the two segments of the current view: the unconsumed portion
// of front followed by the consumed-length prefix of back. Their concatenation
// is the logical current block.
func (w *window) frame() ([]byte, []byte) {
	frontOffset := w.offset
	if frontOffset > len(w.front) {
		frontOffset = len(w.front)
	}
	backOffset := w.offset
	if backOffset > len(w.back) {
		backOffset = len(w.back)
	}
	return w.front[frontOffset:], w.back[:backOffset]
}

// frameSize returns the length of the current view, saturating at 0.
func (w *window) frameSize() int {
	size := len(w.front) + len(w.back) - w.offset
	if size < 0 {
		return 0
	}
	return size
}

// hasFrame indicates whether any bytes remain in view.
func (w *window) hasFrame() bool {
	return w.frameSize() > 0
}

// onBoundary indicates whether the cursor sits on a frame boundary.
func (w *window) onBoundary() bool {
	return w.offset == 0 || w.offset == len(w.front)
}

// rotate promotes back to front and refills back from the source.
func (w *window) rotate() error {
	w.front = w.back
	back, err := fill(w.source, make([]byte, w.blockSize))
	if err != nil {
		return err
	}
	w.back = back
	w.offset = 0
	return nil
}

// moveForward advances the window a single byte, returning the byte that left
// the view on the left (the tail) and the byte that entered it on the right
// (the head), each with a presence flag. Near the end of the stream either or
// both may be absent. Once the window is empty, moveForward reports neither
// byte and stops advancing counters.
func (w *window) moveForward() (byte, bool, byte, bool, error) {
	// If the front frame is exhausted, rotate in the back frame. When no data
	// remains at all, the window is empty and there's nothing to report.
	if len(w.front) == 0 {
		return 0, false, 0, false, nil
	}
	if w.offset >= len(w.front) {
		if len(w.back) == 0 {
			return 0, false, 0, false, nil
		}
		if err := w.rotate(); err != nil {
			return 0, false, 0, false, err
		}
	}

	// Extract the tail byte (leaving the view).
	var tail byte
	var haveTail bool
	if w.offset < len(w.front) {
		tail = w.front[w.offset]
		haveTail = true
	}

	// Extract the head byte (entering the view).
	var head byte
	var haveHead bool
	if headIndex := w.offset + w.blockSize - len(w.front); headIndex < len(w.back) {
		head = w.back[headIndex]
		haveHead = true
	}

	// Advance.
	w.offset++
	w.bytesRead++

	// Done.
	return tail, haveTail, head, haveHead, nil
}
