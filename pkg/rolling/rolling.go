// Package rolling implements the 32-bit rolling checksum used for weak block
// fingerprinting. The checksum is an additive Adler-32 variant without the
// prime modulus and with a constant bias added to each byte to spread bits
// over short inputs. It can be updated in constant time as a fixed-length
// window slides forward over a buffer.
package rolling

// bias is the constant added to each byte before it enters the checksum. It
// ensures that short and low-entropy inputs still populate the upper bits of
// the digest.
const bias = 0xDEADC0DE

// Hasher computes a rolling checksum over a window of bytes. Its zero value is
// ready to use and corresponds to the checksum of the empty sequence. Hasher
// values are cheap to copy, but copies evolve independently.
type Hasher struct {
	// a is the low-order checksum component (the biased byte sum).
	a uint32
	// b is the high-order checksum component (the sum of running a values).
	b uint32
	// count is the number of bytes currently inside the window.
	count uint64
}

// Digest returns the current 32-bit checksum, formed by concatenating the two
// checksum components.
func (h *Hasher) Digest() uint32 {
	return h.b<<16 | h.a
}

// Count returns the number of bytes currently inside the window.
func (h *Hasher) Count() uint64 {
	return h.count
}

// Insert feeds a single byte into the window from the right. All arithmetic
// wraps modulo 2^32.
func (h *Hasher) Insert(value byte) {
	x := uint32(value) + bias
	h.a += x
	h.b += h.a
	h.count++
}

// Remove drops a byte from the left of the window. The byte must be the one
// inserted Count calls ago; removing a byte that was never inserted corrupts
// the checksum and removing from an empty window is a caller bug.
func (h *Hasher) Remove(value byte) {
	x := uint32(value) + bias
	h.b -= uint32(h.count) * x
	h.a -= x
	h.count--
}

// Update feeds a sequence of bytes into the window in order.
func (h *Hasher) Update(data []byte) {
	for _, value := range data {
		h.Insert(value)
	}
}

// Reset returns the hasher to its initial state, equivalent to a freshly
// constructed Hasher.
func (h *Hasher) Reset() {
	h.a = 0
	h.b = 0
	h.count = 0
}

// Checksum computes the checksum of a byte sequence from scratch. It is
// equivalent to feeding the sequence through Update on a zero-value Hasher and
// taking its Digest.
func Checksum(data []byte) uint32 {
	var hasher Hasher
	hasher.Update(data)
	return hasher.Digest()
}
