package rolling

import (
	"math/rand"
	"testing"
)

// TestEmptyChecksum verifies that the checksum of the empty sequence is 0.
func TestEmptyChecksum(t *testing.T) {
	if c := Checksum(nil); c != 0 {
		t.Error("empty checksum incorrect:", c, "!= 0")
	}
}

// TestZeroByteChecksum verifies the digest bit pattern for a single zero byte,
// for which both components equal the bias constant.
func TestZeroByteChecksum(t *testing.T) {
	component := uint32(0xDEADC0DE)
	expected := component<<16 | component
	if c := Checksum([]byte{0}); c != expected {
		t.Errorf("zero byte checksum incorrect: %#x != %#x", c, expected)
	}
}

// TestKnownChecksum verifies the digest of a known reference input.
func TestKnownChecksum(t *testing.T) {
	if c := Checksum([]byte("Wikipedia")); c != 0xFCFBCB65 {
		t.Errorf("known checksum incorrect: %#x != 0xfcfbcb65", c)
	}
}

// TestInsertRemoveRestoresState verifies that removing the only inserted byte
// restores the hasher to its initial state.
func TestInsertRemoveRestoresState(t *testing.T) {
	var hasher Hasher
	hasher.Insert(42)
	hasher.Remove(42)
	if d := hasher.Digest(); d != 0 {
		t.Errorf("digest not restored after insert/remove: %#x != 0", d)
	}
	if c := hasher.Count(); c != 0 {
		t.Error("count not restored after insert/remove:", c, "!= 0")
	}
}

// TestRemoveFromHead verifies that successively removing bytes from the head
// of the window yields the same digests as hashing the corresponding suffixes
// from scratch.
func TestRemoveFromHead(t *testing.T) {
	data := []byte("shekohex")
	var hasher Hasher
	hasher.Update(data)
	for i := 0; i < len(data); i++ {
		hasher.Remove(data[i])
		if d, e := hasher.Digest(), Checksum(data[i+1:]); d != e {
			t.Errorf("digest after removing %d byte(s) incorrect: %#x != %#x", i+1, d, e)
		}
	}
}

// TestSlide verifies that sliding a fixed-length window one byte forward by
// inserting the entering byte and removing the leaving byte matches the
// checksum of the shifted window computed from scratch.
func TestSlide(t *testing.T) {
	// Generate repeatable random data.
	random := rand.New(rand.NewSource(631))
	data := make([]byte, 1024)
	random.Read(data)

	// Slide a window over the data at a variety of window lengths.
	for _, windowSize := range []int{1, 2, 16, 100, 512} {
		var hasher Hasher
		hasher.Update(data[:windowSize])
		for i := windowSize; i < len(data); i++ {
			hasher.Insert(data[i])
			hasher.Remove(data[i-windowSize])
			if d, e := hasher.Digest(), Checksum(data[i-windowSize+1:i+1]); d != e {
				t.Fatalf(
					"window size %d digest at offset %d incorrect: %#x != %#x",
					windowSize, i-windowSize+1, d, e,
				)
			}
		}
	}
}

// TestReset verifies that Reset returns a used hasher to its initial state.
func TestReset(t *testing.T) {
	var hasher Hasher
	hasher.Update([]byte("some data"))
	hasher.Reset()
	if d := hasher.Digest(); d != 0 {
		t.Errorf("digest after reset incorrect: %#x != 0", d)
	}
	if c := hasher.Count(); c != 0 {
		t.Error("count after reset incorrect:", c, "!= 0")
	}
	hasher.Update([]byte("Wikipedia"))
	if d := hasher.Digest(); d != 0xFCFBCB65 {
		t.Errorf("digest after reset and update incorrect: %#x != 0xfcfbcb65", d)
	}
}

// TestUpdateMatchesInserts verifies that Update is equivalent to repeated
// Insert calls.
func TestUpdateMatchesInserts(t *testing.T) {
	data := []byte("i saw a red fox")
	var byUpdate, byInsert Hasher
	byUpdate.Update(data)
	for _, b := range data {
		byInsert.Insert(b)
	}
	if byUpdate.Digest() != byInsert.Digest() {
		t.Error("update digest differs from insert digest")
	}
	if byUpdate.Count() != byInsert.Count() {
		t.Error("update count differs from insert count")
	}
}
