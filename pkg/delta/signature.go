package delta

import (
	"hash"
	"math"

	"github.com/pkg/errors"

	"golang.org/x/crypto/blake2b"

	"github.com/rsdiff-io/rsdiff/pkg/rolling"
)

const (
	// StrongHashSize is the number of bytes of the BLAKE2b-512 digest retained
	// as a block's strong hash.
	StrongHashSize = 32
	// MinimumBlockSize is the block size used for bases at or below the scaled
	// sizing threshold. It is also the floor enforced on the scaled heuristic
	// so that sizing can never produce a zero or degenerate block size.
	MinimumBlockSize = 32
	// blockSizeScalingThreshold is the base length (MinimumBlockSize squared)
	// above which the square-root block sizing heuristic kicks in.
	blockSizeScalingThreshold = 1024
)

// BlockHash stores the hashes and ordinal position of a single block of the
// base buffer.
type BlockHash struct {
	// Index is the 0-based ordinal of the block within the base.
	Index uint32
	// Weak is the rolling checksum of the block bytes.
	Weak uint32
	// Strong is the truncated BLAKE2b-512 digest of the block bytes.
	Strong [StrongHashSize]byte
}

// Signature stores the block hashes for a base buffer, in block order. It is
// sufficient to compute a delta against the base without access to the base
// bytes themselves.
type Signature struct {
	// OriginalLength is the length of the base buffer in bytes.
	OriginalLength uint64
	// BlockSize is the block length used when hashing the base. The final
	// block may be shorter.
	BlockSize uint64
	// Blocks are the per-block hashes, ordered by block index.
	Blocks []BlockHash
}

// OptimalBlockSize computes a block size for a base of the specified length.
// Bases at or below the scaling threshold use the minimum block size; longer
// bases use the square root of the length rounded down to the nearest multiple
// of 128 (matching rsync's sizing heuristic), floored at the minimum block
// size so that sizing never degenerates for intermediate lengths.
func OptimalBlockSize(baseLength uint64) uint64 {
	if baseLength <= blockSizeScalingThreshold {
		return MinimumBlockSize
	}
	result := uint64(math.Sqrt(float64(baseLength))) &^ 127
	if result < MinimumBlockSize {
		result = MinimumBlockSize
	}
	return result
}

// newStrongHasher constructs the strong hash function used for block
// fingerprinting.
func newStrongHasher() hash.Hash {
	hasher, err := blake2b.New512(nil)
	if err != nil {
		panic(errors.Wrap(err, "unable to construct strong hasher"))
	}
	return hasher
}

// sumStrong finalizes a strong hasher into a truncated digest and resets the
// hasher for re-use.
func sumStrong(hasher hash.Hash) [StrongHashSize]byte {
	var digest [blake2b.Size]byte
	hasher.Sum(digest[:0])
	hasher.Reset()
	var result [StrongHashSize]byte
	copy(result[:], digest[:StrongHashSize])
	return result
}

// NewSignature computes the signature of a base buffer using the specified
// block size. A zero block size is a caller bug and panics; callers that want
// automatic sizing should pass OptimalBlockSize of the base length.
func NewSignature(base []byte, blockSize uint64) *Signature {
	// Watch for misuse.
	if blockSize == 0 {
		panic("zero block size")
	}

	// Create the result.
	result := &Signature{
		OriginalLength: uint64(len(base)),
		BlockSize:      blockSize,
	}

	// Create the strong hasher. It is reset and re-used across blocks.
	strong := newStrongHasher()

	// Hash blocks in order. The final block may be short.
	for index := uint32(0); len(base) > 0; index++ {
		block := base
		if uint64(len(block)) > blockSize {
			block = block[:blockSize]
		}
		strong.Write(block)
		result.Blocks = append(result.Blocks, BlockHash{
			Index:  index,
			Weak:   rolling.Checksum(block),
			Strong: sumStrong(strong),
		})
		base = base[len(block):]
	}

	// Done.
	return result
}

// blockCount computes the number of blocks covering a buffer of the specified
// length at the specified block size.
func blockCount(length, blockSize uint64) uint64 {
	return (length + blockSize - 1) / blockSize
}

// EnsureValid verifies that signature invariants are respected.
func (s *Signature) EnsureValid() error {
	// A nil signature is not valid.
	if s == nil {
		return errors.New("nil signature")
	}

	// Ensure that the block size is sane.
	if s.BlockSize == 0 {
		return errors.New("zero block size")
	}

	// Ensure that the block list covers the base exactly.
	if uint64(len(s.Blocks)) != blockCount(s.OriginalLength, s.BlockSize) {
		return errors.New("block count inconsistent with base length")
	}

	// Ensure that blocks appear in buffer order.
	for i, block := range s.Blocks {
		if block.Index != uint32(i) {
			return errors.New("block indices out of order")
		}
	}

	// Success.
	return nil
}

// Index converts the signature into its indexed form for matching. The
// signature itself is not retained by the result.
func (s *Signature) Index() *IndexedSignature {
	// Create the lookup map. If two blocks collide on their weak hash, the
	// later block wins. A collision can only cost a missed match because
	// candidates are re-verified with the strong hash.
	blocks := make(map[uint32]BlockHash, len(s.Blocks))
	for _, block := range s.Blocks {
		blocks[block.Weak] = block
	}

	// Create the indexed signature.
	return &IndexedSignature{
		OriginalLength: s.OriginalLength,
		BlockSize:      s.BlockSize,
		blocks:         blocks,
	}
}
