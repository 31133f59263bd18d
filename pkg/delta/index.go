package delta

import (
	"sort"

	"github.com/pkg/errors"
)

// IndexedSignature is a signature keyed by weak hash for O(1) probing during
// delta computation. It is immutable after construction and may be shared
// freely across concurrent diffs.
type IndexedSignature struct {
	// OriginalLength is the length of the base buffer in bytes.
	OriginalLength uint64
	// BlockSize is the block length used when hashing the base.
	BlockSize uint64
	// blocks maps weak hashes to block hashes. At most one block is retained
	// per weak hash.
	blocks map[uint32]BlockHash
}

// NewIndexedSignature reconstitutes an indexed signature from its flat entry
// list, e.g. after deserialization. Entries that collide on their weak hash
// are resolved last-write-wins, matching Signature.Index.
func NewIndexedSignature(originalLength, blockSize uint64, entries []BlockHash) (*IndexedSignature, error) {
	// Watch for insane parameters.
	if blockSize == 0 {
		return nil, errors.New("zero block size")
	}

	// Build the lookup map.
	blocks := make(map[uint32]BlockHash, len(entries))
	for _, entry := range entries {
		blocks[entry.Weak] = entry
	}

	// Success.
	return &IndexedSignature{
		OriginalLength: originalLength,
		BlockSize:      blockSize,
		blocks:         blocks,
	}, nil
}

// lookup probes the index for a block with the specified weak hash.
func (s *IndexedSignature) lookup(weak uint32) (BlockHash, bool) {
	block, ok := s.blocks[weak]
	return block, ok
}

// Entries returns the retained block hashes as a flat list ordered by block
// index, suitable for serialization.
func (s *IndexedSignature) Entries() []BlockHash {
	entries := make([]BlockHash, 0, len(s.blocks))
	for _, block := range s.blocks {
		entries = append(entries, block)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Index < entries[j].Index
	})
	return entries
}
