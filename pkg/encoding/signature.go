package encoding

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/rsdiff-io/rsdiff/pkg/delta"
)

const (
	// signatureMagic identifies serialized signature data.
	signatureMagic = 0x52534447
	// signatureVersion is the current serialization format version.
	signatureVersion = 1
)

// signatureHeader is the fixed-width header preceding signature entries.
type signatureHeader struct {
	Magic          uint32
	Version        uint32
	OriginalLength uint64
	BlockSize      uint64
	EntryCount     uint32
}

// signatureEntry is the fixed-width wire form of a single block hash.
type signatureEntry struct {
	Weak   uint32
	Index  uint32
	Strong [delta.StrongHashSize]byte
}

// WriteSignature encodes an indexed signature to a writer as a fixed-width
// big-endian record stream: a header followed by one entry per retained
// block.
func WriteSignature(writer io.Writer, signature *delta.IndexedSignature) error {
	// Flatten the index.
	entries := signature.Entries()

	// Write the header.
	header := signatureHeader{
		Magic:          signatureMagic,
		Version:        signatureVersion,
		OriginalLength: signature.OriginalLength,
		BlockSize:      signature.BlockSize,
		EntryCount:     uint32(len(entries)),
	}
	if err := binary.Write(writer, binary.BigEndian, &header); err != nil {
		return errors.Wrap(err, "unable to write signature header")
	}

	// Write entries.
	for _, entry := range entries {
		record := signatureEntry{
			Weak:   entry.Weak,
			Index:  entry.Index,
			Strong: entry.Strong,
		}
		if err := binary.Write(writer, binary.BigEndian, &record); err != nil {
			return errors.Wrap(err, "unable to write signature entry")
		}
	}

	// Success.
	return nil
}

// ReadSignature decodes an indexed signature from a reader.
func ReadSignature(reader io.Reader) (*delta.IndexedSignature, error) {
	// Read and validate the header.
	var header signatureHeader
	if err := binary.Read(reader, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "unable to read signature header")
	}
	if header.Magic != signatureMagic {
		return nil, errors.New("signature magic incorrect")
	}
	if header.Version != signatureVersion {
		return nil, errors.Errorf("unknown signature version: %d", header.Version)
	}

	// Read entries.
	entries := make([]delta.BlockHash, header.EntryCount)
	for i := range entries {
		var record signatureEntry
		if err := binary.Read(reader, binary.BigEndian, &record); err != nil {
			return nil, errors.Wrap(err, "unable to read signature entry")
		}
		entries[i] = delta.BlockHash{
			Weak:   record.Weak,
			Index:  record.Index,
			Strong: record.Strong,
		}
	}

	// Reconstitute the index.
	signature, err := delta.NewIndexedSignature(header.OriginalLength, header.BlockSize, entries)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature parameters")
	}

	// Success.
	return signature, nil
}

// MarshalSignature encodes an indexed signature to a byte slice.
func MarshalSignature(signature *delta.IndexedSignature) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	if err := WriteSignature(buffer, signature); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// UnmarshalSignature decodes an indexed signature from a byte slice.
func UnmarshalSignature(data []byte) (*delta.IndexedSignature, error) {
	return ReadSignature(bytes.NewReader(data))
}

// SaveSignature writes an indexed signature atomically to the specified path.
func SaveSignature(path string, signature *delta.IndexedSignature) error {
	return MarshalAndSave(path, func() ([]byte, error) {
		return MarshalSignature(signature)
	})
}

// LoadSignature reads an indexed signature from the specified path.
func LoadSignature(path string) (*delta.IndexedSignature, error) {
	var signature *delta.IndexedSignature
	if err := LoadAndUnmarshal(path, func(data []byte) error {
		result, err := UnmarshalSignature(data)
		if err != nil {
			return err
		}
		signature = result
		return nil
	}); err != nil {
		return nil, err
	}
	return signature, nil
}
