package twisty

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/anaminus/parse"
	lz4 "github.com/bkaradzic/go-lz4"
)

// fragmentMagic starts every binary history. The last byte is the version.
const fragmentMagic = "TWH\x01"

// maxFragmentSize bounds the decompressed size a fragment may declare.
// lz4 expands at most 255 times, so larger claims are corrupt.
const maxFragmentSize = 1 << 24

// EncodeFragment encodes the persisted history compactly for a URL fragment:
// a little-endian binary log, lz4 compressed, in unpadded base64url.
func (p *Puzzle) EncodeFragment() (string, error) {
	return EncodeHistory(p.history)
}

// EncodeHistory encodes h the way EncodeFragment does.
func EncodeHistory(h History) (string, error) {
	var buf bytes.Buffer
	fw := parse.NewBinaryWriter(&buf)
	if fw.Bytes([]byte(fragmentMagic)) || writeIDs(fw, h.Initial) || writeIDs(fw, h.Undo) {
		_, err := fw.End()
		return "", fmt.Errorf("failed to write history: %w", err)
	}
	if _, err := fw.End(); err != nil {
		return "", fmt.Errorf("failed to write history: %w", err)
	}

	packed, err := lz4.Encode(nil, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to compress history: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(packed), nil
}

func writeIDs(fw *parse.BinaryWriter, ids []int) (failed bool) {
	if fw.Number(uint32(len(ids))) {
		return true
	}
	for _, id := range ids {
		if fw.Number(uint32(id)) {
			return true
		}
	}
	return false
}

// DecodeHistory parses a fragment produced by EncodeHistory.
func DecodeHistory(fragment string) (History, error) {
	packed, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return History{}, fmt.Errorf("%w: %v", ErrInvalidFragment, err)
	}
	if len(packed) < 4 {
		return History{}, fmt.Errorf("%w: truncated", ErrInvalidFragment)
	}
	size := binary.LittleEndian.Uint32(packed)
	if size > maxFragmentSize || uint64(size) > 255*uint64(len(packed)) {
		return History{}, fmt.Errorf("%w: declared size %d too large", ErrInvalidFragment, size)
	}
	raw, err := lz4.Decode(nil, packed)
	if err != nil {
		return History{}, fmt.Errorf("%w: lz4: %v", ErrInvalidFragment, err)
	}

	fr := parse.NewBinaryReader(bytes.NewReader(raw))
	magic := make([]byte, len(fragmentMagic))
	if fr.Bytes(magic) || string(magic) != fragmentMagic {
		return History{}, fmt.Errorf("%w: bad header", ErrInvalidFragment)
	}

	var h History
	limit := len(raw) / 4
	if h.Initial, err = readIDs(fr, limit); err != nil {
		return History{}, err
	}
	if h.Undo, err = readIDs(fr, limit); err != nil {
		return History{}, err
	}
	return h, nil
}

func readIDs(fr *parse.BinaryReader, limit int) ([]int, error) {
	var count uint32
	if fr.Number(&count) {
		return nil, fmt.Errorf("%w: truncated length", ErrInvalidFragment)
	}
	if int(count) > limit {
		return nil, fmt.Errorf("%w: length %d exceeds payload", ErrInvalidFragment, count)
	}
	ids := make([]int, count)
	for i := range ids {
		var id uint32
		if fr.Number(&id) {
			return nil, fmt.Errorf("%w: truncated move list", ErrInvalidFragment)
		}
		ids[i] = int(id)
	}
	return ids, nil
}

// DecodeFragment replaces state and history with a fragment produced by
// EncodeFragment. On error the puzzle is unchanged.
func (p *Puzzle) DecodeFragment(fragment string) error {
	h, err := DecodeHistory(fragment)
	if err != nil {
		return err
	}
	return p.LoadHistory(h)
}
