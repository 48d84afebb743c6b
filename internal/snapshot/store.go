package snapshot

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"ownworld/internal/errs"
)

// Store persists and retrieves named, compressed, content-hashed
// snapshot blobs. Two backends satisfy it: a local-file store and a
// SQLite-backed one, mirroring the teacher's choice of either a flat
// log file or a SQLite blob column for the same kind of payload.
type Store interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, error)
}

// compress mirrors the teacher's compressLZ4 helper (utils.go).
func compress(src []byte) []byte {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	zw.Write(src)
	zw.Close()
	return buf.Bytes()
}

// decompress mirrors the teacher's decompressLZ4 helper.
func decompress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zr := lz4.NewReader(bytes.NewReader(src))
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, errs.InvalidStatef("snapshot: lz4 decompress failed: %v", err)
	}
	return buf.Bytes(), nil
}

// contentHash mirrors the teacher's hashBLAKE3 helper.
func contentHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ContentHash exposes contentHash for tools that inspect a decoded
// snapshot payload directly, such as tools/worldadmin.
func ContentHash(data []byte) string {
	return contentHash(data)
}

// envelope is what a backend actually stores: the plaintext's content
// hash plus its LZ4-compressed bytes, so Load can detect corruption
// before it ever reaches the JSON decoder.
type envelope struct {
	hash       string
	compressed []byte
}

func wrap(plain []byte) envelope {
	return envelope{hash: contentHash(plain), compressed: compress(plain)}
}

func (e envelope) unwrap() ([]byte, error) {
	plain, err := decompress(e.compressed)
	if err != nil {
		return nil, err
	}
	if contentHash(plain) != e.hash {
		return nil, errs.InvalidStatef("snapshot: content hash mismatch, data corrupted")
	}
	return plain, nil
}
