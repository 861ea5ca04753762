package rsync

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

// Codec implements the binary wire format for Signature and Delta: every
// top-level record is prefixed by its own serialized byte length, and all
// multi-byte integers are big-endian and width-exact. Length fields that the
// original format left as platform-native size_t are pinned here to u64,
// per the documented recommendation for cross-platform interoperability.

// EncodeSignature serializes a Signature per the layout:
//
//	total_len:u64 | sha_len:u64 | sha[sha_len] | block_size:u16 |
//	entries:u64 | entries x { weak:u32 | inner_len:u64 | inner_len x { strong:u64 | block_index:u32 } }
//
// Weak-hash entries are written in ascending order (and strong-hash entries
// within each, also ascending) so that output is reproducible across runs,
// since Go map iteration order is not.
func EncodeSignature(s *Signature) []byte {
	var body bytes.Buffer

	writeUint64(&body, uint64(len(s.ContentHash)))
	body.Write(s.ContentHash)
	writeUint16(&body, s.BlockSize)

	weakKeys := make([]uint32, 0, len(s.Entries))
	for weak := range s.Entries {
		weakKeys = append(weakKeys, weak)
	}
	sort.Slice(weakKeys, func(i, j int) bool { return weakKeys[i] < weakKeys[j] })

	writeUint64(&body, uint64(len(weakKeys)))
	for _, weak := range weakKeys {
		inner := s.Entries[weak]
		strongKeys := make([]uint64, 0, len(inner))
		for strong := range inner {
			strongKeys = append(strongKeys, strong)
		}
		sort.Slice(strongKeys, func(i, j int) bool { return strongKeys[i] < strongKeys[j] })

		writeUint32(&body, weak)
		writeUint64(&body, uint64(len(strongKeys)))
		for _, strong := range strongKeys {
			writeUint64(&body, strong)
			writeUint32(&body, inner[strong])
		}
	}

	return prefixTotalLength(body.Bytes())
}

// DecodeSignature deserializes a Signature from the layout produced by
// EncodeSignature.
func DecodeSignature(buf []byte) (*Signature, error) {
	const op = "DecodeSignature"

	r, err := newFrameReader(op, buf)
	if err != nil {
		return nil, err
	}

	shaLen, err := r.uint64(op)
	if err != nil {
		return nil, err
	}
	sha, err := r.bytes(op, shaLen)
	if err != nil {
		return nil, err
	}

	blockSize, err := r.uint16(op)
	if err != nil {
		return nil, err
	}

	entryCount, err := r.uint64(op)
	if err != nil {
		return nil, err
	}

	signature := NewSignature(blockSize)
	if len(sha) > 0 {
		signature.ContentHash = sha
	}

	for i := uint64(0); i < entryCount; i++ {
		weak, err := r.uint32(op)
		if err != nil {
			return nil, err
		}
		innerCount, err := r.uint64(op)
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < innerCount; j++ {
			strong, err := r.uint64(op)
			if err != nil {
				return nil, err
			}
			index, err := r.uint32(op)
			if err != nil {
				return nil, err
			}
			signature.Add(weak, strong, index)
		}
	}

	if !r.exhausted() {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}

	return signature, nil
}

// EncodeDelta serializes a Delta per the layout:
//
//	total_len:u64 | sha_len:u64 | sha[sha_len] | block_size:u16 |
//	inserts:u64 | inserts x { key:u32 | bytes_len:u64 | bytes[bytes_len] } |
//	deletes:u64 | deletes x { key:u32 | run_len:u32 }
//
// Inserts and deletes are written in ascending key order, matching the order
// Patcher relies on.
func EncodeDelta(d *Delta) []byte {
	var body bytes.Buffer

	writeUint64(&body, uint64(len(d.ContentHash)))
	body.Write(d.ContentHash)
	writeUint16(&body, d.BlockSize)

	insertKeys := make([]uint32, 0, len(d.Inserts))
	for k := range d.Inserts {
		insertKeys = append(insertKeys, k)
	}
	sort.Slice(insertKeys, func(i, j int) bool { return insertKeys[i] < insertKeys[j] })

	writeUint64(&body, uint64(len(insertKeys)))
	for _, key := range insertKeys {
		data := d.Inserts[key]
		writeUint32(&body, key)
		writeUint64(&body, uint64(len(data)))
		body.Write(data)
	}

	deleteKeys := make([]uint32, 0, len(d.Deletes))
	for k := range d.Deletes {
		deleteKeys = append(deleteKeys, k)
	}
	sort.Slice(deleteKeys, func(i, j int) bool { return deleteKeys[i] < deleteKeys[j] })

	writeUint64(&body, uint64(len(deleteKeys)))
	for _, key := range deleteKeys {
		writeUint32(&body, key)
		writeUint32(&body, d.Deletes[key])
	}

	return prefixTotalLength(body.Bytes())
}

// DecodeDelta deserializes a Delta from the layout produced by EncodeDelta.
func DecodeDelta(buf []byte) (*Delta, error) {
	const op = "DecodeDelta"

	r, err := newFrameReader(op, buf)
	if err != nil {
		return nil, err
	}

	shaLen, err := r.uint64(op)
	if err != nil {
		return nil, err
	}
	sha, err := r.bytes(op, shaLen)
	if err != nil {
		return nil, err
	}

	blockSize, err := r.uint16(op)
	if err != nil {
		return nil, err
	}

	delta := NewDelta(blockSize)
	if len(sha) > 0 {
		delta.ContentHash = sha
	}

	insertCount, err := r.uint64(op)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < insertCount; i++ {
		key, err := r.uint32(op)
		if err != nil {
			return nil, err
		}
		length, err := r.uint64(op)
		if err != nil {
			return nil, err
		}
		data, err := r.bytes(op, length)
		if err != nil {
			return nil, err
		}
		delta.AddInsert(key, data)
	}

	deleteCount, err := r.uint64(op)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < deleteCount; i++ {
		key, err := r.uint32(op)
		if err != nil {
			return nil, err
		}
		runLength, err := r.uint32(op)
		if err != nil {
			return nil, err
		}
		delta.AddDelete(key, runLength)
	}

	if !r.exhausted() {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}

	return delta, nil
}

// prefixTotalLength prepends the u64 length of body to itself.
func prefixTotalLength(body []byte) []byte {
	out := make([]byte, 8+len(body))
	binary.BigEndian.PutUint64(out, uint64(len(body)))
	copy(out[8:], body)
	return out
}

func writeUint16(w io.Writer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeUint32(w io.Writer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

func writeUint64(w io.Writer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

// frameReader sequentially consumes fixed-width big-endian fields from a
// validated buffer, failing with KindMalformedBuffer on any overrun.
type frameReader struct {
	data   []byte
	offset int
}

// newFrameReader validates the outer total_len prefix and returns a reader
// positioned just after it.
func newFrameReader(op string, buf []byte) (*frameReader, error) {
	if len(buf) == 0 {
		return nil, wrapErr(op, KindEmptyInput, nil)
	}
	if len(buf) < 8 {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}
	total := binary.BigEndian.Uint64(buf[:8])
	remaining := buf[8:]
	if total != uint64(len(remaining)) {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}
	return &frameReader{data: remaining}, nil
}

func (r *frameReader) need(op string, n int) ([]byte, error) {
	if n < 0 || r.offset+n > len(r.data) {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}
	chunk := r.data[r.offset : r.offset+n]
	r.offset += n
	return chunk, nil
}

func (r *frameReader) uint16(op string) (uint16, error) {
	chunk, err := r.need(op, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(chunk), nil
}

func (r *frameReader) uint32(op string) (uint32, error) {
	chunk, err := r.need(op, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(chunk), nil
}

func (r *frameReader) uint64(op string) (uint64, error) {
	chunk, err := r.need(op, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(chunk), nil
}

func (r *frameReader) bytes(op string, length uint64) ([]byte, error) {
	if length > uint64(len(r.data)) {
		return nil, wrapErr(op, KindMalformedBuffer, nil)
	}
	chunk, err := r.need(op, int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(chunk))
	copy(out, chunk)
	return out, nil
}

func (r *frameReader) exhausted() bool {
	return r.offset == len(r.data)
}
