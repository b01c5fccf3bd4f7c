package types

import (
	"bytes"
	"io"
)

// Encoder builds the canonical DEX wire format described in dexorder.h's
// IMPLEMENT_SERIALIZE macros: base-128 VARINT, length-prefixed strings,
// count-prefixed vectors, one-byte-flag options. This is deliberately
// independent of github.com/33cn/chain33/types.Encode/Decode (the protobuf
// helpers the rest of the framework uses): the DEX payload's byte layout
// is fixed forever, so it gets its own auditable codec in this one file
// rather than inheriting whatever the enclosing tx envelope happens to do.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the accumulated wire bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// PutByte writes a single raw byte (used for enums: OrderSide, OrderType,
// OrderGenerateType, OperatorMode all collapse to one byte on the wire).
func (e *Encoder) PutByte(b byte) {
	e.buf.WriteByte(b)
}

// PutRaw writes raw bytes with no length prefix (fixed-width fields such as
// a 32-byte TxId).
func (e *Encoder) PutRaw(b []byte) {
	e.buf.Write(b)
}

// PutVarint writes u as a canonical base-128 big-endian VARINT: the high bit
// of every byte but the last is a continuation flag. Canonical means no
// redundant leading groups — the encoder never emits one, and the decoder
// rejects one (see GetVarint).
func (e *Encoder) PutVarint(u uint64) {
	var tmp [MaxVarintBytes]byte
	n := 0
	tmp[n] = byte(u & 0x7f)
	u >>= 7
	for u != 0 {
		n++
		tmp[n] = byte(u&0x7f) | 0x80
		u >>= 7
	}
	// tmp was built least-significant-group-first; emit most-significant first.
	for i := n; i >= 0; i-- {
		e.buf.WriteByte(tmp[i])
	}
}

// PutString writes a VARINT length followed by the raw bytes.
func (e *Encoder) PutString(s string) {
	e.PutVarint(uint64(len(s)))
	e.buf.WriteString(s)
}

// PutBytes writes a VARINT length followed by the raw bytes, the same
// length-prefix convention as PutString but for data that isn't text (a
// raw pubkey or signature).
func (e *Encoder) PutBytes(b []byte) {
	e.PutVarint(uint64(len(b)))
	e.buf.Write(b)
}

// PutOptionString writes the one-byte presence flag followed by the string
// when present.
func (e *Encoder) PutOptionString(present bool, s string) {
	if present {
		e.PutByte(1)
		e.PutString(s)
	} else {
		e.PutByte(0)
	}
}

// Decoder reads the canonical DEX wire format produced by Encoder.
type Decoder struct {
	r *bytes.Reader
}

// NewDecoder wraps b for sequential decoding.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(b)}
}

// Remaining reports how many bytes are left unread.
func (d *Decoder) Remaining() int {
	return d.r.Len()
}

// GetByte reads one raw byte.
func (d *Decoder) GetByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, &CodecError{Kind: CodecTruncated}
	}
	return b, nil
}

// GetRaw reads exactly n raw bytes.
func (d *Decoder) GetRaw(n int) ([]byte, error) {
	out := make([]byte, n)
	read, err := io.ReadFull(d.r, out)
	if err != nil || read != n {
		return nil, &CodecError{Kind: CodecTruncated}
	}
	return out, nil
}

// GetVarint reads a canonical base-128 VARINT. It rejects any encoding with
// a redundant leading continuation group (e.g. a leading 0x80 0x00 pair,
// which decodes to the same integer as a single 0x00 byte) and any encoding
// longer than MaxVarintBytes groups, both per the codec's canonical-only
// contract: two distinct byte strings must never decode to the same value.
func (d *Decoder) GetVarint() (uint64, error) {
	var groups []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, &CodecError{Kind: CodecTruncated}
		}
		groups = append(groups, b)
		if len(groups) > MaxVarintBytes {
			return 0, &CodecError{Kind: CodecNonCanonicalVarInt}
		}
		if b&0x80 == 0 {
			break
		}
	}
	// groups are in most-significant-group-first order; the first group's
	// low 7 bits must be non-zero once there's more than one group, else
	// the leading group was redundant.
	if len(groups) > 1 && groups[0]&0x7f == 0 {
		return 0, &CodecError{Kind: CodecNonCanonicalVarInt}
	}
	var u uint64
	for _, b := range groups {
		u = (u << 7) | uint64(b&0x7f)
	}
	return u, nil
}

// GetString reads a VARINT length followed by that many raw bytes.
func (d *Decoder) GetString() (string, error) {
	n, err := d.GetVarint()
	if err != nil {
		return "", err
	}
	if n > uint64(MaxVarintVecLen) {
		return "", &CodecError{Kind: CodecOversizeVec}
	}
	b, err := d.GetRaw(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetBytes reads a VARINT length followed by that many raw bytes.
func (d *Decoder) GetBytes() ([]byte, error) {
	n, err := d.GetVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(MaxVarintVecLen) {
		return nil, &CodecError{Kind: CodecOversizeVec}
	}
	return d.GetRaw(int(n))
}

// GetOptionString reads the one-byte presence flag and, if set, the string.
func (d *Decoder) GetOptionString() (bool, string, error) {
	flag, err := d.GetByte()
	if err != nil {
		return false, "", err
	}
	if flag == 0 {
		return false, "", nil
	}
	if flag != 1 {
		return false, "", &CodecError{Kind: CodecUnknownEnum}
	}
	s, err := d.GetString()
	if err != nil {
		return false, "", err
	}
	return true, s, nil
}

// EncodeVec writes a VARINT count followed by each element's own encoding.
func EncodeVec[T any](e *Encoder, items []T, encodeOne func(*Encoder, T)) {
	e.PutVarint(uint64(len(items)))
	for _, it := range items {
		encodeOne(e, it)
	}
}

// DecodeVec reads a VARINT count (rejecting anything over MaxVarintVecLen,
// per CodecError.OversizeVec) followed by that many elements.
func DecodeVec[T any](d *Decoder, decodeOne func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.GetVarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(MaxVarintVecLen) {
		return nil, &CodecError{Kind: CodecOversizeVec}
	}
	items := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		it, err := decodeOne(d)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
