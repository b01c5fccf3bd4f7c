package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1}
	for _, v := range values {
		e := NewEncoder()
		e.PutVarint(v)
		got, err := NewDecoder(e.Bytes()).GetVarint()
		assert.Nil(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVarintRejectsNonCanonicalEncoding(t *testing.T) {
	// 0x80 0x00 decodes the same integer (0) as a lone 0x00 byte; the
	// redundant leading group must be rejected, not silently accepted.
	_, err := NewDecoder([]byte{0x80, 0x00}).GetVarint()
	assert.NotNil(t, err)
	cerr, ok := err.(*CodecError)
	assert.True(t, ok)
	assert.Equal(t, CodecNonCanonicalVarInt, cerr.Kind)
}

func TestVarintRejectsOverlongEncoding(t *testing.T) {
	groups := make([]byte, MaxVarintBytes+1)
	for i := range groups {
		groups[i] = 0x80
	}
	groups[len(groups)-1] = 0x01
	_, err := NewDecoder(groups).GetVarint()
	assert.NotNil(t, err)
	cerr, ok := err.(*CodecError)
	assert.True(t, ok)
	assert.Equal(t, CodecNonCanonicalVarInt, cerr.Kind)
}

func TestStringRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.PutString("bty")
	e.PutString("")
	d := NewDecoder(e.Bytes())
	s, err := d.GetString()
	assert.Nil(t, err)
	assert.Equal(t, "bty", s)
	s, err = d.GetString()
	assert.Nil(t, err)
	assert.Equal(t, "", s)
}

func TestOptionStringRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.PutOptionString(true, "memo")
	e.PutOptionString(false, "")
	d := NewDecoder(e.Bytes())
	present, s, err := d.GetOptionString()
	assert.Nil(t, err)
	assert.True(t, present)
	assert.Equal(t, "memo", s)
	present, _, err = d.GetOptionString()
	assert.Nil(t, err)
	assert.False(t, present)
}

func TestVecRoundTrip(t *testing.T) {
	items := []uint64{1, 2, 3, 4}
	e := NewEncoder()
	EncodeVec(e, items, func(e *Encoder, v uint64) { e.PutVarint(v) })
	got, err := DecodeVec(NewDecoder(e.Bytes()), func(d *Decoder) (uint64, error) { return d.GetVarint() })
	assert.Nil(t, err)
	assert.Equal(t, items, got)
}

func TestVecRejectsOversizeCount(t *testing.T) {
	e := NewEncoder()
	e.PutVarint(uint64(MaxVarintVecLen) + 1)
	_, err := DecodeVec(NewDecoder(e.Bytes()), func(d *Decoder) (uint64, error) { return d.GetVarint() })
	assert.NotNil(t, err)
	cerr, ok := err.(*CodecError)
	assert.True(t, ok)
	assert.Equal(t, CodecOversizeVec, cerr.Kind)
}

func TestGetRawTruncated(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	_, err := d.GetRaw(3)
	assert.NotNil(t, err)
	cerr, ok := err.(*CodecError)
	assert.True(t, ok)
	assert.Equal(t, CodecTruncated, cerr.Kind)
}
