package kmers

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectKmers(it *KmerIterator) []string {
	var res []string
	for km, ok := it.Next(); ok; km, ok = it.Next() {
		res = append(res, km.String())
	}
	return res
}

func TestSeqSlice(t *testing.T) {
	sv := SeqVectorFromWords([]uint64{1, 2, 3}, 96)

	slice := sv.AsSlice()
	assert.Equal(t, 96, slice.Len())
	assert.Equal(t, uint64(1), slice.KmerU64(0, 32))

	slice = sv.Slice(1, 96)
	assert.Equal(t, sv.KmerU64(1, 32), slice.KmerU64(0, 32))

	slice = sv.Slice(75, 96)
	assert.Equal(t, sv.KmerU64(75, 7), slice.KmerU64(0, 7))
	assert.Equal(t, 75, slice.Start())
}

func TestNestedSlicesComposeOffsets(t *testing.T) {
	sv := SeqVectorFromString("AAAACCCCGGGGTTTT")
	outer := sv.Slice(4, 16)
	inner := outer.Slice(4, 8)
	assert.Equal(t, "GGGG", inner.String())
	assert.Equal(t, 8, inner.Start())
	assert.Equal(t, sv.KmerU64(8, 4), inner.KmerU64(0, 4))
	assert.True(t, outer.Slice(3, 3).IsEmpty())

	assert.Panics(t, func() { outer.Slice(0, 13) })
	assert.Panics(t, func() { outer.Slice(5, 4) })
	assert.Panics(t, func() { sv.Slice(0, 17) })
}

func TestPushChars(t *testing.T) {
	sv := SeqVectorWithCapacity(64)
	a30 := strings.Repeat("A", 30)
	c40 := strings.Repeat("C", 40)
	sv.PushChars([]byte(a30))
	assert.Equal(t, a30, sv.String())
	assert.Equal(t, 30, sv.Len())
	sv.PushChars([]byte(c40))
	assert.Equal(t, 70, sv.Len())
	assert.Equal(t, a30+c40, sv.String())
}

func TestPushCharsAnyLength(t *testing.T) {
	r := rand.New(rand.NewSource(77)) //intentionally fixed seed
	sv := NewSeqVector()
	var want strings.Builder
	for i := 0; i < 50; i++ {
		s := randomBases(r, r.Intn(100))
		sv.PushChars(s)
		want.Write(s)
		require.Equal(t, want.Len(), sv.Len())
	}
	assert.Equal(t, want.String(), sv.String())
	assert.Equal(t, want.String(), SeqVectorFromString(want.String()).String())
	assert.True(t, sv.Equal(SeqVectorFromString(want.String())))
}

func TestSetChars(t *testing.T) {
	sv := SeqVectorWithLen(70)
	assert.Equal(t, strings.Repeat("A", 70), sv.String())

	g40 := strings.Repeat("G", 40)
	sv.SetChars(20, []byte(g40))
	assert.Equal(t, strings.Repeat("A", 20)+g40+strings.Repeat("A", 10), sv.String())

	sv.SetChars(69, []byte("t"))
	assert.Equal(t, T, sv.Base(69))
	assert.Equal(t, A, sv.Base(68))

	assert.Panics(t, func() { sv.SetChars(65, []byte("ACGTAC")) })
}

func TestKmerU64Bounds(t *testing.T) {
	sv := SeqVectorFromString("ACTTGAT")
	assert.Equal(t, NewKmer("gat").Word(), sv.KmerU64(4, 3))
	assert.Equal(t, NewKmer("gat"), sv.Kmer(4, 3))
	assert.Panics(t, func() { sv.KmerU64(7, 1) })
	assert.Panics(t, func() { sv.KmerU64(5, 3) })
	assert.Panics(t, func() { sv.KmerU64(-1, 1) })
	assert.Panics(t, func() { sv.KmerU64(0, 33) })

	slice := sv.Slice(1, 4)
	assert.Panics(t, func() { slice.KmerU64(1, 3) })
	assert.Panics(t, func() { slice.Base(3) })
}

func TestIterKmers(t *testing.T) {
	sv := SeqVectorFromBytes([]byte("ACTTGAT"))
	mers := []string{"act", "ctt", "ttg", "tga", "gat"}

	it := sv.IterKmers(3)
	assert.Equal(t, 5, it.Len())
	assert.Equal(t, mers, collectKmers(it))
	assert.Equal(t, 0, it.Len())

	assert.Equal(t, mers[1:len(mers)-1], collectKmers(sv.Slice(1, sv.Len()-1).IterKmers(3)))
	assert.Equal(t, []string{"acttgat"}, collectKmers(sv.IterKmers(7)))
	assert.Panics(t, func() { sv.IterKmers(8) })
}

func TestEmptySeqVector(t *testing.T) {
	sv := NewSeqVector()
	assert.True(t, sv.IsEmpty())
	assert.Equal(t, "", sv.String())
	assert.True(t, sv.AsSlice().IsEmpty())
	sv.PushChars(nil)
	assert.Equal(t, 0, sv.Len())
	assert.Empty(t, sv.Words())
}
