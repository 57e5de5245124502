// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapped(s string, pos int) MappedMinimizer {
	return MappedMinimizer{Word: NewKmer(s).Word(), Pos: pos}
}

func TestLeftmostMinimizer(t *testing.T) {
	sv := SeqVectorFromString("AAAAAAA")
	mmers := NewMinimizerIter(sv, 5, 3, MurmurHasher{}, LeftMin).Collect()
	assert.Equal(t, []MappedMinimizer{
		mapped("AAA", 0),
		mapped("AAA", 1),
		mapped("AAA", 2),
	}, mmers)
}

func TestRightmostMinimizer(t *testing.T) {
	sv := SeqVectorFromString("AAAAAAA")
	mmers := NewMinimizerIter(sv, 5, 3, MurmurHasher{}, RightMin).Collect()
	assert.Equal(t, []MappedMinimizer{
		mapped("AAA", 2),
		mapped("AAA", 3),
		mapped("AAA", 4),
	}, mmers)
}

func TestMinimizers(t *testing.T) {
	for _, tc := range []struct {
		seq  string
		k, w int
		want []MappedMinimizer
	}{
		{"AAACAAA", 6, 3, []MappedMinimizer{mapped("AAA", 0), mapped("AAA", 4)}},
		{"AACCAAA", 5, 3, []MappedMinimizer{mapped("AAC", 0), mapped("ACC", 1), mapped("AAA", 4)}},
		{"CACACACCAC", 7, 3, []MappedMinimizer{
			mapped("ACA", 1),
			mapped("ACA", 1),
			mapped("ACA", 3),
			mapped("ACA", 3),
		}},
		{"ACTTGAT", 3, 3, []MappedMinimizer{
			mapped("ACT", 0),
			mapped("CTT", 1),
			mapped("TTG", 2),
			mapped("TGA", 3),
			mapped("GAT", 4),
		}},
	} {
		sv := SeqVectorFromString(tc.seq)
		it := sv.IterMinimizers(tc.k, tc.w, LexHasher{K: tc.k})
		assert.Equal(t, len(tc.want), it.Len())
		assert.Equal(t, tc.want, it.Collect(), "%s k=%d w=%d", tc.seq, tc.k, tc.w)
		_, ok := it.Next()
		assert.False(t, ok)
	}
}

func TestMinimizerPreconditions(t *testing.T) {
	sv := SeqVectorFromString("ACGTACGT")
	assert.Panics(t, func() { NewMinimizerIter(sv, 5, 6, nil, LeftMin) })
	assert.Panics(t, func() { NewMinimizerIter(sv, 5, 0, nil, LeftMin) })
	assert.Panics(t, func() { NewMinimizerIter(sv, 9, 3, nil, LeftMin) })
	assert.Panics(t, func() { NewMinimizerIter(sv, 33, 3, nil, LeftMin) })
	assert.Panics(t, func() { NewCanonicalMinimizerIter(sv, 9, 3, nil) })
	assert.NotPanics(t, func() { NewMinimizerIter(sv, 8, 8, nil, LeftMin) })
}

// bruteMinimizer scans every w-mer of the window at pos, breaking ties
// according to tie.
func bruteMinimizer(seq Sequence, pos, k, w int, h Hasher, tie TieBreak, rc bool) HashedMinimizer {
	var best HashedMinimizer
	for i := pos; i <= pos+k-w; i++ {
		word := seq.KmerU64(i, w)
		if rc {
			word = ReverseComplementWord(word, w)
		}
		c := HashedMinimizer{Word: word, Hash: h.Hash(word), Pos: i}
		if i == pos || tie.less(c, best) {
			best = c
		}
	}
	return best
}

// a two letter alphabet makes ties common
func randomTwoLetter(r *rand.Rand, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = "AC"[r.Intn(2)]
	}
	return s
}

func TestMinimizersMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(77)) //intentionally fixed seed
	for j := 0; j < 50; j++ {
		raw := randomBases(r, 200)
		if j%2 == 1 {
			raw = randomTwoLetter(r, 200)
		}
		sv := SeqVectorFromBytes(raw)
		k := 1 + r.Intn(MaxK)
		w := 1 + r.Intn(k)
		for _, h := range []Hasher{LexHasher{K: w}, MurmurHasher{Seed: uint64(j)}} {
			for _, tie := range []TieBreak{LeftMin, RightMin} {
				it := NewMinimizerIter(sv, k, w, h, tie)
				for pos := 0; ; pos++ {
					got, ok := it.NextHashed()
					if !ok {
						assert.Equal(t, sv.Len()-k+1, pos)
						break
					}
					want := bruteMinimizer(sv, pos, k, w, h, tie, false)
					if !assert.Equal(t, want, got, "k=%d w=%d %s window %d", k, w, tie, pos) {
						return
					}
				}
			}
		}
	}
}

func TestLeftMinMatchesKmerMinimizer(t *testing.T) {
	r := rand.New(rand.NewSource(77)) //intentionally fixed seed
	sv := SeqVectorFromBytes(randomBases(r, 300))
	k, w := 21, 11
	h := XXHasher{Seed: 7}
	for pos, m := range sv.IterMinimizers(k, w, h).Collect() {
		mm, offset := sv.Kmer(pos, k).Minimizer(w, h)
		assert.Equal(t, mm.Word(), m.Word)
		assert.Equal(t, pos+offset, m.Pos)
	}
}

func TestCanonicalMinimizers(t *testing.T) {
	sv := SeqVectorFromString("AAAAAAA")
	assert.Equal(t, []MappedMinimizer{
		mapped("AAA", 0),
		mapped("AAA", 1),
		mapped("AAA", 2),
	}, sv.IterCanonicalMinimizers(5, 3, MurmurHasher{}).Collect())

	// the reverse strand of TTTTTTT is AAAAAAA, read right to left
	sv = SeqVectorFromString("TTTTTTT")
	assert.Equal(t, []MappedMinimizer{
		mapped("AAA", 2),
		mapped("AAA", 3),
		mapped("AAA", 4),
	}, sv.IterCanonicalMinimizers(5, 3, MurmurHasher{}).Collect())
}

func TestCanonicalMinimizerBreaksTiesOnCanonicalStrand(t *testing.T) {
	// TAAA[TTT] is not canonical; its reverse complement [AAA]TTTA has
	// its minimizer leftmost, which is position 4 on the forward strand.
	// [AAA]TTTC is canonical with its minimizer at 1.
	k, w := 7, 3
	sv := SeqVectorFromString("TAAATTTC")
	assert.Equal(t, []MappedMinimizer{
		mapped("AAA", 4),
		mapped("AAA", 1),
	}, NewCanonicalMinimizerIter(sv, k, w, LexHasher{K: w}).Collect())
}

func TestCanonicalMinimizersMatchBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(77)) //intentionally fixed seed
	for j := 0; j < 50; j++ {
		raw := randomBases(r, 150)
		if j%2 == 1 {
			raw = randomTwoLetter(r, 150)
		}
		sv := SeqVectorFromBytes(raw)
		k := 1 + r.Intn(MaxK)
		w := 1 + r.Intn(k)
		h := MurmurHasher{Seed: uint64(j)}
		it := NewCanonicalMinimizerIter(sv, k, w, h)
		assert.Equal(t, sv.Len()-k+1, it.Len())
		for pos := 0; pos < sv.Len()-k+1; pos++ {
			got, ok := it.Next()
			if !assert.True(t, ok) {
				return
			}
			var want HashedMinimizer
			if sv.Kmer(pos, k).IsCanonical() {
				want = bruteMinimizer(sv, pos, k, w, h, LeftMin, false)
			} else {
				want = bruteMinimizer(sv, pos, k, w, h, RightMin, true)
			}
			if !assert.Equal(t, want.Mapped(), got, "k=%d w=%d window %d", k, w, pos) {
				return
			}
		}
		_, ok := it.Next()
		assert.False(t, ok)
	}
}

func TestMinimizersOnSlice(t *testing.T) {
	sv := SeqVectorFromString("GGGGAACCAAAGGGG")
	slice := sv.Slice(4, 11)
	assert.Equal(t, "AACCAAA", slice.String())
	assert.Equal(t, []MappedMinimizer{
		mapped("AAC", 0),
		mapped("ACC", 1),
		mapped("AAA", 4),
	}, slice.IterMinimizers(5, 3, LexHasher{K: 3}).Collect())
}

func TestTieBreakString(t *testing.T) {
	assert.Equal(t, "LeftMin", LeftMin.String())
	assert.Equal(t, "RightMin", RightMin.String())
}

func BenchmarkMinimizers(b *testing.B) {
	r := rand.New(rand.NewSource(77)) //intentionally fixed seed
	sv := SeqVectorFromBytes(randomBases(r, 10000))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		it := sv.IterCanonicalMinimizers(31, 19, MurmurHasher{})
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
	}
}
