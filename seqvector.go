// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"fmt"
	"strings"
)

// SeqVector stores a nucleotide sequence at 2 bits per base.  Base i lives
// at bit offset 2i of the packed storage, least significant bit first.
//
// A SeqVector may be read concurrently, but must not be modified while
// slices or iterators over it are in use.
type SeqVector struct {
	data *packed
}

// SeqVectorSlice is a window onto a SeqVector.  Slicing a slice composes
// offsets; no bases are ever copied.
type SeqVectorSlice struct {
	start, len int
	seq        *SeqVector
}

// NewSeqVector returns an empty sequence.
func NewSeqVector() *SeqVector {
	return &SeqVector{data: newPacked(0)}
}

// SeqVectorWithCapacity returns an empty sequence with room for n bases.
func SeqVectorWithCapacity(n int) *SeqVector {
	return &SeqVector{data: newPacked(2 * uint(n))}
}

// SeqVectorWithLen returns a sequence of n A's.
func SeqVectorWithLen(n int) *SeqVector {
	sv := SeqVectorWithCapacity(n)
	sv.data.resize(2 * uint(n))
	return sv
}

// SeqVectorFromBytes packs an ascii sequence.  Bytes other than ACGTacgt
// are not detected; see InvalidBase.
func SeqVectorFromBytes(b []byte) *SeqVector {
	sv := SeqVectorWithCapacity(len(b))
	for len(b) > 0 {
		n := min(len(b), MaxK)
		sv.data.push(KmerFromBytes(b[:n]).Word(), 2*uint(n))
		b = b[n:]
	}
	return sv
}

// SeqVectorFromString packs an ascii sequence.
func SeqVectorFromString(s string) *SeqVector {
	return SeqVectorFromBytes([]byte(s))
}

// SeqVectorFromWords adopts already packed words holding n bases.  Words
// past the first 2n bits are ignored.
func SeqVectorFromWords(words []uint64, n int) *SeqVector {
	return &SeqVector{data: packedFromWords(words, 2*uint(n))}
}

// Len returns the number of bases.
func (sv *SeqVector) Len() int {
	return int(sv.data.len() / 2)
}

// IsEmpty reports whether the sequence has no bases.
func (sv *SeqVector) IsEmpty() bool {
	return sv.Len() == 0
}

// Words returns the packed storage.  Unused high bits of the last word are
// zero.
func (sv *SeqVector) Words() []uint64 {
	return sv.data.words()
}

// PushChars appends an ascii sequence.  The first len%32 bases go in
// first so that the remainder is pushed in whole 32 base words.
func (sv *SeqVector) PushChars(b []byte) {
	if head := len(b) % MaxK; head > 0 {
		sv.data.push(KmerFromBytes(b[:head]).Word(), 2*uint(head))
		b = b[head:]
	}
	for ; len(b) > 0; b = b[MaxK:] {
		sv.data.push(KmerFromBytes(b[:MaxK]).Word(), 2*MaxK)
	}
}

// SetChars overwrites the bases starting at offset with b.  It panics if
// the write would run past the end of the sequence.
func (sv *SeqVector) SetChars(offset int, b []byte) {
	if offset < 0 || offset+len(b) > sv.Len() {
		panic(fmt.Sprintf("SetChars of %d bases at %d past end of %d base sequence", len(b), offset, sv.Len()))
	}
	for len(b) > 0 {
		n := min(len(b), MaxK)
		sv.data.set(2*uint(offset), KmerFromBytes(b[:n]).Word(), 2*uint(n))
		offset += n
		b = b[n:]
	}
}

// KmerU64 returns the packed k bases starting at pos.  It panics if pos is
// not a valid position or the k-mer runs past the end.
func (sv *SeqVector) KmerU64(pos, k int) uint64 {
	if pos < 0 || pos >= sv.Len() {
		panic(fmt.Sprintf("position %d out of range for %d base sequence", pos, sv.Len()))
	}
	checkK(k)
	return sv.data.int(2*uint(pos), 2*uint(k))
}

// Kmer returns the k bases starting at pos.
func (sv *SeqVector) Kmer(pos, k int) Kmer {
	return KmerFromWord(sv.KmerU64(pos, k), k)
}

// Base returns the base at pos.
func (sv *SeqVector) Base(pos int) Base {
	return sv.KmerU64(pos, 1)
}

// Equal reports whether both sequences hold the same bases.
func (sv *SeqVector) Equal(o *SeqVector) bool {
	return sv.data.equal(o.data)
}

// AsSlice returns a view of the whole sequence.
func (sv *SeqVector) AsSlice() SeqVectorSlice {
	return SeqVectorSlice{start: 0, len: sv.Len(), seq: sv}
}

// Slice returns a view of bases [start, end).
func (sv *SeqVector) Slice(start, end int) SeqVectorSlice {
	return sv.AsSlice().Slice(start, end)
}

// IterKmers returns an iterator over every k-mer of the sequence.
func (sv *SeqVector) IterKmers(k int) *KmerIterator {
	return NewKmerIterator(sv, k)
}

// IterMinimizers returns an iterator over the (leftmost) minimizer of
// every k-mer window.
func (sv *SeqVector) IterMinimizers(k, w int, h Hasher) *MinimizerIter {
	return NewMinimizerIter(sv, k, w, h, LeftMin)
}

// IterCanonicalMinimizers returns an iterator over the canonical minimizer
// of every k-mer window.
func (sv *SeqVector) IterCanonicalMinimizers(k, w int, h Hasher) *CanonicalMinimizerIter {
	return NewCanonicalMinimizerIter(sv, k, w, h)
}

// IterSuperKmers returns an iterator over the canonical super k-mers.
func (sv *SeqVector) IterSuperKmers(k, w int, h Hasher) *CanonicalSuperKmerIterator {
	return NewCanonicalSuperKmerIterator(sv, k, w, h)
}

func (sv *SeqVector) String() string {
	return sequenceString(sv)
}

func sequenceString(s Sequence) string {
	var sb strings.Builder
	sb.Grow(s.Len())
	for i := 0; i < s.Len(); i++ {
		sb.WriteByte(DecodeBase(s.Base(i)))
	}
	return sb.String()
}

// Len returns the number of bases in the view.
func (s SeqVectorSlice) Len() int {
	return s.len
}

// IsEmpty reports whether the view has no bases.
func (s SeqVectorSlice) IsEmpty() bool {
	return s.len == 0
}

// Start returns the offset of the view in the underlying SeqVector.
func (s SeqVectorSlice) Start() int {
	return s.start
}

// KmerU64 returns the packed k bases starting at pos within the view.
func (s SeqVectorSlice) KmerU64(pos, k int) uint64 {
	if pos < 0 || pos >= s.len {
		panic(fmt.Sprintf("position %d out of range for %d base slice", pos, s.len))
	}
	if pos+k > s.len {
		panic(fmt.Sprintf("%d-mer at %d runs past end of %d base slice", k, pos, s.len))
	}
	return s.seq.KmerU64(s.start+pos, k)
}

// Kmer returns the k bases starting at pos within the view.
func (s SeqVectorSlice) Kmer(pos, k int) Kmer {
	return KmerFromWord(s.KmerU64(pos, k), k)
}

// Base returns the base at pos within the view.
func (s SeqVectorSlice) Base(pos int) Base {
	return s.KmerU64(pos, 1)
}

// Slice returns a view of bases [start, end) of this view.
func (s SeqVectorSlice) Slice(start, end int) SeqVectorSlice {
	if end > s.len || start < 0 || start > end {
		panic(fmt.Sprintf("slice [%d, %d) out of range for %d bases", start, end, s.len))
	}
	return SeqVectorSlice{start: s.start + start, len: end - start, seq: s.seq}
}

// IterKmers returns an iterator over every k-mer of the view.
func (s SeqVectorSlice) IterKmers(k int) *KmerIterator {
	return NewKmerIterator(s, k)
}

// IterMinimizers returns an iterator over the (leftmost) minimizer of every
// k-mer window of the view.
func (s SeqVectorSlice) IterMinimizers(k, w int, h Hasher) *MinimizerIter {
	return NewMinimizerIter(s, k, w, h, LeftMin)
}

// IterCanonicalMinimizers returns an iterator over the canonical minimizer
// of every k-mer window of the view.
func (s SeqVectorSlice) IterCanonicalMinimizers(k, w int, h Hasher) *CanonicalMinimizerIter {
	return NewCanonicalMinimizerIter(s, k, w, h)
}

// IterSuperKmers returns an iterator over the canonical super k-mers of
// the view.
func (s SeqVectorSlice) IterSuperKmers(k, w int, h Hasher) *CanonicalSuperKmerIterator {
	return NewCanonicalSuperKmerIterator(s, k, w, h)
}

func (s SeqVectorSlice) String() string {
	return sequenceString(s)
}

// KmerIterator yields every k-mer of a sequence, left to right.
type KmerIterator struct {
	k, n, pos int
	seq       Sequence
}

// NewKmerIterator returns an iterator over the k-mers of seq.  It panics
// if seq is shorter than k.
func NewKmerIterator(seq Sequence, k int) *KmerIterator {
	checkK(k)
	if seq.Len() < k {
		panic(fmt.Sprintf("sequence of %d bases is shorter than k=%d", seq.Len(), k))
	}
	return &KmerIterator{k: k, n: seq.Len() - k + 1, seq: seq}
}

// Len returns the number of k-mers not yet returned.
func (it *KmerIterator) Len() int {
	return it.n - it.pos
}

// Next returns the next k-mer, or false once the sequence is exhausted.
func (it *KmerIterator) Next() (Kmer, bool) {
	if it.pos >= it.n {
		return Kmer{}, false
	}
	km := it.seq.Kmer(it.pos, it.k)
	it.pos++
	return km, true
}
