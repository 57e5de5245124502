// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import "fmt"

// MaxSuperKmerLen is the largest number of k-mers one occurrence records.
// Longer runs continue in the following occurrence.
const MaxSuperKmerLen = 255

// CanonicalSuperKmerOcc is a run of consecutive k-mer windows that share
// the same canonical minimizer.
type CanonicalSuperKmerOcc struct {
	mmer   MappedMinimizer
	start  int
	nKmers uint8
}

// MmerWord returns the packed minimizer.
func (o CanonicalSuperKmerOcc) MmerWord() uint64 { return o.mmer.Word }

// MmerPos returns the position of the minimizer in the sequence.
func (o CanonicalSuperKmerOcc) MmerPos() int { return o.mmer.Pos }

// MmerOffset returns the position of the minimizer relative to StartPos.
func (o CanonicalSuperKmerOcc) MmerOffset() int { return o.mmer.Pos - o.start }

// StartPos returns the position of the first k-mer of the run.
func (o CanonicalSuperKmerOcc) StartPos() int { return o.start }

// NKmers returns the number of k-mers in the run.
func (o CanonicalSuperKmerOcc) NKmers() int { return int(o.nKmers) }

// Minimizer returns the shared minimizer.
func (o CanonicalSuperKmerOcc) Minimizer() MappedMinimizer { return o.mmer }

// Bases returns the number of bases covered by the run for k-mers of
// length k.
func (o CanonicalSuperKmerOcc) Bases(k int) int { return int(o.nKmers) + k - 1 }

// IncPos shifts the occurrence right by offset, e.g. when the scanned
// sequence was a slice of a longer one.
func (o *CanonicalSuperKmerOcc) IncPos(offset int) {
	o.start += offset
	o.mmer.Pos += offset
}

// DecPos shifts the occurrence left by offset.  It panics if that would
// move the start before zero.
func (o *CanonicalSuperKmerOcc) DecPos(offset int) {
	if offset > o.start {
		panic(fmt.Sprintf("cannot move super k-mer at %d left by %d", o.start, offset))
	}
	o.start -= offset
	o.mmer.Pos -= offset
}

// MmerKmer returns the minimizer as a Kmer of width w.
func (o CanonicalSuperKmerOcc) MmerKmer(w int) Kmer {
	return KmerFromWord(o.mmer.Word, w)
}

type minimizerSource interface {
	Next() (MappedMinimizer, bool)
}

// CanonicalSuperKmerIterator groups consecutive windows of a
// CanonicalMinimizerIter with identical minimizers.
//
//	it := seq.IterSuperKmers(31, 19, nil)
//	for occ, ok := it.Next(); ok; occ, ok = it.Next() {
//		...
//	}
type CanonicalSuperKmerIterator struct {
	mins    minimizerSource
	next    MappedMinimizer
	hasNext bool
	cur     int // window index of next
}

// NewCanonicalSuperKmerIterator returns an iterator over the super k-mers
// of seq.  It panics under the same conditions as NewMinimizerIter.
func NewCanonicalSuperKmerIterator(seq Sequence, k, w int, h Hasher) *CanonicalSuperKmerIterator {
	return newSuperKmerIterator(NewCanonicalMinimizerIter(seq, k, w, h))
}

func newSuperKmerIterator(mins minimizerSource) *CanonicalSuperKmerIterator {
	it := &CanonicalSuperKmerIterator{mins: mins}
	it.next, it.hasNext = it.mins.Next()
	return it
}

// Next returns the next run, or false when the sequence is exhausted.
func (it *CanonicalSuperKmerIterator) Next() (CanonicalSuperKmerOcc, bool) {
	if !it.hasNext {
		return CanonicalSuperKmerOcc{}, false
	}
	occ := CanonicalSuperKmerOcc{mmer: it.next, start: it.cur, nKmers: 1}
	for {
		it.next, it.hasNext = it.mins.Next()
		it.cur++
		if !it.hasNext || it.next != occ.mmer || occ.nKmers == MaxSuperKmerLen {
			return occ, true
		}
		occ.nKmers++
	}
}

// Collect drains the iterator.
func (it *CanonicalSuperKmerIterator) Collect() []CanonicalSuperKmerOcc {
	var res []CanonicalSuperKmerOcc
	for occ, ok := it.Next(); ok; occ, ok = it.Next() {
		res = append(res, occ)
	}
	return res
}
