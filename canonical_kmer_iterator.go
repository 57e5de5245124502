// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

// Derived from the CanonicalKmerIterator of pufferfish
// (https://github.com/COMBINE-lab/pufferfish), itself derived from Pall
// Melsted's KmerIterator in bfgraph.

// CanonicalKmerPos is a canonical k-mer and the offset in the scanned
// sequence where it starts.
type CanonicalKmerPos struct {
	Km  CanonicalKmer
	Pos int
}

// CanonicalKmerIterator walks every valid k-mer of a raw ascii sequence,
// skipping windows that contain anything other than ACGTacgt.  The
// iterator starts positioned on the first valid k-mer, if any.
//
//	it := NewCanonicalKmerIterator(seq, 31)
//	for ; !it.Exhausted(); it.Inc() {
//		use(it.Get())
//	}
type CanonicalKmerIterator struct {
	seq         []byte
	value       CanonicalKmerPos
	invalid     bool
	lastInvalid int
	k           int
}

// NewCanonicalKmerIterator positions a new iterator on the first valid
// k-mer of seq.  It panics if k is not in [1, 32].
func NewCanonicalKmerIterator(seq []byte, k int) *CanonicalKmerIterator {
	checkK(k)
	it := &CanonicalKmerIterator{
		seq:         seq,
		value:       CanonicalKmerPos{Km: BlankCanonicalKmer(k), Pos: -1},
		lastInvalid: -1,
		k:           k,
	}
	it.findNext(-1, -1)
	return it
}

// findNext extends the k-mer from position jj+1 until k valid bases have
// been seen since the last invalid one.
func (it *CanonicalKmerIterator) findNext(ii, jj int) {
	i := ii + 1
	for l := jj + 1; l < len(it.seq); l++ {
		b := EncodeBase(it.seq[l])
		if IsValidBase(b) {
			it.value.Km.AppendBase(b)
			if l-it.lastInvalid >= it.k {
				it.value.Pos = i
				return
			}
		} else {
			// no k-mer overlapping l can be valid
			it.lastInvalid = l
			i = l + 1
		}
	}
	it.invalid = true
}

// Exhausted reports whether the iterator has run past the last valid k-mer.
// Once exhausted an iterator stays exhausted.
func (it *CanonicalKmerIterator) Exhausted() bool {
	return it.invalid
}

// Inc advances to the next valid k-mer and reports whether there was one.
func (it *CanonicalKmerIterator) Inc() bool {
	lpos := it.value.Pos + it.k
	it.invalid = it.invalid || lpos >= len(it.seq)
	if !it.invalid {
		it.findNext(it.value.Pos, lpos-1)
	}
	return !it.invalid
}

// IncBy calls Inc n times, stopping early once exhausted.
func (it *CanonicalKmerIterator) IncBy(n int) bool {
	v := !it.invalid
	for ; n > 0 && v; n-- {
		v = it.Inc()
	}
	return v
}

// Get returns the current k-mer and its position.  After exhaustion it
// returns the last k-mer visited.
func (it *CanonicalKmerIterator) Get() CanonicalKmerPos {
	return it.value
}
