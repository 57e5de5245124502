// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import "fmt"

// TieBreak decides which of several equally hashed w-mers in a window is
// the minimizer.
type TieBreak uint8

const (
	// LeftMin picks the leftmost of the tied w-mers.
	LeftMin TieBreak = iota
	// RightMin picks the rightmost of the tied w-mers.
	RightMin
)

func (t TieBreak) String() string {
	switch t {
	case LeftMin:
		return "LeftMin"
	case RightMin:
		return "RightMin"
	}
	return fmt.Sprintf("TieBreak(%d)", uint8(t))
}

// less orders candidates by hash, then by position according to t.
func (t TieBreak) less(a, b HashedMinimizer) bool {
	if a.Hash != b.Hash {
		return a.Hash < b.Hash
	}
	if t == RightMin {
		return a.Pos > b.Pos
	}
	return a.Pos < b.Pos
}

// MappedMinimizer is a minimizer word and its position in the sequence.
type MappedMinimizer struct {
	Word uint64
	Pos  int
}

// HashedMinimizer is a candidate w-mer along with its hash.
type HashedMinimizer struct {
	Word uint64
	Hash uint64
	Pos  int
}

// Mapped drops the hash.
func (m HashedMinimizer) Mapped() MappedMinimizer {
	return MappedMinimizer{Word: m.Word, Pos: m.Pos}
}

// minimizerQueue is a monotonic deque: hashes increase from front to back,
// so the front is always the minimum of the entries still in the window.
type minimizerQueue struct {
	tie TieBreak
	q   []HashedMinimizer
}

func newMinimizerQueue(tie TieBreak, capacity int) minimizerQueue {
	return minimizerQueue{tie: tie, q: make([]HashedMinimizer, 0, capacity)}
}

// eat pushes m after dropping entries left of minPos and entries that m
// beats.  Each entry is pushed and popped at most once.
func (mq *minimizerQueue) eat(m HashedMinimizer, minPos int) {
	for len(mq.q) > 0 && mq.q[0].Pos < minPos {
		mq.q = mq.q[1:]
	}
	for len(mq.q) > 0 && !mq.tie.less(mq.q[len(mq.q)-1], m) {
		mq.q = mq.q[:len(mq.q)-1]
	}
	mq.q = append(mq.q, m)
}

func (mq *minimizerQueue) front() HashedMinimizer {
	return mq.q[0]
}

func checkWindow(seq Sequence, k, w int) {
	checkK(k)
	if w < 1 || w > k {
		panic(fmt.Sprintf("minimizer width %d not in [1, %d]", w, k))
	}
	if seq.Len() < k {
		panic(fmt.Sprintf("sequence of %d bases is shorter than k=%d", seq.Len(), k))
	}
}

// MinimizerIter yields the minimizer of every k-mer window of a sequence,
// left to right, in amortized constant time per window.
type MinimizerIter struct {
	seq    Sequence
	k, w   int
	h      Hasher
	q      minimizerQueue
	cur, n int
}

// NewMinimizerIter returns an iterator over the w-minimizers of the k-mers
// of seq.  A nil h selects DefaultHasher.  It panics if w is not in [1, k],
// k is not in [1, 32] or seq is shorter than k.
func NewMinimizerIter(seq Sequence, k, w int, h Hasher, tie TieBreak) *MinimizerIter {
	checkWindow(seq, k, w)
	if h == nil {
		h = DefaultHasher
	}
	it := &MinimizerIter{
		seq: seq,
		k:   k,
		w:   w,
		h:   h,
		q:   newMinimizerQueue(tie, k-w+1),
		n:   seq.Len() - k + 1,
	}
	for pos := 0; pos < k-w; pos++ {
		it.q.eat(it.candidate(pos), 0)
	}
	return it
}

func (it *MinimizerIter) candidate(pos int) HashedMinimizer {
	word := it.seq.KmerU64(pos, it.w)
	return HashedMinimizer{Word: word, Hash: it.h.Hash(word), Pos: pos}
}

// Len returns the number of windows not yet returned.
func (it *MinimizerIter) Len() int {
	return it.n - it.cur
}

// Next returns the minimizer of the next window, or false once every
// window has been visited.
func (it *MinimizerIter) Next() (MappedMinimizer, bool) {
	m, ok := it.NextHashed()
	return m.Mapped(), ok
}

// NextHashed is Next keeping the hash of the minimizer.
func (it *MinimizerIter) NextHashed() (HashedMinimizer, bool) {
	if it.cur >= it.n {
		return HashedMinimizer{}, false
	}
	it.q.eat(it.candidate(it.cur+it.k-it.w), it.cur)
	it.cur++
	return it.q.front(), true
}

// Collect drains the iterator.
func (it *MinimizerIter) Collect() []MappedMinimizer {
	res := make([]MappedMinimizer, 0, it.Len())
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		res = append(res, m)
	}
	return res
}

// CanonicalMinimizerIter yields, for every k-mer window, the minimizer of
// whichever strand of the window is canonical.  Two deques are kept: one
// over forward w-mers breaking ties to the left, and one over their
// reverse complements at the same positions breaking ties to the right,
// which is leftmost as read along the reverse strand.
type CanonicalMinimizerIter struct {
	seq      Sequence
	k, w     int
	h        Hasher
	fwq, rcq minimizerQueue
	cur, n   int
}

// NewCanonicalMinimizerIter returns an iterator over the canonical
// w-minimizers of the k-mers of seq.  It panics under the same conditions
// as NewMinimizerIter.
func NewCanonicalMinimizerIter(seq Sequence, k, w int, h Hasher) *CanonicalMinimizerIter {
	checkWindow(seq, k, w)
	if h == nil {
		h = DefaultHasher
	}
	it := &CanonicalMinimizerIter{
		seq: seq,
		k:   k,
		w:   w,
		h:   h,
		fwq: newMinimizerQueue(LeftMin, k-w+1),
		rcq: newMinimizerQueue(RightMin, k-w+1),
		n:   seq.Len() - k + 1,
	}
	for pos := 0; pos < k-w; pos++ {
		it.eat(pos, 0)
	}
	return it
}

func (it *CanonicalMinimizerIter) eat(pos, minPos int) {
	fw := it.seq.KmerU64(pos, it.w)
	rc := ReverseComplementWord(fw, it.w)
	it.fwq.eat(HashedMinimizer{Word: fw, Hash: it.h.Hash(fw), Pos: pos}, minPos)
	it.rcq.eat(HashedMinimizer{Word: rc, Hash: it.h.Hash(rc), Pos: pos}, minPos)
}

// Len returns the number of windows not yet returned.
func (it *CanonicalMinimizerIter) Len() int {
	return it.n - it.cur
}

// Next returns the canonical minimizer of the next window.  Pos is always
// the forward strand position of the w-mer; Word is on the canonical
// strand.
func (it *CanonicalMinimizerIter) Next() (MappedMinimizer, bool) {
	if it.cur >= it.n {
		return MappedMinimizer{}, false
	}
	it.eat(it.cur+it.k-it.w, it.cur)
	km := it.seq.Kmer(it.cur, it.k)
	it.cur++
	if km.IsCanonical() {
		return it.fwq.front().Mapped(), true
	}
	return it.rcq.front().Mapped(), true
}

// Collect drains the iterator.
func (it *CanonicalMinimizerIter) Collect() []MappedMinimizer {
	res := make([]MappedMinimizer, 0, it.Len())
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		res = append(res, m)
	}
	return res
}
