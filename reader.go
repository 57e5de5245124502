// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

// Sequence is a readable packed nucleotide sequence.  It is implemented by
// both SeqVector (owning) and SeqVectorSlice (a view)
type Sequence interface {
	Len() int
	Base(pos int) Base
	KmerU64(pos, k int) uint64
	Kmer(pos, k int) Kmer
	String() string
}

var _ Sequence = (*SeqVector)(nil)
var _ Sequence = SeqVectorSlice{}
