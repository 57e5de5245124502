// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import "fmt"

// MatchType classifies how a k-mer relates to a CanonicalKmer.
type MatchType int

const (
	// NoMatch: the k-mer is neither strand
	NoMatch MatchType = iota
	// IdentityMatch: the k-mer is the forward strand
	IdentityMatch
	// TwinMatch: the k-mer is the reverse complement strand
	TwinMatch
)

func (m MatchType) String() string {
	switch m {
	case NoMatch:
		return "NoMatch"
	case IdentityMatch:
		return "IdentityMatch"
	case TwinMatch:
		return "TwinMatch"
	}
	return fmt.Sprintf("MatchType(%d)", int(m))
}

// CanonicalKmer carries a k-mer together with its reverse complement.
// Every mutation updates both strands in the same call, so the reverse
// complement is never recomputed from scratch and the two halves are
// never observable out of sync.
type CanonicalKmer struct {
	fw, rc Kmer
}

// BlankCanonicalKmer returns a k long canonical k-mer whose forward
// strand is all A (and reverse strand all T).  It is used to seed scans.
func BlankCanonicalKmer(k int) CanonicalKmer {
	checkK(k)
	return CanonicalKmer{
		fw: Kmer{k: uint8(k), data: 0},
		rc: Kmer{k: uint8(k), data: maskTable[k]},
	}
}

// NewCanonicalKmer builds a canonical k-mer from an ascii string.
func NewCanonicalKmer(s string) CanonicalKmer {
	return CanonicalKmerFromKmer(NewKmer(s))
}

// CanonicalKmerFromBytes builds a canonical k-mer from ascii bytes.
func CanonicalKmerFromBytes(s []byte) CanonicalKmer {
	return CanonicalKmerFromKmer(KmerFromBytes(s))
}

// CanonicalKmerFromKmer pairs km with its reverse complement.
func CanonicalKmerFromKmer(km Kmer) CanonicalKmer {
	return CanonicalKmer{fw: km, rc: km.ReverseComplement()}
}

// CanonicalKmerFromWord builds a canonical k-mer of length k from the low
// 2k bits of data.
func CanonicalKmerFromWord(data uint64, k int) CanonicalKmer {
	return CanonicalKmerFromKmer(KmerFromWord(data, k))
}

// K returns the length of the k-mer.
func (ck CanonicalKmer) K() int { return ck.fw.K() }

// IsEmpty reports whether this is the zero CanonicalKmer.
func (ck CanonicalKmer) IsEmpty() bool { return ck.fw.IsEmpty() }

// Swap exchanges the forward and reverse strands.
func (ck *CanonicalKmer) Swap() {
	ck.fw.data, ck.rc.data = ck.rc.data, ck.fw.data
}

// IsFwCanonical reports whether the forward strand is strictly smaller.
func (ck CanonicalKmer) IsFwCanonical() bool {
	return ck.fw.data < ck.rc.data
}

// AppendBase appends b to the forward strand and prepends its complement
// to the reverse strand.  The base evicted from the forward strand is
// returned.
func (ck *CanonicalKmer) AppendBase(b Base) Base {
	r := ck.fw.AppendBase(b)
	ck.rc.PrependBase(ComplementBase(b))
	return r
}

// PrependBase prepends b to the forward strand and appends its complement
// to the reverse strand.  The base evicted from the forward strand is
// returned.
func (ck *CanonicalKmer) PrependBase(b Base) Base {
	r := ck.fw.PrependBase(b)
	ck.rc.AppendBase(ComplementBase(b))
	return r
}

// AppendBaseU8 is AppendBase for an ascii nucleotide.
func (ck *CanonicalKmer) AppendBaseU8(c byte) Base {
	return ck.AppendBase(EncodeBase(c))
}

// PrependBaseU8 is PrependBase for an ascii nucleotide.
func (ck *CanonicalKmer) PrependBaseU8(c byte) Base {
	return ck.PrependBase(EncodeBase(c))
}

// CanonicalKmer returns whichever strand has the smaller word.
func (ck CanonicalKmer) CanonicalKmer() Kmer {
	if ck.fw.data <= ck.rc.data {
		return ck.fw
	}
	return ck.rc
}

// CanonicalWord returns the smaller of the two strand words.
func (ck CanonicalKmer) CanonicalWord() uint64 {
	return ck.CanonicalKmer().data
}

// FwKmer returns a copy of the forward strand.
func (ck CanonicalKmer) FwKmer() Kmer { return ck.fw }

// RcKmer returns a copy of the reverse complement strand.
func (ck CanonicalKmer) RcKmer() Kmer { return ck.rc }

// FwWord returns the forward strand word.
func (ck CanonicalKmer) FwWord() uint64 { return ck.fw.data }

// RcWord returns the reverse complement strand word.
func (ck CanonicalKmer) RcWord() uint64 { return ck.rc.data }

// KmerEquivalency reports whether other is the forward strand, the reverse
// strand, or neither.
func (ck CanonicalKmer) KmerEquivalency(other Kmer) MatchType {
	return ck.WordEquivalency(other.data)
}

// WordEquivalency is KmerEquivalency on a packed word.
func (ck CanonicalKmer) WordEquivalency(other uint64) MatchType {
	switch other {
	case ck.fw.data:
		return IdentityMatch
	case ck.rc.data:
		return TwinMatch
	}
	return NoMatch
}

// String returns the canonical strand in lower case.
func (ck CanonicalKmer) String() string {
	return ck.CanonicalKmer().String()
}
