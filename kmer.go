// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"fmt"
	"math"
	"math/bits"
)

// MaxK is the longest k-mer that fits in a single 64 bit word.
const MaxK = 32

// Kmer is a k-mer of up to 32 bases packed into a single word.  Base i
// (0 being the 5' end) lives in bits [2i, 2i+1], so the first base is the
// least significant.  Bits above 2k-1 are always zero unless the k-mer
// was built from invalid input through an unchecked constructor.
//
// Kmers are ordered by their numeric word (see Less), which is not the
// alphabetical order of their strings.
type Kmer struct {
	k    uint8
	data uint64
}

// Orientation tells whether a k-mer is its own canonical form.
type Orientation int

const (
	IsCanonical Orientation = iota
	NotCanonical
)

func (o Orientation) String() string {
	if o == IsCanonical {
		return "canonical"
	}
	return "not canonical"
}

// maskTable[k] has the low 2k bits set.
var maskTable [MaxK + 1]uint64

func init() {
	for k := 0; k < MaxK; k++ {
		maskTable[k] = (1 << (2 * uint(k))) - 1
	}
	maskTable[MaxK] = math.MaxUint64
}

func checkK(k int) {
	if k < 1 || k > MaxK {
		panic(fmt.Sprintf("k-mer length %d out of range [1, %d]", k, MaxK))
	}
}

// NewKmer packs s into a Kmer.  It panics if s is longer than 32 bases.
// Bytes other than ACGTacgt are not detected; see InvalidBase.
func NewKmer(s string) Kmer {
	return KmerFromBytes([]byte(s))
}

// KmerFromBytes packs s into a Kmer.  It panics if s is longer than 32
// bases.  Bytes other than ACGTacgt are not detected; see InvalidBase.
func KmerFromBytes(s []byte) Kmer {
	if len(s) > MaxK {
		panic("kmers longer than 32 bases not supported")
	}
	var w uint64
	// read left to right into low to high order bits
	for i := len(s) - 1; i >= 0; i-- {
		w <<= 2
		w |= EncodeBase(s[i])
	}
	return Kmer{k: uint8(len(s)), data: w}
}

// KmerFromBytesChecked is the failable version of KmerFromBytes.  It
// returns an error wrapping ErrEncode when s contains anything other than
// ACGTacgt.  Length violations are still a panic.
func KmerFromBytesChecked(s []byte) (Kmer, error) {
	if len(s) > MaxK {
		panic("kmers longer than 32 bases not supported")
	}
	var w uint64
	for i := len(s) - 1; i >= 0; i-- {
		b, err := EncodeBaseChecked(s[i])
		if err != nil {
			err.(*EncodeError).Pos = i
			return Kmer{}, err
		}
		w = w<<2 | b
	}
	return Kmer{k: uint8(len(s)), data: w}, nil
}

// KmerFromWord builds a k-mer of length k from the low 2k bits of data.
func KmerFromWord(data uint64, k int) Kmer {
	checkK(k)
	return Kmer{k: uint8(k), data: data & maskTable[k]}
}

// K returns the length of the k-mer.
func (km Kmer) K() int { return int(km.k) }

// Len is a synonym for K.
func (km Kmer) Len() int { return int(km.k) }

// IsEmpty reports whether the k-mer has no bases (the zero Kmer).
func (km Kmer) IsEmpty() bool { return km.k == 0 }

// Word returns the packed representation.
func (km Kmer) Word() uint64 { return km.data }

// Less orders k-mers by their packed word.  Comparing k-mers of different
// lengths is allowed but only compares bits.
func (km Kmer) Less(other Kmer) bool {
	return km.data < other.data
}

// Compare returns -1, 0 or 1 comparing the packed words, then lengths.
func (km Kmer) Compare(other Kmer) int {
	switch {
	case km.data < other.data:
		return -1
	case km.data > other.data:
		return 1
	case km.k < other.k:
		return -1
	case km.k > other.k:
		return 1
	}
	return 0
}

// AppendBase shifts the k-mer one base toward its 5' end and stores b as
// the new last base, as when scanning forward along a sequence.  The
// evicted first base is returned.
func (km *Kmer) AppendBase(b Base) Base {
	r := km.data & 3
	km.data = (km.data >> 2) | (b << (2*uint(km.k) - 2))
	return r
}

// PrependBase shifts the k-mer one base toward its 3' end and stores b as
// the new first base, as when scanning backward.  The evicted last base is
// returned.
func (km *Kmer) PrependBase(b Base) Base {
	r := (km.data >> (2*uint(km.k) - 2)) & 3
	km.data = maskTable[km.k] & ((km.data << 2) | b)
	return r
}

// AppendBaseU8 is AppendBase for an ascii nucleotide.
func (km *Kmer) AppendBaseU8(c byte) Base {
	return km.AppendBase(EncodeBase(c))
}

// PrependBaseU8 is PrependBase for an ascii nucleotide.
func (km *Kmer) PrependBaseU8(c byte) Base {
	return km.PrependBase(EncodeBase(c))
}

// ReverseComplement returns the reverse complement of the k-mer.
func (km Kmer) ReverseComplement() Kmer {
	return Kmer{k: km.k, data: ReverseComplementWord(km.data, int(km.k))}
}

// ReverseComplementWord reverse complements the low 2k bits of w.
//
// adapted from https://www.biostars.org/p/113640/
func ReverseComplementWord(w uint64, k int) uint64 {
	res := ^w
	res = (res>>2)&0x3333333333333333 | (res&0x3333333333333333)<<2
	res = (res>>4)&0x0F0F0F0F0F0F0F0F | (res&0x0F0F0F0F0F0F0F0F)<<4
	res = bits.ReverseBytes64(res)
	return res >> (2 * uint(MaxK-k))
}

// IsCanonical reports whether the k-mer is no larger than its reverse
// complement.  Palindromes are canonical.
func (km Kmer) IsCanonical() bool {
	return km.data <= ReverseComplementWord(km.data, int(km.k))
}

// Orientation returns IsCanonical or NotCanonical.
func (km Kmer) Orientation() Orientation {
	if km.IsCanonical() {
		return IsCanonical
	}
	return NotCanonical
}

// Canonical returns the smaller of the k-mer and its reverse complement.
func (km Kmer) Canonical() Kmer {
	if km.IsCanonical() {
		return km
	}
	return km.ReverseComplement()
}

// SubKmer returns the width long k-mer starting at base pos.
func (km Kmer) SubKmer(pos, width int) Kmer {
	return KmerFromWord(SubKmerWord(km.data, int(km.k), pos, width), width)
}

// SubKmerWord extracts the width long k-mer starting at base pos from a
// packed k-mer of length k.
func SubKmerWord(word uint64, k, pos, width int) uint64 {
	if pos >= k || pos+width > k {
		panic(fmt.Sprintf("sub k-mer [%d, %d) out of range for k=%d", pos, pos+width, k))
	}
	return (word >> (2 * uint(pos))) & maskTable[width]
}

// Minimizer scans every width long window of the k-mer and returns the
// one with the smallest hash along with its offset.  Ties keep the
// leftmost window.  This is a reference implementation; MinimizerIter
// computes the same thing incrementally over a sequence.
func (km Kmer) Minimizer(width int, h Hasher) (Kmer, int) {
	mm, o := MinimizerWord(km.data, int(km.k), width, h)
	return KmerFromWord(mm, width), o
}

// MinimizerWord is Minimizer on a packed word of length k.
func MinimizerWord(word uint64, k, width int, h Hasher) (uint64, int) {
	var minMmer uint64
	minHash := uint64(math.MaxUint64)
	offset := 0
	for pos := 0; pos < k-width+1; pos++ {
		mmer := SubKmerWord(word, k, pos, width)
		hash := h.Hash(mmer)
		if hash < minHash {
			minMmer, minHash, offset = mmer, hash, pos
		}
	}
	return minMmer, offset
}

// CanonicalMinimizer is Minimizer where each window is considered in
// whichever orientation hashes lower.  The returned flag is true when the
// winning window was taken from the forward strand.
func (km Kmer) CanonicalMinimizer(width int, h Hasher) (Kmer, int, bool) {
	mm, o, isFw := CanonicalMinimizerWord(km.data, int(km.k), width, h)
	return KmerFromWord(mm, width), o, isFw
}

// CanonicalMinimizerWord is CanonicalMinimizer on a packed word of length k.
func CanonicalMinimizerWord(word uint64, k, width int, h Hasher) (uint64, int, bool) {
	var minMmer uint64
	minHash := uint64(math.MaxUint64)
	offset := 0
	isFw := true
	for pos := 0; pos < k-width+1; pos++ {
		fw := SubKmerWord(word, k, pos, width)
		rc := ReverseComplementWord(fw, width)
		fwHash, rcHash := h.Hash(fw), h.Hash(rc)

		mmer, hash, mmerIsFw := rc, rcHash, false
		if fwHash < rcHash {
			mmer, hash, mmerIsFw = fw, fwHash, true
		}
		if hash < minHash {
			minMmer, minHash, offset, isFw = mmer, hash, pos, mmerIsFw
		}
	}
	return minMmer, offset, isFw
}

// String returns the bases of the k-mer in lower case.
func (km Kmer) String() string {
	s := make([]byte, km.k)
	w := km.data
	for i := range s {
		s[i] = lowerDecodes[w&3]
		w >>= 2
	}
	return string(s)
}
