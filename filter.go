// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"encoding/binary"
	"io"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/pkg/errors"
)

// MinimizerFilter is an approximate set of canonical minimizers, useful to
// find which super k-mers of a query may share a minimizer with previously
// indexed sequences.  False positives occur at about the configured rate;
// there are no false negatives.
type MinimizerFilter struct {
	bf      *bloom.BloomFilter
	entries uint
}

// NewMinimizerFilter sizes a filter for the expected number of distinct
// minimizers at the given false positive rate.
func NewMinimizerFilter(expected uint, fpRate float64) *MinimizerFilter {
	return &MinimizerFilter{bf: bloom.NewWithEstimates(expected, fpRate)}
}

func wordKey(word uint64) []byte {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], word)
	return key[:]
}

// Add inserts a packed minimizer.
func (f *MinimizerFilter) Add(word uint64) {
	f.bf.Add(wordKey(word))
	f.entries++
}

// AddSequence inserts the minimizer of every super k-mer of seq and
// returns the number of super k-mers seen.
func (f *MinimizerFilter) AddSequence(seq Sequence, k, w int, h Hasher) int {
	n := 0
	it := NewCanonicalSuperKmerIterator(seq, k, w, h)
	for occ, ok := it.Next(); ok; occ, ok = it.Next() {
		f.Add(occ.MmerWord())
		n++
	}
	return n
}

// Contains reports whether word may have been added.
func (f *MinimizerFilter) Contains(word uint64) bool {
	return f.bf.Test(wordKey(word))
}

// Entries returns the number of insertions, counting repeats.
func (f *MinimizerFilter) Entries() uint {
	return f.entries
}

// Cap returns the size of the filter in bits.
func (f *MinimizerFilter) Cap() uint {
	return f.bf.Cap()
}

// K returns the number of hash functions in use.
func (f *MinimizerFilter) K() uint {
	return f.bf.K()
}

// WriteTo writes the filter to a stream.
func (f *MinimizerFilter) WriteTo(stream io.Writer) (int64, error) {
	if err := binary.Write(stream, binary.LittleEndian, uint64(f.entries)); err != nil {
		return 0, errors.Wrap(err, "writing minimizer filter entries")
	}
	n, err := f.bf.WriteTo(stream)
	n += 8
	return n, errors.Wrap(err, "writing minimizer filter")
}

// ReadFrom replaces the filter with one read from a stream.
func (f *MinimizerFilter) ReadFrom(stream io.Reader) (int64, error) {
	var entries uint64
	if err := binary.Read(stream, binary.LittleEndian, &entries); err != nil {
		return 0, errors.Wrap(err, "reading minimizer filter entries")
	}
	bf := &bloom.BloomFilter{}
	n, err := bf.ReadFrom(stream)
	n += 8
	if err != nil {
		return n, errors.Wrap(err, "reading minimizer filter")
	}
	f.bf, f.entries = bf, uint(entries)
	return n, nil
}
