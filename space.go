// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import "fmt"

// KmerSpace returns the number of distinct k-mers, 4^k.  It panics for k
// above 31, where the count does not fit in a uint64.
func KmerSpace(k int) uint64 {
	if k < 0 || k >= MaxK {
		panic(fmt.Sprintf("k-mer space of k=%d does not fit 64 bits", k))
	}
	return 1 << (2 * uint(k))
}

// CanonicalSpace returns the number of canonical k-mers.  For odd k no
// k-mer is its own reverse complement, so it is half of KmerSpace; for
// even k the count is corrected by 2k.
func CanonicalSpace(k int) uint64 {
	if k == 0 {
		return 0
	}
	n := KmerSpace(k) / 2
	if k%2 == 0 {
		n -= 2 * uint64(k)
	}
	return n
}
