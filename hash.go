// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	murmur "github.com/aviddiviner/go-murmur"
	"github.com/cespare/xxhash/v2"
	"github.com/will-rowe/nthash"
)

// Hasher maps a packed k-mer word to a 64 bit hash.  Minimizers are the
// windows with the smallest hash, so the hasher decides which windows get
// picked.  Implementations must be deterministic for a given value.
type Hasher interface {
	Hash(word uint64) uint64
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc func(word uint64) uint64

func (f HasherFunc) Hash(word uint64) uint64 { return f(word) }

// DefaultHasher is used when a Config carries no hasher.
var DefaultHasher Hasher = MurmurHasher{}

// HashOne hashes a single word.  It exists so callers holding a possibly
// nil Hasher get the default behavior.
func HashOne(h Hasher, word uint64) uint64 {
	if h == nil {
		h = DefaultHasher
	}
	return h.Hash(word)
}

// LexHasher hashes a k-mer of length K to its lexicographic rank: the 2
// bit codes are reversed so the first base becomes the most significant.
// Hash order is therefore the alphabetical order of the k-mer strings,
// which makes minimizer selection reproducible by hand.  Words shorter
// than K keep their relative order; longer words lose their tail.
type LexHasher struct {
	K int
}

func (h LexHasher) Hash(word uint64) uint64 {
	res := word
	res = (res>>2)&0x3333333333333333 | (res&0x3333333333333333)<<2
	res = (res>>4)&0x0F0F0F0F0F0F0F0F | (res&0x0F0F0F0F0F0F0F0F)<<4
	res = bits.ReverseBytes64(res)
	return res >> (2 * uint(MaxK-h.K))
}

// MurmurHasher is MurmurHash64A of the little endian bytes of the word.
type MurmurHasher struct {
	Seed uint64
}

func (h MurmurHasher) Hash(word uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], word)
	return murmur.MurmurHash64A(buf[:], h.Seed)
}

// XXHasher is xxhash64 of the little endian bytes of the seed followed by
// the word.
type XXHasher struct {
	Seed uint64
}

func (h XXHasher) Hash(word uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], h.Seed)
	binary.LittleEndian.PutUint64(buf[8:], word)
	return xxhash.Sum64(buf[:])
}

// NtHasher is the forward strand ntHash of the K bases held in the word.
// It decodes the word back to ascii first, so it is much slower than the
// other hashers; it is here to line minimizers up with tools built on
// ntHash.
type NtHasher struct {
	K int
}

func (h NtHasher) Hash(word uint64) uint64 {
	seq := []byte(KmerFromWord(word, h.K).String())
	for i, c := range seq {
		seq[i] = c - 'a' + 'A'
	}
	hasher, err := nthash.NewHasher(&seq, uint(h.K))
	if err != nil {
		panic(fmt.Sprintf("ntHash of %d-mer: %s", h.K, err))
	}
	hv, _ := hasher.Next(false)
	return hv
}

// fnv64a constants
const (
	offset64 = uint64(14695981039346656037)
	prime64  = uint64(1099511628211)
)

// FNVHasher is an inlined fnv 64a over the little endian bytes of the word.
type FNVHasher struct{}

func (FNVHasher) Hash(word uint64) uint64 {
	hv := offset64
	for i := 0; i < 8; i++ {
		hv ^= word & 0xff
		hv *= prime64
		word >>= 8
	}
	return hv
}
