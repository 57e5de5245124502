// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// packed is a growable bit vector that stores integers of 1 to 64 bits at
// arbitrary bit offsets.  The bitset owns the length and the growth of the
// vector; bit i of the vector is bit i%64 of word i/64, and bits past the
// length are always zero.
type packed struct {
	bits *bitset.BitSet
}

func newPacked(capacityBits uint) *packed {
	return &packed{bits: bitset.From(make([]uint64, 0, wordsFor(capacityBits)))}
}

// packedFromWords adopts words holding size bits.  Bits of the last word
// past size are cleared.
func packedFromWords(words []uint64, size uint) *packed {
	n := wordsFor(size)
	if n > uint(len(words)) {
		panic(fmt.Sprintf("%d bits do not fit in %d words", size, len(words)))
	}
	bits := bitset.From(words[:n:n])
	if size%64 != 0 {
		bits.Shrink(size - 1)
	}
	return &packed{bits: bits}
}

func wordsFor(nbits uint) uint {
	return (nbits + 63) / 64
}

func widthMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (1 << width) - 1
}

func (p *packed) len() uint {
	return p.bits.Len()
}

// words returns the words backing the vector.
func (p *packed) words() []uint64 {
	return p.bits.Bytes()[:wordsFor(p.len())]
}

// resize grows the vector to size bits; new bits are zero.
func (p *packed) resize(size uint) {
	if size > p.len() {
		p.bits.Set(size - 1).Clear(size - 1)
	}
}

// push appends the low width bits of val.
func (p *packed) push(val uint64, width uint) {
	off := p.len()
	p.resize(off + width)
	p.set(off, val, width)
}

//                 | bitoff, the bit offset into the word
//                 V
//                   1 1 1 1 1 1 1 1 1 1 2 2 2 2 2 2 2 2 2 2 3 3 3
// 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2
//                 \---------------/
//                    getbits - the number of interesting bits in this
//                              word
//

// set overwrites width bits starting at bit off with the low bits of val.
// The range must already be addressable.
func (p *packed) set(off uint, val uint64, width uint) {
	space := p.bits.Bytes()
	val &= widthMask(width)
	word := off / 64
	bitoff := off % 64
	getbits := 64 - bitoff
	if getbits > width {
		getbits = width
	}
	// zero
	space[word] =
		((space[word] >> (bitoff + getbits)) << (bitoff + getbits)) |
			(space[word] << (64 - bitoff) >> (64 - bitoff))

	// or in val
	space[word] |= val << bitoff

	if getbits < width {
		remainder := width - getbits
		space[word+1] = ((space[word+1] >> remainder) << remainder) | val>>getbits
	}
}

// int reads width bits starting at bit off.
func (p *packed) int(off, width uint) uint64 {
	if off+width > p.len() {
		panic(fmt.Sprintf("read of bits [%d, %d) past end of %d bit vector", off, off+width, p.len()))
	}
	space := p.bits.Bytes()
	word := off / 64
	bitoff := off % 64
	getbits := 64 - bitoff
	if getbits > width {
		getbits = width
	}
	// now get 'getbits' from 'word' starting at 'bitoff'
	val := space[word] << (64 - getbits - bitoff)
	val >>= 64 - getbits
	if getbits < width {
		remainder := width - getbits
		x := (space[word+1] << (64 - remainder)) >> (64 - remainder)
		val |= x << getbits
	}
	return val
}

func (p *packed) equal(o *packed) bool {
	return p.bits.Equal(o.bits)
}
