// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

// Base is a 2-bit nucleotide code stored in the low bits of a word.
type Base = uint64

// nucleotide codes.  The complement of b is always 3-b.
const (
	A Base = 0
	C Base = 1
	G Base = 2
	T Base = 3
)

// InvalidBase is what the unchecked encoders return for any byte that is
// not a nucleotide.  It has every bit set, so OR-ing it into a packed word
// silently overwrites every base above it.  Callers that cannot guarantee
// clean input must use the checked paths instead.
const InvalidBase = ^Base(0)

const invalidCode = 0xff

var (
	// codes maps ascii to a 2 bit code, invalidCode for anything else
	codes [256]uint8
	// decodes maps a 2 bit code back to upper case ascii
	decodes = [4]byte{'A', 'C', 'G', 'T'}
	// lower case ascii, used when printing k-mers
	lowerDecodes = [4]byte{'a', 'c', 'g', 't'}
)

func init() {
	for i := range codes {
		codes[i] = invalidCode
	}
	set := func(upper, lower byte, b Base) {
		codes[upper] = uint8(b)
		codes[lower] = uint8(b)
	}
	set('A', 'a', A)
	set('C', 'c', C)
	set('G', 'g', G)
	set('T', 't', T)
}

// EncodeBase returns the 2 bit code of c, or InvalidBase if c is not one
// of ACGTacgt.
func EncodeBase(c byte) Base {
	code := codes[c]
	if code == invalidCode {
		return InvalidBase
	}
	return Base(code)
}

// EncodeComplementBase returns the 2 bit code of the complement of c, or
// InvalidBase if c is not one of ACGTacgt.
func EncodeComplementBase(c byte) Base {
	code := codes[c]
	if code == invalidCode {
		return InvalidBase
	}
	return ComplementBase(Base(code))
}

// EncodeBaseChecked is the failable version of EncodeBase.
func EncodeBaseChecked(c byte) (Base, error) {
	code := codes[c]
	if code == invalidCode {
		return 0, &EncodeError{Byte: c}
	}
	return Base(code), nil
}

// DecodeBase returns the upper case ascii letter for b.  Only the low two
// bits of b are considered.
func DecodeBase(b Base) byte {
	return decodes[b&3]
}

// ComplementBase returns the Watson-Crick complement of b.
func ComplementBase(b Base) Base {
	return 3 - b
}

// IsValidBase reports whether b is one of A, C, G or T.
func IsValidBase(b Base) bool {
	return b < 4
}

// Encode converts an ascii nucleotide string into 2 bit codes, failing on
// the first byte that is not a nucleotide.
func Encode(s []byte) ([]Base, error) {
	out := make([]Base, len(s))
	for i, c := range s {
		b, err := EncodeBaseChecked(c)
		if err != nil {
			err.(*EncodeError).Pos = i
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// Decode is the inverse of Encode.  The result is always upper case.
func Decode(bs []Base) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[i] = DecodeBase(b)
	}
	return out
}
