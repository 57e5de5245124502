// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// seqVersion is a version number for the serialized representation of a
// SeqVector.  Any time incompatible changes are made, it is bumped
const seqVersion = uint64(0x0001)

// maxSerializedBases keeps 2*Bases addressable as bits.
const maxSerializedBases = math.MaxInt64 / 2

// seqHeader describes a serialized SeqVector
type seqHeader struct {
	// a version number which changes as the storage representation
	// changes
	Version uint64
	// the number of bases stored.  the packed words follow, with
	// base i at bit 2i
	Bases uint64
}

// WriteTo writes the sequence to a stream.  The packed words are written
// little endian, so the format is portable.
func (sv *SeqVector) WriteTo(stream io.Writer) (i int64, err error) {
	h := seqHeader{
		Version: seqVersion,
		Bases:   uint64(sv.Len()),
	}
	if err = binary.Write(stream, binary.LittleEndian, h); err != nil {
		return i, errors.Wrap(err, "writing sequence header")
	}
	i += int64(binary.Size(h))

	x, err := writeUintSlice(stream, sv.data.words())
	i += x
	return i, errors.Wrap(err, "writing packed bases")
}

// ReadFrom replaces the sequence with one read from a stream.
func (sv *SeqVector) ReadFrom(stream io.Reader) (i int64, err error) {
	var h seqHeader
	if err = binary.Read(stream, binary.LittleEndian, &h); err != nil {
		return i, errors.Wrap(err, "reading sequence header")
	}
	i += int64(binary.Size(h))
	if h.Version != seqVersion {
		return i, errors.Errorf("incompatible file format: version is %d, expected %d",
			h.Version, seqVersion)
	}
	if h.Bases > maxSerializedBases {
		return i, errors.Errorf("%d bases exceed the limit of %d", h.Bases, uint64(maxSerializedBases))
	}
	words, x, err := readUintSlice(stream, uint64(wordsFor(2*uint(h.Bases))))
	i += x
	if err != nil {
		return i, errors.Wrapf(err, "reading packed bases of %d base sequence", h.Bases)
	}
	sv.data = packedFromWords(words, 2*uint(h.Bases))
	return i, nil
}
