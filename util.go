// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/pkg/errors"
)

const bytesPerWord = 8

var isLittleEndian bool

func init() {
	buf := []byte{0x1, 0x0}
	val := (*uint16)(unsafe.Pointer(unsafe.SliceData(buf)))
	isLittleEndian = *val == uint16(1)
}

func unsafeUint64SliceToBytes(space []uint64) []byte {
	data := (*byte)(unsafe.Pointer(unsafe.SliceData(space)))
	return unsafe.Slice(data, len(space)*bytesPerWord)
}

func writeUintSlice(w io.Writer, v []uint64) (n int64, err error) {
	if err = binary.Write(w, binary.LittleEndian, uint64(len(v))); err != nil {
		return
	}
	n += bytesPerWord
	if len(v) == 0 {
		return
	}
	if isLittleEndian {
		data := unsafeUint64SliceToBytes(v)
		var np int
		np, err = w.Write(data)
		n += int64(np)
	} else {
		err = binary.Write(w, binary.LittleEndian, v)
		if err == nil {
			n += int64(len(v)) * bytesPerWord
		}
	}
	return
}

// readUintSlice reads a slice written by writeUintSlice, which must hold
// exactly want words.  The length is checked before anything is allocated.
func readUintSlice(r io.Reader, want uint64) (v []uint64, n int64, err error) {
	var length uint64
	if err = binary.Read(r, binary.LittleEndian, &length); err != nil {
		return
	}
	n += bytesPerWord
	if length != want {
		err = errors.Errorf("expected %d words, found %d", want, length)
		return
	}
	v = make([]uint64, length)
	if length == 0 {
		return
	}
	if isLittleEndian {
		data := unsafeUint64SliceToBytes(v)
		var np int
		np, err = io.ReadFull(r, data)
		n += int64(np)
	} else {
		if err = binary.Read(r, binary.LittleEndian, v); err != nil {
			return
		}
		n += bytesPerWord * int64(length)
	}
	return
}
