// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// OpenMinimizerFilterFromPath loads a filter written with
// MinimizerFilter.WriteTo.
func OpenMinimizerFilterFromPath(path string) (*MinimizerFilter, error) {
	f := &MinimizerFilter{}
	if err := readFromPath(path, f); err != nil {
		return nil, err
	}
	return f, nil
}

// OpenSeqVectorFromPath loads a sequence written with SeqVector.WriteTo.
func OpenSeqVectorFromPath(path string) (*SeqVector, error) {
	sv := NewSeqVector()
	if err := readFromPath(path, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

func readFromPath(path string, into io.ReaderFrom) error {
	rdr, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer rdr.Close()
	if _, err = into.ReadFrom(bufio.NewReader(rdr)); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return nil
}

// WriteToPath writes v to a new file at path, refusing to replace an
// existing file.
func WriteToPath(path string, v io.WriterTo) (int64, error) {
	o, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %s", path)
	}
	w := bufio.NewWriter(o)
	n, err := v.WriteTo(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := o.Close(); err == nil {
		err = cerr
	}
	return n, errors.Wrapf(err, "writing %s", path)
}
