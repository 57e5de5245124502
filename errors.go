// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEncode is the cause of every error returned by the checked encoding
// paths.  Test for it with errors.Is.
var ErrEncode = errors.New("invalid nucleotide")

// EncodeError reports the first byte of an input that is not one of
// ACGTacgt.
type EncodeError struct {
	// Pos is the offset of the offending byte in the input
	Pos int
	// Byte is the offending byte
	Byte byte
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrEncode, e.Byte, e.Pos)
}

func (e *EncodeError) Unwrap() error { return ErrEncode }
