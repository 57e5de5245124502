// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package kmers

import (
	"fmt"

	"github.com/pkg/errors"
)

// Config holds the k-mer and minimizer widths and the hash used to pick
// minimizers.
type Config struct {
	// The number of bases per k-mer, at most MaxK
	K int
	// The number of bases per minimizer, at most K
	W int
	// The hash ordering minimizer candidates.  nil selects
	// DefaultHasher
	Hasher Hasher
}

// DefaultConfig is used when no explicit configuration is provided.
var DefaultConfig = Config{
	K:      31,
	W:      19,
	Hasher: MurmurHasher{},
}

// NewConfig returns a configuration for k-mers of k bases and minimizers
// of w bases, using DefaultHasher.
func NewConfig(k, w int) Config {
	return Config{K: k, W: w, Hasher: DefaultHasher}
}

// Validate reports whether the widths can be used.
func (c Config) Validate() error {
	if c.K < 1 || c.K > MaxK {
		return errors.Errorf("k=%d not in [1, %d]", c.K, MaxK)
	}
	if c.W < 1 || c.W > c.K {
		return errors.Errorf("w=%d not in [1, %d]", c.W, c.K)
	}
	return nil
}

func (c Config) hasher() Hasher {
	if c.Hasher == nil {
		return DefaultHasher
	}
	return c.Hasher
}

// Windows reports the number of k-mer windows in a sequence of seqLen
// bases.
func (c Config) Windows(seqLen int) int {
	if seqLen < c.K {
		return 0
	}
	return seqLen - c.K + 1
}

// CandidatesPerWindow reports the number of minimizer candidates in each
// k-mer.
func (c Config) CandidatesPerWindow() int {
	return c.K - c.W + 1
}

// BytesRequired reports the space needed to pack seqLen bases.
func (c Config) BytesRequired(seqLen int) uint {
	return wordsFor(2*uint(seqLen)) * bytesPerWord
}

// Minimizers returns an iterator over the leftmost minimizers of seq.
func (c Config) Minimizers(seq Sequence) *MinimizerIter {
	return NewMinimizerIter(seq, c.K, c.W, c.hasher(), LeftMin)
}

// CanonicalMinimizers returns an iterator over the canonical minimizers of
// seq.
func (c Config) CanonicalMinimizers(seq Sequence) *CanonicalMinimizerIter {
	return NewCanonicalMinimizerIter(seq, c.K, c.W, c.hasher())
}

// SuperKmers returns an iterator over the super k-mers of seq.
func (c Config) SuperKmers(seq Sequence) *CanonicalSuperKmerIterator {
	return NewCanonicalSuperKmerIterator(seq, c.K, c.W, c.hasher())
}

// ExplainIndent will print an indented summary of the configuration to stdout
func (c Config) ExplainIndent(indent string) {
	fmt.Printf("%s%2d bases per k-mer", indent, c.K)
	if c.K < MaxK {
		fmt.Printf(" (%d canonical k-mers)", CanonicalSpace(c.K))
	}
	fmt.Println()
	fmt.Printf("%s%2d bases per minimizer (%d candidates per k-mer)\n", indent, c.W, c.CandidatesPerWindow())
	fmt.Printf("%s   %T minimizer order\n", indent, c.hasher())
	fmt.Printf("%s   %s packed per megabase\n", indent, humanBytes(c.BytesRequired(1000000)))
}

// Explain will print a summary of the configuration to stdout
func (c Config) Explain() {
	c.ExplainIndent("")
}

func humanBytes(bytes uint) string {
	v := float64(bytes)
	suffix := "bytes"
	if v > 1024 {
		v /= 1024.
		suffix = "KB"
		if v > 1024. {
			suffix = "MB"
			v /= 1024.0
			if v > 1024. {
				suffix = "GB"
				v /= 1024.
			}
		}
	}
	if v < 10 {
		return fmt.Sprintf("%0.2f %s", v, suffix)
	} else if v < 100 {
		return fmt.Sprintf("%0.1f %s", v, suffix)
	} else {
		return fmt.Sprintf("%0.0f %s", v, suffix)
	}
}
