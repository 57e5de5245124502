package main

import (
	"bytes"
	"fmt"

	kmers "github.com/facebookincubator/go-kmers"
)

func main() {
	// a configuration small enough to read the output by hand
	config := kmers.Config{K: 7, W: 3, Hasher: kmers.LexHasher{K: 3}}
	if err := config.Validate(); err != nil {
		panic(err)
	}
	config.Explain()

	seq := kmers.NewSeqVector()
	seq.PushChars([]byte("AGGGAAAGAA"))
	seq.PushChars([]byte("CTTTCCCTTA"))
	fmt.Printf("%s (%d bases, %d windows)\n", seq, seq.Len(), config.Windows(seq.Len()))

	it := config.SuperKmers(seq)
	filter := kmers.NewMinimizerFilter(uint(config.Windows(seq.Len())), 0.001)
	for occ, ok := it.Next(); ok; occ, ok = it.Next() {
		fmt.Printf("  super k-mer at %d: %d k-mers, minimizer %s at %d\n",
			occ.StartPos(), occ.NKmers(), occ.MmerKmer(config.W), occ.MmerPos())
		filter.Add(occ.MmerWord())
	}

	for _, mmer := range []string{"aaa", "ccc", "ggg", "acg"} {
		km := kmers.NewKmer(mmer)
		fmt.Printf("%s: %t\n", mmer, filter.Contains(km.Word()))
	}

	// Serialize the sequence and report size
	buf := bytes.NewBuffer([]byte{})
	seq.WriteTo(buf)
	fmt.Printf("sequence serializes into %d bytes\n", buf.Len())
}
