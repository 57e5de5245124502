// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	kmers "github.com/facebookincubator/go-kmers"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var configFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "k",
		Value: kmers.DefaultConfig.K,
		Usage: "bases per k-mer",
	},
	&cli.IntFlag{
		Name:  "w",
		Value: kmers.DefaultConfig.W,
		Usage: "bases per minimizer",
	},
	&cli.StringFlag{
		Name:  "hash",
		Value: "murmur",
		Usage: "minimizer order: lex, murmur, xxhash, nthash or fnv",
	},
	&cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed for the murmur and xxhash orders",
	},
}

func hasherFor(name string, seed uint64, w int) (kmers.Hasher, error) {
	switch name {
	case "lex":
		return kmers.LexHasher{K: w}, nil
	case "murmur":
		return kmers.MurmurHasher{Seed: seed}, nil
	case "xxhash":
		return kmers.XXHasher{Seed: seed}, nil
	case "nthash":
		return kmers.NtHasher{K: w}, nil
	case "fnv":
		return kmers.FNVHasher{}, nil
	}
	return nil, errors.Errorf("unknown hash %q", name)
}

func configFrom(c *cli.Context) (kmers.Config, error) {
	cfg := kmers.NewConfig(c.Int("k"), c.Int("w"))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	h, err := hasherFor(c.String("hash"), c.Uint64("seed"), cfg.W)
	if err != nil {
		return cfg, err
	}
	cfg.Hasher = h
	return cfg, nil
}

// sequences parses the positional arguments, rejecting anything that is
// not a nucleotide string of at least k bases.
func sequences(c *cli.Context, k int) ([]*kmers.SeqVector, error) {
	if c.NArg() == 0 {
		return nil, errors.New("expected at least one sequence argument")
	}
	var res []*kmers.SeqVector
	for i, arg := range c.Args().Slice() {
		if _, err := kmers.Encode([]byte(arg)); err != nil {
			return nil, errors.Wrapf(err, "sequence %d", i+1)
		}
		if len(arg) < k {
			return nil, errors.Errorf("sequence %d has %d bases, fewer than k=%d", i+1, len(arg), k)
		}
		res = append(res, kmers.SeqVectorFromString(arg))
	}
	return res, nil
}

// validRuns splits raw sequence at anything other than ACGTacgt and keeps
// the runs of at least k bases.
func validRuns(raw []byte, k int) [][]byte {
	var runs [][]byte
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i < len(raw) && kmers.IsValidBase(kmers.EncodeBase(raw[i])) {
			continue
		}
		if i-start >= k {
			runs = append(runs, raw[start:i])
		}
		start = i + 1
	}
	return runs
}

func main() {
	app := &cli.App{
		Name:  "kmers",
		Usage: "inspect k-mers, minimizers and super k-mers of nucleotide sequences",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debugging output",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "kmers",
				Usage:     "list the k-mers of each sequence",
				ArgsUsage: "SEQUENCE...",
				Flags:     configFlags,
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					seqs, err := sequences(c, cfg.K)
					if err != nil {
						return err
					}
					for _, seq := range seqs {
						it := seq.IterKmers(cfg.K)
						log.Debugf("%d %d-mers", it.Len(), cfg.K)
						for km, ok := it.Next(); ok; km, ok = it.Next() {
							fmt.Printf("%s\t%s\t%s\n", km, km.Canonical(), km.Orientation())
						}
					}
					return nil
				},
			},
			{
				Name:      "minimizers",
				Usage:     "list the minimizer of every k-mer window",
				ArgsUsage: "SEQUENCE...",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "canonical",
						Usage: "pick minimizers on the canonical strand of each window",
					},
				}, configFlags...),
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					seqs, err := sequences(c, cfg.K)
					if err != nil {
						return err
					}
					for _, seq := range seqs {
						var mins []kmers.MappedMinimizer
						if c.Bool("canonical") {
							mins = cfg.CanonicalMinimizers(seq).Collect()
						} else {
							mins = cfg.Minimizers(seq).Collect()
						}
						for i, m := range mins {
							fmt.Printf("%d\t%s\t%d\n", i, kmers.KmerFromWord(m.Word, cfg.W), m.Pos)
						}
					}
					return nil
				},
			},
			{
				Name:      "superkmers",
				Usage:     "list the canonical super k-mers of each sequence",
				ArgsUsage: "SEQUENCE...",
				Flags:     configFlags,
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					seqs, err := sequences(c, cfg.K)
					if err != nil {
						return err
					}
					for _, seq := range seqs {
						n := 0
						it := cfg.SuperKmers(seq)
						for occ, ok := it.Next(); ok; occ, ok = it.Next() {
							start := occ.StartPos()
							fmt.Printf("%s\t%s\t%d\t%d\t%d\n",
								seq.Slice(start, start+occ.Bases(cfg.K)),
								occ.MmerKmer(cfg.W), occ.MmerPos(), start, occ.NKmers())
							n++
						}
						log.Debugf("%d super k-mers over %d windows", n, cfg.Windows(seq.Len()))
					}
					return nil
				},
			},
			{
				Name:      "canonical",
				Usage:     "scan raw sequences for valid k-mers, skipping non ACGT bases",
				ArgsUsage: "SEQUENCE...",
				Flags:     configFlags,
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					for _, arg := range c.Args().Slice() {
						for it := kmers.NewCanonicalKmerIterator([]byte(arg), cfg.K); !it.Exhausted(); it.Inc() {
							v := it.Get()
							fmt.Printf("%d\t%s\n", v.Pos, v.Km)
						}
					}
					return nil
				},
			},
			{
				Name:  "index",
				Usage: "build a minimizer filter from the sequences of a FASTA/FASTQ file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"out", "o"},
						Value:   "minimizers.bin",
						Usage:   "name of the file to write the filter to",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Value:   "-",
						Usage:   "FASTA/FASTQ file to read from, - for stdin",
					},
					&cli.Float64Flag{
						Name:  "fp",
						Value: 0.001,
						Usage: "false positive rate of the filter",
					},
				}, configFlags...),
				Action: func(c *cli.Context) error {
					output := c.String("output")
					if _, err := os.Stat(output); !os.IsNotExist(err) {
						return errors.Errorf("refusing to over-write existing file: %s", output)
					}
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					fastxReader, err := fastx.NewReader(nil, c.String("input"), "")
					if err != nil {
						return errors.Wrap(err, "failed to read seq file")
					}
					defer fastxReader.Close()

					start := time.Now()
					var seqs []*kmers.SeqVector
					expected, records := 0, 0
					for {
						record, err := fastxReader.Read()
						if err != nil {
							if err == io.EOF {
								break
							}
							return errors.Wrapf(err, "read seq %d", records)
						}
						records++
						runs := validRuns(record.Seq.Seq, cfg.K)
						if len(runs) == 0 {
							log.Debugf("skipping %s: no run of %d valid bases", record.ID, cfg.K)
						}
						for _, run := range runs {
							seqs = append(seqs, kmers.SeqVectorFromBytes(run))
							expected += cfg.Windows(len(run))
						}
					}

					filter := kmers.NewMinimizerFilter(uint(expected)+1, c.Float64("fp"))
					for _, seq := range seqs {
						filter.AddSequence(seq, cfg.K, cfg.W, cfg.Hasher)
					}
					log.Infof("indexed %d minimizers from %d records in %s", filter.Entries(), records, time.Since(start))

					n, err := kmers.WriteToPath(output, filter)
					if err != nil {
						return err
					}
					log.Infof("wrote %d bytes to %s", n, output)
					return nil
				},
			},
			{
				Name:      "lookup",
				Usage:     "report the super k-mers of a sequence whose minimizer is in a filter",
				ArgsUsage: "SEQUENCE...",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"in", "i"},
						Usage:    "file containing the minimizer filter",
						Required: true,
					},
				}, configFlags...),
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					filter, err := kmers.OpenMinimizerFilterFromPath(c.String("input"))
					if err != nil {
						return errors.Wrap(err, "lookup")
					}
					log.Debugf("filter of %d bits with %d hashes", filter.Cap(), filter.K())
					seqs, err := sequences(c, cfg.K)
					if err != nil {
						return err
					}
					for _, seq := range seqs {
						it := cfg.SuperKmers(seq)
						for occ, ok := it.Next(); ok; occ, ok = it.Next() {
							fmt.Printf("%d\t%s\t%t\n", occ.StartPos(), occ.MmerKmer(cfg.W), filter.Contains(occ.MmerWord()))
						}
					}
					return nil
				},
			},
			{
				Name:  "describe",
				Usage: "describe the configuration",
				Flags: configFlags,
				Action: func(c *cli.Context) error {
					cfg, err := configFrom(c)
					if err != nil {
						return err
					}
					cfg.Explain()
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
