package kmers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqVectorFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.bin")
	sv := SeqVectorFromString("AGGGAAAGAACTTTCCCTTAAGGGAAAGAACTTTCCCTTA")
	n, err := WriteToPath(path, sv)
	assert.NoError(t, err)
	assert.True(t, n > 0)

	got, err := OpenSeqVectorFromPath(path)
	assert.NoError(t, err)
	assert.True(t, sv.Equal(got))
	assert.Equal(t, sv.String(), got.String())

	_, err = WriteToPath(path, sv)
	assert.Error(t, err, "existing files are not replaced")
}

func TestMinimizerFilterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimizers.bin")
	cfg := Config{K: 7, W: 3, Hasher: LexHasher{K: 3}}
	sv := SeqVectorFromString("AGGGAAAGAA")
	f := NewMinimizerFilter(10, 0.001)
	f.AddSequence(sv, cfg.K, cfg.W, cfg.Hasher)
	_, err := WriteToPath(path, f)
	assert.NoError(t, err)

	got, err := OpenMinimizerFilterFromPath(path)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), got.Entries())
	assert.True(t, got.Contains(NewKmer("aaa").Word()))
	assert.True(t, got.Contains(NewKmer("ccc").Word()))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := OpenSeqVectorFromPath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	_, err = OpenMinimizerFilterFromPath(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
