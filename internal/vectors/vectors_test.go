package vectors

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSuite(t *testing.T) {
	suite, err := LoadSuite(filepath.Join("..", "..", "testdata", "vectors.json5"))
	require.NoError(t, err)

	require.NotEmpty(t, suite.RoundTrip)
	require.NotEmpty(t, suite.Operators)

	assert.Equal(t, "unsigned-2-seven", suite.RoundTrip[1].Name)
	assert.Equal(t, int64(7), suite.RoundTrip[1].Value)
	assert.Equal(t, "unsigned", suite.RoundTrip[1].Variant)

	var addCase *OperatorCase
	for i := range suite.Operators {
		if suite.Operators[i].Name == "add-basic" {
			addCase = &suite.Operators[i]
		}
	}
	require.NotNil(t, addCase)
	assert.Equal(t, int64(2), addCase.Want)
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "does-not-exist.json5"))
	assert.Error(t, err)
}

func TestLoadSuiteChecksumMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json5")
	data := []byte(`{ round_trip: [{ name: "x", n: 2, variant: "unsigned", value: 3 }] }`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.WriteFile(path+".crc32", []byte(fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))), 0o644))

	suite, err := LoadSuite(path)
	require.NoError(t, err)
	require.Len(t, suite.RoundTrip, 1)
}

func TestLoadSuiteChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json5")
	data := []byte(`{ round_trip: [] }`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.WriteFile(path+".crc32", []byte("deadbeef"), 0o644))

	_, err := LoadSuite(path)
	assert.ErrorContains(t, err, "checksum mismatch")
}
