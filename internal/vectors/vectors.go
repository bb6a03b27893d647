// Package vectors loads JSON5-authored test fixtures for the round-trip and
// operator properties exercised across the codec and alu packages.
//
// The shape follows the teacher's own test-suite loader (bit-addressable
// fixtures, tolerant JSON5 parsing so comments and trailing commas are
// allowed in hand-authored files) trimmed to this repo's domain: there is
// no schema or per-field encoding here, just plain integer vectors.
package vectors

import (
	"fmt"
	"hash/crc32"
	"os"
	"strings"

	"github.com/aeolun/json5"
)

// RoundTripCase is one value that must survive an encode/decode cycle.
type RoundTripCase struct {
	Name    string `json5:"name"`
	N       uint   `json5:"n"`
	Variant string `json5:"variant"` // "unsigned" or "signed"
	Value   int64  `json5:"value"`
}

// OperatorCase is one ALU operator invocation and its expected result.
type OperatorCase struct {
	Name string `json5:"name"`
	N    uint   `json5:"n"`
	Op   string `json5:"op"` // "and", "or", "xor", "add", "sub", "lsl", "lsr"
	A    int64  `json5:"a"`
	B    int64  `json5:"b"`
	Want int64  `json5:"want"`
}

// Suite is the top-level shape of a fixture file.
type Suite struct {
	RoundTrip []RoundTripCase `json5:"round_trip"`
	Operators []OperatorCase  `json5:"operators"`
}

// LoadSuite reads and parses the JSON5 fixture at path.
//
// If a sidecar file named path+".crc32" exists, containing a hex-encoded
// CRC-32 (IEEE) of path's exact bytes, its checksum is verified first; a
// mismatch is reported as an error rather than silently loading a corrupted
// fixture. Fixtures without a sidecar skip the check.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vectors: reading %s: %w", path, err)
	}

	if err := verifyChecksum(path, data); err != nil {
		return nil, err
	}

	var suite Suite
	if err := json5.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("vectors: parsing %s: %w", path, err)
	}
	return &suite, nil
}

func verifyChecksum(path string, data []byte) error {
	sidecar := path + ".crc32"
	want, err := os.ReadFile(sidecar)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("vectors: reading checksum sidecar %s: %w", sidecar, err)
	}

	got := fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))
	wantStr := strings.TrimSpace(string(want))
	if got != wantStr {
		return fmt.Errorf("vectors: %s: checksum mismatch: fixture is %s, sidecar records %s", path, got, wantStr)
	}
	return nil
}
