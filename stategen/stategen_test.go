package stategen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplebit/runlength/bitmem"
	"github.com/ripplebit/runlength/codec"
)

// rawBitReader returns a closure reading sequential raw bits from mem
// starting at pos, the shape OR2Unsigned's nextL/nextR expect: raw encoded
// bits, not bits decoded through package port.
func rawBitReader(mem *bitmem.Memory, pos int) func() int {
	i := pos
	return func() int {
		b := mem.GetBit(i)
		i++
		return b
	}
}

func rawBitWriter(mem *bitmem.Memory, pos int) func(int) {
	i := pos
	return func(b int) {
		mem.SetBit(i, b)
		i++
	}
}

func runOR2Unsigned(t *testing.T, l, r int64) int64 {
	t.Helper()
	cd := codec.NewUnsigned(2)

	mem := bitmem.New(32)
	lEnd := cd.Encode(cd.NewOutput(mem), 0, l)
	cd.Encode(cd.NewOutput(mem), lEnd, r)

	out := bitmem.New(32)
	OR2Unsigned(rawBitReader(mem, 0), rawBitReader(mem, lEnd), rawBitWriter(out, 0))

	got, _ := cd.Decode(cd.NewInput(out), 0)
	return got
}

func TestOR2UnsignedMatchesBitwiseOr(t *testing.T) {
	values := []int64{0, 1, 2, 3, 5, 7, 8, 9, 15, 16, 100, 1000}
	for _, l := range values {
		for _, r := range values {
			got := runOR2Unsigned(t, l, r)
			require.Equalf(t, l|r, got, "OR2Unsigned(%d,%d)", l, r)
		}
	}
}

func TestOR2UnsignedZeroIsIdentity(t *testing.T) {
	for _, v := range []int64{0, 1, 7, 9, 65535} {
		require.Equal(t, v, runOR2Unsigned(t, v, 0))
		require.Equal(t, v, runOR2Unsigned(t, 0, v))
	}
}

func TestGenerateOR2UnsignedProducesAllStates(t *testing.T) {
	src, err := GenerateOR2Unsigned()
	require.NoError(t, err)

	assert.Contains(t, src, "package stategen")
	assert.Contains(t, src, "func OR2Unsigned(")
	for s := EMPTY; s < numStates; s++ {
		assert.Contains(t, src, s.String(), "missing state %s in generated source", s)
	}
}

func TestStateStringUnknown(t *testing.T) {
	assert.Equal(t, "State(99)", State(99).String())
}

func TestZeroStateIsAbsorbing(t *testing.T) {
	// ZERO never leaves the data states once both operands reach it: is1 is
	// false and pop is a self-loop, so the generated loop's "both ZERO"
	// check at n==2 is reachable and terminates.
	assert.False(t, is1[ZERO])
	assert.True(t, is0[ZERO])
	assert.Equal(t, ZERO, pop[ZERO])
}

func TestLoadTableProducesReadyDataStates(t *testing.T) {
	assert.False(t, isLoad(D1))
	assert.False(t, isLoad(ZERO))
	assert.True(t, isLoad(EMPTY))
	assert.Equal(t, D1, loadOn1[EMPTY])
	assert.Equal(t, Z, loadOn0[EMPTY])
	assert.Equal(t, ZERO, loadOn0[ZZ])
}

func TestGeneratedSourceHasBalancedBraces(t *testing.T) {
	src, err := GenerateOR2Unsigned()
	require.NoError(t, err)
	assert.Equal(t, strings.Count(src, "{"), strings.Count(src, "}"))
}
