// Package codec implements the unsigned-N and signed-N variable-length
// integer encodings on top of package port's stream cursors.
//
// Both variants share the same call shape. Encode walks the value's bits
// from the LSB up, writing each through the port's run-length state machine,
// then closes the stream with an escape-armed end-of-sequence marker; decode
// runs the reverse, reconstructing the value bit by bit until the port
// reports it has stopped.
package codec

import (
	"fmt"

	"github.com/ripplebit/runlength"
	"github.com/ripplebit/runlength/port"
)

// Variant selects the run-bounding rule and sign interpretation.
type Variant int

const (
	Unsigned Variant = iota
	Signed
)

// Codec encodes and decodes integers using a fixed run-length parameter N
// and Variant. Construct with NewUnsigned or NewSigned; the zero value is not
// usable.
type Codec struct {
	n       uint
	variant Variant
}

// NewUnsigned returns a Codec for the unsigned-N encoding.
func NewUnsigned(n uint) *Codec {
	return &Codec{n: n, variant: Unsigned}
}

// NewSigned returns a Codec for the signed-N encoding.
func NewSigned(n uint) *Codec {
	return &Codec{n: n, variant: Signed}
}

// N returns the run-length parameter this codec was constructed with.
func (c *Codec) N() uint { return c.n }

// Variant returns Unsigned or Signed.
func (c *Codec) Variant() Variant { return c.variant }

func (c *Codec) kind() port.Kind {
	if c.variant == Signed {
		return port.Signed
	}
	return port.Unsigned
}

// NewOutput returns an Output port configured for this codec's N and
// Variant, writing into mem.
func (c *Codec) NewOutput(mem port.Memory) *port.Output {
	return port.NewOutput(mem, c.n, c.kind())
}

// NewInput returns an Input port configured for this codec's N and Variant,
// reading from mem.
func (c *Codec) NewInput(mem port.Memory) *port.Input {
	return port.NewInput(mem, c.n, c.kind())
}

// Encode writes value to out starting at pos, which must already be
// constructed with this codec's N and Variant (see NewOutput). It returns
// the bit position immediately past the encoding.
//
// For the unsigned variant value must be non-negative; the caller is
// responsible for this precondition, as required by spec §7.
func (c *Codec) Encode(out *port.Output, pos int, value int64) int {
	out.Start(pos)
	if c.variant == Unsigned {
		v := uint64(value)
		for v != 0 {
			out.EmitBit(int(v & 1))
			v >>= 1
		}
		out.EmitEOSPrefix(0)
		out.Finalize(0)
		return out.Pos()
	}

	v := value
	for v != 0 && v != -1 {
		out.EmitBit(int(v & 1))
		v >>= 1
	}
	polarity := int(v & 1)
	out.EmitEOSPrefix(polarity)
	out.Finalize(polarity)
	return out.Pos()
}

// Decode reads a value from in starting at pos, which must already be
// constructed with this codec's N and Variant (see NewInput). It returns the
// decoded value and the bit position immediately past the encoding.
func (c *Codec) Decode(in *port.Input, pos int) (int64, int) {
	in.Start(pos)
	var num int64
	numlen := uint(0)
	for {
		in.NextBit()
		if in.Bit() != 0 {
			num |= int64(1) << numlen
		}
		numlen++
		if !in.Active() {
			break
		}
	}
	if in.Bit() != 0 {
		num |= -(int64(1) << numlen)
	}
	return num, in.Pos()
}

// DecodeStrict behaves like Decode, but reports a *runlength.Error instead
// of looping forever when the stream never reaches its EOS marker within
// maxBits data bits: a malformed or truncated buffer whose trailing padding
// happens never to arm the escape/EOS discriminator.
func (c *Codec) DecodeStrict(in *port.Input, pos int, maxBits int) (int64, int, error) {
	in.Start(pos)
	var num int64
	numlen := uint(0)
	for {
		if int(numlen) > maxBits {
			return 0, 0, &runlength.Error{
				Code:    runlength.ErrTruncatedStream,
				Message: fmt.Sprintf("decode did not reach end-of-sequence within %d bits", maxBits),
			}
		}
		in.NextBit()
		if in.Bit() != 0 {
			num |= int64(1) << numlen
		}
		numlen++
		if !in.Active() {
			break
		}
	}
	if in.Bit() != 0 {
		num |= -(int64(1) << numlen)
	}
	return num, in.Pos(), nil
}
