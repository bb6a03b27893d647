// Package alu implements the streaming arithmetic and logic operators that
// run directly over two encoded operands and produce an encoded result,
// without ever materialising either operand or the result as a plain
// integer.
//
// Every operator steps its input ports in lockstep, one decoded bit at a
// time, and re-encodes the combined result through the output port as it
// goes. Each ALU instance is specialised to a single run-length parameter N;
// the caller is responsible for constructing l, r, and out with matching N
// and the Kind each operator expects (see the per-method doc comments).
package alu

import (
	"fmt"

	"github.com/ripplebit/runlength"
	"github.com/ripplebit/runlength/codec"
	"github.com/ripplebit/runlength/port"
)

// MaxShiftCount bounds the shift amount LSL/LSR will honor. A decoded shift
// past this is rejected rather than streamed: no bit-addressable memory
// region in practical use is ever this wide, so a larger count only ever
// arises from a malformed or adversarial operand.
const MaxShiftCount = 1 << 20

// ALU evaluates streaming operators for a fixed run-length parameter N. The
// zero value is not usable; construct with New.
type ALU struct {
	n uint
}

// New returns an ALU for run-length parameter n.
func New(n uint) *ALU {
	return &ALU{n: n}
}

// N returns the run-length parameter this ALU was constructed with.
func (a *ALU) N() uint { return a.n }

func bitwise(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int, f func(a, b int) int) int {
	l.Start(lPos)
	r.Start(rPos)
	out.Start(outPos)
	for l.Active() || r.Active() {
		l.NextBit()
		r.NextBit()
		out.EmitBit(f(l.Bit(), r.Bit()))
	}
	polarity := f(l.Bit(), r.Bit())
	out.EmitEOSPrefix(polarity)
	out.Finalize(polarity)
	return out.Pos()
}

// And streams the bitwise AND of l and r into out, returning the bit
// position immediately past the result.
func (a *ALU) And(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) int {
	return bitwise(out, outPos, l, r, lPos, rPos, func(x, y int) int { return x & y })
}

// Or streams the bitwise OR of l and r into out.
func (a *ALU) Or(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) int {
	return bitwise(out, outPos, l, r, lPos, rPos, func(x, y int) int { return x | y })
}

// Xor streams the bitwise XOR of l and r into out.
func (a *ALU) Xor(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) int {
	return bitwise(out, outPos, l, r, lPos, rPos, func(x, y int) int { return x ^ y })
}

// addSub implements ADD (invert=false) and two's-complement SUB
// (invert=true, carry-in 1) as a streaming ripple-carry full adder.
//
// Once both operands have stopped, their bits are fixed constants el, rb,
// and the output settles to the single polarity bit el^rb^carry: the loop's
// last carry value is already the fixed point of carry' = maj(el, rb,
// carry) in both cases (el == rb forces it to el; el != rb makes the
// recurrence the identity), so this needs no further iteration to reach a
// stable output.
func addSub(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int, invert bool) int {
	l.Start(lPos)
	r.Start(rPos)
	out.Start(outPos)

	carry := 0
	if invert {
		carry = 1
	}
	for l.Active() || r.Active() {
		l.NextBit()
		r.NextBit()
		rb := r.Bit()
		if invert {
			rb ^= 1
		}
		lb := l.Bit()
		sum := lb ^ rb ^ carry
		carry = (lb & rb) | (carry & (lb ^ rb))
		out.EmitBit(sum)
	}

	el := l.Bit()
	rb := r.Bit()
	if invert {
		rb ^= 1
	}

	polarity := el ^ rb ^ carry
	out.EmitEOSPrefix(polarity)
	out.Finalize(polarity)
	return out.Pos()
}

// Add streams the sum of l and r into out.
func (a *ALU) Add(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) int {
	return addSub(out, outPos, l, r, lPos, rPos, false)
}

// Sub streams l minus r into out, computed as l plus the two's complement of
// r (invert every bit of r, carry in 1).
func (a *ALU) Sub(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) int {
	return addSub(out, outPos, l, r, lPos, rPos, true)
}

// decodeShift decodes the non-negative shift count carried by r. Unlike the
// data operands of the other operators, the shift amount of LSL/LSR is
// decoded to completion up front rather than streamed in lockstep with l:
// the result's run structure depends on the shift amount as a whole, not on
// any single bit of it. r must be a port.Unsigned-kind port.
//
// The decode is budgeted and the result range-checked against
// MaxShiftCount: r is caller-controlled data, and a malformed or
// adversarial encoding (e.g. a run of escape bits that never arms the EOS
// discriminator) must not be allowed to hang this call the way an
// unbounded Decode would.
func (a *ALU) decodeShift(r *port.Input, rPos int) (int64, error) {
	shift, _, err := codec.NewUnsigned(a.n).DecodeStrict(r, rPos, MaxShiftCount+int(a.n)+1)
	if err != nil {
		return 0, &runlength.Error{
			Code:    runlength.ErrShiftCountInvalid,
			Message: fmt.Sprintf("decoding shift count: %v", err),
		}
	}
	if shift < 0 || shift > MaxShiftCount {
		return 0, &runlength.Error{
			Code:    runlength.ErrShiftCountInvalid,
			Message: fmt.Sprintf("shift count %d exceeds practical limit %d", shift, MaxShiftCount),
		}
	}
	return shift, nil
}

// Lsl streams l shifted left by the non-negative amount decoded from r into
// out: shift zero bits are emitted first, followed by l's own bits
// unchanged, preserving l's final polarity (sign) in the result.
func (a *ALU) Lsl(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) (int, error) {
	shift, err := a.decodeShift(r, rPos)
	if err != nil {
		return 0, err
	}

	l.Start(lPos)
	out.Start(outPos)
	for i := int64(0); i < shift; i++ {
		out.EmitBit(0)
	}
	for l.Active() {
		l.NextBit()
		out.EmitBit(l.Bit())
	}
	polarity := l.Bit()
	out.EmitEOSPrefix(polarity)
	out.Finalize(polarity)
	return out.Pos(), nil
}

// Lsr streams l shifted right by the non-negative amount decoded from r into
// out: that many leading bits of l are discarded, and the remainder is
// re-emitted, preserving l's final polarity. This is an arithmetic shift:
// the result of shifting a negative signed value past its last data bit is
// -1, not 0, since there is no fixed bit width to zero-fill to.
func (a *ALU) Lsr(out *port.Output, outPos int, l, r *port.Input, lPos, rPos int) (int, error) {
	shift, err := a.decodeShift(r, rPos)
	if err != nil {
		return 0, err
	}

	l.Start(lPos)
	for i := int64(0); i < shift && l.Active(); i++ {
		l.NextBit()
	}

	out.Start(outPos)
	for l.Active() {
		l.NextBit()
		out.EmitBit(l.Bit())
	}
	polarity := l.Bit()
	out.EmitEOSPrefix(polarity)
	out.Finalize(polarity)
	return out.Pos(), nil
}
