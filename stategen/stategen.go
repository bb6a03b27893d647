// Package stategen implements the unsigned-2 OR operator as a joint
// load/emit state machine over the two operands' own run-length states,
// the same per-operand product-state design genstatedata.cc generates from,
// and exposes a generator that renders that state machine as standalone Go
// source text.
//
// The state machine tracks each operand's load/data state independently
// instead of decoding both through package port. Before every output bit it
// reads raw bits into both operands until each holds a ready data bit (or
// has reached its end-of-sequence), and only then decides the output bit:
// 1 when either ready bit is 1, else 0. It does not emit a bit while either
// operand is still loading, even when the other already holds a 1.
package stategen

import (
	"bytes"
	"fmt"
	"text/template"
)

// State names one operand's progress loading and holding run-length-2
// encoded data: EMPTY/Z/ZZ are "still loading raw bits" states, D1/D01/D00/D0
// hold decoded data bits ready to pop, and ZERO means the operand's stream
// has reached its end-of-sequence and every further bit is an implicit
// zero-extension.
type State int

const (
	EMPTY State = iota
	Z
	ZZ
	D1
	D01
	D00
	D0
	ZERO
	numStates
)

func (s State) String() string {
	switch s {
	case EMPTY:
		return "EMPTY"
	case Z:
		return "Z"
	case ZZ:
		return "ZZ"
	case D1:
		return "D1"
	case D01:
		return "D01"
	case D00:
		return "D00"
	case D0:
		return "D0"
	case ZERO:
		return "ZERO"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// isLoad reports whether s is still accumulating raw bits, as opposed to
// holding data ready to pop.
func isLoad(s State) bool {
	return s == EMPTY || s == Z || s == ZZ
}

// loadOn0 and loadOn1 give the next load state reached from each load state
// (EMPTY, Z, ZZ) on reading the named raw bit. Reading a 1 while EMPTY or Z
// resolves one or two data bits immediately (runs of 1 need no escape);
// reading 0 three times in a row without an intervening 1 reaches ZERO, the
// N+1-zero end-of-sequence for run-length-2.
var (
	loadOn0 = [numStates]State{EMPTY: Z, Z: ZZ, ZZ: ZERO}
	loadOn1 = [numStates]State{EMPTY: D1, Z: D01, ZZ: D00}
)

// is1 marks which data states have a "1" bit ready to pop; is0 marks which
// have a "0" ready. pop gives the state an operand falls back to once its
// ready bit has been consumed. All three tables are transcribed from
// genstatedata.cc's enum and is1/is0/pop arrays.
var (
	is1 = [numStates]bool{D1: true}
	is0 = [numStates]bool{D01: true, D00: true, D0: true, ZERO: true}
	pop = [numStates]State{
		EMPTY: EMPTY, Z: Z, ZZ: ZZ,
		D1:  EMPTY,
		D01: D1,
		D00: D0,
		D0:  EMPTY,
		ZERO: ZERO,
	}
)

// OR2Unsigned computes the bitwise OR of two unsigned-2 run-length encoded
// operand streams directly against their raw bits, without decoding either
// operand through package port or materialising a result value first.
//
// nextL and nextR each return the next raw bit of their operand's stream,
// including escape and end-of-sequence discriminator bits; emit receives
// the raw bits of the combined, already run-length-encoded result, in
// order, ending with its own N+1-zero end-of-sequence marker.
func OR2Unsigned(nextL, nextR func() int, emit func(int)) {
	stateL, stateR := EMPTY, EMPTY
	n := 0
	for {
		if isLoad(stateL) {
			if nextL() == 1 {
				stateL = loadOn1[stateL]
			} else {
				stateL = loadOn0[stateL]
			}
			continue
		}
		if isLoad(stateR) {
			if nextR() == 1 {
				stateR = loadOn1[stateR]
			} else {
				stateR = loadOn0[stateR]
			}
			continue
		}

		if n == 2 {
			if stateL == ZERO && stateR == ZERO {
				emit(0)
				return
			}
			emit(1)
		}

		switch {
		case is1[stateL] || is1[stateR]:
			emit(1)
			stateL, stateR = pop[stateL], pop[stateR]
			n = 0
		case n == 2:
			emit(0)
			stateL, stateR = pop[stateL], pop[stateR]
			n = 1
		default:
			emit(0)
			stateL, stateR = pop[stateL], pop[stateR]
			n++
		}
	}
}

type stateRow struct {
	Name   string
	IsLoad bool
	On0    string
	On1    string
	Is1    bool
	Is0    bool
	Pop    string
}

const tmplSrc = `// Code generated by stategen.GenerateOR2Unsigned. DO NOT EDIT.

package stategen

// OR2Unsigned computes the bitwise OR of two unsigned-2 run-length encoded
// operand streams directly against their raw bits. nextL/nextR return the
// next raw bit of their operand (including escape/EOS bits); emit receives
// the raw bits of the combined, already-encoded result.
func OR2Unsigned(nextL, nextR func() int, emit func(int)) {
	stateL, stateR := EMPTY, EMPTY
	n := 0
	for {
		if isLoadState(stateL) {
			stateL = loadState(stateL, nextL())
			continue
		}
		if isLoadState(stateR) {
			stateR = loadState(stateR, nextR())
			continue
		}

		if n == 2 {
			if stateL == ZERO && stateR == ZERO {
				emit(0)
				return
			}
			emit(1)
		}

		switch {
		case is1State(stateL) || is1State(stateR):
			emit(1)
			stateL, stateR = popState(stateL), popState(stateR)
			n = 0
		case n == 2:
			emit(0)
			stateL, stateR = popState(stateL), popState(stateR)
			n = 1
		default:
			emit(0)
			stateL, stateR = popState(stateL), popState(stateR)
			n++
		}
	}
}

func isLoadState(s State) bool {
	switch s {
{{- range .Rows}}
{{- if .IsLoad}}
	case {{.Name}}:
		return true
{{- end}}
{{- end}}
	default:
		return false
	}
}

func loadState(s State, bit int) State {
	switch s {
{{- range .Rows}}
{{- if .IsLoad}}
	case {{.Name}}:
		if bit == 1 {
			return {{.On1}}
		}
		return {{.On0}}
{{- end}}
{{- end}}
	default:
		return s
	}
}

func is1State(s State) bool {
	switch s {
{{- range .Rows}}
{{- if .Is1}}
	case {{.Name}}:
		return true
{{- end}}
{{- end}}
	default:
		return false
	}
}

func popState(s State) State {
	switch s {
{{- range .Rows}}
	case {{.Name}}:
		return {{.Pop}}
{{- end}}
	default:
		return s
	}
}
`

var tmpl = template.Must(template.New("or2unsigned").Parse(tmplSrc))

// GenerateOR2Unsigned renders the Go source of OR2Unsigned, with its state
// lookups written out as switch statements built from this package's own
// is1/pop/loadOn0/loadOn1 tables, so the emitted text and the package's own
// executable implementation can never drift apart. The text declares
// package stategen and uses the State type and its constants without
// declaring them; it is not a standalone program.
func GenerateOR2Unsigned() (string, error) {
	rows := make([]stateRow, 0, numStates)
	for s := EMPTY; s < numStates; s++ {
		row := stateRow{
			Name:   s.String(),
			IsLoad: isLoad(s),
			Is1:    is1[s],
			Is0:    is0[s],
			Pop:    pop[s].String(),
		}
		if row.IsLoad {
			row.On0 = loadOn0[s].String()
			row.On1 = loadOn1[s].String()
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Rows []stateRow
	}{Rows: rows}); err != nil {
		return "", fmt.Errorf("stategen: rendering OR2Unsigned: %w", err)
	}
	return buf.String(), nil
}
