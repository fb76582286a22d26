// Package unityfmt provides shared stream primitives, version handling and
// diagnostics for compiled Unity shader parsing.
package unityfmt

import (
	"fmt"
	"time"
)

// DiagKind classifies a diagnostic message.
type DiagKind string

const (
	DiagTruncated    DiagKind = "truncated"
	DiagCorrupt      DiagKind = "corrupt"
	DiagUnsupported  DiagKind = "unsupported"
	DiagUnrecognized DiagKind = "unrecognized"
	DiagDisassembly  DiagKind = "disassembly"
	DiagMissing      DiagKind = "missing"
)

// Diag records a non-fatal issue encountered during conversion.
// Where names the location: "platform 2 segment 1", "SubShader 0/Pass 1/vp".
type Diag struct {
	Where string   `json:"where"`
	Kind  DiagKind `json:"kind"`
	Msg   string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Where, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(where string, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{Where: where, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(where string, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Where: where, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Mode controls error handling behavior.
type Mode int

const (
	ModeBestEffort Mode = iota // continue with inline annotations, accumulate diags
	ModeStrict                 // first structural error returns error
)

// Options controls conversion behavior across packages.
type Options struct {
	Mode           Mode
	MaxSteps       int           // cap on entries per program table; 0 = use default
	ServiceTimeout time.Duration // per-call timeout for external disassemblers; 0 = default
}

// DefaultMaxSteps is the default cap on entries per program table.
const DefaultMaxSteps = 1_000_000

// DefaultServiceTimeout bounds a single external disassembler call.
const DefaultServiceTimeout = 30 * time.Second

func (o Options) EffectiveMaxSteps() int {
	if o.MaxSteps > 0 {
		return o.MaxSteps
	}
	return DefaultMaxSteps
}

func (o Options) EffectiveServiceTimeout() time.Duration {
	if o.ServiceTimeout > 0 {
		return o.ServiceTimeout
	}
	return DefaultServiceTimeout
}
