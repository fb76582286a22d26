// Package disasm renders compiled sub-program bytes as text: source
// pass-through for GL and console dialects, Metal header stripping, and
// calls to bytecode disassembly services for D3D and SPIR-V.
package disasm

import (
	"bytes"
	"context"
	"fmt"
	"sync"
)

// Service turns program bytes into text. Implementations must be safe for
// concurrent use. A non-nil Buffer is owned by the caller, who must
// Release it, even when err is non-nil.
type Service interface {
	Disassemble(ctx context.Context, code []byte) (*Buffer, error)
}

// ServiceFunc adapts a function to Service.
type ServiceFunc func(ctx context.Context, code []byte) (*Buffer, error)

func (f ServiceFunc) Disassemble(ctx context.Context, code []byte) (*Buffer, error) {
	return f(ctx, code)
}

// Buffer is text handed across the service boundary. Release returns its
// storage; only the first call has any effect.
type Buffer struct {
	data    []byte
	once    sync.Once
	release func()
}

// NewBuffer wraps data. release, if non-nil, runs exactly once on Release.
func NewBuffer(data []byte, release func()) *Buffer {
	return &Buffer{data: data, release: release}
}

var pool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// newPooled returns an empty buffer backed by pooled storage and the writer
// that fills it.
func newPooled() (*Buffer, *bytes.Buffer) {
	w := pool.Get().(*bytes.Buffer)
	w.Reset()
	b := &Buffer{}
	b.release = func() {
		b.data = nil
		pool.Put(w)
	}
	return b, w
}

// seal points the buffer at the bytes written to w.
func (b *Buffer) seal(w *bytes.Buffer) *Buffer {
	b.data = w.Bytes()
	return b
}

// Bytes returns the contents. Invalid after Release.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

func (b *Buffer) Len() int { return len(b.Bytes()) }

// Release hands the storage back to its owner.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		if b.release != nil {
			b.release()
		}
		b.data = nil
	})
}

// DisassemblyServiceError reports a failed or empty service call. It is
// rendered inline and never aborts a conversion.
type DisassemblyServiceError struct {
	Service string
	Err     error // nil when the service returned no text
}

func (e *DisassemblyServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: empty disassembly", e.Service)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *DisassemblyServiceError) Unwrap() error { return e.Err }

// Unavailable is the service used when no back-end is configured.
type Unavailable struct {
	Name string
}

func (u Unavailable) Disassemble(ctx context.Context, code []byte) (*Buffer, error) {
	return nil, &DisassemblyServiceError{Service: u.Name, Err: fmt.Errorf("no %s disassembler configured", u.Name)}
}
