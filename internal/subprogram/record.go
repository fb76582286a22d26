package subprogram

import (
	"github.com/pkg/errors"

	"unshader/internal/platform"
	"unshader/internal/unityfmt"
)

// Record is one parsed sub-program: format version, program dialect,
// keywords and raw program bytes. Immutable once parsed.
type Record struct {
	Version       int32                   `json:"version"`
	ProgramType   platform.GPUProgramType `json:"program_type"`
	Keywords      []string                `json:"keywords,omitempty"`
	LocalKeywords []string                `json:"local_keywords,omitempty"` // nil outside [2019.1, 2021.2)
	Code          []byte                  `json:"-"`
}

// Band returns the layout band the record was parsed with.
func (r *Record) Band() Band { return BandFor(r.Version) }

// Record header layout:
//
//	+0x00: version      int32  (format build ID)
//	+0x04: program type int32
//	+0x08: reserved     [12]byte
//	+0x14: reserved     [4]byte   (5.5 and up)
//	       keywords     int32 count + aligned strings
//	       local kw     int32 count + aligned strings (2019.1 ≤ v < 2021.2)
//	       code         int32 length + bytes, aligned to 4
const (
	reservedBytes      = 12
	extraReservedBytes = 4
)

// ParseRecord parses one sub-program record. Unknown format versions are
// read with the nearest lower known layout.
func ParseRecord(data []byte) (*Record, error) {
	s := unityfmt.NewStream(data)
	trunc := func(what string, need int, err error) error {
		return &TruncatedStreamError{What: what, Offset: s.Position(), Need: need, Have: s.Remaining(), Err: err}
	}

	var r Record
	var err error
	if r.Version, err = s.ReadInt32(); err != nil {
		return nil, trunc("record version", 4, err)
	}
	pt, err := s.ReadInt32()
	if err != nil {
		return nil, trunc("record program type", 4, err)
	}
	r.ProgramType = platform.GPUProgramType(pt)

	layout := BandFor(r.Version).Layout()
	skip := reservedBytes
	if layout.ExtraReserved {
		skip += extraReservedBytes
	}
	if err := s.Skip(skip); err != nil {
		return nil, trunc("record header", skip, err)
	}

	if r.Keywords, err = s.ReadAlignedStrings(); err != nil {
		return nil, errors.Wrap(trunc("keywords", 4, err), "parse record")
	}
	if layout.LocalKeywords {
		if r.LocalKeywords, err = s.ReadAlignedStrings(); err != nil {
			return nil, errors.Wrap(trunc("local keywords", 4, err), "parse record")
		}
	}

	if r.Code, err = s.ReadByteArray(); err != nil {
		return nil, errors.Wrap(trunc("program code", 4, err), "parse record")
	}
	s.Align(4)
	return &r, nil
}
