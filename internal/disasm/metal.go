package disasm

import (
	"github.com/pkg/errors"

	"unshader/internal/unityfmt"
)

// metalMagic marks a Metal program with a header block before the entry name.
const metalMagic = 0xf00dcafe

// MetalProgram is a Metal sub-program split into entry point and source.
type MetalProgram struct {
	Entry  string
	Source []byte
}

// ParseMetal reads the leading tag, skips the header block when the tag is
// the magic value, then reads the NUL-terminated entry name. The rest is
// source text.
func ParseMetal(code []byte) (*MetalProgram, error) {
	s := unityfmt.NewStream(code)
	tag, err := s.ReadUint32()
	if err != nil {
		return nil, errors.Wrap(err, "metal: tag")
	}
	if tag == metalMagic {
		off, err := s.ReadInt32()
		if err != nil {
			return nil, errors.Wrap(err, "metal: header offset")
		}
		if off < 0 || int(off) > s.Len() {
			return nil, errors.Errorf("metal: header offset %d outside program of %d bytes", off, s.Len())
		}
		s.SetPosition(int(off))
	}
	entry, err := s.ReadCString()
	if err != nil {
		return nil, errors.Wrap(err, "metal: entry name")
	}
	return &MetalProgram{Entry: entry, Source: s.ReadRest()}, nil
}
