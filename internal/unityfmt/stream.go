// Unity serialized data stream reader.
// Implements the little-endian, 4-byte aligned conventions used by compiled
// shader blobs.
package unityfmt

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrStreamEOF      = errors.New("stream: unexpected end of data")
	ErrNegativeLength = errors.New("stream: negative length")
)

// Stream reads little-endian Unity serialized data.
type Stream struct {
	data []byte
	pos  int
	end  int
}

// NewStream creates a stream over the given data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data, pos: 0, end: len(data)}
}

// Position returns the current read position.
func (s *Stream) Position() int { return s.pos }

// SetPosition sets the read position, clamped to the end of data.
func (s *Stream) SetPosition(pos int) {
	if pos > s.end {
		pos = s.end
	}
	if pos < 0 {
		pos = 0
	}
	s.pos = pos
}

// Len returns the total length of the underlying data.
func (s *Stream) Len() int { return s.end }

// Remaining returns bytes left to read.
func (s *Stream) Remaining() int { return s.end - s.pos }

// ReadBytes reads n bytes into a new slice.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if s.pos+n > s.end {
		return nil, ErrStreamEOF
	}
	out := make([]byte, n)
	copy(out, s.data[s.pos:s.pos+n])
	s.pos += n
	return out, nil
}

// ReadRest reads every remaining byte.
func (s *Stream) ReadRest() []byte {
	out, _ := s.ReadBytes(s.Remaining())
	return out
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32() (uint32, error) {
	if s.pos+4 > s.end {
		return 0, ErrStreamEOF
	}
	v := binary.LittleEndian.Uint32(s.data[s.pos:])
	s.pos += 4
	return v, nil
}

// ReadInt32 reads a little-endian int32.
func (s *Stream) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadLength reads an int32 length prefix and rejects negative values.
func (s *Stream) ReadLength() (int, error) {
	n, err := s.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, ErrNegativeLength
	}
	return int(n), nil
}

// ReadByteArray reads an int32 length followed by that many raw bytes.
// Position is not realigned; callers call Align(4) where the format requires it.
func (s *Stream) ReadByteArray() ([]byte, error) {
	n, err := s.ReadLength()
	if err != nil {
		return nil, err
	}
	return s.ReadBytes(n)
}

// ReadAlignedString reads a length-prefixed UTF-8 string and skips the
// zero padding up to the next 4-byte boundary.
func (s *Stream) ReadAlignedString() (string, error) {
	b, err := s.ReadByteArray()
	if err != nil {
		return "", err
	}
	s.Align(4)
	return string(b), nil
}

// ReadAlignedStrings reads an int32 count followed by that many aligned strings.
func (s *Stream) ReadAlignedStrings() ([]string, error) {
	n, err := s.ReadLength()
	if err != nil {
		return nil, err
	}
	// Each string needs at least its 4-byte length prefix.
	if n > s.Remaining()/4 {
		return nil, ErrStreamEOF
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = s.ReadAlignedString(); err != nil {
			return nil, fmt.Errorf("string %d/%d: %w", i, n, err)
		}
	}
	return out, nil
}

// ReadCString reads a null-terminated string.
func (s *Stream) ReadCString() (string, error) {
	start := s.pos
	for s.pos < s.end {
		if s.data[s.pos] == 0 {
			str := string(s.data[start:s.pos])
			s.pos++ // skip null terminator
			return str, nil
		}
		s.pos++
	}
	s.pos = start
	return "", fmt.Errorf("stream: unterminated string at offset %d", start)
}

// Align advances position to the next alignment boundary.
func (s *Stream) Align(alignment int) {
	if alignment <= 0 {
		return
	}
	rem := s.pos % alignment
	if rem != 0 {
		s.pos += alignment - rem
	}
	if s.pos > s.end {
		s.pos = s.end
	}
}

// Skip advances the position by n bytes.
func (s *Stream) Skip(n int) error {
	if n < 0 {
		return ErrNegativeLength
	}
	if s.pos+n > s.end {
		return ErrStreamEOF
	}
	s.pos += n
	return nil
}
