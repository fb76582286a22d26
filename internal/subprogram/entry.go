package subprogram

import (
	"github.com/pkg/errors"

	"unshader/internal/unityfmt"
)

// Entry locates one sub-program record inside a decompressed segment.
// Segment is 0 for formats that predate the field.
type Entry struct {
	Offset  int32 `json:"offset"`
	Length  int32 `json:"length"`
	Segment int32 `json:"segment"`
}

// ReadEntryTable reads an int32 count followed by that many fixed-width
// entries: (offset, length) before 2019.3, (offset, length, segment) after.
// A table shorter than its declared count is a *TruncatedStreamError.
func ReadEntryTable(s *unityfmt.Stream, hasSegment bool, maxEntries int) ([]Entry, error) {
	start := s.Position()
	count, err := s.ReadInt32()
	if err != nil {
		return nil, &TruncatedStreamError{What: "entry table header", Offset: start, Need: 4, Have: s.Remaining(), Err: err}
	}
	if count < 0 {
		return nil, errors.Errorf("subprogram: entry table at offset %d declares negative count %d", start, count)
	}
	if maxEntries > 0 && int(count) > maxEntries {
		return nil, errors.Errorf("subprogram: entry table declares %d entries, cap is %d", count, maxEntries)
	}

	width := 8
	if hasSegment {
		width = 12
	}
	need := int(count) * width
	if need > s.Remaining() {
		return nil, &TruncatedStreamError{What: "entry table", Offset: s.Position(), Need: need, Have: s.Remaining()}
	}

	entries := make([]Entry, count)
	for i := range entries {
		e := &entries[i]
		// Length was checked up front; reads below cannot fail.
		e.Offset, _ = s.ReadInt32()
		e.Length, _ = s.ReadInt32()
		if hasSegment {
			e.Segment, _ = s.ReadInt32()
		}
	}
	return entries, nil
}
