package subprogram

import (
	"fmt"

	"github.com/pkg/errors"

	"unshader/internal/unityfmt"
)

// Source is one platform's compressed program storage: a blob cut into LZ4
// segments by three parallel arrays.
type Source struct {
	Platform            int // index in the asset's platform list; -1 for legacy
	Blob                []byte
	Offsets             []uint32
	CompressedLengths   []uint32
	DecompressedLengths []uint32
}

// Segments returns the number of segments described by the source.
func (s Source) Segments() int {
	n := len(s.Offsets)
	if len(s.CompressedLengths) < n {
		n = len(s.CompressedLengths)
	}
	if len(s.DecompressedLengths) < n {
		n = len(s.DecompressedLengths)
	}
	return n
}

func (s Source) segment(i int) Segment {
	return Segment{
		Platform:           s.Platform,
		Index:              i,
		Offset:             s.Offsets[i],
		CompressedLength:   s.CompressedLengths[i],
		DecompressedLength: s.DecompressedLengths[i],
	}
}

// LegacySource wraps the single pre-5.5 sub-program blob as a one-segment
// source.
func LegacySource(blob []byte, decompressedSize uint32) Source {
	return Source{
		Platform:            -1,
		Blob:                blob,
		Offsets:             []uint32{0},
		CompressedLengths:   []uint32{uint32(len(blob))},
		DecompressedLengths: []uint32{decompressedSize},
	}
}

// Table is the program table of one platform. Entries are read eagerly from
// segment 0; record bodies are parsed on first use, one segment at a time.
type Table struct {
	Platform int
	Entries  []Entry

	src      Source
	segments [][]byte
	segErrs  []error
	records  []*Record
	recErrs  []error
}

// BuildTable decompresses segment 0 of src and reads the entry table at its
// start. Errors are a *CorruptBlobError or *TruncatedStreamError, possibly
// wrapped.
func BuildTable(src Source, v unityfmt.Version, opts unityfmt.Options) (*Table, error) {
	n := src.Segments()
	if n == 0 {
		return nil, errors.Errorf("subprogram: platform %d has no segments", src.Platform)
	}
	t := &Table{
		Platform: src.Platform,
		src:      src,
		segments: make([][]byte, n),
		segErrs:  make([]error, n),
	}

	head, err := t.segment(0)
	if err != nil {
		return nil, err
	}
	s := unityfmt.NewStream(head)
	t.Entries, err = ReadEntryTable(s, HasSegmentField(v), opts.EffectiveMaxSteps())
	if err != nil {
		return nil, errors.Wrapf(err, "platform %d", src.Platform)
	}
	t.records = make([]*Record, len(t.Entries))
	t.recErrs = make([]error, len(t.Entries))
	return t, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.Entries) }

func (t *Table) segment(i int) ([]byte, error) {
	if i < 0 || i >= len(t.segments) {
		return nil, &CorruptBlobError{
			Platform: t.Platform,
			Segment:  i,
			Err:      fmt.Errorf("segment %d out of range [0, %d)", i, len(t.segments)),
		}
	}
	if t.segments[i] == nil && t.segErrs[i] == nil {
		t.segments[i], t.segErrs[i] = Slice(t.src.Blob, t.src.segment(i))
	}
	return t.segments[i], t.segErrs[i]
}

// Record returns the parsed record for a blob index, decompressing its
// segment if needed. Results, including failures, are memoized.
func (t *Table) Record(blobIndex int) (*Record, error) {
	if blobIndex < 0 || blobIndex >= len(t.Entries) {
		return nil, errors.Errorf("subprogram: blob index %d out of range [0, %d)", blobIndex, len(t.Entries))
	}
	if r := t.records[blobIndex]; r != nil {
		return r, nil
	}
	if err := t.recErrs[blobIndex]; err != nil {
		return nil, err
	}
	r, err := t.parse(blobIndex)
	t.records[blobIndex], t.recErrs[blobIndex] = r, err
	return r, err
}

func (t *Table) parse(i int) (*Record, error) {
	e := t.Entries[i]
	seg, err := t.segment(int(e.Segment))
	if err != nil {
		return nil, err
	}
	start, end := int64(e.Offset), int64(e.Offset)+int64(e.Length)
	if e.Offset < 0 || e.Length < 0 || end > int64(len(seg)) {
		have := int64(len(seg)) - start
		if have < 0 {
			have = 0
		}
		return nil, &TruncatedStreamError{
			What:   fmt.Sprintf("record %d", i),
			Offset: int(e.Offset),
			Need:   int(e.Length),
			Have:   int(have),
		}
	}
	r, err := ParseRecord(seg[start:end])
	if err != nil {
		return nil, errors.Wrapf(err, "record %d", i)
	}
	return r, nil
}

// Load parses every record. It returns the number parsed and the first
// error; per-record errors remain available through Record.
func (t *Table) Load() (int, error) {
	var first error
	ok := 0
	for i := range t.Entries {
		if _, err := t.Record(i); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		ok++
	}
	return ok, first
}
