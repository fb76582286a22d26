package subprogram

import (
	"encoding/binary"

	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// EncodeRecord serializes r in the layout of its format band.
func EncodeRecord(r *Record) []byte {
	var out []byte
	put := func(v uint32) { out = binary.LittleEndian.AppendUint32(out, v) }
	align := func() {
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	strs := func(list []string) {
		put(uint32(len(list)))
		for _, s := range list {
			put(uint32(len(s)))
			out = append(out, s...)
			align()
		}
	}

	layout := BandFor(r.Version).Layout()
	put(uint32(r.Version))
	put(uint32(r.ProgramType))
	reserved := reservedBytes
	if layout.ExtraReserved {
		reserved += extraReservedBytes
	}
	out = append(out, make([]byte, reserved)...)
	strs(r.Keywords)
	if layout.LocalKeywords {
		strs(r.LocalKeywords)
	}
	put(uint32(len(r.Code)))
	out = append(out, r.Code...)
	align()
	return out
}

// CompressBlock LZ4-compresses raw as a single block. Input that does not
// compress is stored as one literal run.
func CompressBlock(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil {
		return nil, errors.Wrap(err, "lz4 compress")
	}
	if n > 0 {
		return dst[:n], nil
	}
	return literalBlock(raw), nil
}

func literalBlock(raw []byte) []byte {
	n := len(raw)
	if n < 15 {
		return append([]byte{byte(n << 4)}, raw...)
	}
	out := []byte{0xf0}
	for rest := n - 15; ; rest -= 255 {
		if rest < 255 {
			out = append(out, byte(rest))
			break
		}
		out = append(out, 255)
	}
	return append(out, raw...)
}

// Builder assembles a compressed program table: the entry table at the
// start of segment 0 followed by record bodies placed in their segments.
type Builder struct {
	HasSegment bool // write the 2019.3+ segment field

	placed []placed
	nseg   int
}

type placed struct {
	segment int
	body    []byte
}

// Add appends a record to the given segment and returns its blob index.
// Without the segment field every record lands in segment 0.
func (b *Builder) Add(segment int, r *Record) int {
	return b.AddRaw(segment, EncodeRecord(r))
}

// AddRaw appends pre-encoded record bytes.
func (b *Builder) AddRaw(segment int, body []byte) int {
	if !b.HasSegment {
		segment = 0
	}
	b.placed = append(b.placed, placed{segment: segment, body: body})
	if segment+1 > b.nseg {
		b.nseg = segment + 1
	}
	return len(b.placed) - 1
}

// Raw returns the decompressed segments.
func (b *Builder) Raw() [][]byte {
	nseg := b.nseg
	if nseg == 0 {
		nseg = 1
	}
	width := 8
	if b.HasSegment {
		width = 12
	}
	segs := make([][]byte, nseg)
	segs[0] = make([]byte, 4+width*len(b.placed))
	binary.LittleEndian.PutUint32(segs[0], uint32(len(b.placed)))

	for i, p := range b.placed {
		off := len(segs[p.segment])
		segs[p.segment] = append(segs[p.segment], p.body...)
		e := segs[0][4+i*width:]
		binary.LittleEndian.PutUint32(e, uint32(off))
		binary.LittleEndian.PutUint32(e[4:], uint32(len(p.body)))
		if b.HasSegment {
			binary.LittleEndian.PutUint32(e[8:], uint32(p.segment))
		}
	}
	return segs
}

// Source compresses every segment into one blob.
func (b *Builder) Source(platform int) (Source, error) {
	src := Source{Platform: platform}
	for _, raw := range b.Raw() {
		c, err := CompressBlock(raw)
		if err != nil {
			return Source{}, err
		}
		src.Offsets = append(src.Offsets, uint32(len(src.Blob)))
		src.CompressedLengths = append(src.CompressedLengths, uint32(len(c)))
		src.DecompressedLengths = append(src.DecompressedLengths, uint32(len(raw)))
		src.Blob = append(src.Blob, c...)
	}
	return src, nil
}
