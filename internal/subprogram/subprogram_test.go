package subprogram

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"unshader/internal/platform"
	"unshader/internal/unityfmt"
)

func le32(vals ...uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		format int32
		want   string
	}{
		{100, "5.3"},
		{201509030, "5.3"},
		{201510240, "5.4"},
		{201608169, "5.4"},
		{201608170, "5.5"},
		{201806140, "2019.1"},
		{201912310, "2019.1"},
		{202012090, "2021.2"},
		{209912310, "2021.2"},
	}
	for _, tt := range tests {
		if got := BandFor(tt.format).Label; got != tt.want {
			t.Errorf("BandFor(%d) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestBandLayout(t *testing.T) {
	tests := []struct {
		format int32
		want   Layout
	}{
		{201509030, Layout{}},
		{201608170, Layout{ExtraReserved: true}},
		{201802150, Layout{ExtraReserved: true}},
		{201806140, Layout{ExtraReserved: true, LocalKeywords: true}},
		{202012090, Layout{ExtraReserved: true}},
	}
	for _, tt := range tests {
		if got := BandFor(tt.format).Layout(); got != tt.want {
			t.Errorf("Layout(%d) = %+v, want %+v", tt.format, got, tt.want)
		}
	}
}

func TestReadEntryTable(t *testing.T) {
	s := unityfmt.NewStream(le32(2, 16, 32, 0, 48, 8, 1))
	got, err := ReadEntryTable(s, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{16, 32, 0}, {48, 8, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining())
	}
}

func TestReadEntryTableNoSegment(t *testing.T) {
	s := unityfmt.NewStream(le32(2, 16, 32, 48, 8))
	got, err := ReadEntryTable(s, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got[1] != (Entry{48, 8, 0}) {
		t.Errorf("entry 1 = %+v", got[1])
	}
}

func TestReadEntryTableTruncated(t *testing.T) {
	// Declares 3 three-field entries, supplies 1.
	s := unityfmt.NewStream(le32(3, 0, 4, 0))
	_, err := ReadEntryTable(s, true, 0)
	var te *TruncatedStreamError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncatedStreamError, got %v", err)
	}
	if te.Need != 36 || te.Have != 12 {
		t.Errorf("need/have = %d/%d, want 36/12", te.Need, te.Have)
	}
}

func TestReadEntryTableLimits(t *testing.T) {
	if _, err := ReadEntryTable(unityfmt.NewStream(le32(0xffffffff)), false, 0); err == nil {
		t.Error("expected error for negative count")
	}
	if _, err := ReadEntryTable(unityfmt.NewStream(le32(5)), false, 4); err == nil {
		t.Error("expected error for count over cap")
	}
	var te *TruncatedStreamError
	if _, err := ReadEntryTable(unityfmt.NewStream(nil), false, 0); !errors.As(err, &te) {
		t.Errorf("empty stream: expected *TruncatedStreamError, got %v", err)
	}
}

func TestParseRecordBands(t *testing.T) {
	tests := []struct {
		name    string
		version int32
		local   []string
		// wantLocal reports whether local keywords survive the round trip.
		wantLocal bool
	}{
		{"5.3", 201509030, nil, false},
		{"5.5", 201608170, nil, false},
		{"2019.1", 201806140, []string{"LOCAL_A"}, true},
		{"2021.2", 202012090, []string{"LOCAL_A"}, false},
		{"future", 203001010, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Record{
				Version:       tt.version,
				ProgramType:   platform.DX11VertexSM40,
				Keywords:      []string{"FOG_LINEAR", "SHADOWS_SCREEN"},
				LocalKeywords: tt.local,
				Code:          []byte("abcde"),
			}
			r, err := ParseRecord(EncodeRecord(in))
			if err != nil {
				t.Fatal(err)
			}
			if r.Version != tt.version || r.ProgramType != in.ProgramType {
				t.Errorf("header = %d/%v", r.Version, r.ProgramType)
			}
			if strings.Join(r.Keywords, " ") != "FOG_LINEAR SHADOWS_SCREEN" {
				t.Errorf("keywords = %q", r.Keywords)
			}
			if got := len(r.LocalKeywords) > 0; got != tt.wantLocal {
				t.Errorf("local keywords present = %v, want %v", got, tt.wantLocal)
			}
			if !bytes.Equal(r.Code, in.Code) {
				t.Errorf("code = %q", r.Code)
			}
		})
	}
}

func TestParseRecordTruncated(t *testing.T) {
	full := EncodeRecord(&Record{Version: 201802150, Keywords: []string{"A"}, Code: []byte("xyz")})
	for _, n := range []int{0, 6, 20, len(full) - 8} {
		_, err := ParseRecord(full[:n])
		var te *TruncatedStreamError
		if !errors.As(err, &te) {
			t.Errorf("len %d: expected *TruncatedStreamError, got %v", n, err)
		}
	}
}

func TestSlice(t *testing.T) {
	raw := bytes.Repeat([]byte("shader "), 64)
	c, err := CompressBlock(raw)
	if err != nil {
		t.Fatal(err)
	}
	blob := append([]byte{0xee, 0xee}, c...)
	got, err := Slice(blob, Segment{Offset: 2, CompressedLength: uint32(len(c)), DecompressedLength: uint32(len(raw))})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, raw) {
		t.Error("decompressed bytes differ")
	}
}

func TestSliceLiteralBlock(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 300} {
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = byte(i*7 + 3)
		}
		blk := literalBlock(raw)
		got, err := Slice(blk, Segment{CompressedLength: uint32(len(blk)), DecompressedLength: uint32(n)})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !bytes.Equal(got, raw) {
			t.Errorf("n=%d: bytes differ", n)
		}
	}
}

func TestSliceSizeMismatch(t *testing.T) {
	raw := bytes.Repeat([]byte{1, 2, 3, 4}, 32)
	c, _ := CompressBlock(raw)
	_, err := Slice(c, Segment{Platform: 2, Index: 1, CompressedLength: uint32(len(c)), DecompressedLength: uint32(len(raw) + 10)})
	var ce *CorruptBlobError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptBlobError, got %v", err)
	}
	if ce.Platform != 2 || ce.Segment != 1 {
		t.Errorf("platform/segment = %d/%d", ce.Platform, ce.Segment)
	}
}

func TestSliceOutOfRange(t *testing.T) {
	_, err := Slice([]byte{1, 2}, Segment{Offset: 1, CompressedLength: 8, DecompressedLength: 4})
	var ce *CorruptBlobError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptBlobError, got %v", err)
	}
}

func TestTableSegments(t *testing.T) {
	b := &Builder{HasSegment: true}
	i0 := b.Add(0, &Record{Version: 201806140, ProgramType: platform.SPIRV, Code: []byte("zero")})
	i1 := b.Add(1, &Record{Version: 201806140, ProgramType: platform.SPIRV, Code: []byte("one")})
	src, err := b.Source(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(src.Offsets) != 2 {
		t.Fatalf("segments = %d, want 2", len(src.Offsets))
	}

	tab, err := BuildTable(src, unityfmt.Version{2019, 4, 0}, unityfmt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tab.Len())
	}
	if tab.segments[1] != nil {
		t.Error("segment 1 decompressed before use")
	}
	r, err := tab.Record(i1)
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Code) != "one" {
		t.Errorf("record %d code = %q", i1, r.Code)
	}
	r, err = tab.Record(i0)
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Code) != "zero" {
		t.Errorf("record %d code = %q", i0, r.Code)
	}
	if _, err := tab.Record(5); err == nil {
		t.Error("expected error for out-of-range blob index")
	}
}

func TestTablePreSegmentFormat(t *testing.T) {
	b := &Builder{}
	b.Add(3, &Record{Version: 201802150, Code: []byte("a")})
	b.Add(0, &Record{Version: 201802150, Code: []byte("bb")})
	src, err := b.Source(1)
	if err != nil {
		t.Fatal(err)
	}
	tab, err := BuildTable(src, unityfmt.Version{2018, 4, 2}, unityfmt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	n, err := tab.Load()
	if err != nil || n != 2 {
		t.Fatalf("Load = %d, %v", n, err)
	}
	for _, e := range tab.Entries {
		if e.Segment != 0 {
			t.Errorf("entry segment = %d, want 0", e.Segment)
		}
	}
}

func TestTableCorruptSegmentIsolated(t *testing.T) {
	b := &Builder{HasSegment: true}
	b.Add(0, &Record{Version: 201806140, Code: []byte("ok")})
	b.Add(1, &Record{Version: 201806140, Code: []byte("lost")})
	src, err := b.Source(0)
	if err != nil {
		t.Fatal(err)
	}
	src.DecompressedLengths[1] += 3

	tab, err := BuildTable(src, unityfmt.Version{2020, 1, 0}, unityfmt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tab.Record(0); err != nil {
		t.Errorf("record 0: %v", err)
	}
	_, err = tab.Record(1)
	var ce *CorruptBlobError
	if !errors.As(err, &ce) {
		t.Fatalf("record 1: expected *CorruptBlobError, got %v", err)
	}
	// Memoized.
	if _, err2 := tab.Record(1); err2 != err {
		t.Errorf("second call returned %v, want memoized %v", err2, err)
	}
}

func TestTableRecordOutOfSegment(t *testing.T) {
	b := &Builder{}
	b.AddRaw(0, []byte{1, 2, 3, 4})
	raw := b.Raw()[0]
	// Point entry 0 past the end of the segment.
	binary.LittleEndian.PutUint32(raw[8:], 100)
	tab, err := BuildTable(LegacySource(literalBlock(raw), uint32(len(raw))), unityfmt.Version{5, 3, 4}, unityfmt.Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tab.Record(0)
	var te *TruncatedStreamError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TruncatedStreamError, got %v", err)
	}
}

func TestBuildTableNoSegments(t *testing.T) {
	if _, err := BuildTable(Source{}, unityfmt.Version{2020, 1, 0}, unityfmt.Options{}); err == nil {
		t.Error("expected error for empty source")
	}
}
