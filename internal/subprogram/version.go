// Format version bands for compiled sub-program records.
package subprogram

import "unshader/internal/unityfmt"

// Band is one known sub-program record layout. Format is the serialized
// build ID written at the start of every record.
type Band struct {
	Format int32
	Label  string // first Unity release writing this format
}

// Known record formats, ascending. Build IDs are monotonic but not semantic.
var bands = []Band{
	{201509030, "5.3"},
	{201510240, "5.4"},
	{201608170, "5.5"},
	{201609010, "5.6"},
	{201708220, "2017.3"},
	{201802150, "2018.2"},
	{201806140, "2019.1"},
	{202012090, "2021.2"},
}

const (
	formatExtraReserved = 201608170 // 5.5: four more reserved header bytes
	formatLocalKeywords = 201806140 // 2019.1: local keyword list present
	formatMergedKeyword = 202012090 // 2021.2: local keywords folded back into keywords
)

// BandFor returns the nearest known band at or below format. Formats older
// than the first band map to the first band; newer ones to the last.
func BandFor(format int32) Band {
	b := bands[0]
	for _, cand := range bands {
		if cand.Format > format {
			break
		}
		b = cand
	}
	return b
}

// Layout describes the optional fields present in a record of this band.
type Layout struct {
	ExtraReserved bool
	LocalKeywords bool
}

// Layout derives the field layout of the band.
func (b Band) Layout() Layout {
	return Layout{
		ExtraReserved: b.Format >= formatExtraReserved,
		LocalKeywords: b.Format >= formatLocalKeywords && b.Format < formatMergedKeyword,
	}
}

// HasSegmentField reports whether entry table records carry a segment
// index (2019.3 and up).
func HasSegmentField(v unityfmt.Version) bool {
	return v.AtLeast(2019, 3)
}
