package subprogram

import "fmt"

// TruncatedStreamError reports an entry table or record shorter than its
// declared size. It is fatal for the affected segment only.
type TruncatedStreamError struct {
	What   string // "entry table", "record 12", ...
	Offset int
	Need   int
	Have   int
	Err    error
}

func (e *TruncatedStreamError) Error() string {
	msg := fmt.Sprintf("subprogram: truncated %s at offset %d: need %d bytes, have %d", e.What, e.Offset, e.Need, e.Have)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TruncatedStreamError) Unwrap() error { return e.Err }

// CorruptBlobError reports a compressed segment that failed to decompress to
// exactly its declared size. Sibling platforms are unaffected.
type CorruptBlobError struct {
	Platform int // index in the asset's platform list; -1 for legacy blobs
	Segment  int
	Want     int
	Got      int
	Err      error
}

func (e *CorruptBlobError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subprogram: corrupt blob (platform %d, segment %d): %v", e.Platform, e.Segment, e.Err)
	}
	return fmt.Sprintf("subprogram: corrupt blob (platform %d, segment %d): decompressed %d bytes, want %d",
		e.Platform, e.Segment, e.Got, e.Want)
}

func (e *CorruptBlobError) Unwrap() error { return e.Err }
