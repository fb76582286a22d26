package subprogram

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Segment locates one LZ4 block inside a compressed blob.
type Segment struct {
	Platform           int
	Index              int
	Offset             uint32
	CompressedLength   uint32
	DecompressedLength uint32
}

// Slice decompresses seg from blob into a buffer of exactly
// seg.DecompressedLength bytes.
func Slice(blob []byte, seg Segment) ([]byte, error) {
	fail := func(got int, err error) error {
		return &CorruptBlobError{
			Platform: seg.Platform,
			Segment:  seg.Index,
			Want:     int(seg.DecompressedLength),
			Got:      got,
			Err:      err,
		}
	}

	start := uint64(seg.Offset)
	end := start + uint64(seg.CompressedLength)
	if end > uint64(len(blob)) {
		return nil, fail(0, fmt.Errorf("range [%d, %d) outside blob of %d bytes", start, end, len(blob)))
	}

	out := make([]byte, seg.DecompressedLength)
	if seg.DecompressedLength == 0 {
		return out, nil
	}
	n, err := lz4.UncompressBlock(blob[start:end], out)
	if err != nil {
		return nil, fail(n, err)
	}
	if n != len(out) {
		return nil, fail(n, nil)
	}
	return out, nil
}
