package shader

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Decode reads one JSON-encoded asset and checks its program arrays.
func Decode(r io.Reader) (*Asset, error) {
	var a Asset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&a); err != nil {
		return nil, errors.Wrap(err, "decode asset")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Load reads an asset from a JSON file.
func Load(path string) (*Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open asset")
	}
	defer f.Close()
	a, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return a, nil
}

// Validate checks that the per-platform arrays line up with Platforms.
// Segment counts may differ between platforms but not within one.
func (a *Asset) Validate() error {
	if a.CompressedBlob == nil {
		return nil
	}
	n := len(a.Platforms)
	if len(a.Offsets) != n || len(a.CompressedLengths) != n || len(a.DecompressedLengths) != n {
		return errors.Errorf("asset %q: %d platforms but %d/%d/%d offset/length arrays",
			a.Name, n, len(a.Offsets), len(a.CompressedLengths), len(a.DecompressedLengths))
	}
	for i := 0; i < n; i++ {
		segs := len(a.Offsets[i])
		if len(a.CompressedLengths[i]) != segs || len(a.DecompressedLengths[i]) != segs {
			return errors.Errorf("asset %q: platform %d has mismatched segment arrays", a.Name, i)
		}
	}
	return nil
}
