package unityfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Unity editor version, e.g. "2019.4.31f1" → {2019, 4, 31}.
// The release-type suffix is dropped.
type Version [3]int

// ParseVersion parses a Unity version string. Missing trailing components are zero.
func ParseVersion(s string) (Version, error) {
	var v Version
	s = strings.TrimSpace(s)
	if s == "" {
		return v, fmt.Errorf("version: empty string")
	}
	parts := strings.SplitN(s, ".", 3)
	for i, p := range parts {
		// Strip release suffix: "31f1" → "31".
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		if end == 0 {
			return v, fmt.Errorf("version: bad component %q in %q", p, s)
		}
		n, err := strconv.Atoi(p[:end])
		if err != nil {
			return v, fmt.Errorf("version: %q: %w", s, err)
		}
		v[i] = n
	}
	return v, nil
}

// AtLeast reports whether v >= major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v[0] != major {
		return v[0] > major
	}
	return v[1] >= minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
