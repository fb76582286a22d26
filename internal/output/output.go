// Package output writes conversion results to files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unshader/internal/convert"
)

// safeName maps a shader name to a relative path. Slashes in the name
// become directories; other characters unsafe in file names become '_'.
func safeName(name string) string {
	var parts []string
	for _, p := range strings.Split(name, "/") {
		p = strings.Map(func(r rune) rune {
			switch r {
			case '\\', ':', '*', '?', '"', '<', '>', '|':
				return '_'
			}
			if r < 0x20 {
				return '_'
			}
			return r
		}, strings.TrimSpace(p))
		if p == "" || p == "." || p == ".." {
			p = "_"
		}
		parts = append(parts, p)
	}
	return filepath.Join(parts...)
}

// ListingPath returns where WriteListing puts the listing for name.
func ListingPath(dir, name string) string {
	return filepath.Join(dir, safeName(name)+".shader.txt")
}

// WriteListing writes a converted listing to <dir>/<name>.shader.txt.
// name may contain slashes for directory grouping ("Legacy Shaders/Diffuse").
func WriteListing(dir, name, text string) (string, error) {
	path := ListingPath(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("output: mkdir listing: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return path, nil
}

// SummaryEntry is one line of summary.json.
type SummaryEntry struct {
	Path    string `json:"path"`
	Listing string `json:"listing,omitempty"`
	Error   string `json:"error,omitempty"`
	*convert.Result
}

// WriteSummaryJSON writes per-file outcomes to summary.json. listings maps
// an input path to the listing written for it.
func WriteSummaryJSON(dir string, outcomes []convert.Outcome, listings map[string]string) error {
	entries := make([]SummaryEntry, 0, len(outcomes))
	for _, o := range outcomes {
		e := SummaryEntry{Path: o.Path, Listing: listings[o.Path], Result: o.Result}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		entries = append(entries, e)
	}
	return writeJSON(filepath.Join(dir, "summary.json"), entries)
}

// ProgramEntry describes one dumped sub-program.
type ProgramEntry struct {
	Platform      string   `json:"platform"`
	PlatformIndex int      `json:"platform_index"`
	BlobIndex     int      `json:"blob_index"`
	Segment       int32    `json:"segment"`
	Version       int32    `json:"version,omitempty"`
	Band          string   `json:"band,omitempty"`
	ProgramType   string   `json:"program_type,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	LocalKeywords []string `json:"local_keywords,omitempty"`
	CodeSize      int      `json:"code_size"`
	File          string   `json:"file,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// WriteProgramsJSON writes the dump index to programs.json.
func WriteProgramsJSON(dir string, entries []ProgramEntry) error {
	return writeJSON(filepath.Join(dir, "programs.json"), entries)
}

// WriteSubProgramBin writes raw program bytes to bin/<platform>/<index>.bin
// and returns the path relative to dir.
func WriteSubProgramBin(dir, platform string, blobIndex int, data []byte) (string, error) {
	rel := filepath.Join("bin", safeName(platform), fmt.Sprintf("%05d.bin", blobIndex))
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("output: mkdir bin: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return rel, nil
}

// WriteDOT writes a DOT document to <dir>/<name>.dot.
func WriteDOT(dir, name, dot string) (string, error) {
	path := filepath.Join(dir, name+".dot")
	if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
		return "", fmt.Errorf("output: write %s: %w", path, err)
	}
	return path, nil
}

// WriteJSON writes v, indented, to <dir>/<name>.
func WriteJSON(dir, name string, v any) error {
	return writeJSON(filepath.Join(dir, name), v)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
