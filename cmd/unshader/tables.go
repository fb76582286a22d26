package main

import (
	"fmt"

	"unshader/internal/convert"
	"unshader/internal/shader"
	"unshader/internal/subprogram"
	"unshader/internal/unityfmt"
)

// platformTable is one program table of an asset, or the error building it.
type platformTable struct {
	Index int    // -1 for the legacy blob
	Name  string // platform keyword
	Table *subprogram.Table
	Err   error
}

// assetTables builds every program table the asset carries.
func assetTables(a *shader.Asset, opts unityfmt.Options) []platformTable {
	if a.IsLegacy() {
		src := subprogram.LegacySource(a.SubProgramBlob, a.DecompressedSize)
		t, err := subprogram.BuildTable(src, a.Version, opts)
		return []platformTable{{Index: -1, Name: "legacy", Table: t, Err: err}}
	}
	if a.CompressedBlob == nil {
		return nil
	}
	var out []platformTable
	for i, p := range a.Platforms {
		src, err := convert.PlatformSource(a, i)
		var t *subprogram.Table
		if err == nil {
			t, err = subprogram.BuildTable(src, a.Version, opts)
		}
		out = append(out, platformTable{Index: i, Name: p.String(), Table: t, Err: err})
	}
	return out
}

func loadAsset(path string) (*shader.Asset, error) {
	if path == "" {
		return nil, fmt.Errorf("--in is required")
	}
	return shader.Load(path)
}
