// Package convert runs the end-to-end conversion of a compiled shader asset
// into a ShaderLab-style listing: program tables are built per platform on
// demand, each program group is assigned a platform, and sub-programs are
// rendered through the disassembly dispatcher.
package convert

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"unshader/internal/disasm"
	"unshader/internal/emit"
	"unshader/internal/platform"
	"unshader/internal/shader"
	"unshader/internal/subprogram"
	"unshader/internal/unityfmt"
)

// Config controls a Converter. Zero values select the defaults: best-effort
// mode, the in-process SPIR-V service, no DXBC service and the built-in
// capability table.
type Config struct {
	Options      unityfmt.Options
	DXBC         disasm.Service
	SPIRV        disasm.Service
	Capabilities platform.Capabilities
}

// Converter converts assets. It holds no per-asset state and may be used
// from several goroutines at once.
type Converter struct {
	opts     unityfmt.Options
	caps     platform.Capabilities
	dispatch *disasm.Dispatcher
}

// New returns a Converter for cfg.
func New(cfg Config) *Converter {
	d := disasm.NewDispatcher()
	if cfg.DXBC != nil {
		d.DXBC = cfg.DXBC
	}
	if cfg.SPIRV != nil {
		d.SPIRV = cfg.SPIRV
	}
	d.Timeout = cfg.Options.EffectiveServiceTimeout()

	caps := cfg.Capabilities
	if caps == nil {
		caps = platform.DefaultCapabilities
	}
	return &Converter{opts: cfg.Options, caps: caps, dispatch: d}
}

// Selected records the platform chosen for one GPU program type.
type Selected struct {
	Type     platform.GPUProgramType `json:"type"`
	Platform platform.Compiler       `json:"platform"`
	Index    int                     `json:"index"`
}

// Result is one converted asset.
type Result struct {
	Name       string          `json:"name"`
	Text       string          `json:"-"`
	Diags      []unityfmt.Diag `json:"diags,omitempty"`
	Selections []Selected      `json:"selections,omitempty"`
	Rendered   int             `json:"rendered"` // sub-programs rendered, including inline failures
}

// PlatformSource returns the program storage of platform i of a. A
// platform without offset and length arrays is a *subprogram.CorruptBlobError.
func PlatformSource(a *shader.Asset, i int) (subprogram.Source, error) {
	if a.CompressedBlob == nil || i < 0 ||
		i >= len(a.Offsets) || i >= len(a.CompressedLengths) || i >= len(a.DecompressedLengths) {
		return subprogram.Source{}, &subprogram.CorruptBlobError{
			Platform: i,
			Err:      errors.Errorf("no program storage for platform %d", i),
		}
	}
	return subprogram.Source{
		Platform:            i,
		Blob:                a.CompressedBlob,
		Offsets:             a.Offsets[i],
		CompressedLengths:   a.CompressedLengths[i],
		DecompressedLengths: a.DecompressedLengths[i],
	}, nil
}

// Convert renders a. In best-effort mode every failure below the asset
// level becomes a diagnostic plus an inline comment and the error is nil.
// In strict mode the first table or record failure is returned.
func (c *Converter) Convert(ctx context.Context, a *shader.Asset) (*Result, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	r := &run{
		ctx:      ctx,
		c:        c,
		asset:    a,
		tables:   make(map[int]*tableState),
		cache:    make(map[programKey]programResult),
		reported: make(map[string]bool),
		selected: make(map[platform.GPUProgramType]bool),
	}

	var body string
	switch {
	case a.ParsedForm != nil && a.CompressedBlob != nil:
		e := &emit.Emitter{
			Programs: r,
			Unrecognized: func(where string, uv *shader.UnrecognizedValueError) {
				r.report(where, unityfmt.DiagUnrecognized, uv)
			},
		}
		body = e.Shader(a.ParsedForm)
	case a.IsLegacy():
		body = r.legacy()
	default:
		body = a.Script
	}

	if r.strictErr != nil {
		return nil, errors.Wrapf(r.strictErr, "convert %q", a.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{
		Name:       a.Name,
		Text:       emit.Header + body,
		Diags:      r.diags.Items(),
		Selections: r.selections,
		Rendered:   r.rendered,
	}
	Logger().Debug("converted", "shader", a.Name, "subprograms", res.Rendered, "diags", len(res.Diags))
	return res, nil
}

type programKey struct {
	platform  int
	blobIndex uint32
}

type programResult struct {
	text *emit.SubProgramText
	err  error
}

type tableState struct {
	table *subprogram.Table
	err   error
}

// run is the state of one conversion. It implements emit.Programs.
type run struct {
	ctx   context.Context
	c     *Converter
	asset *shader.Asset

	tables     map[int]*tableState
	cache      map[programKey]programResult
	diags      unityfmt.Diags
	reported   map[string]bool
	selected   map[platform.GPUProgramType]bool
	selections []Selected
	rendered   int
	strictErr  error
}

func (r *run) strict() bool { return r.c.opts.Mode == unityfmt.ModeStrict }

// report records a diagnostic once per (where, message) pair.
func (r *run) report(where string, kind unityfmt.DiagKind, err error) {
	key := where + "\x00" + err.Error()
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.diags.Add(where, kind, err.Error())
	Logger().Warn("degraded output", "shader", r.asset.Name, "where", where, "kind", string(kind), "err", err)
}

// fail reports a structural failure and remembers it for strict mode.
func (r *run) fail(where string, err error) {
	r.report(where, KindOf(err), err)
	if r.strict() && r.strictErr == nil {
		r.strictErr = errors.Wrap(err, where)
	}
}

// KindOf classifies an error from the table, selection or dispatch layers.
func KindOf(err error) unityfmt.DiagKind {
	var (
		trunc   *subprogram.TruncatedStreamError
		corrupt *subprogram.CorruptBlobError
		plat    *platform.UnsupportedPlatformError
		prog    *disasm.UnsupportedProgramError
		svc     *disasm.DisassemblyServiceError
	)
	switch {
	case errors.As(err, &trunc):
		return unityfmt.DiagTruncated
	case errors.As(err, &corrupt):
		return unityfmt.DiagCorrupt
	case errors.As(err, &plat), errors.As(err, &prog):
		return unityfmt.DiagUnsupported
	case errors.As(err, &svc):
		return unityfmt.DiagDisassembly
	}
	return unityfmt.DiagCorrupt
}

func (r *run) platformName(i int) string {
	if i < 0 {
		return "legacy blob"
	}
	return fmt.Sprintf("platform %d (%s)", i, r.asset.Platforms[i])
}

// Select implements emit.Programs.
func (r *run) Select(t platform.GPUProgramType) (platform.Selection, bool) {
	sel, ok, skipped := r.c.caps.Select(r.asset.Platforms, t)
	for _, err := range skipped {
		var pe *platform.UnsupportedPlatformError
		if errors.As(err, &pe) {
			r.report(fmt.Sprintf("platform %d (%s)", int32(pe.Platform), pe.Platform), unityfmt.DiagUnsupported, err)
		}
	}
	if ok && !r.selected[t] {
		r.selected[t] = true
		r.selections = append(r.selections, Selected{Type: t, Platform: sel.Platform, Index: sel.Index})
		Logger().Debug("selected platform", "shader", r.asset.Name, "type", t.String(), "platform", sel.Platform.String())
	}
	return sel, ok
}

func (r *run) table(i int) (*subprogram.Table, error) {
	if ts, ok := r.tables[i]; ok {
		return ts.table, ts.err
	}
	src, err := PlatformSource(r.asset, i)
	var t *subprogram.Table
	if err == nil {
		t, err = subprogram.BuildTable(src, r.asset.Version, r.c.opts)
	}
	r.tables[i] = &tableState{table: t, err: err}
	if err != nil {
		r.fail(r.platformName(i), err)
		return nil, err
	}
	Logger().Debug("program table", "shader", r.asset.Name, "platform", i, "entries", t.Len())
	return t, nil
}

// SubProgram implements emit.Programs.
func (r *run) SubProgram(sel platform.Selection, blobIndex uint32) (*emit.SubProgramText, error) {
	key := programKey{platform: sel.Index, blobIndex: blobIndex}
	if pr, ok := r.cache[key]; ok {
		if pr.text != nil || pr.err != nil {
			r.rendered++
		}
		return pr.text, pr.err
	}
	text, err := r.render(sel.Index, blobIndex)
	r.cache[key] = programResult{text: text, err: err}
	if text != nil || err != nil {
		r.rendered++
	}
	return text, err
}

func (r *run) render(platformIndex int, blobIndex uint32) (*emit.SubProgramText, error) {
	t, err := r.table(platformIndex)
	if err != nil {
		return nil, err
	}
	if int64(blobIndex) >= int64(t.Len()) {
		r.report(r.platformName(platformIndex), unityfmt.DiagMissing,
			errors.Errorf("blob index %d not in table of %d entries", blobIndex, t.Len()))
		return nil, nil
	}
	return r.record(t, platformIndex, int(blobIndex))
}

func (r *run) record(t *subprogram.Table, platformIndex, blobIndex int) (*emit.SubProgramText, error) {
	where := fmt.Sprintf("%s blob %d", r.platformName(platformIndex), blobIndex)
	rec, err := t.Record(blobIndex)
	if err != nil {
		r.fail(where, err)
		return nil, err
	}
	code, err := r.c.dispatch.Render(r.ctx, rec.ProgramType, rec.Code)
	if err != nil {
		r.report(where, KindOf(err), err)
	}
	return &emit.SubProgramText{
		Keywords:      rec.Keywords,
		LocalKeywords: rec.LocalKeywords,
		Code:          code,
	}, nil
}

// legacy renders a pre-5.5 asset: the script with every program index
// replaced by the program it names.
func (r *run) legacy() string {
	a := r.asset
	t, err := subprogram.BuildTable(subprogram.LegacySource(a.SubProgramBlob, a.DecompressedSize), a.Version, r.c.opts)
	if err != nil {
		r.fail(r.platformName(-1), err)
	}
	return emit.Legacy(a.Script, func(n int) (*emit.SubProgramText, error) {
		if t == nil {
			return nil, err
		}
		if n < 0 || n >= t.Len() {
			r.report(r.platformName(-1), unityfmt.DiagMissing,
				errors.Errorf("program index %d not in table of %d entries", n, t.Len()))
			return nil, nil
		}
		text, rerr := r.record(t, -1, n)
		if text != nil || rerr != nil {
			r.rendered++
		}
		return text, rerr
	})
}
