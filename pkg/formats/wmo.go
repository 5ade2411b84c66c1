package formats

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/wowfmt/pkg/archive"
	"github.com/Faultbox/wowfmt/pkg/binread"
	"github.com/Faultbox/wowfmt/pkg/chunk"
	wmath "github.com/Faultbox/wowfmt/pkg/math"
)

// WMO variant names.
const (
	WMORootVariant  = "root"
	WMOGroupVariant = "group"
)

const (
	mohdSize       = 64
	mogpHeaderSize = 68
	wmoExt         = ".wmo"

	// maxGroupCount caps MOHD's group count; the largest shipped WMOs
	// have a few hundred groups.
	maxGroupCount = 4096
)

// WMOResolver tells root files from group files. Root markers are tested
// first.
var WMOResolver = chunk.NewResolver(
	chunk.Variant{Name: WMORootVariant, Markers: []string{"MOMT", "MOGI", "MOSB", "MOVV", "MODN"}},
	chunk.Variant{Name: WMOGroupVariant, Markers: []string{"MOGP", "MOPY", "MOVI", "MONR", "MOTV"}},
)

// WMO is a root file together with all of its group files, in index order.
type WMO struct {
	Root   *WMORoot    `json:"root"`
	Groups []*WMOGroup `json:"groups"`
}

// WMORoot is the root file of a world map object.
type WMORoot struct {
	Version     uint32    `json:"version"`
	Header      WMOHeader `json:"header"`
	Textures    NameTable `json:"textures,omitempty"`
	GroupNames  NameTable `json:"group_names,omitempty"`
	DoodadNames NameTable `json:"doodad_names,omitempty"`

	Materials    chunk.Undecoded `json:"momt"`
	GroupInfo    chunk.Undecoded `json:"mogi"`
	Skybox       chunk.Undecoded `json:"mosb"`
	PortalVerts  chunk.Undecoded `json:"mopv"`
	Portals      chunk.Undecoded `json:"mopt"`
	PortalRefs   chunk.Undecoded `json:"mopr"`
	VisibleVerts chunk.Undecoded `json:"movv"`
	VisibleBlock chunk.Undecoded `json:"movb"`
	Lights       chunk.Undecoded `json:"molt"`
	DoodadSets   chunk.Undecoded `json:"mods"`
	DoodadDefs   chunk.Undecoded `json:"modd"`
	Fogs         chunk.Undecoded `json:"mfog"`
}

// WMOHeader is the MOHD chunk.
type WMOHeader struct {
	TextureCount    uint32     `json:"texture_count"`
	GroupCount      uint32     `json:"group_count"`
	PortalCount     uint32     `json:"portal_count"`
	LightCount      uint32     `json:"light_count"`
	DoodadNameCount uint32     `json:"doodad_name_count"`
	DoodadDefCount  uint32     `json:"doodad_def_count"`
	DoodadSetCount  uint32     `json:"doodad_set_count"`
	AmbientColor    [4]byte    `json:"ambient_color"`
	WMOID           uint32     `json:"wmo_id"`
	Bounds          wmath.AABB `json:"bounds"`
	Flags           uint16     `json:"flags"`
	LODCount        uint16     `json:"lod_count"`
}

// WMOGroup is one group file.
type WMOGroup struct {
	Version uint32         `json:"version"`
	Header  WMOGroupHeader `json:"header"`
	Name    string         `json:"name,omitempty"`

	Materials  chunk.Undecoded `json:"mopy"`
	Indices    chunk.Undecoded `json:"movi"`
	Vertices   chunk.Undecoded `json:"movt"`
	Normals    chunk.Undecoded `json:"monr"`
	TexCoords  chunk.Undecoded `json:"motv"`
	Batches    chunk.Undecoded `json:"moba"`
	LightRefs  chunk.Undecoded `json:"molr"`
	DoodadRefs chunk.Undecoded `json:"modr"`
	BSPNodes   chunk.Undecoded `json:"mobn"`
	BSPFaces   chunk.Undecoded `json:"mobr"`
	MPBV       chunk.Undecoded `json:"mpbv"`
	MPBP       chunk.Undecoded `json:"mpbp"`
	MPBI       chunk.Undecoded `json:"mpbi"`
	MPBG       chunk.Undecoded `json:"mpbg"`
	Colors     chunk.Undecoded `json:"mocv"`
	Liquid     chunk.Undecoded `json:"mliq"`
	StripIdx   chunk.Undecoded `json:"mori"`
	StripBatch chunk.Undecoded `json:"morb"`
}

// WMOGroupHeader is the fixed part of the MOGP chunk.
type WMOGroupHeader struct {
	NameOffset        uint32     `json:"name_offset"`
	DescriptiveOffset uint32     `json:"descriptive_offset"`
	Flags             uint32     `json:"flags"`
	Bounds            wmath.AABB `json:"bounds"`
	PortalStart       uint16     `json:"portal_start"`
	PortalCount       uint16     `json:"portal_count"`
	TransBatchCount   uint16     `json:"trans_batch_count"`
	IntBatchCount     uint16     `json:"int_batch_count"`
	ExtBatchCount     uint16     `json:"ext_batch_count"`
	FogIDs            [4]byte    `json:"fog_ids"`
	LiquidType        uint32     `json:"liquid_type"`
	UniqueID          uint32     `json:"unique_id"`
	Flags2            uint32     `json:"flags2"`
}

var wmoRootSchema = chunk.Schema[WMORoot]{
	versionBinding(func(w *WMORoot) *uint32 { return &w.Version }),
	{Tag: "MOHD", Mode: chunk.Required, Decode: decodeMOHD},
	nameBinding("MOTX", func(w *WMORoot) *NameTable { return &w.Textures }),
	nameBinding("MOGN", func(w *WMORoot) *NameTable { return &w.GroupNames }),
	nameBinding("MODN", func(w *WMORoot) *NameTable { return &w.DoodadNames }),
	chunk.Opaque("MOMT", func(w *WMORoot) *chunk.Undecoded { return &w.Materials }),
	chunk.Opaque("MOGI", func(w *WMORoot) *chunk.Undecoded { return &w.GroupInfo }),
	chunk.Opaque("MOSB", func(w *WMORoot) *chunk.Undecoded { return &w.Skybox }),
	chunk.Opaque("MOPV", func(w *WMORoot) *chunk.Undecoded { return &w.PortalVerts }),
	chunk.Opaque("MOPT", func(w *WMORoot) *chunk.Undecoded { return &w.Portals }),
	chunk.Opaque("MOPR", func(w *WMORoot) *chunk.Undecoded { return &w.PortalRefs }),
	chunk.Opaque("MOVV", func(w *WMORoot) *chunk.Undecoded { return &w.VisibleVerts }),
	chunk.Opaque("MOVB", func(w *WMORoot) *chunk.Undecoded { return &w.VisibleBlock }),
	chunk.Opaque("MOLT", func(w *WMORoot) *chunk.Undecoded { return &w.Lights }),
	chunk.Opaque("MODS", func(w *WMORoot) *chunk.Undecoded { return &w.DoodadSets }),
	chunk.Opaque("MODD", func(w *WMORoot) *chunk.Undecoded { return &w.DoodadDefs }),
	chunk.Opaque("MFOG", func(w *WMORoot) *chunk.Undecoded { return &w.Fogs }),
}

var wmoGroupSchema = chunk.Schema[WMOGroup]{
	versionBinding(func(g *WMOGroup) *uint32 { return &g.Version }),
	{Tag: "MOGP", Mode: chunk.Required, Decode: decodeMOGP},
	chunk.Opaque("MOPY", func(g *WMOGroup) *chunk.Undecoded { return &g.Materials }),
	chunk.Opaque("MOVI", func(g *WMOGroup) *chunk.Undecoded { return &g.Indices }),
	chunk.Opaque("MOVT", func(g *WMOGroup) *chunk.Undecoded { return &g.Vertices }),
	chunk.Opaque("MONR", func(g *WMOGroup) *chunk.Undecoded { return &g.Normals }),
	chunk.Opaque("MOTV", func(g *WMOGroup) *chunk.Undecoded { return &g.TexCoords }),
	chunk.Opaque("MOBA", func(g *WMOGroup) *chunk.Undecoded { return &g.Batches }),
	chunk.Opaque("MOLR", func(g *WMOGroup) *chunk.Undecoded { return &g.LightRefs }),
	chunk.Opaque("MODR", func(g *WMOGroup) *chunk.Undecoded { return &g.DoodadRefs }),
	chunk.Opaque("MOBN", func(g *WMOGroup) *chunk.Undecoded { return &g.BSPNodes }),
	chunk.Opaque("MOBR", func(g *WMOGroup) *chunk.Undecoded { return &g.BSPFaces }),
	chunk.Opaque("MPBV", func(g *WMOGroup) *chunk.Undecoded { return &g.MPBV }),
	chunk.Opaque("MPBP", func(g *WMOGroup) *chunk.Undecoded { return &g.MPBP }),
	chunk.Opaque("MPBI", func(g *WMOGroup) *chunk.Undecoded { return &g.MPBI }),
	chunk.Opaque("MPBG", func(g *WMOGroup) *chunk.Undecoded { return &g.MPBG }),
	chunk.Opaque("MOCV", func(g *WMOGroup) *chunk.Undecoded { return &g.Colors }),
	chunk.Opaque("MLIQ", func(g *WMOGroup) *chunk.Undecoded { return &g.Liquid }),
	chunk.Opaque("MORI", func(g *WMOGroup) *chunk.Undecoded { return &g.StripIdx }),
	chunk.Opaque("MORB", func(g *WMOGroup) *chunk.Undecoded { return &g.StripBatch }),
}

func decodeMOHD(w *WMORoot, c chunk.Chunk) error {
	if len(c.Data) < mohdSize {
		return fmt.Errorf("%w: MOHD needs %d bytes, have %d", binread.ErrTruncated, mohdSize, len(c.Data))
	}
	r := binread.NewReader(c.Data)
	w.Header = WMOHeader{
		TextureCount:    r.Uint32(),
		GroupCount:      r.Uint32(),
		PortalCount:     r.Uint32(),
		LightCount:      r.Uint32(),
		DoodadNameCount: r.Uint32(),
		DoodadDefCount:  r.Uint32(),
		DoodadSetCount:  r.Uint32(),
		AmbientColor:    r.Bytes4(),
		WMOID:           r.Uint32(),
	}
	lo, hi := r.Vec3(), r.Vec3()
	w.Header.Bounds = wmath.NewAABB(lo, hi)
	w.Header.Flags = r.Uint16()
	w.Header.LODCount = r.Uint16()
	return r.Err()
}

func decodeMOGP(g *WMOGroup, c chunk.Chunk) error {
	if len(c.Data) < mogpHeaderSize {
		return fmt.Errorf("%w: MOGP header needs %d bytes, have %d", binread.ErrTruncated, mogpHeaderSize, len(c.Data))
	}
	r := binread.NewReader(c.Data[:mogpHeaderSize])
	h := WMOGroupHeader{
		NameOffset:        r.Uint32(),
		DescriptiveOffset: r.Uint32(),
		Flags:             r.Uint32(),
	}
	lo, hi := r.Vec3(), r.Vec3()
	h.Bounds = wmath.NewAABB(lo, hi)
	h.PortalStart = r.Uint16()
	h.PortalCount = r.Uint16()
	h.TransBatchCount = r.Uint16()
	h.IntBatchCount = r.Uint16()
	h.ExtBatchCount = r.Uint16()
	r.Skip(2)
	h.FogIDs = r.Bytes4()
	h.LiquidType = r.Uint32()
	h.UniqueID = r.Uint32()
	h.Flags2 = r.Uint32()
	g.Header = h
	return r.Err()
}

// parseWMOContainer splits a WMO buffer into chunks and resolves its
// variant. A group file's MOGP payload holds the group's sub-chunks after
// the fixed header; they are lifted into the container so markers and
// schema bindings see them.
func parseWMOContainer(data []byte) (*chunk.Container, chunk.Variant, error) {
	c, err := chunk.Parse(data)
	if err != nil {
		return nil, chunk.Variant{}, err
	}
	if mogp, ok := c.First("MOGP"); ok && len(mogp.Data) > mogpHeaderSize {
		nested, err := chunk.Parse(mogp.Data[mogpHeaderSize:])
		if err != nil {
			return nil, chunk.Variant{}, fmt.Errorf("MOGP sub-chunks: %w", err)
		}
		c = c.Merge(nested)
	}
	v, err := WMOResolver.Resolve(c.Tags())
	if err != nil {
		return nil, chunk.Variant{}, err
	}
	return c, v, nil
}

// ParseWMORoot parses a WMO root file from raw bytes. A group file is
// rejected with ErrNotRootWMO.
func ParseWMORoot(data []byte) (*WMORoot, error) {
	c, v, err := parseWMOContainer(data)
	if err != nil {
		return nil, fmt.Errorf("parsing WMO: %w", err)
	}
	if v.Name != WMORootVariant {
		return nil, ErrNotRootWMO
	}
	root := &WMORoot{}
	if err := wmoRootSchema.Apply(c, root); err != nil {
		return nil, fmt.Errorf("parsing WMO root: %w", err)
	}
	return root, nil
}

// ParseWMOGroup parses a WMO group file from raw bytes. A root file is
// rejected with ErrNotGroupWMO.
func ParseWMOGroup(data []byte) (*WMOGroup, error) {
	c, v, err := parseWMOContainer(data)
	if err != nil {
		return nil, fmt.Errorf("parsing WMO: %w", err)
	}
	if v.Name != WMOGroupVariant {
		return nil, ErrNotGroupWMO
	}
	group := &WMOGroup{}
	if err := wmoGroupSchema.Apply(c, group); err != nil {
		return nil, fmt.Errorf("parsing WMO group: %w", err)
	}
	return group, nil
}

// GroupFileNames derives the group file names of a root file: the root's
// base name without extension, an underscore, the index padded to three
// digits, and the root's extension (".wmo" when it has none).
//
//	GroupFileNames("test.wmo", 2) == []string{"test_000.wmo", "test_001.wmo"}
func GroupFileNames(rootName string, count uint32) []string {
	base := rootName
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	stem, ext := base, wmoExt
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		stem, ext = base[:i], base[i:]
	}
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%03d%s", stem, i, ext)
	}
	return names
}

// siblingPath places name in the same directory as ref, keeping ref's
// separator style.
func siblingPath(ref, name string) string {
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		return ref[:i+1] + name
	}
	return name
}

// LoadWMO loads the root file name from src and every group file it
// declares. Group files are looked up next to the root. If any group is
// missing or fails to parse the whole load fails with
// ErrDependencyLoadFailed.
func LoadWMO(src archive.Source, name string, opts ...Option) (*WMO, error) {
	o := buildOptions(opts)

	data, err := src.ReadFile(name)
	if err != nil {
		return nil, err
	}
	root, err := ParseWMORoot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if root.Header.GroupCount > maxGroupCount {
		return nil, fmt.Errorf("%s: %w: group count %d exceeds %d", name, binread.ErrOutOfRange, root.Header.GroupCount, maxGroupCount)
	}
	names := GroupFileNames(name, root.Header.GroupCount)
	o.log.Debug("loaded WMO root",
		zap.String("file", name),
		zap.Uint32("groups", root.Header.GroupCount),
		zap.Int("workers", o.groupWorkers))

	groups := make([]*WMOGroup, len(names))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(o.groupWorkers)
	for i, groupName := range names {
		path := siblingPath(name, groupName)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			group, err := loadGroup(src, path)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrDependencyLoadFailed, path, err)
			}
			if n, ok := root.GroupNames.At(group.Header.NameOffset); ok {
				group.Name = n
			}
			groups[i] = group
			o.log.Debug("loaded WMO group", zap.String("file", path), zap.Int("index", i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &WMO{Root: root, Groups: groups}, nil
}

func loadGroup(src archive.Source, path string) (*WMOGroup, error) {
	data, err := src.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWMOGroup(data)
}

// ParseWMOFile loads a root WMO and its groups from disk; groups are read
// from the root's directory.
func ParseWMOFile(path string, opts ...Option) (*WMO, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading WMO file: %w", err)
	}
	return LoadWMO(archive.NewDir(filepath.Dir(path)), filepath.Base(path), opts...)
}
