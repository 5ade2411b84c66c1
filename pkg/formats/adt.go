package formats

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wowfmt/pkg/archive"
	"github.com/Faultbox/wowfmt/pkg/binread"
	"github.com/Faultbox/wowfmt/pkg/chunk"
	wmath "github.com/Faultbox/wowfmt/pkg/math"
)

// ADT layout constants.
const (
	ADTChunksPerSide  = 16
	ADTChunkCount     = ADTChunksPerSide * ADTChunksPerSide
	mcinEntrySize     = 16
	mddfEntrySize     = 36
	modfEntrySize     = 64
	mcnkHeaderSize    = 128
	mcvtHeightCount   = 9*9 + 8*8
	doodadScaleFactor = 1024
)

// ADT is one terrain tile.
type ADT struct {
	Version    uint32               `json:"version"`
	Header     ADTHeader            `json:"header"`
	ChunkIndex []ChunkIndexEntry    `json:"chunk_index,omitempty"`
	Textures   NameTable            `json:"textures,omitempty"`
	Models     NameTable            `json:"models,omitempty"`
	ModelIDs   []uint32             `json:"model_ids,omitempty"`
	WMOs       NameTable            `json:"wmos,omitempty"`
	WMOIDs     []uint32             `json:"wmo_ids,omitempty"`
	Doodads    []DoodadPlacement    `json:"doodads,omitempty"`
	MapObjects []MapObjectPlacement `json:"map_objects,omitempty"`
	Chunks     []MapChunk           `json:"chunks"`

	Liquid       chunk.Undecoded `json:"mh2o"`
	FlightBounds chunk.Undecoded `json:"mfbo"`
	TextureFlags chunk.Undecoded `json:"mtxf"`
}

// ADTHeader is the MHDR chunk: flags and the offsets of the top-level
// chunks relative to the MHDR payload.
type ADTHeader struct {
	Flags uint32 `json:"flags"`
	MCIN  uint32 `json:"mcin"`
	MTEX  uint32 `json:"mtex"`
	MMDX  uint32 `json:"mmdx"`
	MMID  uint32 `json:"mmid"`
	MWMO  uint32 `json:"mwmo"`
	MWID  uint32 `json:"mwid"`
	MDDF  uint32 `json:"mddf"`
	MODF  uint32 `json:"modf"`
	MFBO  uint32 `json:"mfbo"`
	MH2O  uint32 `json:"mh2o"`
	MTXF  uint32 `json:"mtxf"`
}

// ChunkIndexEntry is one MCIN entry locating an MCNK in the file.
type ChunkIndexEntry struct {
	Offset  uint32 `json:"offset"`
	Size    uint32 `json:"size"`
	Flags   uint32 `json:"flags"`
	AsyncID uint32 `json:"async_id"`
}

// DoodadPlacement is one MDDF entry.
type DoodadPlacement struct {
	NameID   uint32     `json:"name_id"`
	UniqueID uint32     `json:"unique_id"`
	Position wmath.Vec3 `json:"position"`
	Rotation wmath.Vec3 `json:"rotation"`
	Scale    uint16     `json:"scale"`
	Flags    uint16     `json:"flags"`
	Name     string     `json:"name"`
}

// ScaleFactor returns the placement scale as a multiplier.
func (d DoodadPlacement) ScaleFactor() float32 {
	return float32(d.Scale) / doodadScaleFactor
}

// MapObjectPlacement is one MODF entry placing a WMO.
type MapObjectPlacement struct {
	NameID    uint32     `json:"name_id"`
	UniqueID  uint32     `json:"unique_id"`
	Position  wmath.Vec3 `json:"position"`
	Rotation  wmath.Vec3 `json:"rotation"`
	Extents   wmath.AABB `json:"extents"`
	Flags     uint16     `json:"flags"`
	DoodadSet uint16     `json:"doodad_set"`
	NameSet   uint16     `json:"name_set"`
	Scale     uint16     `json:"scale"`
	Name      string     `json:"name"`
}

// MapChunk is one MCNK: a 1/16th by 1/16th cell of the tile.
type MapChunk struct {
	Flags      uint32     `json:"flags"`
	IndexX     uint32     `json:"index_x"`
	IndexY     uint32     `json:"index_y"`
	Layers     uint32     `json:"layers"`
	DoodadRefs uint32     `json:"doodad_refs"`
	AreaID     uint32     `json:"area_id"`
	MapObjRefs uint32     `json:"map_obj_refs"`
	Holes      uint16     `json:"holes"`
	Position   wmath.Vec3 `json:"position"`
	Heights    []float32  `json:"heights,omitempty"`
}

// HasHole reports whether the low-resolution hole bit for cell (x, y) of
// the 4x4 grid is set.
func (c MapChunk) HasHole(x, y int) bool {
	if x < 0 || x > 3 || y < 0 || y > 3 {
		return false
	}
	return c.Holes&(1<<(y*4+x)) != 0
}

var adtSchema = chunk.Schema[ADT]{
	versionBinding(func(a *ADT) *uint32 { return &a.Version }),
	{Tag: "MHDR", Mode: chunk.Required, Decode: decodeMHDR},
	{Tag: "MCIN", Mode: chunk.Optional, Decode: decodeMCIN},
	nameBinding("MTEX", func(a *ADT) *NameTable { return &a.Textures }),
	nameBinding("MMDX", func(a *ADT) *NameTable { return &a.Models }),
	{Tag: "MMID", Mode: chunk.Optional, Decode: func(a *ADT, c chunk.Chunk) (err error) {
		a.ModelIDs, err = offsetIndex(c.Data)
		return err
	}},
	nameBinding("MWMO", func(a *ADT) *NameTable { return &a.WMOs }),
	{Tag: "MWID", Mode: chunk.Optional, Decode: func(a *ADT, c chunk.Chunk) (err error) {
		a.WMOIDs, err = offsetIndex(c.Data)
		return err
	}},
	{Tag: "MDDF", Mode: chunk.Optional, Decode: func(a *ADT, c chunk.Chunk) (err error) {
		a.Doodads, err = decodeMDDF(c.Data)
		return err
	}},
	{Tag: "MODF", Mode: chunk.Optional, Decode: func(a *ADT, c chunk.Chunk) (err error) {
		a.MapObjects, err = decodeMODF(c.Data)
		return err
	}},
	{Tag: "MCNK", Mode: chunk.Repeated, Decode: decodeMCNK},
	chunk.Opaque("MH2O", func(a *ADT) *chunk.Undecoded { return &a.Liquid }),
	chunk.Opaque("MFBO", func(a *ADT) *chunk.Undecoded { return &a.FlightBounds }),
	chunk.Opaque("MTXF", func(a *ADT) *chunk.Undecoded { return &a.TextureFlags }),
}

func decodeMHDR(a *ADT, c chunk.Chunk) error {
	r := binread.NewReader(c.Data)
	a.Header = ADTHeader{
		Flags: r.Uint32(),
		MCIN:  r.Uint32(),
		MTEX:  r.Uint32(),
		MMDX:  r.Uint32(),
		MMID:  r.Uint32(),
		MWMO:  r.Uint32(),
		MWID:  r.Uint32(),
		MDDF:  r.Uint32(),
		MODF:  r.Uint32(),
		MFBO:  r.Uint32(),
		MH2O:  r.Uint32(),
		MTXF:  r.Uint32(),
	}
	return r.Err()
}

func decodeMCIN(a *ADT, c chunk.Chunk) error {
	if len(c.Data) < ADTChunkCount*mcinEntrySize {
		return fmt.Errorf("%w: MCIN needs %d bytes, have %d", binread.ErrTruncated, ADTChunkCount*mcinEntrySize, len(c.Data))
	}
	r := binread.NewReader(c.Data)
	a.ChunkIndex = make([]ChunkIndexEntry, ADTChunkCount)
	for i := range a.ChunkIndex {
		a.ChunkIndex[i] = ChunkIndexEntry{
			Offset:  r.Uint32(),
			Size:    r.Uint32(),
			Flags:   r.Uint32(),
			AsyncID: r.Uint32(),
		}
	}
	return r.Err()
}

func decodeMDDF(data []byte) ([]DoodadPlacement, error) {
	n, err := records("MDDF", data, mddfEntrySize)
	if err != nil {
		return nil, err
	}
	r := binread.NewReader(data)
	out := make([]DoodadPlacement, n)
	for i := range out {
		out[i] = DoodadPlacement{
			NameID:   r.Uint32(),
			UniqueID: r.Uint32(),
			Position: r.Vec3(),
			Rotation: r.Vec3(),
			Scale:    r.Uint16(),
			Flags:    r.Uint16(),
		}
	}
	return out, r.Err()
}

func decodeMODF(data []byte) ([]MapObjectPlacement, error) {
	n, err := records("MODF", data, modfEntrySize)
	if err != nil {
		return nil, err
	}
	r := binread.NewReader(data)
	out := make([]MapObjectPlacement, n)
	for i := range out {
		p := MapObjectPlacement{
			NameID:   r.Uint32(),
			UniqueID: r.Uint32(),
			Position: r.Vec3(),
			Rotation: r.Vec3(),
		}
		lo, hi := r.Vec3(), r.Vec3()
		p.Extents = wmath.NewAABB(lo, hi)
		p.Flags = r.Uint16()
		p.DoodadSet = r.Uint16()
		p.NameSet = r.Uint16()
		p.Scale = r.Uint16()
		out[i] = p
	}
	return out, r.Err()
}

func decodeMCNK(a *ADT, c chunk.Chunk) error {
	data := c.Data
	if len(data) < mcnkHeaderSize {
		return fmt.Errorf("%w: MCNK header needs %d bytes, have %d", binread.ErrTruncated, mcnkHeaderSize, len(data))
	}
	r := binread.NewReader(data[:mcnkHeaderSize])
	m := MapChunk{
		Flags:      r.Uint32(),
		IndexX:     r.Uint32(),
		IndexY:     r.Uint32(),
		Layers:     r.Uint32(),
		DoodadRefs: r.Uint32(),
	}
	ofsHeight := r.Uint32()
	r.Skip(52 - r.Offset())
	m.AreaID = r.Uint32()
	m.MapObjRefs = r.Uint32()
	m.Holes = r.Uint16()
	r.Skip(104 - r.Offset())
	m.Position = r.Vec3()
	if err := r.Err(); err != nil {
		return err
	}

	if ofsHeight != 0 {
		heights, err := decodeMCVT(data, int(ofsHeight))
		if err != nil {
			return fmt.Errorf("chunk (%d, %d): %w", m.IndexX, m.IndexY, err)
		}
		m.Heights = heights
	}
	a.Chunks = append(a.Chunks, m)
	return nil
}

// decodeMCVT reads the height map the MCNK header points at. ofs counts
// from the start of the MCNK chunk header and lands on the MCVT sub-chunk
// header, so in payload terms that header is at ofs-8 and the heights start
// at ofs.
func decodeMCVT(payload []byte, ofs int) ([]float32, error) {
	hdr := ofs - chunk.HeaderSize
	if hdr < mcnkHeaderSize {
		return nil, fmt.Errorf("%w: MCVT offset %d inside MCNK header", binread.ErrOutOfRange, ofs)
	}
	tag, err := binread.ReversedString(payload, hdr, 4)
	if err != nil {
		return nil, err
	}
	if tag != "MCVT" {
		return nil, fmt.Errorf("%w: MCVT at offset %d", chunk.ErrMissingChunk, ofs)
	}
	size := mcvtHeightCount * 4
	if ofs+size > len(payload) {
		return nil, fmt.Errorf("%w: MCVT needs %d bytes at offset %d, have %d", binread.ErrTruncated, size, ofs, len(payload))
	}
	r := binread.NewReader(payload[ofs : ofs+size])
	heights := make([]float32, mcvtHeightCount)
	for i := range heights {
		heights[i] = r.Float32()
	}
	return heights, r.Err()
}

// resolvePlacementNames fills placement names from the model and WMO name
// tables.
func (a *ADT) resolvePlacementNames() error {
	for i := range a.Doodads {
		name, err := resolveName(a.Models, a.ModelIDs, a.Doodads[i].NameID)
		if err != nil {
			return fmt.Errorf("doodad %d: %w", i, err)
		}
		a.Doodads[i].Name = name
	}
	for i := range a.MapObjects {
		name, err := resolveName(a.WMOs, a.WMOIDs, a.MapObjects[i].NameID)
		if err != nil {
			return fmt.Errorf("map object %d: %w", i, err)
		}
		a.MapObjects[i].Name = name
	}
	return nil
}

// ParseADT parses an ADT tile from raw bytes.
func ParseADT(data []byte) (*ADT, error) {
	c, err := chunk.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing ADT: %w", err)
	}
	adt := &ADT{}
	if err := adtSchema.Apply(c, adt); err != nil {
		return nil, fmt.Errorf("parsing ADT: %w", err)
	}
	if err := adt.resolvePlacementNames(); err != nil {
		return nil, fmt.Errorf("parsing ADT: %w", err)
	}
	return adt, nil
}

// ParseADTFile parses an ADT tile from disk.
func ParseADTFile(path string) (*ADT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ADT file: %w", err)
	}
	return ParseADT(data)
}

// LoadADT reads name from src and parses it.
func LoadADT(src archive.Source, name string, opts ...Option) (*ADT, error) {
	o := buildOptions(opts)
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, err
	}
	adt, err := ParseADT(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	o.log.Debug("loaded ADT",
		zap.String("file", name),
		zap.Int("chunks", len(adt.Chunks)),
		zap.Int("doodads", len(adt.Doodads)),
		zap.Int("map_objects", len(adt.MapObjects)))
	return adt, nil
}
