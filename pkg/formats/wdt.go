package formats

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/wowfmt/pkg/archive"
	"github.com/Faultbox/wowfmt/pkg/binread"
	"github.com/Faultbox/wowfmt/pkg/chunk"
)

// WDT layout constants.
const (
	WDTTilesPerSide = 64
	wdtTileCount    = WDTTilesPerSide * WDTTilesPerSide
	mainEntrySize   = 8

	// WDTFlagGlobalWMO marks a map made of a single WMO and no terrain.
	WDTFlagGlobalWMO = 0x1
	tileHasADT       = 0x1
)

// WDT is a map definition: which terrain tiles exist, or the single WMO a
// dungeon map is built from.
type WDT struct {
	Version   uint32              `json:"version"`
	Flags     uint32              `json:"flags"`
	Tiles     []TileCoord         `json:"tiles"`
	WMOs      NameTable           `json:"wmos,omitempty"`
	MapObject *MapObjectPlacement `json:"map_object,omitempty"`

	// MAIN flags, row-major by y
	entries [wdtTileCount]uint32
}

// TileCoord addresses one ADT tile.
type TileCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// HasTile reports whether tile (x, y) has terrain.
func (w *WDT) HasTile(x, y int) bool {
	if x < 0 || x >= WDTTilesPerSide || y < 0 || y >= WDTTilesPerSide {
		return false
	}
	return w.entries[y*WDTTilesPerSide+x]&tileHasADT != 0
}

// IsGlobalWMO reports whether the map is a single WMO.
func (w *WDT) IsGlobalWMO() bool {
	return w.Flags&WDTFlagGlobalWMO != 0
}

// TileFileName returns the ADT file name of tile (x, y) for map directory
// mapDir, e.g. "Azeroth_32_48.adt".
func TileFileName(mapDir string, x, y int) string {
	return fmt.Sprintf("%s_%d_%d.adt", mapDir, x, y)
}

var wdtSchema = chunk.Schema[WDT]{
	versionBinding(func(w *WDT) *uint32 { return &w.Version }),
	{Tag: "MPHD", Mode: chunk.Required, Decode: func(w *WDT, c chunk.Chunk) (err error) {
		w.Flags, err = binread.Uint32(c.Data, 0)
		return err
	}},
	{Tag: "MAIN", Mode: chunk.Required, Decode: decodeMAIN},
	nameBinding("MWMO", func(w *WDT) *NameTable { return &w.WMOs }),
	{Tag: "MODF", Mode: chunk.Optional, Decode: func(w *WDT, c chunk.Chunk) error {
		placements, err := decodeMODF(c.Data)
		if err != nil {
			return err
		}
		if len(placements) > 0 {
			w.MapObject = &placements[0]
		}
		return nil
	}},
}

func decodeMAIN(w *WDT, c chunk.Chunk) error {
	if len(c.Data) < wdtTileCount*mainEntrySize {
		return fmt.Errorf("%w: MAIN needs %d bytes, have %d", binread.ErrTruncated, wdtTileCount*mainEntrySize, len(c.Data))
	}
	r := binread.NewReader(c.Data)
	for i := range w.entries {
		w.entries[i] = r.Uint32()
		r.Skip(4) // async id, only set at runtime
	}
	if err := r.Err(); err != nil {
		return err
	}
	w.Tiles = w.Tiles[:0]
	for y := 0; y < WDTTilesPerSide; y++ {
		for x := 0; x < WDTTilesPerSide; x++ {
			if w.HasTile(x, y) {
				w.Tiles = append(w.Tiles, TileCoord{X: x, Y: y})
			}
		}
	}
	return nil
}

// ParseWDT parses a WDT map definition from raw bytes.
func ParseWDT(data []byte) (*WDT, error) {
	c, err := chunk.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing WDT: %w", err)
	}
	wdt := &WDT{}
	if err := wdtSchema.Apply(c, wdt); err != nil {
		return nil, fmt.Errorf("parsing WDT: %w", err)
	}
	if wdt.MapObject != nil && len(wdt.WMOs) > 0 {
		wdt.MapObject.Name = wdt.WMOs[0].Value
	}
	return wdt, nil
}

// ParseWDTFile parses a WDT map definition from disk.
func ParseWDTFile(path string) (*WDT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading WDT file: %w", err)
	}
	return ParseWDT(data)
}

// LoadWDT reads name from src and parses it.
func LoadWDT(src archive.Source, name string, opts ...Option) (*WDT, error) {
	o := buildOptions(opts)
	data, err := src.ReadFile(name)
	if err != nil {
		return nil, err
	}
	wdt, err := ParseWDT(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	o.log.Debug("loaded WDT",
		zap.String("file", name),
		zap.Int("tiles", len(wdt.Tiles)),
		zap.Bool("global_wmo", wdt.IsGlobalWMO()))
	return wdt, nil
}
