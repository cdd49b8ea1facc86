package levels

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/milk9111/tilearena/component"
)

//go:embed *.json
var LevelsFS embed.FS

// MapFile is the on-disk form of a tile map.
type MapFile struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	TileSize int          `json:"tileSize"`
	Tiles    []TileRecord `json:"tiles"`
}

// TileRecord is one cell of a MapFile. Optional fields are pointers so a
// loader can tell "absent" from "zero".
type TileRecord struct {
	X             *int                 `json:"x"`
	Y             *int                 `json:"y"`
	Walkable      *bool                `json:"walkable,omitempty"`
	TextureID     *string              `json:"textureID,omitempty"`
	ObjectTexture *string              `json:"objectTexture,omitempty"`
	Props         component.Properties `json:"props,omitempty"`
}

// NewTileRecord builds a fully populated record.
func NewTileRecord(x, y int, walkable bool, textureID, objectTexture string) TileRecord {
	return TileRecord{
		X:             &x,
		Y:             &y,
		Walkable:      &walkable,
		TextureID:     &textureID,
		ObjectTexture: &objectTexture,
	}
}

var requiredKeys = []string{"width", "height", "tileSize", "tiles"}

// Decode reads a map file. All four top-level keys must be present and every
// tile record must carry x and y.
func Decode(r io.Reader) (*MapFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	var missing []string
	for _, k := range requiredKeys {
		if _, ok := top[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("invalid map file format: missing %s", strings.Join(missing, ", "))
	}

	var mf MapFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("unmarshal map: %w", err)
	}
	for i, rec := range mf.Tiles {
		if rec.X == nil || rec.Y == nil {
			return nil, fmt.Errorf("invalid map file format: tile %d has no coordinates", i)
		}
	}
	return &mf, nil
}

// Encode writes a map file as indented JSON.
func Encode(w io.Writer, mf *MapFile) error {
	if mf == nil {
		return fmt.Errorf("encode map: nil map")
	}
	if mf.Tiles == nil {
		mf.Tiles = []TileRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mf)
}

// LoadMapFromFS reads a map file from fsys. The .json extension is optional.
func LoadMapFromFS(fsys fs.FS, name string) (*MapFile, error) {
	data, err := fs.ReadFile(fsys, withExt(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	mf, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return mf, nil
}

func withExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return name
	}
	return name + ".json"
}
