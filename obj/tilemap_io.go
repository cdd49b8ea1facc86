package obj

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/tilearena/levels"
)

// ToMapFile dumps every tile in row-major order.
func (tm *TileMap) ToMapFile() *levels.MapFile {
	mf := &levels.MapFile{
		Width:    tm.gridWidth,
		Height:   tm.gridHeight,
		TileSize: tm.tileSize,
		Tiles:    make([]levels.TileRecord, 0, len(tm.tiles)),
	}
	for y := 0; y < tm.gridHeight; y++ {
		for x := 0; x < tm.gridWidth; x++ {
			t := tm.TileAt(x, y)
			if t == nil {
				continue
			}
			rec := levels.NewTileRecord(x, y, tm.IsWalkable(x, y), t.TextureID(), t.ObjectTexture())
			rec.Props = t.ExtensionProperties()
			mf.Tiles = append(mf.Tiles, rec)
		}
	}
	return mf
}

// ApplyMapFile resets every tile to defaults, then applies the fields present
// in each record. The grid is never resized: records outside it are skipped.
func (tm *TileMap) ApplyMapFile(mf *levels.MapFile) error {
	if tm == nil {
		return fmt.Errorf("tilemap: nil map")
	}
	if mf == nil {
		return fmt.Errorf("tilemap: nil map file")
	}
	if len(tm.tiles) != tm.gridWidth*tm.gridHeight {
		tm.Initialize()
	}
	if mf.Width != tm.gridWidth || mf.Height != tm.gridHeight {
		log.Printf("tilemap: map declares %dx%d, grid is %dx%d; extra cells are dropped", mf.Width, mf.Height, tm.gridWidth, tm.gridHeight)
	}

	tm.ResetTiles()

	for _, rec := range mf.Tiles {
		if rec.X == nil || rec.Y == nil {
			continue
		}
		t := tm.TileAt(*rec.X, *rec.Y)
		if t == nil {
			continue
		}
		if rec.Walkable != nil {
			t.SetWalkable(*rec.Walkable)
		}
		if rec.TextureID != nil {
			tm.SetTileTexture(*rec.X, *rec.Y, *rec.TextureID)
		}
		if rec.ObjectTexture != nil {
			t.SetObjectTexture(*rec.ObjectTexture)
		}
		for k, v := range rec.Props {
			t.Properties().Set(k, v)
		}
	}
	return nil
}

// EncodeMap writes the map in the JSON map file format.
func (tm *TileMap) EncodeMap(w io.Writer) error {
	if tm == nil {
		return fmt.Errorf("tilemap: nil map")
	}
	return levels.Encode(w, tm.ToMapFile())
}

// DecodeMap reads a JSON map file into the existing grid.
func (tm *TileMap) DecodeMap(r io.Reader) error {
	mf, err := levels.Decode(r)
	if err != nil {
		return err
	}
	return tm.ApplyMapFile(mf)
}

// SaveMap writes the map to path, creating parent directories.
func (tm *TileMap) SaveMap(path string) error {
	var buf bytes.Buffer
	if err := tm.EncodeMap(&buf); err != nil {
		return fmt.Errorf("tilemap: save %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("tilemap: save %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("tilemap: save %s: %w", path, err)
	}
	log.Printf("tilemap: saved %s", path)
	return nil
}

// LoadMap reads a map file from path. On error the live tiles are untouched.
func (tm *TileMap) LoadMap(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	defer f.Close()

	mf, err := levels.Decode(f)
	if err != nil {
		return fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	if err := tm.ApplyMapFile(mf); err != nil {
		return fmt.Errorf("tilemap: load %s: %w", path, err)
	}
	log.Printf("tilemap: loaded %s", path)
	return nil
}
