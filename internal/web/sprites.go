package web

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pokeclone/internal/dex"
)

const (
	contentTypePNG    = "image/png"
	assetCacheControl = "public, max-age=3600"
)

func (s *Server) assetsBase() string {
	if s.AssetsDir != "" {
		return s.AssetsDir
	}
	return "static"
}

// spriteCreature finds the creature whose sprite file is file, so only Dex
// sprites are ever served.
func (s *Server) spriteCreature(file string) (dex.Creature, bool) {
	for _, c := range s.Dex.Individuals() {
		if path.Base(c.SpritePath()) == file {
			return c, true
		}
	}
	return dex.Creature{}, false
}

// GET /textures/creatures/{file}
//
// Serves the drop-in file under AssetsDir when present, otherwise a
// generated blocky sprite tinted by the creature element.
func (s *Server) handleSprite(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	c, ok := s.spriteCreature(file)
	if !ok {
		http.NotFound(w, r)
		return
	}

	baseDir := filepath.Join(s.assetsBase(), "textures", "creatures")
	staticPath := filepath.Clean(filepath.Join(baseDir, file))
	rel, err := filepath.Rel(baseDir, staticPath)
	if err != nil || strings.Contains(rel, "..") {
		http.NotFound(w, r)
		return
	}
	if b, err := os.ReadFile(staticPath); err == nil {
		w.Header().Set("Content-Type", http.DetectContentType(b))
		w.Header().Set("Cache-Control", assetCacheControl)
		if _, err := w.Write(b); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, generateSprite(c)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(buf.Bytes()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Pixel-art palette: a background and a body tone per element.
var elementPalette = map[dex.Element][2]color.RGBA{
	dex.Fire:  {{0x45, 0x18, 0x14, 255}, {0xe8, 0x74, 0x32, 255}},
	dex.Water: {{0x14, 0x24, 0x45, 255}, {0x4c, 0x8c, 0xd8, 255}},
	dex.Air:   {{0x2c, 0x3a, 0x4c, 255}, {0xd0, 0xe4, 0xec, 255}},
	dex.Earth: {{0x2a, 0x20, 0x14, 255}, {0xa8, 0x80, 0x4c, 255}},
}

var pixelEye = color.RGBA{0x18, 0x14, 0x28, 255}

const (
	spriteBlock  = 8
	spriteBlocks = 8
	spriteSize   = spriteBlock * spriteBlocks
)

// fillSpriteBlock fills one block at block coords (bx, by) with clr.
func fillSpriteBlock(img *image.RGBA, bx, by int, clr color.RGBA) {
	for dy := 0; dy < spriteBlock; dy++ {
		for dx := 0; dx < spriteBlock; dx++ {
			img.SetRGBA(bx*spriteBlock+dx, by*spriteBlock+dy, clr)
		}
	}
}

// generateSprite draws a left-right symmetric creature, 8×8 blocks of 8px.
// The body shape comes from a hash of the name, so a creature always looks
// the same.
func generateSprite(c dex.Creature) image.Image {
	pal, ok := elementPalette[c.Element]
	if !ok {
		pal = elementPalette[dex.Earth]
	}
	bg, body := pal[0], pal[1]

	img := image.NewRGBA(image.Rect(0, 0, spriteSize, spriteSize))
	for by := 0; by < spriteBlocks; by++ {
		for bx := 0; bx < spriteBlocks; bx++ {
			fillSpriteBlock(img, bx, by, bg)
		}
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Name))
	bits := h.Sum64()
	// Rows 1..6, left half columns 1..3, mirrored.
	for by := 1; by < spriteBlocks-1; by++ {
		for bx := 1; bx < spriteBlocks/2; bx++ {
			on := bits&1 == 1
			bits >>= 1
			// Keep a solid torso in the middle.
			if bx == spriteBlocks/2-1 && by >= 2 && by <= 5 {
				on = true
			}
			if on {
				fillSpriteBlock(img, bx, by, body)
				fillSpriteBlock(img, spriteBlocks-1-bx, by, body)
			}
		}
	}
	// Eyes
	fillSpriteBlock(img, 2, 2, pixelEye)
	fillSpriteBlock(img, spriteBlocks-3, 2, pixelEye)
	return img
}
