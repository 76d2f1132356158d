// split_sprites slices a sprite sheet into one GIF per Dex individual under
// static/textures/creatures/. Cells are read left to right, top to bottom, in
// Dex order (species, then individual).
// Usage: go run scripts/split_sprites.go <sheet.png> <columns>
package main

import (
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"pokeclone/internal/dex"
)

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/split_sprites.go <sheet.png> <columns>\n")
		return 1
	}
	inPath := filepath.Clean(os.Args[1])
	if strings.Contains(inPath, "..") {
		fmt.Fprintf(os.Stderr, "path must not escape current directory\n")
		return 1
	}
	cols, err := strconv.Atoi(os.Args[2])
	if err != nil || cols <= 0 {
		fmt.Fprintf(os.Stderr, "columns must be a positive integer\n")
		return 1
	}
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", inPath, err)
		return 1
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close input: %v\n", cErr)
		}
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		return 1
	}

	creatures := dex.MustLoadEmbedded().Individuals()
	cells, err := cellRects(img.Bounds(), cols, len(creatures))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	outDir := filepath.Join("static", "textures", "creatures")
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", outDir, err)
		return 1
	}
	for i, c := range creatures {
		name := path.Base(c.SpritePath())
		if err := writeCrop(img, cells[i], outDir, name); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", name, err)
			return 1
		}
		fmt.Println(filepath.Join(outDir, name))
	}
	return 0
}

// cellRects splits b into a grid of cols columns and returns the first n
// cells in reading order.
func cellRects(b image.Rectangle, cols, n int) ([]image.Rectangle, error) {
	rows := (n + cols - 1) / cols
	if rows == 0 {
		return nil, nil
	}
	cw, ch := b.Dx()/cols, b.Dy()/rows
	if cw == 0 || ch == 0 {
		return nil, fmt.Errorf("sheet %dx%d too small for %d cells in %d columns", b.Dx(), b.Dy(), n, cols)
	}
	cells := make([]image.Rectangle, n)
	for i := range cells {
		x := b.Min.X + (i%cols)*cw
		y := b.Min.Y + (i/cols)*ch
		cells[i] = image.Rect(x, y, x+cw, y+ch)
	}
	return cells, nil
}

func writeCrop(img image.Image, r image.Rectangle, outDir, baseName string) (err error) {
	dx, dy := r.Dx(), r.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			dst.Set(x, y, img.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	p := filepath.Join(outDir, baseName)
	if filepath.Clean(p) != p || strings.Contains(p, "..") {
		return fmt.Errorf("invalid path")
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return gif.Encode(f, dst, nil)
}
