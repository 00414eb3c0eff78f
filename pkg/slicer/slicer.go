package slicer

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/allape/gogger"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var l = gogger.New("slicer")

// Options control where and how the nine tiles are written.
type Options struct {
	// OutputDir is created if missing. Empty means the working directory.
	OutputDir string
	// BaseName prefixes every tile file name, e.g. "Button" gives
	// "ButtonTopLeft.png".
	BaseName string
	Insets   Insets
	// Parallel writes the tiles from separate goroutines.
	Parallel bool
}

// TilePath returns the file a tile at p is written to.
func (o Options) TilePath(p Position) string {
	dir := o.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, o.BaseName+p.String()+".png")
}

// Tile describes one output of Slice.
type Tile struct {
	Position Position
	Rect     image.Rectangle
	Path     string
	// Skipped is set for zero-area regions, which have no file.
	Skipped bool
}

// Image slices the image at srcPath into nine PNG tiles in opts.OutputDir and
// returns them in Positions order.
func Image(srcPath string, opts Options) ([]Tile, error) {
	if err := opts.Insets.Validate(); err != nil {
		return nil, err
	}
	img, err := Load(srcPath)
	if err != nil {
		return nil, err
	}
	return Slice(img, opts)
}

// Load opens and decodes the image at path. PNG, JPEG, GIF, BMP, TIFF and
// WebP are understood.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrSourceNotFound, path, err)
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrSourceNotFound, path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrDecode, path, err)
	}
	l.Verbose().Println("loaded", path, img.Bounds().Size())
	return img, nil
}

// Crop copies the pixels of r out of img. r is relative to the top-left
// corner of img, whatever its bounds origin.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r.Add(img.Bounds().Min))
}

// Slice cuts img into its nine regions and writes each non-empty one as PNG,
// replacing existing files. Nothing is written when the insets do not fit
// the image. The first failure aborts the run; tiles already written stay on
// disk.
func Slice(img image.Image, opts Options) ([]Tile, error) {
	size := img.Bounds().Size()
	regions, err := Regions(size.X, size.Y, opts.Insets)
	if err != nil {
		return nil, err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create output dir %s: %w", ErrWrite, dir, err)
	}

	tiles := make([]Tile, len(regions))
	for i, reg := range regions {
		tiles[i] = Tile{
			Position: reg.Position,
			Rect:     reg.Rect,
			Path:     opts.TilePath(reg.Position),
		}
	}

	if opts.Parallel {
		err = writeParallel(img, tiles)
	} else {
		for i := range tiles {
			if err = writeTile(img, &tiles[i]); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return tiles, nil
}

func writeParallel(img image.Image, tiles []Tile) error {
	var wg sync.WaitGroup
	errs := make([]error, len(tiles))
	for i := range tiles {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = writeTile(img, &tiles[idx])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTile(img image.Image, t *Tile) error {
	if t.Rect.Empty() {
		// PNG cannot hold a zero-sized image; drop any tile left by an
		// earlier run instead so the directory matches this one.
		t.Skipped = true
		if err := os.Remove(t.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: remove stale %s: %w", ErrWrite, t.Path, err)
		}
		l.Warn().Println("skipped zero-area tile", t.Position, t.Rect)
		return nil
	}

	sub := Crop(img, t.Rect)
	f, err := os.Create(t.Path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWrite, t.Path, err)
	}
	if err := imaging.Encode(f, sub, imaging.PNG); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, t.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWrite, t.Path, err)
	}

	l.Verbose().Println("wrote", t.Path, t.Rect)
	return nil
}
