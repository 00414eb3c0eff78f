package slicer

import (
	"fmt"
	"image"
)

// Position names one of the nine tiles.
type Position int

const (
	TopLeft Position = iota
	TopRight
	BottomLeft
	BottomRight
	Top
	Bottom
	Left
	Right
	Center
)

// Positions lists every tile in the order Regions returns them.
var Positions = []Position{
	TopLeft, TopRight, BottomLeft, BottomRight,
	Top, Bottom, Left, Right,
	Center,
}

var positionNames = [...]string{
	TopLeft:     "TopLeft",
	TopRight:    "TopRight",
	BottomLeft:  "BottomLeft",
	BottomRight: "BottomRight",
	Top:         "Top",
	Bottom:      "Bottom",
	Left:        "Left",
	Right:       "Right",
	Center:      "Center",
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// Insets are pixel distances from each edge of the source image to where the
// border tiles end.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

func (in Insets) String() string {
	return fmt.Sprintf("(top=%d right=%d bottom=%d left=%d)", in.Top, in.Right, in.Bottom, in.Left)
}

// Validate checks the insets on their own. The comparison against the image
// size happens in Regions, once the size is known.
func (in Insets) Validate() error {
	if in.Top < 0 || in.Right < 0 || in.Bottom < 0 || in.Left < 0 {
		return fmt.Errorf("%w: negative inset in %v", ErrInvalidInsets, in)
	}
	return nil
}

// Region is the rectangle a tile is cut from, in source coordinates with the
// origin at the image's top-left corner.
type Region struct {
	Position Position
	Rect     image.Rectangle
}

// Regions computes the nine regions of a w×h image. When the insets fit, the
// regions tile [0,w)×[0,h) exactly.
func Regions(w, h int, in Insets) ([]Region, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Left+in.Right > w {
		return nil, fmt.Errorf("%w: left+right=%d exceeds width %d", ErrInvalidInsets, in.Left+in.Right, w)
	}
	if in.Top+in.Bottom > h {
		return nil, fmt.Errorf("%w: top+bottom=%d exceeds height %d", ErrInvalidInsets, in.Top+in.Bottom, h)
	}

	// image.Rect would silently swap inverted coordinates, so the
	// rectangles are built field by field.
	rect := func(x0, y0, x1, y1 int) image.Rectangle {
		return image.Rectangle{Min: image.Point{X: x0, Y: y0}, Max: image.Point{X: x1, Y: y1}}
	}
	l, t := in.Left, in.Top
	r, b := w-in.Right, h-in.Bottom

	regions := []Region{
		{TopLeft, rect(0, 0, l, t)},
		{TopRight, rect(r, 0, w, t)},
		{BottomLeft, rect(0, b, l, h)},
		{BottomRight, rect(r, b, w, h)},
		{Top, rect(l, 0, r, t)},
		{Bottom, rect(l, b, r, h)},
		{Left, rect(0, t, l, b)},
		{Right, rect(r, t, w, b)},
		{Center, rect(l, t, r, b)},
	}
	for _, reg := range regions {
		if reg.Rect.Max.X < reg.Rect.Min.X || reg.Rect.Max.Y < reg.Rect.Min.Y {
			return nil, fmt.Errorf("%w: %s region %v is inverted", ErrInvalidInsets, reg.Position, reg.Rect)
		}
	}
	return regions, nil
}
