package slicer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	regions, err := Regions(100, 100, Insets{Top: 10, Right: 10, Bottom: 10, Left: 10})
	require.NoError(t, err)
	require.Len(t, regions, 9)

	want := map[Position]image.Rectangle{
		TopLeft:     image.Rect(0, 0, 10, 10),
		TopRight:    image.Rect(90, 0, 100, 10),
		BottomLeft:  image.Rect(0, 90, 10, 100),
		BottomRight: image.Rect(90, 90, 100, 100),
		Top:         image.Rect(10, 0, 90, 10),
		Bottom:      image.Rect(10, 90, 90, 100),
		Left:        image.Rect(0, 10, 10, 90),
		Right:       image.Rect(90, 10, 100, 90),
		Center:      image.Rect(10, 10, 90, 90),
	}
	for i, reg := range regions {
		require.Equal(t, Positions[i], reg.Position)
		require.Equal(t, want[reg.Position], reg.Rect, "%s", reg.Position)
	}

	// Right tile is 10x80 at (90,10)
	right := regions[Right]
	require.Equal(t, 10, right.Rect.Dx())
	require.Equal(t, 80, right.Rect.Dy())
	require.Equal(t, image.Pt(90, 10), right.Rect.Min)
}

func TestRegionsCoverImageOnce(t *testing.T) {
	for _, tc := range []struct {
		w, h int
		in   Insets
	}{
		{100, 100, Insets{10, 10, 10, 10}},
		{120, 80, Insets{5, 30, 20, 7}},
		{17, 9, Insets{0, 0, 0, 0}},
		{17, 9, Insets{4, 0, 5, 17}},
		{1, 1, Insets{1, 1, 0, 0}},
		{64, 32, Insets{16, 32, 16, 32}},
	} {
		regions, err := Regions(tc.w, tc.h, tc.in)
		require.NoError(t, err, "%dx%d %v", tc.w, tc.h, tc.in)

		hits := make([]int, tc.w*tc.h)
		for _, reg := range regions {
			require.True(t, reg.Rect.In(image.Rect(0, 0, tc.w, tc.h)) || reg.Rect.Empty())
			for y := reg.Rect.Min.Y; y < reg.Rect.Max.Y; y++ {
				for x := reg.Rect.Min.X; x < reg.Rect.Max.X; x++ {
					hits[y*tc.w+x]++
				}
			}
		}
		for i, n := range hits {
			require.Equal(t, 1, n, "%dx%d %v: pixel (%d,%d)", tc.w, tc.h, tc.in, i%tc.w, i/tc.w)
		}
	}
}

func TestRegionsZeroSizedCenter(t *testing.T) {
	regions, err := Regions(40, 30, Insets{Top: 10, Right: 15, Bottom: 20, Left: 25})
	require.NoError(t, err)
	center := regions[Center].Rect
	require.Equal(t, 0, center.Dx())
	require.Equal(t, 0, center.Dy())
	require.True(t, center.Empty())
}

func TestRegionsInvalidInsets(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
		in   Insets
	}{
		{"left wider than image", 50, 50, Insets{Left: 100}},
		{"top and bottom exceed height", 120, 80, Insets{50, 50, 50, 50}},
		{"left and right exceed width", 99, 200, Insets{50, 50, 50, 50}},
		{"negative top", 10, 10, Insets{Top: -1}},
		{"negative right", 10, 10, Insets{Right: -3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			regions, err := Regions(tc.w, tc.h, tc.in)
			require.ErrorIs(t, err, ErrInvalidInsets)
			require.Nil(t, regions)
		})
	}
}

func TestPositionString(t *testing.T) {
	var names []string
	for _, p := range Positions {
		names = append(names, p.String())
	}
	require.Equal(t, []string{
		"TopLeft", "TopRight", "BottomLeft", "BottomRight",
		"Top", "Bottom", "Left", "Right", "Center",
	}, names)
	require.Equal(t, "Position(42)", Position(42).String())
}
