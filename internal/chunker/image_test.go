package chunker

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestConcatImagesNil(t *testing.T) {
	a := solid(2, 2, color.White)
	if got := ConcatImages(nil, a); got != a {
		t.Error("nil left must return right unchanged")
	}
	if got := ConcatImages(a, nil); got != a {
		t.Error("nil right must return left unchanged")
	}
	if got := ConcatImages(nil, nil); got != nil {
		t.Error("two nils must stay nil")
	}
}

func TestConcatImagesIdenticalDedup(t *testing.T) {
	a := solid(3, 2, color.White)
	if got := ConcatImages(a, a); got != a {
		t.Error("same value must not be stacked onto itself")
	}
	b := solid(3, 2, color.White)
	if got := ConcatImages(a, b); got != a {
		t.Error("pixel-identical copies must not be stacked")
	}
}

func TestConcatImagesStacks(t *testing.T) {
	a := solid(2, 3, color.White)
	b := solid(4, 5, color.Black)
	got := ConcatImages(a, b)
	bounds := got.Bounds()
	if bounds.Dx() != 4 || bounds.Dy() != 8 {
		t.Fatalf("bounds = %dx%d, want 4x8", bounds.Dx(), bounds.Dy())
	}
	// Top-left pixel comes from a, a pixel in the lower half from b.
	if r, g, bl, _ := got.At(0, 0).RGBA(); r == 0 && g == 0 && bl == 0 {
		t.Error("top rows must hold the first image")
	}
	if r, g, bl, _ := got.At(0, 4).RGBA(); r != 0 || g != 0 || bl != 0 {
		t.Error("bottom rows must hold the second image")
	}
}
