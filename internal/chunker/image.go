package chunker

import (
	"image"
	"image/draw"
)

// ConcatImages combines two optional images into one by vertical stacking.
// Either side may be nil; identical inputs (same value or pixel-identical)
// come back unchanged so repeated merges of the same content do not grow.
func ConcatImages(a, b image.Image) image.Image {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a == b || pixelEqual(a, b) {
		return a
	}

	wa, ha := a.Bounds().Dx(), a.Bounds().Dy()
	wb, hb := b.Bounds().Dx(), b.Bounds().Dy()
	w := wa
	if wb > w {
		w = wb
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, ha+hb))
	draw.Draw(dst, image.Rect(0, 0, wa, ha), a, a.Bounds().Min, draw.Src)
	draw.Draw(dst, image.Rect(0, ha, wb, ha+hb), b, b.Bounds().Min, draw.Src)
	return dst
}

func pixelEqual(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, aa := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, ba := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl || aa != ba {
				return false
			}
		}
	}
	return true
}
