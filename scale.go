package airplay

import (
	"image"

	"golang.org/x/image/draw"
)

// Geometry, alıcı ekranının piksel boyutlarıdır.
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry, Apple TV'nin varsayılan 1280x720 ekranıdır.
var DefaultGeometry = Geometry{Width: DefaultScreenWidth, Height: DefaultScreenHeight}

// Aspect, genişlik/yükseklik oranını döner.
func (g Geometry) Aspect() float64 {
	if g.Height == 0 {
		return 0
	}
	return float64(g.Width) / float64(g.Height)
}

// Valid, her iki boyutun da pozitif olup olmadığını döner.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// Fit, görseli en-boy oranını koruyarak width x height kutusuna sığdırır.
//
// Görsel zaten sığıyorsa olduğu gibi döner (büyütme yapılmaz). Aksi halde
// kaynak oranı hedeften genişse genişliğe, değilse yüksekliğe göre
// küçültülür; iki eksen aynı katsayıyla ölçeklenir. Örnekleme CatmullRom
// ile yapılır.
//
// nil görsel için nil döner.
//
//	scaled := airplay.Fit(img, 1280, 720) // 2560x1440 → 1280x720
func Fit(img image.Image, width, height int) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if width <= 0 || height <= 0 || w <= 0 || h <= 0 {
		return img
	}
	if w <= width && h <= height {
		return img
	}

	newW, newH := fitSize(w, h, width, height)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// fitSize, Fit'in hedef boyutunu tam sayı aritmetiğiyle hesaplar.
// w/h > width/height karşılaştırması çapraz çarpımla yapılır.
func fitSize(w, h, width, height int) (int, int) {
	if w*height > width*h {
		return width, clampSize(roundDiv(width*h, w), height)
	}
	return clampSize(roundDiv(height*w, h), width), height
}

func roundDiv(a, b int) int {
	return (a + b/2) / b
}

func clampSize(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}
