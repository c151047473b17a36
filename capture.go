package airplay

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ScreenCapturer, masaüstü akışı için her turda bir ekran görüntüsü sağlar.
type ScreenCapturer interface {
	Capture() (image.Image, error)
}

// CaptureFunc, sıradan bir fonksiyonu ScreenCapturer olarak kullanır.
type CaptureFunc func() (image.Image, error)

// Capture, ScreenCapturer arayüzünü uygular.
func (f CaptureFunc) Capture() (image.Image, error) {
	return f()
}

// DisplayCapturer, yerel ekranı yakalar.
// Display negatifse birincil ekran (sınırları (0,0)'dan başlayan) kullanılır.
type DisplayCapturer struct {
	Display int
}

// Capture, ScreenCapturer arayüzünü uygular.
func (d *DisplayCapturer) Capture() (image.Image, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("aktif ekran bulunamadı")
	}
	if d.Display >= n {
		return nil, fmt.Errorf("ekran %d yok (toplam %d)", d.Display, n)
	}

	bounds := d.bounds(n)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// bounds, yakalanacak ekranın sınırlarını döner.
func (d *DisplayCapturer) bounds(n int) image.Rectangle {
	if d.Display >= 0 {
		return screenshot.GetDisplayBounds(d.Display)
	}
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		if b.Min.X == 0 && b.Min.Y == 0 {
			return b
		}
	}
	return screenshot.GetDisplayBounds(0)
}
