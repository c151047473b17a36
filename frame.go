package airplay

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strings"
)

// ─── Geçiş Efektleri ────────────────────────────────────────────────────────────

// Transition, fotoğraf gösterilirken alıcının uygulayacağı geçiş efektidir.
// Değerler X-Apple-Transition başlığında olduğu gibi gönderilir.
type Transition string

const (
	TransitionNone       Transition = "None"       // Efekt yok
	TransitionSlideLeft  Transition = "SlideLeft"  // Sola kayma
	TransitionSlideRight Transition = "SlideRight" // Sağa kayma
	TransitionDissolve   Transition = "Dissolve"   // Çözülme
)

// Transitions, desteklenen tüm geçişleri sırayla listeler.
var Transitions = []Transition{
	TransitionNone,
	TransitionSlideLeft,
	TransitionSlideRight,
	TransitionDissolve,
}

// String, başlıkta gönderilen değeri döner.
func (t Transition) String() string {
	return string(t)
}

// Valid, geçişin desteklenen dört değerden biri olup olmadığını döner.
func (t Transition) Valid() bool {
	for _, known := range Transitions {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTransition, büyük/küçük harf duyarsız olarak geçiş adını çözümler.
// Boş string TransitionNone kabul edilir.
func ParseTransition(s string) (Transition, error) {
	if s == "" {
		return TransitionNone, nil
	}
	for _, known := range Transitions {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransition, s)
}

// ─── Kare Gönderimi ─────────────────────────────────────────────────────────────

// encodeFrame, görseli JPEG olarak kodlar.
func encodeFrame(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: görsel yok", ErrEncodingFailed)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	return buf.Bytes(), nil
}

// sendFrame, görseli JPEG'e çevirip PUT /photo ile gönderir.
// Bilinmeyen geçiş ErrInvalidTransition, kodlama hatası ErrEncodingFailed,
// iletim hataları olduğu gibi döner. 2xx dışı yanıtlar yalnızca loglanır.
func (c *Client) sendFrame(ctx context.Context, img image.Image, transition Transition) error {
	if !transition.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransition, string(transition))
	}

	data, err := encodeFrame(img, c.opts.jpegQuality)
	if err != nil {
		c.opts.metrics.frameError()
		return err
	}

	header := http.Header{}
	header.Set(headerTransition, string(transition))

	resp, err := c.session.Request(ctx, http.MethodPut, pathPhoto, data, header)
	if err != nil {
		c.opts.metrics.frameError()
		return err
	}

	if !resp.OK() {
		c.logf("PUT %s beklenmeyen yanıt: %d", pathPhoto, resp.StatusCode)
	}
	c.opts.metrics.frameSent(len(data))
	return nil
}
