package airplay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"time"
)

// ─── Arka Plan Döngüsü ──────────────────────────────────────────────────────────
//
// Alıcı, bir süre yeni kare gelmezse fotoğrafı kapatır. Bu yüzden iki tür
// döngü çalıştırılır:
//
//   - Keep-alive: ShowImage ile gösterilen ölçeklenmiş görsel her
//     keepAliveInterval'de TransitionNone ile yeniden gönderilir
//   - Masaüstü: her streamInterval'de ekran yakalanır, ölçeklenir ve gönderilir
//
// Durum makinesi: Idle → Active → Idle. Döngü yalnızca Stop, yeni bir
// başlatma veya ölümcül bir gönderim hatasıyla biter. Durdurma işbirlikçidir:
// döngü context'i iptal edilir ve goroutine'in çıkması beklenir.

// streamTask, çalışan tek arka plan döngüsünü temsil eder.
type streamTask struct {
	// cancel, döngü context'ini iptal eder. Aynı context uçuştaki isteği de keser.
	cancel context.CancelFunc

	// done, döngü goroutine'i çıktığında kapanır.
	done chan struct{}
}

// ShowImage, görseli bir kez ölçekler, verilen geçişle hemen gönderir ve
// ardından aynı görseli keep-alive döngüsüyle ekranda tutar.
//
// Önceki döngü varsa önce tamamen durdurulur. İlk gönderim başarısız olursa
// hata döner ve durum Idle kalır.
func (c *Client) ShowImage(ctx context.Context, img image.Image, transition Transition) error {
	c.ctrlMu.Lock()
	defer c.ctrlMu.Unlock()

	c.stopLoop()

	scaled := c.fit(img)
	if err := c.sendFrame(ctx, scaled, transition); err != nil {
		return err
	}

	c.startLoop(c.opts.keepAliveInterval, false, func(ctx context.Context) error {
		return c.sendFrame(ctx, scaled, TransitionNone)
	})
	c.logf("Fotoğraf gösteriliyor, %s aralıkla yenilenecek", c.opts.keepAliveInterval)
	return nil
}

// StartScreenStream, capturer'dan alınan kareleri interval aralıkla gönderen
// döngüyü başlatır. interval sıfır veya negatifse varsayılan değer kullanılır.
//
// Herhangi bir turda yakalama veya gönderim hatası döngüyü sonlandırır;
// hata loglanır, WithErrorHandler ile bildirilir ve LastError ile okunabilir.
func (c *Client) StartScreenStream(capturer ScreenCapturer, interval time.Duration) error {
	if capturer == nil {
		return errors.New("ekran yakalayıcı tanımlı değil")
	}
	if interval <= 0 {
		interval = DefaultStreamInterval
	}

	c.ctrlMu.Lock()
	defer c.ctrlMu.Unlock()

	c.stopLoop()
	c.startLoop(interval, true, func(ctx context.Context) error {
		img, err := capturer.Capture()
		if err != nil {
			return fmt.Errorf("ekran yakalanamadı: %w", err)
		}
		if img == nil {
			return fmt.Errorf("%w: yakalayıcı boş görsel döndü", ErrEncodingFailed)
		}
		return c.sendFrame(ctx, c.fit(img), TransitionNone)
	})
	c.logf("Masaüstü akışı başladı (%s aralık)", interval)
	return nil
}

// Stop, çalışan döngüyü durdurur, çıkmasını bekler, alıcıya POST /stop
// gönderir ve oturumun kimlik doğrulama durumunu sıfırlar.
//
// Hiç başlatılmamış veya zaten durmuş bir istemcide de güvenle çağrılabilir.
// Ağ hataları yalnızca loglanır, çağırana dönmez.
func (c *Client) Stop(ctx context.Context) {
	c.ctrlMu.Lock()
	defer c.ctrlMu.Unlock()

	c.stopLoop()

	resp, err := c.session.Request(ctx, http.MethodPost, pathStop, nil, nil)
	switch {
	case err != nil:
		c.logf("Oturum durdurulamadı: %v", err)
	case !resp.OK():
		c.logf("POST %s beklenmeyen yanıt: %d", pathStop, resp.StatusCode)
	}

	c.session.Reset()
}

// startLoop, yeni bir döngü goroutine'i başlatır. ctrlMu tutulurken çağrılır.
// immediate true ise ilk tur beklemeden çalışır.
func (c *Client) startLoop(interval time.Duration, immediate bool, tick func(context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &streamTask{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	c.mu.Lock()
	c.task = t
	c.lastErr = nil
	c.mu.Unlock()
	c.opts.metrics.setStreamActive(true)

	go c.runLoop(ctx, t, interval, immediate, tick)
}

// stopLoop, çalışan döngüyü iptal eder ve goroutine çıkana kadar bekler.
// ctrlMu tutulurken çağrılır.
func (c *Client) stopLoop() {
	c.mu.Lock()
	t := c.task
	c.task = nil
	c.mu.Unlock()

	if t == nil {
		return
	}

	t.cancel()
	<-t.done
	c.opts.metrics.setStreamActive(false)
}

// runLoop, arka plan döngüsünün gövdesidir.
// İptal sinyali her bekleme sırasında ve her turdan sonra kontrol edilir.
func (c *Client) runLoop(ctx context.Context, t *streamTask, interval time.Duration, immediate bool, tick func(context.Context) error) {
	wait := interval
	if immediate {
		wait = 0
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.finishLoop(t, nil)
			return
		case <-timer.C:
		}
		if ctx.Err() != nil {
			c.finishLoop(t, nil)
			return
		}

		if err := tick(ctx); err != nil {
			if ctx.Err() != nil {
				// Stop sırasında kesilen istek hata sayılmaz
				c.finishLoop(t, nil)
				return
			}
			c.finishLoop(t, err)
			return
		}

		timer.Reset(interval)
	}
}

// finishLoop, döngü goroutine'inin çıkışını kaydeder. done kanalı hata
// bildiriminden önce kapanır; böylece hata fonksiyonu Stop çağırabilir.
func (c *Client) finishLoop(t *streamTask, err error) {
	t.cancel()

	c.mu.Lock()
	current := c.task == t
	if current {
		c.task = nil
	}
	if err != nil {
		c.lastErr = err
	}
	c.mu.Unlock()

	if current {
		c.opts.metrics.setStreamActive(false)
	}
	close(t.done)

	if err == nil {
		return
	}

	c.logf("Arka plan döngüsü durdu: %v", err)
	if c.opts.onError != nil {
		c.opts.onError(err)
	}
}
