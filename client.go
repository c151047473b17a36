package airplay

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF çözücüsünü kaydet
	_ "image/jpeg" // JPEG çözücüsünü kaydet
	_ "image/png"  // PNG çözücüsünü kaydet
	"os"
	"sync"

	_ "golang.org/x/image/webp" // WebP çözücüsünü kaydet
)

// Client, bir AirPlay alıcısına fotoğraf ve masaüstü gönderen ana yapıdır.
// Thread-safe olarak tasarlanmıştır; aynı anda en fazla bir arka plan
// döngüsü çalışır.
//
// Kullanım:
//
//	client := airplay.NewClient("192.168.1.20", airplay.DefaultPort)
//	err := client.Photo(ctx, "photo.jpg", airplay.TransitionSlideLeft)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop(context.Background())
type Client struct {
	// opts, istemci yapılandırma seçenekleridir.
	opts clientOptions

	// session, HTTP ve kimlik doğrulama durumunu tutar.
	session *Session

	// ctrlMu, başlatma ve durdurma işlemlerini sıraya koyar.
	// Döngü goroutine'i bu kilidi hiç almaz.
	ctrlMu sync.Mutex

	// mu, aşağıdaki alanları korur.
	mu sync.Mutex

	// geometry, alıcı ekran boyutudur; her karede okunur.
	geometry Geometry

	// task, çalışan arka plan döngüsü. nil ise durum Idle'dır.
	task *streamTask

	// lastErr, döngüyü sonlandıran son hata.
	lastErr error
}

// NewClient, yeni bir Client oluşturur. Ağ bağlantısı ilk istekte kurulur.
//
//	// Basit kullanım
//	client := airplay.NewClient("192.168.1.20", airplay.DefaultPort)
//
//	// Seçeneklerle
//	client := airplay.NewClient("192.168.1.20", airplay.DefaultPort,
//	    airplay.WithPassword("1234"),
//	    airplay.WithLogger(log.Default()),
//	)
func NewClient(host string, port int, options ...ClientOption) *Client {
	opts := defaultClientOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if port <= 0 {
		port = DefaultPort
	}
	if opts.keepAliveInterval <= 0 {
		opts.keepAliveInterval = DefaultKeepAliveInterval
	}
	if opts.streamInterval <= 0 {
		opts.streamInterval = DefaultStreamInterval
	}
	if opts.jpegQuality < 1 || opts.jpegQuality > 100 {
		opts.jpegQuality = DefaultJPEGQuality
	}
	if !opts.geometry.Valid() {
		opts.geometry = DefaultGeometry
	}

	return &Client{
		opts:     opts,
		session:  newSession(host, port, &opts),
		geometry: opts.geometry,
	}
}

// Host, alıcının adresini döner.
func (c *Client) Host() string {
	return c.session.Host()
}

// Port, alıcının port numarasını döner.
func (c *Client) Port() int {
	return c.session.Port()
}

// Name, alıcının gösterilen adını döner.
func (c *Client) Name() string {
	return c.session.Name()
}

// Session, alt seviye HTTP oturumunu döner.
func (c *Client) Session() *Session {
	return c.session
}

// SetPassword, alıcının parolasını ayarlar.
func (c *Client) SetPassword(password string) {
	c.session.SetPassword(password)
}

// SetScreenSize, alıcının ekran boyutunu değiştirir.
// Çalışan döngü bir sonraki karede yeni boyutu kullanır; ShowImage ile
// gösterilen fotoğraf bir kez ölçeklendiği için etkilenmez.
func (c *Client) SetScreenSize(width, height int) error {
	g := Geometry{Width: width, Height: height}
	if !g.Valid() {
		return fmt.Errorf("geçersiz ekran boyutu: %dx%d", width, height)
	}

	c.mu.Lock()
	c.geometry = g
	c.mu.Unlock()
	return nil
}

// ScreenSize, geçerli ekran boyutunu döner.
func (c *Client) ScreenSize() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry
}

// State, arka plan döngüsünün durumunu döner.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task != nil {
		return StateActive
	}
	return StateIdle
}

// LastError, arka plan döngüsünü sonlandıran son hatayı döner.
// Döngü hiç hata almadıysa nil döner.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Photo, dosyadaki görseli açar ve ShowImage ile gösterir.
// JPEG, PNG, GIF ve WebP desteklenir.
//
//	err := client.Photo(ctx, "/path/to/photo.jpg", airplay.TransitionDissolve)
func (c *Client) Photo(ctx context.Context, path string, transition Transition) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	return c.ShowImage(ctx, img, transition)
}

// LoadImage, dosyadaki görseli çözümler.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("görsel açılamadı: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("görsel çözümlenemedi (%s): %w", path, err)
	}
	return img, nil
}

// SendImage, görseli ölçekleyip bir kez gönderir; arka plan döngüsü başlatmaz.
// Çalışan bir döngü varsa önce durdurulur.
func (c *Client) SendImage(ctx context.Context, img image.Image, transition Transition) error {
	c.ctrlMu.Lock()
	defer c.ctrlMu.Unlock()

	c.stopLoop()
	return c.sendFrame(ctx, c.fit(img), transition)
}

// Desktop, yapılandırılmış ekran yakalayıcıyla masaüstü akışını başlatır.
// WithCapturer verilmemişse birincil ekran kullanılır.
func (c *Client) Desktop() error {
	capturer := c.opts.capturer
	if capturer == nil {
		capturer = &DisplayCapturer{Display: -1}
	}
	return c.StartScreenStream(capturer, c.opts.streamInterval)
}

// fit, görseli geçerli ekran boyutuna sığdırır.
func (c *Client) fit(img image.Image) image.Image {
	g := c.ScreenSize()
	return Fit(img, g.Width, g.Height)
}

// logf, yapılandırılmış logger varsa mesaj yazar.
func (c *Client) logf(format string, v ...interface{}) {
	if c.opts.logger != nil {
		c.opts.logger.Printf("[airplay] "+format, v...)
	}
}
