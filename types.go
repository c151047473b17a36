package airplay

import (
	"net/http"
	"time"
)

// ─── Protokol Sabitleri ─────────────────────────────────────────────────────────

const (
	// DefaultPort, AirPlay alıcılarının varsayılan HTTP portudur.
	DefaultPort = 7000

	// Username, digest kimlik doğrulamasında kullanılan sabit kullanıcı adıdır.
	// Alıcılar yalnızca bu adı kabul eder.
	Username = "Airplay"

	// DefaultTimeout, tek bir HTTP isteği için varsayılan zaman aşımıdır.
	DefaultTimeout = 10 * time.Second

	// DefaultKeepAliveInterval, gösterilen fotoğrafın yeniden gönderilme aralığıdır.
	// Alıcı, fotoğrafı bu süreden biraz uzun bir boşta kalma sonrası kapatır.
	DefaultKeepAliveInterval = 5 * time.Second

	// DefaultStreamInterval, masaüstü akışında iki kare arasındaki bekleme süresidir.
	DefaultStreamInterval = 500 * time.Millisecond

	// DefaultJPEGQuality, kareler için kullanılan JPEG kalitesidir.
	DefaultJPEGQuality = 90

	// DefaultScreenWidth ve DefaultScreenHeight, Apple TV'nin 720p çözünürlüğüdür.
	DefaultScreenWidth  = 1280
	DefaultScreenHeight = 720

	// ServiceType, AirPlay alıcılarının DNS-SD servis tipidir.
	ServiceType = "_airplay._tcp"

	// userAgent, her istekte gönderilen sabit istemci kimliğidir.
	userAgent = "MediaControl/1.0"
)

// ─── HTTP Uç Noktaları ──────────────────────────────────────────────────────────

const (
	pathPhoto = "/photo"
	pathStop  = "/stop"

	headerTransition    = "X-Apple-Transition"
	headerSessionID     = "X-Apple-Session-ID"
	headerAuthorization = "Authorization"
	headerChallenge     = "WWW-Authenticate"
)

// ─── Durumlar ───────────────────────────────────────────────────────────────────

// State, arka plan gönderim döngüsünün durumunu gösterir.
type State int

const (
	StateIdle   State = iota // Aktif döngü yok
	StateActive              // Fotoğraf ya da masaüstü gönderiliyor
)

// String, State'in okunabilir adını döner.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// ─── Seçenek Yapıları ───────────────────────────────────────────────────────────

// ClientOption, Client yapılandırma seçeneklerini tanımlar.
// Functional Options pattern kullanılır.
type ClientOption func(*clientOptions)

type clientOptions struct {
	name              string
	timeout           time.Duration
	httpClient        *http.Client
	password          string
	passwordProvider  PasswordProvider
	geometry          Geometry
	keepAliveInterval time.Duration
	streamInterval    time.Duration
	jpegQuality       int
	capturer          ScreenCapturer
	logger            Logger
	onError           func(error)
	metrics           *Metrics
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		timeout:           DefaultTimeout,
		geometry:          DefaultGeometry,
		keepAliveInterval: DefaultKeepAliveInterval,
		streamInterval:    DefaultStreamInterval,
		jpegQuality:       DefaultJPEGQuality,
	}
}

// WithName, cihazın kullanıcıya gösterilen adını ayarlar.
// Parola sorulurken host ile birlikte gösterilir. Varsayılan değer host'tur.
func WithName(name string) ClientOption {
	return func(o *clientOptions) {
		o.name = name
	}
}

// WithTimeout, HTTP istekleri için zaman aşımı süresini ayarlar.
//
//	client := airplay.NewClient("192.168.1.20", airplay.DefaultPort,
//	    airplay.WithTimeout(5 * time.Second),
//	)
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// WithHTTPClient, isteklerde kullanılacak http.Client'ı ayarlar.
// Verilirse WithTimeout yok sayılır.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// WithPassword, alıcının parolasını önceden ayarlar.
// Bu durumda PasswordProvider hiç çağrılmaz.
func WithPassword(password string) ClientOption {
	return func(o *clientOptions) {
		o.password = password
	}
}

// WithPasswordProvider, 401 yanıtında parola sağlayacak kaynağı ayarlar.
func WithPasswordProvider(p PasswordProvider) ClientOption {
	return func(o *clientOptions) {
		o.passwordProvider = p
	}
}

// WithScreenSize, alıcının ekran boyutunu ayarlar. Varsayılan 1280x720'dir.
func WithScreenSize(width, height int) ClientOption {
	return func(o *clientOptions) {
		o.geometry = Geometry{Width: width, Height: height}
	}
}

// WithKeepAliveInterval, fotoğrafın yeniden gönderilme aralığını ayarlar.
func WithKeepAliveInterval(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.keepAliveInterval = d
	}
}

// WithStreamInterval, masaüstü akışında kareler arası bekleme süresini ayarlar.
func WithStreamInterval(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.streamInterval = d
	}
}

// WithJPEGQuality, JPEG kodlama kalitesini (1-100) ayarlar.
func WithJPEGQuality(q int) ClientOption {
	return func(o *clientOptions) {
		o.jpegQuality = q
	}
}

// WithCapturer, Desktop() tarafından kullanılacak ekran yakalayıcıyı ayarlar.
// Varsayılan olarak birincil ekran yakalanır.
func WithCapturer(c ScreenCapturer) ClientOption {
	return func(o *clientOptions) {
		o.capturer = c
	}
}

// WithLogger, özel bir loglama arayüzü ayarlar.
// Varsayılan olarak loglama devre dışıdır.
func WithLogger(l Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithErrorHandler, arka plan döngüsü ölümcül bir hatayla durduğunda
// çağrılacak fonksiyonu ayarlar. Fonksiyon döngünün goroutine'inde çalışır.
func WithErrorHandler(fn func(error)) ClientOption {
	return func(o *clientOptions) {
		o.onError = fn
	}
}

// WithMetrics, Prometheus metriklerini etkinleştirir.
func WithMetrics(m *Metrics) ClientOption {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// ─── Logger Arayüzü ─────────────────────────────────────────────────────────────

// Logger, kütüphanenin loglama arayüzüdür.
// stdlib log paketi veya zap.NewStdLog ile uyumludur.
type Logger interface {
	// Printf, formatlanmış bir log mesajı yazar.
	Printf(format string, v ...interface{})
}
