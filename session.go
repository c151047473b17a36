package airplay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Response, alıcıdan dönen HTTP yanıtını taşır.
// 401 dışındaki durum kodları yorumlanmadan çağırana iletilir.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK, durum kodunun 2xx olup olmadığını döner.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Session, tek bir AirPlay alıcısıyla HTTP oturumunu ve kimlik doğrulama
// durumunu yönetir. Aynı anda yalnızca bir istek gönderilir; arka plan
// döngüsü ve ön plan çağrıları mu üzerinden sıraya girer.
type Session struct {
	// host ve port, alıcının adresidir.
	host string
	port int

	// name, parola sorulurken gösterilen cihaz adıdır.
	name string

	httpClient *http.Client
	logger     Logger
	metrics    *Metrics

	// mu, aşağıdaki alanları ve istek sırasını korur.
	mu sync.Mutex

	// password, saklanan parola. hasPassword false ise provider'a sorulur.
	password    string
	hasPassword bool
	provider    PasswordProvider

	// challenge, son 401 yanıtından çözümlenen parametreler.
	// nil değilse her isteğe önceden Authorization eklenir.
	challenge *challenge

	// authorization, son gönderilen Authorization başlığıdır.
	authorization string

	// sessionID, X-Apple-Session-ID başlığında gönderilir; Reset ile yenilenir.
	sessionID string
}

// newSession, seçeneklerden yeni bir Session oluşturur.
func newSession(host string, port int, opts *clientOptions) *Session {
	httpClient := opts.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.timeout}
	}

	name := opts.name
	if name == "" {
		name = host
	}

	return &Session{
		host:        host,
		port:        port,
		name:        name,
		httpClient:  httpClient,
		logger:      opts.logger,
		metrics:     opts.metrics,
		password:    opts.password,
		hasPassword: opts.password != "",
		provider:    opts.passwordProvider,
		sessionID:   uuid.New().String(),
	}
}

// Host, alıcının adresini döner.
func (s *Session) Host() string {
	return s.host
}

// Port, alıcının port numarasını döner.
func (s *Session) Port() int {
	return s.port
}

// Name, cihazın gösterilen adını döner.
func (s *Session) Name() string {
	return s.name
}

// ID, geçerli X-Apple-Session-ID değerini döner.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// SetPassword, parolayı ayarlar. Bir sonraki challenge'da kullanılır.
func (s *Session) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
	s.hasPassword = true
}

// SetPasswordProvider, parola sağlayıcıyı değiştirir.
func (s *Session) SetPasswordProvider(p PasswordProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

// Authenticated, saklanan bir challenge olup olmadığını döner.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge != nil
}

// Reset, saklanan challenge'ı temizler ve oturum kimliğini yeniler.
// Sonraki istek kimlik doğrulamasız başlar. Parola korunur.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenge = nil
	s.authorization = ""
	s.sessionID = uuid.New().String()
}

// Request, alıcıya tek bir mantıksal HTTP çağrısı yapar.
//
// Akış:
//  1. Saklı challenge varsa Authorization başlığı önceden eklenir
//  2. İstek gönderilir
//  3. 401 gelirse parola alınır, yeni challenge saklanır ve bir kez tekrar denenir
//  4. Tekrar denemede yine 401 gelirse ErrAuthenticationFailed döner
//
// Diğer tüm durum kodları Response içinde olduğu gibi döner.
func (s *Session) Request(ctx context.Context, method, uri string, body []byte, header http.Header) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(ctx, method, uri, body, header, true)
}

// do, Request'in kilit altında çalışan gövdesidir.
func (s *Session) do(ctx context.Context, method, uri string, body []byte, header http.Header, firstAttempt bool) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url(uri), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: istek oluşturulamadı: %w", ErrTransport, err)
	}

	for key, values := range header {
		req.Header[key] = append([]string(nil), values...)
	}
	if s.challenge != nil {
		s.authorization = computeAuthorization(s.challenge, s.password, method, uri)
		req.Header.Set(headerAuthorization, s.authorization)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(headerSessionID, s.sessionID)
	if body != nil {
		// net/http, Content-Length başlığını bu alandan yazar
		req.ContentLength = int64(len(body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, uri, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yanıt okunamadı: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
	}

	if !firstAttempt {
		// Hatalı parola bir sonraki challenge'da tekrar sorulsun
		s.password = ""
		s.hasPassword = false
		s.challenge = nil
		s.authorization = ""
		return nil, fmt.Errorf("%w (%s)", ErrAuthenticationFailed, s.display())
	}

	s.metrics.authChallenge()
	s.logf("%s %s: kimlik doğrulama istendi", method, uri)

	if err := s.obtainPassword(); err != nil {
		return nil, err
	}

	ch, err := parseChallenge(resp.Header.Get(headerChallenge))
	if err != nil {
		return nil, err
	}
	s.challenge = ch

	return s.do(ctx, method, uri, body, header, false)
}

// obtainPassword, saklı parolayı kullanır; yoksa provider'a sorar.
func (s *Session) obtainPassword() error {
	if s.hasPassword {
		return nil
	}
	if s.provider == nil {
		return fmt.Errorf("%w (%s)", ErrAuthenticationRequired, s.display())
	}

	password, ok, err := s.provider.Password(s.host, s.name)
	if err != nil {
		return fmt.Errorf("%w (%s): %w", ErrAuthenticationRequired, s.display(), err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrAuthenticationRequired, s.display())
	}

	s.password = password
	s.hasPassword = true
	return nil
}

// url, istek URI'sinden tam adresi oluşturur.
func (s *Session) url(uri string) string {
	return "http://" + net.JoinHostPort(s.host, strconv.Itoa(s.port)) + uri
}

// display, cihazı "ad (host)" ya da yalnızca host olarak gösterir.
func (s *Session) display() string {
	if s.name == s.host {
		return s.host
	}
	return s.name + " (" + s.host + ")"
}

// logf, yapılandırılmış logger varsa mesaj yazar.
func (s *Session) logf(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Printf("[airplay] "+format, v...)
	}
}
