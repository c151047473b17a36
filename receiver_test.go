package airplay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// receivedRequest, sahte alıcının kaydettiği bir istektir.
type receivedRequest struct {
	Method        string
	Path          string
	Transition    string
	Authorization string
	SessionID     string
	UserAgent     string
	ContentLength int64
	Body          []byte
}

// fakeReceiver, digest doğrulaması yapan basit bir AirPlay alıcısıdır.
type fakeReceiver struct {
	server *httptest.Server

	mu       sync.Mutex
	password string
	realm    string
	nonce    string
	status   int
	requests []receivedRequest
	inflight int
	maxInfl  int
}

func newFakeReceiver(t *testing.T, password string) *fakeReceiver {
	t.Helper()
	r := &fakeReceiver{
		password: password,
		realm:    "AirPlay",
		nonce:    "d7a0b4e9c2f1",
		status:   http.StatusOK,
	}
	r.server = httptest.NewServer(http.HandlerFunc(r.handle))
	t.Cleanup(r.server.Close)
	return r
}

func (r *fakeReceiver) handle(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	r.inflight++
	if r.inflight > r.maxInfl {
		r.maxInfl = r.inflight
	}
	r.requests = append(r.requests, receivedRequest{
		Method:        req.Method,
		Path:          req.URL.Path,
		Transition:    req.Header.Get(headerTransition),
		Authorization: req.Header.Get(headerAuthorization),
		SessionID:     req.Header.Get(headerSessionID),
		UserAgent:     req.Header.Get("User-Agent"),
		ContentLength: req.ContentLength,
		Body:          body,
	})
	password, realm, nonce, status := r.password, r.realm, r.nonce, r.status
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inflight--
		r.mu.Unlock()
	}()

	if password != "" {
		want := computeAuthorization(&challenge{Realm: realm, Nonce: nonce}, password, req.Method, req.URL.RequestURI())
		if req.Header.Get(headerAuthorization) != want {
			w.Header().Set(headerChallenge, fmt.Sprintf(`Digest realm="%s", nonce="%s"`, realm, nonce))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}
	w.WriteHeader(status)
}

func (r *fakeReceiver) setNonce(nonce string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nonce = nonce
}

func (r *fakeReceiver) setStatus(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

func (r *fakeReceiver) received() []receivedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]receivedRequest(nil), r.requests...)
}

func (r *fakeReceiver) count(method, path string) int {
	n := 0
	for _, req := range r.received() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

func (r *fakeReceiver) maxInflight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxInfl
}

// hostPort, sunucu adresini NewClient'a verilecek parçalara ayırır.
func (r *fakeReceiver) hostPort(t *testing.T) (string, int) {
	t.Helper()
	u, err := url.Parse(r.server.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func (r *fakeReceiver) client(t *testing.T, opts ...ClientOption) *Client {
	t.Helper()
	host, port := r.hostPort(t)
	return NewClient(host, port, opts...)
}

// countingProvider, kaç kez çağrıldığını sayan bir parola sağlayıcısıdır.
type countingProvider struct {
	mu       sync.Mutex
	password string
	ok       bool
	calls    int
	lastHost string
	lastName string
}

func (p *countingProvider) Password(hostname, name string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.lastHost = hostname
	p.lastName = name
	return p.password, p.ok, nil
}

func (p *countingProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// testImage, tek renkli bir RGBA görsel oluşturur.
func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

func decodeJPEG(data []byte) (image.Image, error) {
	return jpeg.Decode(bytes.NewReader(data))
}
