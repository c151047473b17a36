package airplay

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// ─── Digest Kimlik Doğrulama ────────────────────────────────────────────────────
//
// AirPlay alıcıları RFC 2069 tarzı, qop içermeyen HTTP digest kullanır:
//
//	HA1      = MD5(Airplay:realm:parola)
//	HA2      = MD5(method:uri)
//	response = MD5(HA1:nonce:HA2)
//
// Alan sırası ve MD5 alıcılarla uyumluluk için sabittir; daha güçlü bir
// algoritma kullanılamaz. Parola hiçbir zaman açık olarak gönderilmez.

// challenge, WWW-Authenticate başlığından çözümlenen parametreleri tutar.
type challenge struct {
	Scheme string
	Realm  string
	Nonce  string

	// Params, realm ve nonce dahil tüm direktifleri içerir (opaque vb.).
	Params map[string]string
}

// parseChallenge, WWW-Authenticate başlık değerini ayrıştırır.
//
// Başlık formatı:
//
//	Digest realm="AirPlay", nonce="MTMzNTk1NTI3MyCZo..."
//
// İlk boşluğa kadar olan kısım şema, kalanı ", " ile ayrılmış key=value
// listesidir. Değerlerin etrafındaki tırnaklar temizlenir.
func parseChallenge(header string) (*challenge, error) {
	space := strings.IndexByte(header, ' ')
	if space <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedChallenge, header)
	}

	ch := &challenge{
		Scheme: header[:space],
		Params: make(map[string]string),
	}

	rest := strings.ReplaceAll(header[space+1:], "\r\n", " ")
	for _, item := range strings.Split(rest, ", ") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		ch.Params[key] = strings.Trim(value, `"`)
	}

	ch.Realm = ch.Params["realm"]
	ch.Nonce = ch.Params["nonce"]
	return ch, nil
}

// computeAuthorization, verilen challenge için Authorization başlık değerini
// hesaplar. Ağ veya durum yan etkisi yoktur.
func computeAuthorization(ch *challenge, password, method, uri string) string {
	ha1 := md5Hex(Username + ":" + ch.Realm + ":" + password)
	ha2 := md5Hex(method + ":" + uri)
	response := md5Hex(ha1 + ":" + ch.Nonce + ":" + ha2)

	return fmt.Sprintf(`Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s"`,
		Username, ch.Realm, ch.Nonce, uri, response)
}

// md5Hex, string'in MD5 özetini küçük harfli hex olarak döner.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
