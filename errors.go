package airplay

import "errors"

// Hata tipleri. errors.Is ile kontrol edilebilir.
var (
	// ErrMalformedChallenge, WWW-Authenticate başlığı çözümlenemediğinde döner.
	ErrMalformedChallenge = errors.New("airplay: bozuk kimlik doğrulama isteği")

	// ErrAuthenticationRequired, alıcı parola istediği halde parola
	// sağlanamadığında döner. İstek tekrar denenmez.
	ErrAuthenticationRequired = errors.New("airplay: parola gerekli ancak sağlanmadı")

	// ErrAuthenticationFailed, parola ile yapılan tekrar denemesi de 401
	// aldığında döner (parola hatalı).
	ErrAuthenticationFailed = errors.New("airplay: parola hatalı")

	// ErrEncodingFailed, kare JPEG olarak kodlanamadığında döner.
	ErrEncodingFailed = errors.New("airplay: görsel kodlanamadı")

	// ErrInvalidTransition, desteklenmeyen bir geçiş efekti verildiğinde döner.
	ErrInvalidTransition = errors.New("airplay: geçersiz geçiş efekti")

	// ErrTransport, bağlantı veya okuma/yazma hatalarını sarar.
	ErrTransport = errors.New("airplay: iletim hatası")
)
