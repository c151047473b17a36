package airplay

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordProvider, alıcı parola istediğinde parolayı sağlar.
// ok false dönerse parola yoktur ve istek ErrAuthenticationRequired ile biter.
// Her yeni challenge için en fazla bir kez çağrılır.
type PasswordProvider interface {
	Password(hostname, name string) (password string, ok bool, err error)
}

// PasswordFunc, sıradan bir fonksiyonu PasswordProvider olarak kullanır.
type PasswordFunc func(hostname, name string) (string, bool, error)

// Password, PasswordProvider arayüzünü uygular.
func (f PasswordFunc) Password(hostname, name string) (string, bool, error) {
	return f(hostname, name)
}

// StaticPassword, her zaman aynı parolayı döner.
func StaticPassword(password string) PasswordProvider {
	return PasswordFunc(func(string, string) (string, bool, error) {
		return password, true, nil
	})
}

// ConsolePasswordProvider, parolayı terminalden sorar.
// In bir terminal ise yazılanlar ekrana yansıtılmaz.
type ConsolePasswordProvider struct {
	In  io.Reader
	Out io.Writer
}

// NewConsolePasswordProvider, stdin/stderr kullanan bir sağlayıcı oluşturur.
func NewConsolePasswordProvider() *ConsolePasswordProvider {
	return &ConsolePasswordProvider{In: os.Stdin, Out: os.Stderr}
}

// Password, PasswordProvider arayüzünü uygular.
// Boş giriş veya EOF, parola yok olarak kabul edilir.
func (p *ConsolePasswordProvider) Password(hostname, name string) (string, bool, error) {
	display := hostname
	if name != "" && name != hostname {
		display = fmt.Sprintf("%s (%s)", name, hostname)
	}
	fmt.Fprintf(p.Out, "Please input password for %s: ", display)

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", false, fmt.Errorf("parola okunamadı: %w", err)
		}
		return string(raw), len(raw) > 0, nil
	}

	line, err := readLine(p.In)
	if err != nil {
		return "", false, fmt.Errorf("parola okunamadı: %w", err)
	}
	return line, line != "", nil
}

// readLine, r'den '\n'e kadar bayt bayt okur. Satırdan sonrası r'de kalır.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
