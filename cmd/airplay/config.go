package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alparslanahmed/airplay"
)

// Config, TOML yapılandırma dosyasının içeriğidir.
// Komut satırı bayrakları dosyadaki değerleri ezer.
type Config struct {
	Host              string   `toml:"host"`
	Name              string   `toml:"name"`
	Password          string   `toml:"password"`
	PasswordFile      string   `toml:"password_file"`
	Transition        string   `toml:"transition"`
	ScreenWidth       int      `toml:"screen_width"`
	ScreenHeight      int      `toml:"screen_height"`
	KeepAliveInterval Duration `toml:"keep_alive_interval"`
	StreamInterval    Duration `toml:"stream_interval"`
	Timeout           Duration `toml:"timeout"`
	JPEGQuality       int      `toml:"jpeg_quality"`
	LogLevel          string   `toml:"log_level"`
	MetricsAddr       string   `toml:"metrics_addr"`
}

// Duration, TOML'da "5s" gibi yazılan süreleri çözümler.
type Duration struct {
	time.Duration
}

// UnmarshalText, encoding.TextUnmarshaler arayüzünü uygular.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfig, dosya verilmediğinde kullanılan değerlerdir.
func defaultConfig() Config {
	return Config{
		Transition:        string(airplay.TransitionNone),
		ScreenWidth:       airplay.DefaultScreenWidth,
		ScreenHeight:      airplay.DefaultScreenHeight,
		KeepAliveInterval: Duration{airplay.DefaultKeepAliveInterval},
		StreamInterval:    Duration{airplay.DefaultStreamInterval},
		Timeout:           Duration{airplay.DefaultTimeout},
		JPEGQuality:       airplay.DefaultJPEGQuality,
		LogLevel:          "info",
	}
}

// loadConfig, dosyayı varsayılanların üzerine okur. path boşsa yalnızca
// varsayılanlar döner.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("yapılandırma dosyası okunamadı (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("yapılandırma dosyasında bilinmeyen alan: %s", undecoded[0])
	}
	return cfg, nil
}

// resolvePassword, password_file verilmişse parolayı dosyadan okur.
func (c *Config) resolvePassword() (string, error) {
	if c.PasswordFile == "" {
		return c.Password, nil
	}

	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("parola dosyası okunamadı: %w", err)
	}
	password := strings.TrimRight(string(data), "\r\n")
	if password == "" {
		return "", fmt.Errorf("parola dosyası boş: %s", c.PasswordFile)
	}
	return password, nil
}

// parseHost, "host", "host:port" veya "[v6]:port" biçimindeki hedefi ayırır.
// Port yoksa airplay.DefaultPort kullanılır.
func parseHost(target string) (string, int, error) {
	if target == "" {
		return "", 0, errors.New("hedef cihaz belirtilmedi")
	}

	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		// Port içermeyen adres veya köşeli parantezsiz IPv6
		return strings.Trim(target, "[]"), airplay.DefaultPort, nil
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("geçersiz port: %q", portStr)
	}
	return host, port, nil
}
