// airplay, AirPlay alıcılarına fotoğraf gösteren ve masaüstünü yansıtan
// komut satırı aracıdır.
//
//	airplay -h 192.168.1.20 -p photo.jpg -t Dissolve
//	airplay -h 192.168.1.20:7000 -d
//	airplay -h 192.168.1.20 -s
//	airplay --search
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alparslanahmed/airplay"
)

// stopTimeout, çıkışta gönderilen POST /stop için üst sınırdır.
const stopTimeout = 5 * time.Second

// errUsage, eksik veya hatalı argümanlarda döner; çıkış kodu 2'dir.
var errUsage = errors.New("kullanım hatası")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options, komut satırı bayraklarıdır.
type options struct {
	configPath    string
	host          string
	stop          bool
	photo         string
	desktop       bool
	transition    string
	search        bool
	searchTimeout time.Duration
	passwordFile  string
	metricsAddr   string
	logLevel      string
	help          bool
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("airplay", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flagSet.StringVarP(&opts.host, "host", "h", "", "hostname or IP of the AirPlay device, optionally with :port")
	flagSet.BoolVarP(&opts.stop, "stop", "s", false, "stop the current AirPlay session")
	flagSet.StringVarP(&opts.photo, "photo", "p", "", "display a photo from file")
	flagSet.BoolVarP(&opts.desktop, "desktop", "d", false, "stream the desktop to the device")
	flagSet.StringVarP(&opts.transition, "transition", "t", "", "photo transition: None, SlideLeft, SlideRight, Dissolve")
	flagSet.BoolVar(&opts.search, "search", false, "list AirPlay devices on the local network")
	flagSet.DurationVar(&opts.searchTimeout, "search-timeout", time.Second, "how long to wait for discovery answers")
	flagSet.StringVar(&opts.passwordFile, "password-file", "", "read the device password from this file")
	flagSet.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flagSet.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.help, "help", false, "show help")
	return flagSet
}

func printUsage(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: airplay -h host[:port] [-s | -p photo | -d] [-t transition]")
	fmt.Fprintln(w, "       airplay --search")
	fmt.Fprintln(w)
	fmt.Fprint(w, flagSet.FlagUsages())
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := newFlagSet(&opts, stderr)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(flagSet, stdout)
			return nil
		}
		printUsage(flagSet, stderr)
		return errUsage
	}
	if opts.help {
		printUsage(flagSet, stdout)
		return nil
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, &opts, flagSet)

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.search {
		return runSearch(ctx, stdout, opts.searchTimeout)
	}

	if cfg.Host == "" || (!opts.stop && opts.photo == "" && !opts.desktop) {
		printUsage(flagSet, stderr)
		return errUsage
	}

	host, port, err := parseHost(cfg.Host)
	if err != nil {
		return err
	}
	transition, err := airplay.ParseTransition(cfg.Transition)
	if err != nil {
		return err
	}
	password, err := cfg.resolvePassword()
	if err != nil {
		return err
	}

	streamErrs := make(chan error, 1)
	clientOpts := []airplay.ClientOption{
		airplay.WithName(cfg.Name),
		airplay.WithTimeout(cfg.Timeout.Duration),
		airplay.WithScreenSize(cfg.ScreenWidth, cfg.ScreenHeight),
		airplay.WithKeepAliveInterval(cfg.KeepAliveInterval.Duration),
		airplay.WithStreamInterval(cfg.StreamInterval.Duration),
		airplay.WithJPEGQuality(cfg.JPEGQuality),
		airplay.WithLogger(zap.NewStdLog(logger)),
		airplay.WithErrorHandler(func(err error) {
			select {
			case streamErrs <- err:
			default:
			}
		}),
	}
	if password != "" {
		clientOpts = append(clientOpts, airplay.WithPassword(password))
	} else {
		clientOpts = append(clientOpts, airplay.WithPasswordProvider(airplay.NewConsolePasswordProvider()))
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		clientOpts = append(clientOpts, airplay.WithMetrics(airplay.NewMetrics(reg)))
		shutdown := serveMetrics(cfg.MetricsAddr, reg, sugar)
		defer shutdown()
	}

	client := airplay.NewClient(host, port, clientOpts...)
	sugar.Infow("AirPlay cihazı", "host", host, "port", port)

	switch {
	case opts.stop:
		stopClient(client)
		return nil

	case opts.photo != "":
		if err := client.Photo(ctx, opts.photo, transition); err != nil {
			return err
		}
		defer stopClient(client)
		fmt.Fprintln(stdout, "Press Enter to quit...")
		waitForEnter(ctx, stdin)
		return nil

	default:
		if err := client.Desktop(); err != nil {
			return err
		}
		defer stopClient(client)
		fmt.Fprintln(stdout, "Streaming desktop. Press Ctrl+C to quit...")
		select {
		case <-ctx.Done():
			sugar.Info("Kapatma sinyali alındı, akış durduruluyor")
			return nil
		case err := <-streamErrs:
			return fmt.Errorf("masaüstü akışı durdu: %w", err)
		}
	}
}

// applyFlags, komut satırında verilen bayrakları yapılandırmanın üzerine yazar.
func applyFlags(cfg *Config, opts *options, flagSet *pflag.FlagSet) {
	if flagSet.Changed("host") {
		cfg.Host = opts.host
	}
	if flagSet.Changed("transition") {
		cfg.Transition = opts.transition
	}
	if flagSet.Changed("password-file") {
		cfg.PasswordFile = opts.passwordFile
	}
	if flagSet.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}

// newLogger, ISO8601 zaman damgalı bir zap üretim logger'ı oluşturur.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("geçersiz log seviyesi %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// serveMetrics, metrik sunucusunu başlatır ve kapatma fonksiyonunu döner.
func serveMetrics(addr string, reg *prometheus.Registry, sugar *zap.SugaredLogger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		sugar.Infof("Metrik sunucusu %s üzerinde başlatılıyor", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorf("Metrik sunucusu başlatılamadı: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

// runSearch, ağdaki alıcıları listeler.
func runSearch(ctx context.Context, stdout io.Writer, timeout time.Duration) error {
	services, err := airplay.Search(ctx, timeout)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%-30s %-25s %-6s\n", "NAME", "HOST", "PORT")
	for _, s := range services {
		fmt.Fprintf(stdout, "%-30s %-25s %-6d\n", s.Name, s.Hostname, s.Port)
	}
	return nil
}

// stopClient, oturumu sınırlı bir süre içinde durdurur.
func stopClient(client *airplay.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	client.Stop(ctx)
}

// waitForEnter, bir satır okunana veya ctx iptal edilene kadar bekler.
func waitForEnter(ctx context.Context, stdin io.Reader) {
	lines := make(chan struct{})
	go func() {
		bufio.NewReader(stdin).ReadString('\n')
		close(lines)
	}()

	select {
	case <-lines:
	case <-ctx.Done():
	}
}
