package airplay

import "github.com/prometheus/client_golang/prometheus"

// Metrics, istemcinin Prometheus metriklerini tutar.
// nil bir *Metrics güvenle kullanılabilir; bu durumda hiçbir şey sayılmaz.
type Metrics struct {
	framesSent     prometheus.Counter
	frameBytes     prometheus.Counter
	frameErrors    prometheus.Counter
	authChallenges prometheus.Counter
	streamActive   prometheus.Gauge
}

// NewMetrics, metrikleri oluşturur ve verilen registry'e kaydeder.
//
//	reg := prometheus.NewRegistry()
//	client := airplay.NewClient(host, port, airplay.WithMetrics(airplay.NewMetrics(reg)))
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airplay_frames_sent_total",
			Help: "Total number of frames delivered to the receiver",
		}),
		frameBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airplay_frame_bytes_total",
			Help: "Total JPEG bytes delivered to the receiver",
		}),
		frameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airplay_frame_errors_total",
			Help: "Total number of frames that failed to encode or send",
		}),
		authChallenges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "airplay_auth_challenges_total",
			Help: "Total number of digest challenges received",
		}),
		streamActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "airplay_stream_active",
			Help: "Whether a keep-alive or desktop loop is running (1 = active)",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.framesSent, m.frameBytes, m.frameErrors, m.authChallenges, m.streamActive)
	}
	return m
}

func (m *Metrics) frameSent(size int) {
	if m == nil {
		return
	}
	m.framesSent.Inc()
	m.frameBytes.Add(float64(size))
}

func (m *Metrics) frameError() {
	if m == nil {
		return
	}
	m.frameErrors.Inc()
}

func (m *Metrics) authChallenge() {
	if m == nil {
		return
	}
	m.authChallenges.Inc()
}

func (m *Metrics) setStreamActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.streamActive.Set(1)
	} else {
		m.streamActive.Set(0)
	}
}
