package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "cbrsa"

	resultAccepted = "accepted"
	resultRejected = "rejected"
)

// Recorder counts key-generation events. It satisfies cbrsa.Observer.
type Recorder struct {
	primeCandidates    *prometheus.CounterVec
	exponentCandidates *prometheus.CounterVec
	keysGenerated      *prometheus.CounterVec
	keygenDuration     prometheus.Histogram
}

// NewRecorder registers the key-generation collectors on reg. A nil reg uses a
// fresh private registry, which keeps repeated construction in tests from
// colliding on prometheus.DefaultRegisterer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Recorder{
		primeCandidates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "prime_candidates_total",
				Help:      "number of prime candidates tested, by outcome",
			},
			[]string{"result"},
		),
		exponentCandidates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exponent_candidates_total",
				Help:      "number of public exponent candidates drawn, by outcome",
			},
			[]string{"result"},
		),
		keysGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keys_generated_total",
				Help:      "number of key pairs generated, by prime size",
			},
			[]string{"bits"},
		),
		keygenDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "keygen_duration_seconds",
				Help:      "wall time of a complete key generation",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
	}
}

// PrimeCandidate records one primality test.
func (r *Recorder) PrimeCandidate(accepted bool) {
	r.primeCandidates.WithLabelValues(result(accepted)).Inc()
}

// ExponentCandidate records one public exponent draw.
func (r *Recorder) ExponentCandidate(accepted bool) {
	r.exponentCandidates.WithLabelValues(result(accepted)).Inc()
}

// KeyGenerated records a completed key pair.
func (r *Recorder) KeyGenerated(bits int, elapsed time.Duration) {
	r.keysGenerated.WithLabelValues(strconv.Itoa(bits)).Inc()
	r.keygenDuration.Observe(elapsed.Seconds())
}

func result(accepted bool) string {
	if accepted {
		return resultAccepted
	}
	return resultRejected
}
