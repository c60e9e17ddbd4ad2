// Package metrics exports key-generation counters to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	gen := cbrsa.NewKeyGenerator(cbrsa.Config{Observer: metrics.NewRecorder(reg)})
//
// Collected series:
//
//	cbrsa_prime_candidates_total{result="accepted"|"rejected"}
//	cbrsa_exponent_candidates_total{result="accepted"|"rejected"}
//	cbrsa_keys_generated_total{bits}
//	cbrsa_keygen_duration_seconds
package metrics
