// Package metrics exports constraint evaluation statistics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	engine := constraint.NewEngine(registry,
//		constraint.WithObserver(metrics.NewObserver(reg)),
//	)
//
// Exported series:
//   - validation_evaluations_total{constraint, outcome}
//   - validation_violations_total{constraint}
//   - validation_evaluation_duration_seconds{constraint}
package metrics
