// Package metrics records build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics are
// optional and never require nil checks at call sites:
//
//	svc := build.NewService(cfg).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A build is a short lived process, so the Prometheus recorder is exported
// through the node_exporter textfile collector with WriteTextfile instead of
// an HTTP endpoint.
package metrics
