package metrics

import "github.com/kilianp07/libscan/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr, when set, serves /metrics during tune runs.
	PrometheusAddr string                 `json:"prometheus_addr"`
}
