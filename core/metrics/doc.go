// Package metrics defines the sinks that record solver runs. A sink must
// record final RunResults and may additionally implement TrialRecorder,
// ActivationRecorder or RefreshRecorder to receive progress events.
// Implementations such as the Prometheus, InfluxDB and MQTT sinks live in
// infra/metrics and register themselves with RegisterMetricsSink; several
// configured sinks are combined into a MultiSink.
package metrics
