// Package metrics provides the Prometheus, InfluxDB and MQTT sinks for
// core/metrics, registers them under the names "prometheus", "influx" and
// "mqtt", and forwards event bus progress to them.
package metrics
