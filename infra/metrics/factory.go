package metrics

import (
	"github.com/kilianp07/libscan/core/factory"
	coremetrics "github.com/kilianp07/libscan/core/metrics"
	"github.com/kilianp07/libscan/infra/mqtt"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			Buckets []float64 `json:"duration_buckets"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSinkWithRegistry(nil, c.Buckets)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})

	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var opts struct {
			PublishTrials bool `json:"publish_trials"`
		}
		if err := factory.Decode(conf, &opts); err != nil {
			return nil, err
		}
		pub, err := mqtt.NewPublisher(c)
		if err != nil {
			return nil, err
		}
		return NewMQTTSink(pub, opts.PublishTrials), nil
	})
}
