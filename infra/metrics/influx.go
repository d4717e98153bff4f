package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/libscan/core/metrics"
	"github.com/kilianp07/libscan/infra/logger"
)

// InfluxConfig holds the InfluxDB endpoint settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes runs and search trials to InfluxDB using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one solver_run point.
func (s *InfluxSink) RecordRun(res coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, runPoint(res))
}

// RecordTrial writes one search_trial point.
func (s *InfluxSink) RecordTrial(ev coremetrics.TrialEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("search_trial").
		AddTag("dataset", ev.Dataset).
		AddTag("method", ev.Method).
		AddField("best", ev.Best).
		AddField("score", ev.Score).
		AddField("trial", ev.Trial).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client resources.
func (s *InfluxSink) Close() { s.client.Close() }

func runPoint(res coremetrics.RunResult) *write.Point {
	w := res.Weights
	return write.NewPointWithMeasurement("solver_run").
		AddTag("dataset", res.Dataset).
		AddTag("method", res.Method).
		AddTag("run_id", res.RunID).
		AddField("books", res.Books).
		AddField("duration_ms", round3(res.Duration.Seconds()*1000)).
		AddField("libraries", res.Libraries).
		AddField("score", res.Score).
		AddField("trials", res.Trials).
		AddField("w_books", round3(w.Books)).
		AddField("w_horizon", round3(w.Horizon)).
		AddField("w_rarity", round3(w.Rarity)).
		AddField("w_score", round3(w.Score)).
		AddField("w_signup", round3(w.Signup)).
		AddField("w_value", round3(w.Value)).
		SetTime(res.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
