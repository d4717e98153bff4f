package metrics

import coremetrics "github.com/kilianp07/libscan/core/metrics"

type publisher interface {
	Topic(parts ...string) string
	Publish(topic, kind string, data any) error
}

// MQTTSink publishes run results, and optionally trials, as JSON messages.
// Runs go to <prefix>/runs/<dataset>, trials to <prefix>/trials/<dataset>.
type MQTTSink struct {
	pub    publisher
	trials bool
}

// NewMQTTSink wraps an mqtt publisher.
func NewMQTTSink(pub publisher, publishTrials bool) *MQTTSink {
	return &MQTTSink{pub: pub, trials: publishTrials}
}

type runPayload struct {
	RunID      string             `json:"run_id"`
	Dataset    string             `json:"dataset"`
	Method     string             `json:"method"`
	Score      int                `json:"score"`
	Libraries  int                `json:"libraries"`
	Books      int                `json:"books"`
	Trials     int                `json:"trials"`
	DurationMS int64              `json:"duration_ms"`
	Weights    map[string]float64 `json:"weights"`
}

type trialPayload struct {
	Method string `json:"method"`
	Trial  int    `json:"trial"`
	Score  int    `json:"score"`
	Best   int    `json:"best"`
}

// RecordRun publishes the run summary.
func (s *MQTTSink) RecordRun(res coremetrics.RunResult) error {
	w := res.Weights
	payload := runPayload{
		RunID:      res.RunID,
		Dataset:    res.Dataset,
		Method:     res.Method,
		Score:      res.Score,
		Libraries:  res.Libraries,
		Books:      res.Books,
		Trials:     res.Trials,
		DurationMS: res.Duration.Milliseconds(),
		Weights: map[string]float64{
			"score": w.Score, "rarity": w.Rarity, "value": w.Value,
			"books": w.Books, "horizon": w.Horizon, "signup": w.Signup,
		},
	}
	return s.pub.Publish(s.pub.Topic("runs", res.Dataset), "run", payload)
}

// RecordTrial publishes a trial when trial publishing is enabled.
func (s *MQTTSink) RecordTrial(ev coremetrics.TrialEvent) error {
	if !s.trials {
		return nil
	}
	return s.pub.Publish(s.pub.Topic("trials", ev.Dataset), "trial", trialPayload{
		Method: ev.Method,
		Trial:  ev.Trial,
		Score:  ev.Score,
		Best:   ev.Best,
	})
}
