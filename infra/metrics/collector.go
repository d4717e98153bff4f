package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/libscan/core/events"
	coremetrics "github.com/kilianp07/libscan/core/metrics"
	"github.com/kilianp07/libscan/infra/logger"
	"github.com/kilianp07/libscan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and forwards progress
// events for dataset to the recorders sink implements. It stops when ctx
// is canceled, after handling the events already buffered. The returned
// channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink, dataset string) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("event-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case ev, ok := <-sub:
						if !ok {
							return
						}
						forward(log, sink, dataset, ev)
					default:
						return
					}
				}
			case ev, ok := <-sub:
				if !ok {
					return
				}
				forward(log, sink, dataset, ev)
			}
		}
	}()
	return done
}

func forward(log logger.Logger, sink coremetrics.MetricsSink, dataset string, ev eventbus.Event) {
	now := time.Now()
	var err error
	switch e := ev.(type) {
	case events.TrialEvent:
		if r, ok := sink.(coremetrics.TrialRecorder); ok {
			err = r.RecordTrial(coremetrics.TrialEvent{
				Dataset: dataset, Method: e.Method, Trial: e.Trial, Score: e.Score, Best: e.Best, Time: now,
			})
		}
	case events.ActivationEvent:
		if r, ok := sink.(coremetrics.ActivationRecorder); ok {
			err = r.RecordActivation(coremetrics.ActivationEvent{
				Dataset: dataset, LibraryID: e.LibraryID, Day: e.Day, QueueLen: e.QueueLen, Time: now,
			})
		}
	case events.RefreshEvent:
		if r, ok := sink.(coremetrics.RefreshRecorder); ok {
			err = r.RecordRefresh(coremetrics.RefreshEvent{
				Dataset: dataset, Day: e.Day, Activated: e.Activated, Candidates: e.Candidates, Time: now,
			})
		}
	}
	if err != nil {
		log.Warnf("record %T: %v", ev, err)
	}
}
