package dispatch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/paceman/internal/executor"
	"github.com/studiowebux/paceman/internal/types"
)

// Notifier asks the interactive loop to render again. It must be safe to call from any goroutine.
type Notifier interface {
	RequestRepaint()
}

// NotifierFunc adapts a plain function to Notifier
type NotifierFunc func()

// RequestRepaint calls f
func (f NotifierFunc) RequestRepaint() {
	f()
}

// Builder turns a method and URL into an executable call
type Builder interface {
	Build(method types.Method, rawURL string) (executor.Call, error)
}

// Recorder keeps a log of executed calls. Record runs on the dispatch goroutine.
type Recorder interface {
	Record(req types.Request, outcome *types.Outcome) error
}

// Dispatcher starts requests off the interactive goroutine and publishes
// their outcome into a Slot.
//
// There is no generation tag: a slow request that was superseded by a newer
// Trigger can still overwrite the slot after the newer Trigger cleared it.
type Dispatcher struct {
	builder  Builder
	log      logrus.FieldLogger
	now      func() time.Time
	recorder Recorder
}

type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch events
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithRecorder records every executed call; build failures are not recorded
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = r
	}
}

// WithClock replaces time.Now for start/end timestamps
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// New creates a dispatcher that builds calls with builder
func New(builder Builder, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		builder: builder,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		d.log = discard
	}

	return d
}

// Trigger clears slot, builds the call and runs it in a new goroutine.
//
// It returns as soon as the call is built. A build failure is written into
// the slot before Trigger returns and nothing is started. Otherwise the
// goroutine writes exactly one outcome into the slot and then calls notify.
func (d *Dispatcher) Trigger(req types.Request, slot *Slot, notify Notifier) {
	snapshot := req.Clone()
	log := d.log.WithFields(logrus.Fields{
		"dispatch_id": uuid.NewString(),
		"method":      snapshot.Method.String(),
		"url":         snapshot.URL,
	})

	slot.Clear()

	call, err := d.builder.Build(snapshot.Method, snapshot.URL)
	if err != nil {
		log.WithError(err).Warn("request build failed")
		slot.Set(types.Failed(types.NewResponseError(err)))
		return
	}

	log.Debug("request dispatched")
	go d.run(snapshot, call, slot, notify, log)
}

func (d *Dispatcher) run(req types.Request, call executor.Call, slot *Slot, notify Notifier, log logrus.FieldLogger) {
	outcome := d.execute(call)

	if outcome.IsError() {
		log.WithField("error", outcome.Err.Message).Info("request failed")
	} else {
		log.WithFields(logrus.Fields{
			"status":      outcome.Response.Status,
			"duration_ms": outcome.Response.Duration().Milliseconds(),
		}).Info("request completed")
	}

	slot.Set(outcome)

	if d.recorder != nil {
		if err := d.recorder.Record(req, outcome); err != nil {
			log.WithError(err).Warn("failed to record history")
		}
	}

	if notify != nil {
		notify.RequestRepaint()
	}
}

// execute never panics; any failure becomes a ResponseError outcome
func (d *Dispatcher) execute(call executor.Call) (outcome *types.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = types.Failed(types.ResponseError{Message: fmt.Sprintf("request panicked: %v", r)})
		}
	}()

	start := d.now()

	raw, err := call.Execute(context.Background())
	if err != nil {
		return types.Failed(types.NewResponseError(err))
	}

	text, err := raw.Text()
	if err != nil {
		return types.Failed(types.NewResponseError(err))
	}

	end := d.now()

	return types.Succeeded(&types.Response{
		Status:        raw.Status,
		ContentLength: raw.ContentLength,
		Start:         start,
		End:           end,
		Text:          text,
		Headers:       raw.Headers,
	})
}
