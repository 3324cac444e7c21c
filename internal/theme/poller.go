package theme

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

var ErrNoScheduler = errors.New("poller has no scheduler")

// Scheduler is the subset of the app scheduler a Poller needs.
type Scheduler interface {
	AddIntervalJob(name string, interval time.Duration, task func()) (gocron.Job, error)
	RemoveJob(id uuid.UUID) error
}

// Poller invokes a callback on a fixed cadence. A zero interval disables it.
type Poller struct {
	Name     string
	sched    Scheduler
	interval time.Duration
	callback func()
}

func NewPoller(sched Scheduler, interval time.Duration, callback func()) *Poller {
	return &Poller{
		Name:     "theme-poll",
		sched:    sched,
		interval: interval,
		callback: callback,
	}
}

// Enabled reports whether Start will register a job.
func (p *Poller) Enabled() bool {
	return p.interval > 0 && p.callback != nil
}

// Start registers the polling job and returns the function that removes it.
// The job is also removed when ctx is done. Once stop returns, the callback
// is not running and will not run again. The callback must not call stop.
func (p *Poller) Start(ctx context.Context) (func(), error) {
	if !p.Enabled() {
		return func() {}, nil
	}
	if p.sched == nil {
		return nil, ErrNoScheduler
	}

	var (
		mu      sync.RWMutex
		stopped bool
	)
	task := func() {
		mu.RLock()
		defer mu.RUnlock()
		if stopped {
			return
		}
		p.callback()
	}

	job, err := p.sched.AddIntervalJob(p.Name, p.interval, task)
	if err != nil {
		return nil, err
	}

	var once sync.Once
	removeJob := func() {
		once.Do(func() {
			mu.Lock()
			stopped = true
			mu.Unlock()
			_ = p.sched.RemoveJob(job.ID())
		})
	}
	cancelAfter := context.AfterFunc(ctx, removeJob)
	return func() {
		cancelAfter()
		removeJob()
	}, nil
}
