// Package scheduler запускает фоновые задачи по cron-расписанию.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appLog "github.com/Leganyst/florist-missions/internal/log"
)

// DefaultTimeout ограничивает один прогон задачи.
const DefaultTimeout = 2 * time.Minute

// Job — задача планировщика. Ошибка логируется, расписание продолжается.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	job     cron.Job
	timeout time.Duration
	name    string
}

// cronLogger пишет события robfig/cron через общий логгер.
type cronLogger struct{}

func (cronLogger) Info(msg string, kv ...any) {
	appLog.Debug("cron: "+msg, kv...)
}

func (cronLogger) Error(err error, msg string, kv ...any) {
	appLog.Error("cron: "+msg, err, kv...)
}

// New регистрирует job по расписанию spec (5 полей или @-дескриптор).
// Прогон, не успевший завершиться к следующему тику, не дублируется.
func New(name, spec string, loc *time.Location, job Job) (*Scheduler, error) {
	if job == nil {
		return nil, errors.New("scheduler: nil job")
	}
	if loc == nil {
		loc = time.UTC
	}

	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{
		cron:    c,
		timeout: DefaultTimeout,
		name:    name,
	}
	s.job = cron.NewChain(cron.Recover(logger)).Then(cron.FuncJob(s.run(job)))

	if _, err := c.AddJob(spec, s.job); err != nil {
		return nil, fmt.Errorf("scheduler: parse %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) run(job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()
		if err := job(ctx); err != nil {
			appLog.Error("scheduled job failed", err, "job", s.name)
			return
		}
		appLog.Debug("scheduled job done", "job", s.name, "took", time.Since(started).String())
	}
}

// Trigger выполняет задачу сразу, вне расписания.
func (s *Scheduler) Trigger() {
	s.job.Run()
}

// Next — время следующего запуска по расписанию (после Start).
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
	appLog.Info("scheduler started", "job", s.name, "next", s.Next().Format(time.RFC3339))
}

// Stop останавливает расписание и ждёт текущий прогон, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		appLog.Warn("scheduler stop timed out", "job", s.name)
	}
}
