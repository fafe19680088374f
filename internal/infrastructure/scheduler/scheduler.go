// Package scheduler ejecuta las tareas programadas con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Swasthya-api/pkg/config"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

// Reminders envía los recordatorios de dosis del día y devuelve cuántos salieron.
type Reminders interface {
	SendReminders(ctx context.Context) (int, error)
}

// Scheduler tareas programadas del back-office.
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	reminders Reminders
	log       *logger.Logger
	timeout   time.Duration
}

// New construye el scheduler. Una zona horaria inválida cae a UTC.
func New(cfg config.SchedulerConfig, reminders Reminders, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("scheduler")
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.Timezone).Msg("zona horaria inválida, se usa UTC")
		loc = time.UTC
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		cfg:       cfg,
		reminders: reminders,
		log:       log,
		timeout:   2 * time.Minute,
	}
}

// Start registra las tareas y arranca el cron. Sin clínica (reminders nil) no hay nada que programar.
func (s *Scheduler) Start() error {
	if s.reminders != nil && s.cfg.ReminderCron != "" {
		if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.sendReminders); err != nil {
			return fmt.Errorf("scheduler: REMINDER_CRON %q: %w", s.cfg.ReminderCron, err)
		}
		s.log.Info().Str("cron", s.cfg.ReminderCron).Msg("recordatorios de dosis programados")
	}
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

// Entries cantidad de tareas registradas.
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }

func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	sent, err := s.reminders.SendReminders(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("recordatorios de dosis")
		return
	}
	s.log.Info().Int("sent", sent).Dur("took", time.Since(start)).Msg("recordatorios de dosis enviados")
}
