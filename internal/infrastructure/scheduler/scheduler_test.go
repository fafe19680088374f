package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/pkg/config"
)

type countingReminders struct {
	calls int
	err   error
}

func (c *countingReminders) SendReminders(ctx context.Context) (int, error) {
	c.calls++
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sin deadline")
	}
	return 3, c.err
}

func TestStart_RegistraRecordatorios(t *testing.T) {
	r := &countingReminders{}
	s := New(config.SchedulerConfig{ReminderCron: "0 7 * * *", Timezone: "Asia/Kathmandu"}, r, nil)
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.Entries())
}

func TestStart_SinClinica(t *testing.T) {
	s := New(config.SchedulerConfig{ReminderCron: "0 7 * * *"}, nil, nil)
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Zero(t, s.Entries())
}

func TestStart_CronInvalido(t *testing.T) {
	s := New(config.SchedulerConfig{ReminderCron: "cada día", Timezone: "Marte/Olimpo"}, &countingReminders{}, nil)
	assert.ErrorContains(t, s.Start(), "REMINDER_CRON")
}

func TestSendReminders_ConTimeout(t *testing.T) {
	r := &countingReminders{}
	s := New(config.SchedulerConfig{}, r, nil)
	s.sendReminders()
	r.err = errors.New("mongo caído")
	s.sendReminders()
	assert.Equal(t, 2, r.calls)
}
