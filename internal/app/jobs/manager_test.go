package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/invigilate/internal/app/services"
)

type stubExams struct {
	services.ExamService
	calls []time.Time
	n     int
	err   error
}

func (s *stubExams) CompleteElapsedExams(_ context.Context, now time.Time) (int, error) {
	s.calls = append(s.calls, now)
	return s.n, s.err
}

func TestCompleteExamsUsesClock(t *testing.T) {
	stub := &stubExams{n: 2}
	m := NewManager(stub, "", time.UTC, zerolog.Nop())
	fixed := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	require.NoError(t, m.CompleteExams(context.Background()))
	assert.Equal(t, []time.Time{fixed}, stub.calls)

	stub.err = errors.New("store down")
	assert.Error(t, m.CompleteExams(context.Background()))
}

func TestStartRejectsBadSchedule(t *testing.T) {
	m := NewManager(&stubExams{}, "whenever", time.UTC, zerolog.Nop())
	assert.Error(t, m.Start())
}

func TestStartStop(t *testing.T) {
	m := NewManager(&stubExams{}, "0 */15 * * * *", time.UTC, zerolog.Nop())
	require.NoError(t, m.Start())
	assert.Len(t, m.cron.Entries(), 1)
	m.Stop()
}

func TestDisabledScheduleRegistersNothing(t *testing.T) {
	m := NewManager(&stubExams{}, "", time.UTC, zerolog.Nop())
	require.NoError(t, m.Start())
	assert.Empty(t, m.cron.Entries())
	m.Stop()
}
