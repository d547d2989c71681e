package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api/scheduler"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/court"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

const keeper = models.Address("0x90f8bf6a479f320ead074411a4b0e7944ea8c9c1")

type closerMock struct {
	mock.Mock
}

func (m *closerMock) ExpiredCases(ctx context.Context) ([]models.Case, error) {
	ret := m.Called(ctx)
	cases, _ := ret.Get(0).([]models.Case)
	return cases, ret.Error(1)
}

func (m *closerMock) CloseCase(ctx context.Context, caller models.Address, caseID uint64) (models.Case, error) {
	ret := m.Called(ctx, caller, caseID)
	return ret.Get(0).(models.Case), ret.Error(1)
}

func TestSweep(t *testing.T) {
	m := &closerMock{}
	m.On("ExpiredCases", mock.Anything).Return([]models.Case{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil)
	m.On("CloseCase", mock.Anything, keeper, uint64(1)).Return(models.Case{ID: 1, IsResolved: true}, nil)
	m.On("CloseCase", mock.Anything, keeper, uint64(2)).Return(models.Case{}, court.ErrCaseClosed)
	m.On("CloseCase", mock.Anything, keeper, uint64(3)).Return(models.Case{}, errors.New("store down"))
	m.On("CloseCase", mock.Anything, keeper, uint64(4)).Return(models.Case{ID: 4, IsResolved: true}, nil)

	s := scheduler.NewScheduler(m, keeper, "@every 1m")
	assert.Equal(t, 2, s.Sweep(context.Background()))
	m.AssertNumberOfCalls(t, "CloseCase", 4)
}

func TestSweep_ListFailure(t *testing.T) {
	m := &closerMock{}
	m.On("ExpiredCases", mock.Anything).Return(nil, errors.New("store down"))

	s := scheduler.NewScheduler(m, keeper, "@every 1m")
	assert.Zero(t, s.Sweep(context.Background()))
	m.AssertNotCalled(t, "CloseCase", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := scheduler.NewScheduler(&closerMock{}, keeper, "not a schedule")
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := scheduler.NewScheduler(&closerMock{}, keeper, "@every 1h")
	require.NoError(t, s.Start())
	s.Stop()
}
