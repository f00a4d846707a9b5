package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adserve/internal/core/port/mocks"
)

func TestExpiryWorkerRunOnce(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	locker := mocks.NewMockLocker(t)
	w := NewExpiryWorker(repo, locker, testLogger, time.Minute, time.Second, time.Minute)
	w.now = fixedNow

	released := false
	locker.EXPECT().TryLock(mock.Anything, sweepLockKey, time.Minute).
		Return(func() { released = true }, true, nil).Once()
	repo.EXPECT().ExpireOverdue(mock.Anything, testNow).Return([]int64{3, 7}, nil).Once()

	ids, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)
	assert.True(t, released)
}

func TestExpiryWorkerSkipsWithoutLease(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	locker := mocks.NewMockLocker(t)
	w := NewExpiryWorker(repo, locker, testLogger, time.Minute, time.Second, time.Minute)

	locker.EXPECT().TryLock(mock.Anything, sweepLockKey, mock.Anything).Return(nil, false, nil).Once()

	ids, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestExpiryWorkerPropagatesErrors(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	w := NewExpiryWorker(repo, nil, testLogger, time.Minute, time.Second, 0)

	boom := errors.New("boom")
	repo.EXPECT().ExpireOverdue(mock.Anything, mock.Anything).Return(nil, boom).Once()
	_, err := w.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)

	locker := mocks.NewMockLocker(t)
	w = NewExpiryWorker(repo, locker, testLogger, time.Minute, time.Second, 0)
	locker.EXPECT().TryLock(mock.Anything, sweepLockKey, mock.Anything).Return(nil, false, boom).Once()
	_, err = w.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestExpiryWorkerStartStop(t *testing.T) {
	e := newEnv(t)
	e.zone(t, "sidebar", 100)
	c, _ := e.active(t, 1000, "sidebar")

	w := NewExpiryWorker(e.store.Campaigns(), nil, testLogger, time.Hour, time.Second, 0)
	w.now = func() time.Time { return c.EndDate.Add(time.Second) }
	w.Start()
	w.Stop()
	w.Stop()

	got, err := e.store.Campaigns().Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "EXPIRED", string(got.Status))
}

func TestExpiryWorkerStopWithoutStart(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	w := NewExpiryWorker(repo, nil, testLogger, time.Millisecond, time.Second, 0)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a worker that never started")
	}

	// A stopped worker stays stopped: no sweep may reach the repository.
	w.Start()
	time.Sleep(20 * time.Millisecond)
	w.Stop()
}
