package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
)

// flakyProfiles fails the first failReads allowance reads and every
// write attempt, counting each call, so retry behavior is observable.
type flakyProfiles struct {
	*fakeProfiles
	readCalls  int
	writeCalls int
	failReads  int
	failWrites bool
}

func newFlakyProfiles() *flakyProfiles {
	return &flakyProfiles{fakeProfiles: newFakeProfiles()}
}

func (f *flakyProfiles) GetAllowance(ctx context.Context, id string) (decimal.Decimal, bool, error) {
	f.readCalls++
	if f.readCalls <= f.failReads {
		return decimal.Zero, false, apperr.Unavailable("backend unreachable", nil)
	}
	return f.fakeProfiles.GetAllowance(ctx, id)
}

func (f *flakyProfiles) UpdateAllowance(ctx context.Context, id string, amount decimal.Decimal) (bool, error) {
	f.writeCalls++
	if f.failWrites {
		return false, apperr.Unavailable("backend unreachable", nil)
	}
	return f.fakeProfiles.UpdateAllowance(ctx, id, amount)
}

func newRetryingStore(t *testing.T, profiles *flakyProfiles, retries int) *BalanceStore {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBalanceStore(profiles, newMemKV(), time.Second, retries, log)
}

func TestReadRetriesTransientFailureThenSucceeds(t *testing.T) {
	profiles := newFlakyProfiles()
	profiles.failReads = 2
	profiles.allowances["u1"] = decimal.RequireFromString("42.00")

	store := newRetryingStore(t, profiles, 2)
	bal, err := store.Read(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "42.00", bal.Amount.StringFixed(2))
	assert.Equal(t, models.StorageRemote, bal.StorageMode)
	assert.Equal(t, 3, profiles.readCalls, "two transient failures, then success")
}

func TestReadRetriesAreBounded(t *testing.T) {
	profiles := newFlakyProfiles()
	profiles.failReads = 100

	store := newRetryingStore(t, profiles, 2)
	_, err := store.Read(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, apperr.IsUnavailable(err))
	assert.Equal(t, 3, profiles.readCalls, "initial attempt plus the configured retries, no more")
}

func TestReadDoesNotRetryWhenDisabled(t *testing.T) {
	profiles := newFlakyProfiles()
	profiles.failReads = 1

	store := newRetryingStore(t, profiles, 0)
	_, err := store.Read(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, 1, profiles.readCalls)
}

func TestWriteIsNeverRetried(t *testing.T) {
	profiles := newFlakyProfiles()
	profiles.failWrites = true
	profiles.allowances["u1"] = decimal.RequireFromString("10.00")

	store := newRetryingStore(t, profiles, 5)
	err := store.Write(context.Background(), models.Profile{ID: "u1", Username: "ade"}, decimal.RequireFromString("20.00"))
	require.Error(t, err)
	assert.True(t, apperr.IsUnavailable(err))
	assert.Equal(t, 1, profiles.writeCalls, "writes have no idempotency key, a single attempt only")
}

func TestReadRetrySchemaErrorIsNotRetried(t *testing.T) {
	profiles := newFlakyProfiles()
	profiles.schemaErr = true

	store := newRetryingStore(t, profiles, 5)
	bal, err := store.Read(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StorageFallback, bal.StorageMode)
	assert.Equal(t, 1, profiles.readCalls, "schema errors downgrade immediately, no retry")
}
