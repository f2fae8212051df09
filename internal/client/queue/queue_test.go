package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9046balaji/Heart-sub003/internal/client/storage"
	"github.com/9046balaji/Heart-sub003/internal/models"
)

func TestQueue_AppendStampsEnqueuedAt(t *testing.T) {
	var captured *models.QueuedAction
	mockStorage := &storage.QueueStorageMock{
		AppendActionFunc: func(ctx context.Context, domain string, action *models.QueuedAction) error {
			captured = action
			return nil
		},
	}
	q := New(mockStorage, "medications")

	action, err := models.NewQueuedAction(models.ActionAdd, &models.Medication{LocalID: "temp-1", Name: "Aspirin", Dose: "100mg"})
	require.NoError(t, err)
	action.EnqueuedAt = time.Time{}

	require.NoError(t, q.Append(context.Background(), action))
	require.NotNil(t, captured)
	assert.False(t, captured.EnqueuedAt.IsZero())

	// The stamp is preserved once set
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	action.EnqueuedAt = stamp
	require.NoError(t, q.Append(context.Background(), action))
	assert.Equal(t, stamp, captured.EnqueuedAt)
}

func TestQueue_ScopesToDomain(t *testing.T) {
	mockStorage := &storage.QueueStorageMock{
		AppendActionFunc: func(ctx context.Context, domain string, action *models.QueuedAction) error {
			return nil
		},
		ListActionsFunc: func(ctx context.Context, domain string) ([]storage.QueuedItem, error) {
			return nil, nil
		},
		UpdateActionFunc: func(ctx context.Context, domain string, seq uint64, action *models.QueuedAction) error {
			return nil
		},
		RemoveActionFunc: func(ctx context.Context, domain string, seq uint64) error {
			return nil
		},
		CountActionsFunc: func(ctx context.Context, domain string) (int, error) {
			return 0, nil
		},
	}
	q := New(mockStorage, "medications")
	assert.Equal(t, "medications", q.Domain())

	ctx := context.Background()
	action, err := models.NewQueuedAction(models.ActionAdd, &models.Medication{LocalID: "temp-1", Name: "x", Dose: "1"})
	require.NoError(t, err)

	require.NoError(t, q.Append(ctx, action))
	_, err = q.Pending(ctx)
	require.NoError(t, err)
	require.NoError(t, q.Update(ctx, 1, action))
	require.NoError(t, q.Remove(ctx, 1))
	_, err = q.Len(ctx)
	require.NoError(t, err)

	assert.Equal(t, "medications", mockStorage.AppendActionCalls()[0].Domain)
	assert.Equal(t, "medications", mockStorage.ListActionsCalls()[0].Domain)
	assert.Equal(t, "medications", mockStorage.UpdateActionCalls()[0].Domain)
	assert.Equal(t, "medications", mockStorage.RemoveActionCalls()[0].Domain)
	assert.Equal(t, "medications", mockStorage.CountActionsCalls()[0].Domain)
}

func TestQueue_WrapsStorageFailures(t *testing.T) {
	wantErr := errors.New("db closed")
	mockStorage := &storage.QueueStorageMock{
		ListActionsFunc: func(ctx context.Context, domain string) ([]storage.QueuedItem, error) {
			return nil, wantErr
		},
		UpdateActionFunc: func(ctx context.Context, domain string, seq uint64, action *models.QueuedAction) error {
			return storage.ErrActionNotFound
		},
		RemoveActionFunc: func(ctx context.Context, domain string, seq uint64) error {
			return storage.ErrActionNotFound
		},
	}
	q := New(mockStorage, "medications")

	_, err := q.Pending(context.Background())
	assert.ErrorIs(t, err, wantErr)

	err = q.Update(context.Background(), 42, &models.QueuedAction{})
	assert.ErrorIs(t, err, storage.ErrActionNotFound)

	err = q.Remove(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrActionNotFound)
}
