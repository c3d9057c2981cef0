package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-digest/internal/domain"
	"github.com/jsamuelsen/quote-digest/internal/ports"
)

var _ ports.RecordStore = (*Store)(nil)

func TestStore_Users(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.FindUserByEmail(ctx, "a@b.com")
	require.True(t, domain.IsNotFound(err))

	created, err := s.CreateUser(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.FindUserByEmail(ctx, "A@B.com")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.CreateUser(ctx, "a@B.COM")
	assert.True(t, domain.IsConflict(err))
}

func TestStore_UploadsAndQuotes(t *testing.T) {
	s := New()
	ctx := context.Background()

	up, err := s.CreateUpload(ctx, "user-1", "quotes.txt")
	require.NoError(t, err)
	assert.Equal(t, "user-1", up.UserID)

	stored, err := s.InsertQuotes(ctx, []domain.StoredQuote{
		{UserID: "user-1", UploadID: up.ID, Content: "Q1"},
		{UserID: "user-1", UploadID: up.ID, Content: "Q2", Author: "S"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)

	snap := s.Snapshot()
	assert.Len(t, snap.Uploads, 1)
	assert.Equal(t, stored, snap.Quotes)
}

func TestStore_SavePreferences_Replaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	days := []int{1, 3}
	require.NoError(t, s.SavePreferences(ctx, &domain.Preferences{
		UserID: "u", DeliveryTime: "08:00", Timezone: "UTC", Frequency: domain.FrequencyCustom, CustomDays: days,
	}))
	days[0] = 6

	require.NoError(t, s.SavePreferences(ctx, &domain.Preferences{
		UserID: "u", DeliveryTime: "09:00", Timezone: "UTC", Frequency: domain.FrequencyDaily,
	}))

	snap := s.Snapshot()
	require.Len(t, snap.Preferences, 1)
	assert.Equal(t, "09:00", snap.Preferences[0].DeliveryTime)
	assert.Nil(t, snap.Preferences[0].CustomDays)
}

func TestStore_Check(t *testing.T) {
	s := New()
	require.NoError(t, s.Check(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.Check(ctx))
}
