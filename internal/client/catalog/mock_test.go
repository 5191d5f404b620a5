package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockServiceGetByID(t *testing.T) {
	s := NewMockService()

	p, err := s.GetByID(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "1", p.ID)

	p, err = s.GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestMockServiceGetByOwner(t *testing.T) {
	s := NewMockService()

	mine, err := s.GetByOwner(context.Background(), "user1")
	require.NoError(t, err)
	require.NotEmpty(t, mine)
	for _, p := range mine {
		require.Equal(t, "user1", p.OwnerID)
	}
}

func TestMockServiceHonorsCancellation(t *testing.T) {
	s := NewMockService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
