package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/logging"
)

type fakeGateway struct {
	gateway.Gateway

	rows     []gateway.RawRecord
	row      gateway.RawRecord
	queryErr error

	lastTable  string
	lastFilter map[string]string
}

func (f *fakeGateway) Query(ctx context.Context, table string, filter map[string]string) ([]gateway.RawRecord, error) {
	f.lastTable = table
	f.lastFilter = filter
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeGateway) QueryOne(ctx context.Context, table, id string) (gateway.RawRecord, error) {
	f.lastTable = table
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.row, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestGetAllMapsEveryRow(t *testing.T) {
	gw := &fakeGateway{rows: []gateway.RawRecord{
		{"id": "p1", "title": "Villa", "property_type": "house"},
		{"id": "p2", "title": "Studio", "property_type": "apartment"},
	}}
	s := NewService(gw, testLogger())

	got, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "p1", got[0].ID)
	require.Equal(t, "p2", got[1].ID)
	require.Equal(t, "properties", gw.lastTable)
	require.Nil(t, gw.lastFilter)
}

func TestGetAllEmptyIsNonNil(t *testing.T) {
	s := NewService(&fakeGateway{}, testLogger())

	got, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestGetAllTranslatesGatewayError(t *testing.T) {
	s := NewService(&fakeGateway{queryErr: gateway.ErrTimeout}, testLogger())

	_, err := s.GetAll(context.Background())
	require.Error(t, err)
	require.Equal(t, "Le serveur ne répond pas. Réessayez plus tard.", err.Error())
}

func TestGetAllUnknownErrorFallback(t *testing.T) {
	s := NewService(&fakeGateway{queryErr: errors.New("row decode failed")}, testLogger())

	_, err := s.GetAll(context.Background())
	require.Error(t, err)
	require.Equal(t, "Une erreur s'est produite lors du chargement des propriétés.", err.Error())
}

func TestGetByIDFound(t *testing.T) {
	gw := &fakeGateway{row: gateway.RawRecord{"id": "p1", "title": "Villa"}}
	s := NewService(gw, testLogger())

	got, err := s.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "p1", got.ID)
}

func TestGetByIDAbsentIsNilNil(t *testing.T) {
	s := NewService(&fakeGateway{queryErr: gateway.ErrNotFound}, testLogger())

	got, err := s.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetByOwnerFilters(t *testing.T) {
	gw := &fakeGateway{rows: []gateway.RawRecord{{"id": "p1", "owner_id": "u1"}}}
	s := NewService(gw, testLogger())

	got, err := s.GetByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, map[string]string{"owner_id": "u1"}, gw.lastFilter)
}
