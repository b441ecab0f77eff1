package snowfall

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gekko3d/snowfall/intro/sequence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaitAll(t *testing.T, s *AssetServer, now time.Time) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Await(ctx, func() time.Time { return now }))
}

func TestAssetServer_ReadyAfterAllTrackedIncludingFailures(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewAssetServer(sequence.NewSignal(), nil)
	defer s.Close()

	var applied []string
	ok := s.Load("model.glb", true, t0, func(ctx context.Context) (any, error) {
		return "mesh", nil
	}, func(v any) error {
		applied = append(applied, v.(string))
		return nil
	})
	bad := s.Load("missing.glb", true, t0, func(ctx context.Context) (any, error) {
		return nil, errors.New("not found")
	}, nil)
	s.Seal(t0)

	_, fired := s.Ready().Fired()
	assert.False(t, fired)

	done := t0.Add(2 * time.Second)
	awaitAll(t, s, done)

	at, fired := s.Ready().Fired()
	require.True(t, fired)
	assert.Equal(t, done, at)
	assert.Equal(t, []string{"mesh"}, applied)

	rec, found := s.Record(ok)
	require.True(t, found)
	assert.Equal(t, AssetLoaded, rec.Status)

	rec, found = s.Record(bad)
	require.True(t, found)
	assert.Equal(t, AssetFailed, rec.Status)
	assert.EqualError(t, rec.Err, "not found")
	assert.Equal(t, 0, s.InFlight())
}

func TestAssetServer_BackgroundLoadsDoNotGate(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewAssetServer(nil, nil)

	release := make(chan struct{})
	s.Load("music.mp3", false, t0, func(ctx context.Context) (any, error) {
		select {
		case <-release:
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}, nil)
	s.Seal(t0)

	at, fired := s.Ready().Fired()
	require.True(t, fired)
	assert.Equal(t, t0, at)
	assert.Equal(t, 1, s.InFlight())

	close(release)
	awaitAll(t, s, t0.Add(time.Second))
	assert.Equal(t, AssetLoaded, s.Records()[0].Status)
	s.Close()
}

func TestAssetServer_NotReadyBeforeSeal(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewAssetServer(nil, nil)
	defer s.Close()

	s.Load("a", true, t0, func(ctx context.Context) (any, error) { return 1, nil }, nil)
	awaitAll(t, s, t0)

	_, fired := s.Ready().Fired()
	assert.False(t, fired)

	s.Seal(t0.Add(time.Second))
	at, fired := s.Ready().Fired()
	require.True(t, fired)
	assert.Equal(t, t0.Add(time.Second), at)
}

func TestAssetServer_ApplyErrorFails(t *testing.T) {
	t0 := time.Unix(1000, 0)
	s := NewAssetServer(nil, nil)
	defer s.Close()

	id := s.Load("a", true, t0, func(ctx context.Context) (any, error) { return 1, nil }, func(any) error {
		return errors.New("bad mesh")
	})
	s.Seal(t0)
	awaitAll(t, s, t0)

	rec, _ := s.Record(id)
	assert.Equal(t, AssetFailed, rec.Status)
	assert.ErrorContains(t, rec.Err, "bad mesh")
	_, fired := s.Ready().Fired()
	assert.True(t, fired)
}

func TestAssetServer_PollIsNonBlocking(t *testing.T) {
	s := NewAssetServer(nil, nil)
	defer s.Close()
	assert.Equal(t, 0, s.Poll(time.Now()))
}

func TestAssetServer_IdsAreUUIDs(t *testing.T) {
	s := NewAssetServer(nil, nil)
	defer s.Close()
	id := s.Load("a", false, time.Now(), func(ctx context.Context) (any, error) { return nil, nil }, nil)
	_, err := uuid.Parse(string(id))
	assert.NoError(t, err)

	_, found := s.Record("nope")
	assert.False(t, found)
}

func TestAssetStatus_String(t *testing.T) {
	assert.Equal(t, "pending", AssetPending.String())
	assert.Equal(t, "failed", AssetFailed.String())
	assert.Equal(t, "unknown", AssetStatus(7).String())
}
