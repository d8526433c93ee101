package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

// fakeClient is an in-memory stand-in for a Redis server.
type fakeClient struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failErr != nil {
		return redis.NewStringResult("", f.failErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failErr != nil {
		return redis.NewStatusResult("", f.failErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Ping(ctx context.Context) *redis.StatusCmd {
	if f.failErr != nil {
		return redis.NewStatusResult("", f.failErr)
	}
	return redis.NewStatusResult("PONG", nil)
}

func sampleResponse() *domain.SearchResponse {
	dep := time.Date(2026, 3, 28, 22, 40, 0, 0, time.UTC)
	resp := domain.NewSearchResponse(
		domain.SearchCriteria{Origin: "BUE", Destination: "MIA", DepartureDate: "2026-03-28", Adults: 1},
		[]domain.Quotation{{
			ID:                "Q-1",
			ValidatingCarrier: "CM",
			SellPriceAmount:   1035,
			Currency:          "USD",
			Legs: []domain.ItineraryLeg{{
				Origin: "EZE", Destination: "MIA",
				Departure: dep, Arrival: dep.Add(13 * time.Hour),
				DurationMinutes: 780, StopCount: 1, ConnectingCities: []string{"PTY"},
			}},
		}},
		domain.SearchMetadata{SearchID: "S-1", UpstreamResults: 4, SearchTimeMs: 900},
	)
	return &resp
}

func TestSearchCache_SetThenGet(t *testing.T) {
	client := newFakeClient()
	cache := NewSearchCache(client, "")
	ctx := context.Background()

	want := sampleResponse()
	require.NoError(t, cache.Set(ctx, "BUE-MIA", want, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, client.ttls[DefaultKeyPrefix+"BUE-MIA"])

	got, err := cache.Get(ctx, "BUE-MIA")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSearchCache_Miss(t *testing.T) {
	cache := NewSearchCache(newFakeClient(), "test:")

	_, err := cache.Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestSearchCache_NonPositiveTTLSkipsWrite(t *testing.T) {
	client := newFakeClient()
	cache := NewSearchCache(client, "")

	require.NoError(t, cache.Set(context.Background(), "k", sampleResponse(), 0))
	require.NoError(t, cache.Set(context.Background(), "k", sampleResponse(), -time.Second))
	require.NoError(t, cache.Set(context.Background(), "k", nil, time.Minute))
	assert.Empty(t, client.data)
}

func TestSearchCache_ServerErrors(t *testing.T) {
	client := newFakeClient()
	client.failErr = errors.New("connection refused")
	cache := NewSearchCache(client, "")
	ctx := context.Background()

	_, err := cache.Get(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)

	assert.Error(t, cache.Set(ctx, "k", sampleResponse(), time.Minute))
	assert.Error(t, cache.Ping(ctx))
}

func TestSearchCache_CorruptEntry(t *testing.T) {
	client := newFakeClient()
	client.data[DefaultKeyPrefix+"k"] = "{not json"

	_, err := NewSearchCache(client, "").Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}
