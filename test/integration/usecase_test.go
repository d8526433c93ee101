package integration

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/luckytour/fare-quotation-service/internal/adapter/http"
	"github.com/luckytour/fare-quotation-service/internal/adapter/storage/memory"
	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
	"github.com/luckytour/fare-quotation-service/internal/usecase"
	"github.com/luckytour/fare-quotation-service/test/mock"
	"github.com/luckytour/fare-quotation-service/test/testutil"
)

const searchCacheKey = "fares:search:EZE-MIA:2026-03-28:2026-04-04:1-0-0"

func TestSearch_CachedAcrossRequests(t *testing.T) {
	gds := NewFakeGDS(t)
	cache, store := NewCache()
	ts := NewTestServer(NewGDSClient(gds), Options{Cache: cache})

	first := ts.SearchRequest(DefaultSearchRequest())
	require.Equal(t, http.StatusOK, first.Code, string(first.Body))
	assert.False(t, Decode[httpAdapter.SearchResponseDTO](t, first).Metadata.CacheHit)

	second := ts.SearchRequest(DefaultSearchRequest())
	require.Equal(t, http.StatusOK, second.Code, string(second.Body))
	body := Decode[httpAdapter.SearchResponseDTO](t, second)

	assert.True(t, body.Metadata.CacheHit)
	assert.Equal(t, "S-100", body.Metadata.SearchID)
	assert.Equal(t, 4, body.Metadata.UpstreamResults)
	assert.Equal(t, []string{"Q-AV", "Q-CM", "Q-AA"}, quotationIDs(body.Quotations))
	assert.Equal(t, 1, gds.Calls(mock.GDSSearchPath))

	keys := store.Keys()
	require.Contains(t, keys, searchCacheKey)
	assert.Equal(t, usecase.DefaultCacheTTL, keys[searchCacheKey])
	assert.Equal(t, 1, store.Sets())
}

func TestSearch_FiltersServedFromCachedBase(t *testing.T) {
	gds := NewFakeGDS(t)
	cache, store := NewCache()
	ts := NewTestServer(NewGDSClient(gds), Options{Cache: cache})

	direct := DefaultSearchRequest()
	direct.Filters = map[string]interface{}{"maxStops": 0}
	resp := ts.SearchRequest(direct)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	assert.Equal(t, []string{"Q-AA"}, quotationIDs(Decode[httpAdapter.SearchResponseDTO](t, resp).Quotations))

	byDuration := DefaultSearchRequest()
	byDuration.SortBy = "duration"
	resp = ts.SearchRequest(byDuration)
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	body := Decode[httpAdapter.SearchResponseDTO](t, resp)
	assert.True(t, body.Metadata.CacheHit)
	assert.Equal(t, []string{"Q-AA", "Q-CM", "Q-AV"}, quotationIDs(body.Quotations))
	assert.Equal(t, 1, gds.Calls(mock.GDSSearchPath))
	assert.Equal(t, 1, store.Sets())
}

func TestSearch_DifferentCriteriaMissTheCache(t *testing.T) {
	provider := mock.NewProvider("glas").WithQuotations(mock.SampleQuotations("CM", 2))
	cache, store := NewCache()
	ts := NewTestServer(provider, Options{Cache: cache})

	require.Equal(t, http.StatusOK, ts.SearchRequest(DefaultSearchRequest()).Code)

	twoAdults := DefaultSearchRequest()
	twoAdults.Adults = 2
	require.Equal(t, http.StatusOK, ts.SearchRequest(twoAdults).Code)

	assert.Equal(t, 2, provider.SearchCalls())
	assert.Len(t, store.Keys(), 2)
}

func TestSearch_CacheFailureFallsBackToUpstream(t *testing.T) {
	provider := mock.NewProvider("glas").WithQuotations(mock.SampleQuotations("CM", 2))
	cache, store := NewCache()
	store.WithError(errors.New("connection refused"))
	ts := NewTestServer(provider, Options{Cache: cache})

	for i := 0; i < 2; i++ {
		resp := ts.SearchRequest(DefaultSearchRequest())
		require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
		assert.False(t, Decode[httpAdapter.SearchResponseDTO](t, resp).Metadata.CacheHit)
	}
	assert.Equal(t, 2, provider.SearchCalls())
}

func TestSearch_ZeroTTLDisablesCache(t *testing.T) {
	provider := mock.NewProvider("glas").WithQuotations(mock.SampleQuotations("CM", 2))
	cache, store := NewCache()
	ts := NewTestServer(provider, Options{Cache: cache, Config: &usecase.Config{CacheTTL: 0}})

	require.Equal(t, http.StatusOK, ts.SearchRequest(DefaultSearchRequest()).Code)
	require.Equal(t, http.StatusOK, ts.SearchRequest(DefaultSearchRequest()).Code)

	assert.Equal(t, 2, provider.SearchCalls())
	assert.Zero(t, store.Sets())
}

func TestUseCase_SearchTimeout(t *testing.T) {
	provider := mock.NewProvider("glas").
		WithQuotations(mock.SampleQuotations("CM", 1)).
		WithDelay(200 * time.Millisecond)
	uc := usecase.NewQuotationSearchUseCase(provider, nil, &usecase.Config{SearchTimeout: 20 * time.Millisecond})

	_, err := uc.Search(context.Background(), DefaultSearchCriteria(), usecase.DefaultSearchOptions())

	require.Error(t, err)
	assert.True(t, domain.IsUpstreamTimeout(err))
}

func TestUseCase_SearchAgainstGDS(t *testing.T) {
	gds := NewFakeGDS(t)
	uc := usecase.NewQuotationSearchUseCase(NewGDSClient(gds), nil, nil)

	resp, err := uc.Search(context.Background(), DefaultSearchCriteria(), usecase.SearchOptions{
		Filters: &domain.FilterOptions{MaxPrice: testutil.Ptr(1000.0)},
		SortBy:  domain.SortByPrice,
	})

	require.NoError(t, err)
	require.Len(t, resp.Quotations, 2)
	assert.Equal(t, "Q-AV", resp.Quotations[0].ID)
	assert.Equal(t, "Q-CM", resp.Quotations[1].ID)
	assert.Equal(t, 2, resp.Metadata.TotalResults)
	assert.Equal(t, "S-100", resp.Quotations[0].SearchID)
}

func TestUseCase_QuoteFailsOnAnyOption(t *testing.T) {
	gds := NewFakeGDS(t)
	uc := usecase.NewQuoteUseCase(NewGDSClient(gds), nil)

	_, err := uc.BuildQuote(context.Background(), []domain.QuoteRef{
		{SearchID: "S-100", QuotationID: "Q-CM"},
		{SearchID: "S-100", QuotationID: "Q-ZZ"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	assert.Contains(t, err.Error(), "Q-ZZ")
}

func TestUseCase_BookingSnapshotsDetail(t *testing.T) {
	gds := NewFakeGDS(t)
	store := memory.NewBookingStore()
	uc := usecase.NewBookingUseCase(NewGDSClient(gds), store, timeutil.NewMockClock(TestNow), nil)

	b, err := uc.Create(context.Background(), usecase.BookingInput{
		PNR: "abc123",
		Ref: domain.QuoteRef{SearchID: "S-100", QuotationID: "Q-AA"},
		Passengers: []domain.BookingPassenger{
			{FirstName: "Ana", LastName: "Perez", Type: domain.PassengerAdult},
		},
		Contact: domain.BookingContact{Name: "Ana Perez", Email: "ana@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", b.PNR)
	assert.Equal(t, "AA", b.Carrier)
	assert.Equal(t, 1210.0, b.SellPriceAmount)
	assert.Equal(t, TestNow, b.CreatedAt)
	require.Len(t, b.Quotation.PassengerFares, 1)
	assert.Equal(t, "USD 1,080", b.Quotation.PassengerFares[0].Label)

	stored, err := uc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.PNR, stored.PNR)

	_, err = uc.Create(context.Background(), usecase.BookingInput{
		PNR:        "ZZZ999",
		Ref:        domain.QuoteRef{SearchID: "S-100", QuotationID: "Q-ZZ"},
		Passengers: []domain.BookingPassenger{{FirstName: "Ana", LastName: "Perez", Type: domain.PassengerAdult}},
		Contact:    domain.BookingContact{Name: "Ana Perez", Email: "ana@example.com"},
	})
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
	assert.Equal(t, 1, store.Len())
}
