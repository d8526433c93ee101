package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

func validCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        "EZE",
		Destination:   "MIA",
		DepartureDate: "2025-03-08",
		ReturnDate:    "2025-03-20",
		Adults:        1,
	}
}

func setupMockProvider(ctrl *gomock.Controller, result domain.SearchResult, err error) *domain.MockQuotationProvider {
	mock := domain.NewMockQuotationProvider(ctrl)
	mock.EXPECT().Name().Return("glas").AnyTimes()
	mock.EXPECT().Search(gomock.Any(), gomock.Any()).Return(result, err).AnyTimes()
	return mock
}

func TestQuotationSearch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{
		SearchID:      "S-1",
		Quotations:    testQuotations(),
		UpstreamCount: 5,
	}, nil)

	uc := NewQuotationSearchUseCase(provider, nil, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"av-2stop", "cm-1stop", "la-1stop", "aa-direct"}, ids(resp.Quotations))
	assert.Equal(t, "S-1", resp.Metadata.SearchID)
	assert.Equal(t, 4, resp.Metadata.TotalResults)
	assert.Equal(t, 5, resp.Metadata.UpstreamResults)
	assert.False(t, resp.Metadata.CacheHit)
	assert.Equal(t, "EZE", resp.SearchCriteria.Origin)
}

func TestQuotationSearch_FiltersAndSort(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{Quotations: testQuotations()}, nil)

	uc := NewQuotationSearchUseCase(provider, nil, nil)
	resp, err := uc.Search(context.Background(), validCriteria(), SearchOptions{
		Filters: &domain.FilterOptions{MaxStops: intPtr(1)},
		SortBy:  domain.SortByDuration,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"aa-direct", "cm-1stop", "la-1stop"}, ids(resp.Quotations))
	assert.Equal(t, 3, resp.Metadata.TotalResults)
}

func TestQuotationSearch_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{}, nil)

	resp, err := NewQuotationSearchUseCase(provider, nil, nil).Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)

	assert.NotNil(t, resp.Quotations)
	assert.Empty(t, resp.Quotations)
}

func TestQuotationSearch_ValidationErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), gomock.Any()).Times(0)

	uc := NewQuotationSearchUseCase(provider, nil, nil)

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		opts     SearchOptions
	}{
		{
			name:     "same origin and destination",
			criteria: domain.SearchCriteria{Origin: "EZE", Destination: "EZE", DepartureDate: "2025-03-08"},
		},
		{
			name:     "bad date",
			criteria: domain.SearchCriteria{Origin: "EZE", Destination: "MIA", DepartureDate: "08/03/2025"},
		},
		{
			name:     "negative max stops",
			criteria: validCriteria(),
			opts:     SearchOptions{Filters: &domain.FilterOptions{MaxStops: intPtr(-1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Search(context.Background(), tt.criteria, tt.opts)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestQuotationSearch_DefaultsAdults(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResult, error) {
			assert.Equal(t, 1, criteria.Adults)
			return domain.SearchResult{}, nil
		},
	)

	criteria := validCriteria()
	criteria.Adults = 0
	_, err := NewQuotationSearchUseCase(provider, nil, nil).Search(context.Background(), criteria, DefaultSearchOptions())
	require.NoError(t, err)
}

func TestQuotationSearch_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	upstreamErr := domain.NewProviderUnavailableError("glas")
	provider := setupMockProvider(ctrl, domain.SearchResult{}, upstreamErr)

	_, err := NewQuotationSearchUseCase(provider, nil, nil).Search(context.Background(), validCriteria(), DefaultSearchOptions())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestQuotationSearch_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResult, error) {
			<-ctx.Done()
			return domain.SearchResult{}, ctx.Err()
		},
	)

	uc := NewQuotationSearchUseCase(provider, nil, &Config{SearchTimeout: 20 * time.Millisecond})
	_, err := uc.Search(context.Background(), validCriteria(), DefaultSearchOptions())
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

func TestQuotationSearch_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), gomock.Any()).Times(0)

	criteria := validCriteria()
	cached := domain.NewSearchResponse(criteria, SortQuotations(testQuotations(), domain.SortByPrice), domain.SearchMetadata{
		SearchID:        "S-cached",
		UpstreamResults: 4,
	})

	cache := domain.NewMockSearchCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), criteria.CacheKey()).Return(&cached, nil)

	resp, err := NewQuotationSearchUseCase(provider, cache, nil).Search(context.Background(), criteria, SearchOptions{
		Filters: &domain.FilterOptions{Carriers: []string{"AA"}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Metadata.CacheHit)
	assert.Equal(t, "S-cached", resp.Metadata.SearchID)
	assert.Equal(t, []string{"aa-direct"}, ids(resp.Quotations))
	assert.Len(t, cached.Quotations, 4, "cached entry is not filtered in place")
}

func TestQuotationSearch_CacheMissStoresUnfilteredResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{SearchID: "S-2", Quotations: testQuotations()}, nil)

	criteria := validCriteria()
	cache := domain.NewMockSearchCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), criteria.CacheKey()).Return(nil, domain.ErrCacheMiss)
	cache.EXPECT().Set(gomock.Any(), criteria.CacheKey(), gomock.Any(), DefaultCacheTTL).DoAndReturn(
		func(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error {
			assert.Len(t, resp.Quotations, 4)
			assert.Equal(t, "av-2stop", resp.Quotations[0].ID)
			return nil
		},
	)

	resp, err := NewQuotationSearchUseCase(provider, cache, nil).Search(context.Background(), criteria, SearchOptions{
		Filters: &domain.FilterOptions{MaxStops: intPtr(0)},
	})
	require.NoError(t, err)

	assert.False(t, resp.Metadata.CacheHit)
	assert.Equal(t, []string{"aa-direct"}, ids(resp.Quotations))
}

func TestQuotationSearch_CacheFailuresAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{Quotations: testQuotations()}, nil)

	cache := domain.NewMockSearchCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	resp, err := NewQuotationSearchUseCase(provider, cache, nil).Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
	assert.Len(t, resp.Quotations, 4)
}

func TestQuotationSearch_CacheDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := setupMockProvider(ctrl, domain.SearchResult{}, nil)
	cache := domain.NewMockSearchCache(ctrl)

	_, err := NewQuotationSearchUseCase(provider, cache, &Config{CacheTTL: 0}).Search(context.Background(), validCriteria(), DefaultSearchOptions())
	require.NoError(t, err)
}
