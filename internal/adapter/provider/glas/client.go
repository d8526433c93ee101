package glas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/retry"
)

const (
	addSearchPath = "/FlightSearchHistory/AddSearch"
	searchPath    = "/FlightSearch/RoundTripRemake"
	detailPath    = "/FlightPricing/QuotationDetail"

	maxBodyBytes = 32 << 20
)

// errTokenRejected marks a 401 on an authenticated call. The token is
// invalidated and the call retried with a fresh one.
var errTokenRejected = errors.New("bearer token rejected")

// Config holds the GDS client settings. Origin, when set, is sent as the
// Origin and Referer headers.
type Config struct {
	BaseURL              string
	CompanyAssociationID string
	Origin               string
	AlternateCurrency    string
	MaxResults           int
	Timeout              time.Duration
	Retry                retry.Config
}

// Client talks to the GDS REST API and normalizes its answers.
type Client struct {
	cfg        Config
	tokens     TokenProvider
	httpClient *http.Client
	tracer     trace.Tracer
}

var _ domain.QuotationProvider = (*Client)(nil)

// NewClient creates a GDS client. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, tokens TokenProvider, httpClient *http.Client) *Client {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.AlternateCurrency == "" {
		cfg.AlternateCurrency = DefaultCurrency
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = retry.UpstreamConfig
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
		tracer:     otel.Tracer("fare-quotation/glas"),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Search registers the search in the GDS history, runs it and returns the
// normalized, price-sorted quotations.
func (c *Client) Search(ctx context.Context, criteria domain.SearchCriteria) (domain.SearchResult, error) {
	ctx, span := c.tracer.Start(ctx, "glas.Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("origin", criteria.Origin),
		attribute.String("destination", criteria.Destination),
		attribute.String("trip_type", string(criteria.TripType())),
	)

	log := logger.FromContext(ctx).WithSupplier(ProviderName)
	model := newSearchModel(criteria, c.cfg.AlternateCurrency)

	if err := c.do(ctx, addSearchPath, newSearchHistoryRequest(model), nil); err != nil {
		span.AddEvent("glas.history.failed")
		log.Warn().Err(err).Msg("search history registration failed")
	}

	resp, err := retry.Do(ctx, c.retryConfig(), func(ctx context.Context) (*SearchResponse, error) {
		var out SearchResponse
		if err := c.do(ctx, searchPath, model, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		err = c.mapError(err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "search failed")
		log.Warn().Err(err).Msg("upstream search failed")
		return domain.SearchResult{}, err
	}

	if skipped := resp.Skipped(); skipped > 0 {
		log.Debug().
			Str("search_id", resp.SearchID.String()).
			Int("skipped", skipped).
			Msg("skipped quotation records that could not be decoded")
	}

	result := NormalizeSearch(resp, AssembleOptions{MaxResults: c.cfg.MaxResults})
	span.SetAttributes(
		attribute.Int("upstream_results", result.UpstreamCount),
		attribute.Int("results", len(result.Quotations)),
	)
	log.Debug().
		Str("search_id", result.SearchID).
		Int("upstream_results", result.UpstreamCount).
		Int("results", len(result.Quotations)).
		Msg("upstream search normalized")

	return result, nil
}

// QuotationDetail retrieves the priced detail of one quotation, penalties
// and passenger fares included.
func (c *Client) QuotationDetail(ctx context.Context, ref domain.QuoteRef) (domain.Quotation, error) {
	ctx, span := c.tracer.Start(ctx, "glas.QuotationDetail")
	defer span.End()
	span.SetAttributes(
		attribute.String("search_id", ref.SearchID),
		attribute.String("quotation_id", ref.QuotationID),
	)

	resp, err := retry.Do(ctx, c.retryConfig(), func(ctx context.Context) (*DetailResponse, error) {
		var out DetailResponse
		if err := c.do(ctx, detailPath, detailRequest{SearchID: ref.SearchID, QuotationID: ref.QuotationID}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		err = c.mapError(err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "quotation detail failed")
		logger.FromContext(ctx).WithSupplier(ProviderName).Warn().
			Err(err).
			Str("quotation_id", ref.QuotationID).
			Msg("upstream quotation detail failed")
		return domain.Quotation{}, err
	}

	if resp.QuotationMalformed {
		logger.FromContext(ctx).WithSupplier(ProviderName).Debug().
			Str("quotation_id", ref.QuotationID).
			Msg("quotation detail record could not be decoded")
	}

	q, err := NormalizeDetail(resp, ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "quotation detail unusable")
		return domain.Quotation{}, err
	}
	return q, nil
}

func (c *Client) retryConfig() retry.Config {
	return c.cfg.Retry.WithRetryIf(func(err error) bool {
		if errors.Is(err, errTokenRejected) {
			return true
		}
		return retry.ShouldRetry(err)
	})
}

// do posts body as JSON to path and decodes the answer into out, if given.
func (c *Client) do(ctx context.Context, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("encode %s request: %w", path, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return retry.NewPermanent(fmt.Errorf("build %s request: %w", path, err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.CompanyAssociationID != "" {
		req.Header.Set("Companyassociationid", c.cfg.CompanyAssociationID)
	}
	if c.cfg.Origin != "" {
		req.Header.Set("Origin", c.cfg.Origin)
		req.Header.Set("Referer", c.cfg.Origin+"/")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
		return fmt.Errorf("%w: %w", errTokenRejected, &retry.StatusError{StatusCode: resp.StatusCode, Body: snippet(raw)})
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &retry.StatusError{StatusCode: resp.StatusCode, Body: snippet(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return retry.NewPermanent(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// mapError translates transport and status failures into domain errors.
func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewProviderTimeoutError(ProviderName)
	}
	if errors.Is(err, context.Canceled) {
		return domain.NewProviderError(ProviderName, err)
	}
	if errors.Is(err, errTokenRejected) || errors.Is(err, domain.ErrUnauthorized) {
		return domain.NewProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err))
	}

	var se *retry.StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusNotFound:
			return domain.NewProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrQuotationNotFound, se))
		case retry.RetryableStatus(se.StatusCode):
			return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, se))
		default:
			return domain.NewProviderError(ProviderName, se)
		}
	}

	if retry.IsPermanent(err) {
		return domain.NewProviderError(ProviderName, err)
	}
	return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err))
}

func snippet(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
