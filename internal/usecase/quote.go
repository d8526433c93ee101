package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
)

// QuoteUseCase builds multi-option quotes for a client.
type QuoteUseCase interface {
	// BuildQuote fetches the priced detail of every option concurrently and
	// returns them sorted by sell price. One failing option fails the quote.
	BuildQuote(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error)
}

type quoteUseCase struct {
	provider domain.QuotationProvider
	timeout  time.Duration
	tracer   trace.Tracer
}

// NewQuoteUseCase creates a QuoteUseCase. If config is nil, default values are used.
func NewQuoteUseCase(provider domain.QuotationProvider, config *Config) QuoteUseCase {
	return &quoteUseCase{
		provider: provider,
		timeout:  mergeConfig(config).QuoteTimeout,
		tracer:   otel.Tracer("fare-quotation/usecase"),
	}
}

// BuildQuote implements QuoteUseCase.BuildQuote.
func (uc *quoteUseCase) BuildQuote(ctx context.Context, refs []domain.QuoteRef) ([]domain.Quotation, error) {
	if err := validateRefs(refs); err != nil {
		return nil, err
	}

	ctx, span := uc.tracer.Start(ctx, "usecase.BuildQuote")
	defer span.End()
	span.SetAttributes(attribute.Int("options", len(refs)))

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	results := make([]domain.Quotation, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			q, err := uc.provider.QuotationDetail(gctx, ref)
			if err != nil {
				return fmt.Errorf("option %d (%s): %w", i+1, ref.QuotationID, err)
			}
			results[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "quote option failed")
		logger.FromContext(ctx).Warn().Err(err).Int("options", len(refs)).Msg("quote build failed")
		return nil, err
	}

	return SortQuotations(results, domain.SortByPrice), nil
}

func validateRefs(refs []domain.QuoteRef) error {
	if len(refs) == 0 {
		return domain.NewValidationError("options", "at least one option is required")
	}
	if len(refs) > MaxQuoteOptions {
		return domain.NewValidationError("options", fmt.Sprintf("at most %d options are allowed", MaxQuoteOptions))
	}
	for i, ref := range refs {
		if strings.TrimSpace(ref.QuotationID) == "" {
			return domain.NewValidationError("options", fmt.Sprintf("option %d has no quotationId", i+1))
		}
	}
	return nil
}

// Ensure quoteUseCase implements QuoteUseCase at compile time.
var _ QuoteUseCase = (*quoteUseCase)(nil)
