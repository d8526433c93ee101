package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/logger"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

// BookingInput is what the agent supplies once the GDS issued a PNR.
type BookingInput struct {
	PNR        string
	OrderID    string
	Ref        domain.QuoteRef
	Passengers []domain.BookingPassenger
	Contact    domain.BookingContact
	Seller     string
}

// BookingUseCase records bookings against a chosen quotation.
type BookingUseCase interface {
	// Create snapshots the quotation's current detail and stores the booking.
	Create(ctx context.Context, in BookingInput) (*domain.Booking, error)

	// Get returns a stored booking or ErrBookingNotFound.
	Get(ctx context.Context, id string) (*domain.Booking, error)
}

type bookingUseCase struct {
	provider domain.QuotationProvider
	repo     domain.BookingRepository
	clock    timeutil.Clock
	timeout  time.Duration
	tracer   trace.Tracer
}

// NewBookingUseCase creates a BookingUseCase. A nil clock means the system clock.
func NewBookingUseCase(provider domain.QuotationProvider, repo domain.BookingRepository, clock timeutil.Clock, config *Config) BookingUseCase {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &bookingUseCase{
		provider: provider,
		repo:     repo,
		clock:    clock,
		timeout:  mergeConfig(config).QuoteTimeout,
		tracer:   otel.Tracer("fare-quotation/usecase"),
	}
}

// Create implements BookingUseCase.Create.
func (uc *bookingUseCase) Create(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	adults, children, infants := domain.CountPassengers(in.Passengers)
	b := &domain.Booking{
		ID:          uuid.NewString(),
		PNR:         strings.ToUpper(strings.TrimSpace(in.PNR)),
		OrderID:     strings.TrimSpace(in.OrderID),
		SearchID:    in.Ref.SearchID,
		QuotationID: in.Ref.QuotationID,
		Adults:      adults,
		Children:    children,
		Infants:     infants,
		Status:      domain.BookingStatusCreated,
		Passengers:  in.Passengers,
		Contact:     in.Contact,
		Seller:      in.Seller,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	ctx, span := uc.tracer.Start(ctx, "usecase.CreateBooking")
	defer span.End()
	span.SetAttributes(
		attribute.String("pnr", b.PNR),
		attribute.String("quotation_id", b.QuotationID),
	)

	fetchCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	q, err := uc.provider.QuotationDetail(fetchCtx, in.Ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "quotation snapshot failed")
		return nil, fmt.Errorf("snapshot quotation %s: %w", in.Ref.QuotationID, err)
	}
	applySnapshot(b, q)
	b.CreatedAt = uc.clock.Now().UTC()

	if err := uc.repo.Save(ctx, b); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "booking save failed")
		return nil, fmt.Errorf("save booking %s: %w", b.PNR, err)
	}

	logger.FromContext(ctx).Info().
		Str("booking_id", b.ID).
		Str("pnr", b.PNR).
		Str("quotation_id", b.QuotationID).
		Msg("booking recorded")

	return b, nil
}

// Get implements BookingUseCase.Get.
func (uc *bookingUseCase) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "is required")
	}
	return uc.repo.Get(ctx, id)
}

// applySnapshot copies the route, dates and price of q onto b and keeps q
// itself as the booking's snapshot.
func applySnapshot(b *domain.Booking, q domain.Quotation) {
	b.Quotation = q
	b.Carrier = q.ValidatingCarrier
	b.SellPriceAmount = q.SellPriceAmount
	b.Currency = q.Currency

	if len(q.Legs) == 0 {
		return
	}
	outbound := q.Legs[0]
	b.Origin = outbound.Origin
	b.Destination = outbound.Destination
	if !outbound.Departure.IsZero() {
		b.DepartureDate = outbound.Departure.Format(timeutil.DateLayout)
	}
	if len(q.Legs) > 1 && !q.Legs[1].Departure.IsZero() {
		b.ReturnDate = q.Legs[1].Departure.Format(timeutil.DateLayout)
	}
}

// Ensure bookingUseCase implements BookingUseCase at compile time.
var _ BookingUseCase = (*bookingUseCase)(nil)
