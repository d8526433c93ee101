package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luckytour/fare-quotation-service/internal/domain"
	"github.com/luckytour/fare-quotation-service/internal/infrastructure/timeutil"
)

func bookingInput() BookingInput {
	return BookingInput{
		PNR:     " abc123 ",
		OrderID: "ORD-9",
		Ref:     domain.QuoteRef{SearchID: "S-1", QuotationID: "Q-1"},
		Passengers: []domain.BookingPassenger{
			{FirstName: "Ana", LastName: "Perez", Type: domain.PassengerAdult, DocumentNumber: "30111222"},
			{FirstName: "Juan", LastName: "Perez", Type: domain.PassengerChild},
			{FirstName: "Sol", LastName: "Perez", Type: domain.PassengerInfant},
		},
		Contact: domain.BookingContact{Name: "Ana Perez", Email: "ana@example.com"},
		Seller:  "ventas",
	}
}

func roundTripQuotation() domain.Quotation {
	out := createTestQuotation("Q-1", "AR", 2130, 540, 0, 22)
	back := createTestQuotation("Q-1", "AR", 2130, 540, 0, 23)
	back.Legs[0].Departure = time.Date(2025, 3, 20, 23, 0, 0, 0, time.UTC)
	back.Legs[0].Origin, back.Legs[0].Destination = "MIA", "EZE"
	out.Legs = append(out.Legs, back.Legs[0])
	return out
}

func TestBookingCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	repo := domain.NewMockBookingRepository(ctrl)
	clock := timeutil.NewMockClock(time.Date(2025, 2, 1, 15, 0, 0, 0, time.UTC))

	provider.EXPECT().QuotationDetail(gomock.Any(), domain.QuoteRef{SearchID: "S-1", QuotationID: "Q-1"}).Return(roundTripQuotation(), nil)

	var saved *domain.Booking
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, b *domain.Booking) error {
		saved = b
		return nil
	})

	b, err := NewBookingUseCase(provider, repo, clock, nil).Create(context.Background(), bookingInput())
	require.NoError(t, err)
	require.Same(t, saved, b)

	_, err = uuid.Parse(b.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", b.PNR)
	assert.Equal(t, domain.BookingStatusCreated, b.Status)
	assert.Equal(t, 1, b.Adults)
	assert.Equal(t, 1, b.Children)
	assert.Equal(t, 1, b.Infants)
	assert.Equal(t, "EZE", b.Origin)
	assert.Equal(t, "MIA", b.Destination)
	assert.Equal(t, "2025-03-08", b.DepartureDate)
	assert.Equal(t, "2025-03-20", b.ReturnDate)
	assert.Equal(t, "AR", b.Carrier)
	assert.Equal(t, 2130.0, b.SellPriceAmount)
	assert.Equal(t, "Q-1", b.Quotation.ID)
	assert.Len(t, b.Quotation.Legs, 2)
	assert.Equal(t, clock.Now(), b.CreatedAt)
}

func TestBookingCreate_ValidationHappensBeforeUpstream(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	repo := domain.NewMockBookingRepository(ctrl)
	provider.EXPECT().QuotationDetail(gomock.Any(), gomock.Any()).Times(0)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	uc := NewBookingUseCase(provider, repo, nil, nil)

	noPNR := bookingInput()
	noPNR.PNR = "  "
	_, err := uc.Create(context.Background(), noPNR)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	onlyChild := bookingInput()
	onlyChild.Passengers = onlyChild.Passengers[1:2]
	_, err = uc.Create(context.Background(), onlyChild)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestBookingCreate_SnapshotFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	repo := domain.NewMockBookingRepository(ctrl)
	provider.EXPECT().QuotationDetail(gomock.Any(), gomock.Any()).Return(domain.Quotation{}, domain.ErrQuotationNotFound)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	_, err := NewBookingUseCase(provider, repo, nil, nil).Create(context.Background(), bookingInput())
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}

func TestBookingCreate_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockQuotationProvider(ctrl)
	repo := domain.NewMockBookingRepository(ctrl)
	provider.EXPECT().QuotationDetail(gomock.Any(), gomock.Any()).Return(roundTripQuotation(), nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := NewBookingUseCase(provider, repo, nil, nil).Create(context.Background(), bookingInput())
	assert.ErrorContains(t, err, "disk full")
}

func TestBookingGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockBookingRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "b-1").Return(&domain.Booking{ID: "b-1"}, nil)
	repo.EXPECT().Get(gomock.Any(), "missing").Return(nil, domain.ErrBookingNotFound)

	uc := NewBookingUseCase(domain.NewMockQuotationProvider(ctrl), repo, nil, nil)

	b, err := uc.Get(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", b.ID)

	_, err = uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = uc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
