package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_Validate(t *testing.T) {
	valid := func() *Booking {
		return &Booking{
			PNR:         "ABC123",
			QuotationID: "q-1",
			Passengers: []BookingPassenger{
				{FirstName: "Ana", LastName: "Perez", Type: PassengerAdult},
				{FirstName: "Tomas", LastName: "Perez", Type: PassengerInfant},
			},
		}
	}

	tests := []struct {
		name      string
		modify    func(*Booking)
		wantField string
	}{
		{name: "valid booking", modify: func(b *Booking) {}},
		{name: "missing pnr", modify: func(b *Booking) { b.PNR = " " }, wantField: "pnr"},
		{name: "missing quotation", modify: func(b *Booking) { b.QuotationID = "" }, wantField: "quotationId"},
		{name: "no passengers", modify: func(b *Booking) { b.Passengers = nil }, wantField: "passengers"},
		{name: "passenger without name", modify: func(b *Booking) { b.Passengers[0].LastName = "" }, wantField: "passengers"},
		{name: "no adult", modify: func(b *Booking) { b.Passengers[0].Type = PassengerChild }, wantField: "passengers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.modify(b)

			err := b.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestCountPassengers(t *testing.T) {
	adults, children, infants := CountPassengers([]BookingPassenger{
		{Type: PassengerAdult},
		{Type: ""},
		{Type: "cnn"},
		{Type: PassengerChild},
		{Type: PassengerInfant},
	})

	assert.Equal(t, 2, adults)
	assert.Equal(t, 2, children)
	assert.Equal(t, 1, infants)
}

func TestBookingPassenger_FullName(t *testing.T) {
	p := BookingPassenger{FirstName: "Ana Maria", LastName: "Perez"}
	assert.Equal(t, "PEREZ/ANA MARIA", p.FullName())
}

func TestQuotation_Derived(t *testing.T) {
	dep := time.Date(2026, 3, 28, 22, 40, 0, 0, time.UTC)
	q := Quotation{Legs: []ItineraryLeg{
		{Departure: dep, DurationMinutes: 540},
		{DurationMinutes: 600},
	}}

	assert.Equal(t, 1140, q.TotalDurationMinutes())
	assert.Equal(t, dep, q.Departure())
	assert.True(t, Quotation{}.Departure().IsZero())
	assert.Equal(t, "AR1302", FlightSegment{AirlineCode: "AR", FlightNumber: "1302"}.Designator())
}
