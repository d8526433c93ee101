package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const searchPayload = `{
	"searchId": "S-42",
	"minifiedQuotations": [
		{"quotationId": "Q-2", "validatingCarrier": "AA", "grandTotalSellingPriceAmount": 1200, "grandTotalSellingPriceCurrency": "USD", "legs": ["L-2"]},
		{"quotationId": "Q-1", "validatingCarrier": "CM", "grandTotalSellingPriceAmount": 980, "grandTotalSellingPriceCurrency": "USD", "legs": ["L-1"]},
		{"quotationId": "Q-X", "validatingCarrier": "AR", "error": true}
	],
	"legs": [
		{"legId": "L-1", "departureAirportCode": "EZE", "arrivalAirportCode": "MIA", "departureDate": "2026-03-28T01:00:00", "arrivalDate": "2026-03-28T12:00:00", "connectingCities": "PTY"},
		{"legId": "L-2", "departureAirportCode": "EZE", "arrivalAirportCode": "MIA", "departureDate": "2026-03-28T22:30:00", "arrivalDate": "2026-03-29T06:10:00", "totalDuration": 520}
	]
}`

func TestPrice_SingleNet(t *testing.T) {
	out, err := run(t, "", "price", "500", "--json")
	require.NoError(t, err)

	var lines []domain.PassengerFare
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 525.0, lines[0].SellPrice.Amount)
	assert.Equal(t, "USD 525", lines[0].Label)
}

func TestPrice_DiscountBranch(t *testing.T) {
	out, err := run(t, "", "price", "1000", "--commission", "90", "--json")
	require.NoError(t, err)

	var lines []domain.PassengerFare
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 980.0, lines[0].SellPrice.Amount)
}

func TestPrice_Lines(t *testing.T) {
	out, err := run(t, "", "price", "--line", "adt:2:500", "--line", "CHD:1:300:PNEG")
	require.NoError(t, err)

	assert.Contains(t, out, "USD 525 cada adulto")
	assert.Contains(t, out, "USD 325 menor")
	assert.Contains(t, out, "PNEG")
}

func TestPrice_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "nothing to price", args: []string{"price"}, want: "required"},
		{name: "both forms", args: []string{"price", "500", "--line", "ADT:1:500"}, want: "not both"},
		{name: "bad net", args: []string{"price", "abc"}, want: "invalid net amount"},
		{name: "short line", args: []string{"price", "--line", "ADT:1"}, want: "invalid line"},
		{name: "bad quantity", args: []string{"price", "--line", "ADT:x:500"}, want: "invalid quantity"},
		{name: "bad commission", args: []string{"price", "--line", "ADT:1:500:PUB:x"}, want: "invalid commission"},
		{name: "negative net", args: []string{"price", "--", "-10"}, want: "netAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalize_SearchFromStdin(t *testing.T) {
	out, err := run(t, searchPayload, "normalize", "-", "--json")
	require.NoError(t, err)

	var quotations []domain.Quotation
	require.NoError(t, json.Unmarshal([]byte(out), &quotations))
	require.Len(t, quotations, 2)
	assert.Equal(t, "Q-1", quotations[0].ID)
	assert.Equal(t, "S-42", quotations[0].SearchID)
	assert.Equal(t, 1, quotations[0].StopCount)
	assert.Equal(t, "Q-2", quotations[1].ID)
}

func TestNormalize_MaxStops(t *testing.T) {
	out, err := run(t, searchPayload, "normalize", "-", "--max-stops", "0", "--json")
	require.NoError(t, err)

	var quotations []domain.Quotation
	require.NoError(t, json.Unmarshal([]byte(out), &quotations))
	require.Len(t, quotations, 1)
	assert.Equal(t, "Q-2", quotations[0].ID)
}

func TestNormalize_SearchFromFileTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.json")
	require.NoError(t, os.WriteFile(path, []byte(searchPayload), 0o600))

	out, err := run(t, "", "normalize", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Q-1")
	assert.Contains(t, out, "USD 980")
	assert.Contains(t, out, "2 quotation(s)")
}

func TestNormalize_Detail(t *testing.T) {
	detail := `{
		"quotation": {"validatingCarrier": "CM", "grandTotalSellingPriceAmount": 1050, "grandTotalSellingPriceCurrency": "USD", "legs": ["L-1"]},
		"passengerFares": [{"passengerType": "ADT", "quantity": 2, "netAmount": 500, "fareType": "PUB"}],
		"legs": [{"legId": "L-1", "departureAirportCode": "EZE", "arrivalAirportCode": "MIA", "departureDate": "2026-03-28T01:00:00", "arrivalDate": "2026-03-28T12:00:00"}]
	}`

	out, err := run(t, detail, "normalize", "-", "--detail", "--search-id", "S-1", "--quotation-id", "Q-9", "--json")
	require.NoError(t, err)

	var quotations []domain.Quotation
	require.NoError(t, json.Unmarshal([]byte(out), &quotations))
	require.Len(t, quotations, 1)
	assert.Equal(t, "Q-9", quotations[0].ID)
	assert.Equal(t, "S-1", quotations[0].SearchID)
	require.Len(t, quotations[0].PassengerFares, 1)
	assert.Equal(t, "USD 525 cada adulto", quotations[0].PassengerFares[0].Label)
}

func TestNormalize_Errors(t *testing.T) {
	_, err := run(t, "", "normalize", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "reading")

	_, err = run(t, "{", "normalize", "-")
	assert.ErrorContains(t, err, "decoding search response")

	_, err = run(t, `{"quotation": {"error": true}}`, "normalize", "-", "--detail", "--quotation-id", "Q-1")
	assert.ErrorIs(t, err, domain.ErrQuotationNotFound)
}
