package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flight-search/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func kathmandu() domain.Airport {
	return domain.Airport{SkyID: "KTM", EntityID: "95673486", Title: "Kathmandu (KTM)"}
}

func heathrow() domain.Airport {
	return domain.Airport{SkyID: "LHR", EntityID: "95565050", Title: "London Heathrow (LHR)"}
}

func validForm() domain.SearchForm {
	f := domain.NewSearchForm()
	f.From = kathmandu()
	f.To = heathrow()
	f.Departure = date(2025, 6, 10)
	f.Return = date(2025, 6, 20)
	return f
}

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe
}

// ---- NewSearchForm ---------------------------------------------------------

func TestNewSearchForm_Defaults(t *testing.T) {
	f := domain.NewSearchForm()

	assert.Equal(t, domain.RoundTrip, f.TripType)
	assert.Equal(t, 1, f.Passengers)
	assert.Nil(t, f.Departure)
	assert.Nil(t, f.Return)
}

// ---- Validate --------------------------------------------------------------

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validForm().Validate(today))
}

func TestValidate_EmptyFormRejected(t *testing.T) {
	err := domain.NewSearchForm().Validate(today)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fe := fieldErrors(t, err)
	assert.Equal(t, "Please select departure airport", fe[domain.FieldFrom])
	assert.Equal(t, "Please select destination airport", fe[domain.FieldTo])
	assert.Equal(t, "Please select a departure date", fe[domain.FieldDeparture])
	assert.Equal(t, "Return date is required for a round-trip", fe[domain.FieldReturn])
	assert.NotContains(t, fe, domain.FieldPassengers)
}

func TestValidate_AirportTypedButNotSelected(t *testing.T) {
	f := validForm()
	f.From = domain.Airport{Title: "Kathm"} // no SkyID: the user never picked a suggestion

	fe := fieldErrors(t, f.Validate(today))

	assert.Contains(t, fe, domain.FieldFrom)
	assert.NotContains(t, fe, domain.FieldTo)
}

func TestValidate_DepartureInPast(t *testing.T) {
	f := validForm()
	f.Departure = date(2025, 5, 31)

	fe := fieldErrors(t, f.Validate(today))

	assert.Equal(t, "Departure date cannot be in the past", fe[domain.FieldDeparture])
}

func TestValidate_DepartureToday(t *testing.T) {
	f := validForm()
	f.Departure = date(2025, 6, 1)

	// Today counts as "not in the past".
	assert.NoError(t, f.Validate(today))
}

func TestValidate_RoundTripRequiresReturn(t *testing.T) {
	f := validForm()
	f.Return = nil

	fe := fieldErrors(t, f.Validate(today))

	assert.Equal(t, "Return date is required for a round-trip", fe[domain.FieldReturn])
}

func TestValidate_OneWayWithoutReturn(t *testing.T) {
	f := validForm()
	f.TripType = domain.OneWay
	f.Return = nil

	assert.NoError(t, f.Validate(today))
}

func TestValidate_ReturnMustExceedDeparture(t *testing.T) {
	tests := []struct {
		name   string
		ret    *time.Time
		wantOK bool
	}{
		{"before departure", date(2025, 6, 9), false},
		{"same day as departure", date(2025, 6, 10), false},
		{"day after departure", date(2025, 6, 11), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Return = tt.ret

			err := f.Validate(today)

			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			fe := fieldErrors(t, err)
			assert.Equal(t, "Return date must be after departure", fe[domain.FieldReturn])
		})
	}
}

func TestValidate_NoPassengers(t *testing.T) {
	f := validForm()
	f.Passengers = 0

	fe := fieldErrors(t, f.Validate(today))

	assert.Equal(t, "At least one passenger is required", fe[domain.FieldPassengers])
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := domain.FieldErrors{"to": "b", "from": "a"}

	assert.Equal(t, "validation error: from: a; to: b", fe.Error())
}

// ---- Normalize -------------------------------------------------------------

func TestNormalize_OneWayClearsReturn(t *testing.T) {
	f := validForm()
	f.TripType = domain.OneWay

	f.Normalize()

	assert.Nil(t, f.Return)
}

func TestNormalize_UnknownTripTypeIsRoundTrip(t *testing.T) {
	f := validForm()
	f.TripType = "multi-city"

	f.Normalize()

	assert.Equal(t, domain.RoundTrip, f.TripType)
	assert.NotNil(t, f.Return)
}

// ---- Swap ------------------------------------------------------------------

func TestSwap_ExchangesCodeAndEntityID(t *testing.T) {
	f := validForm()

	f.Swap()

	assert.Equal(t, "LHR", f.From.SkyID)
	assert.Equal(t, "95565050", f.From.EntityID)
	assert.Equal(t, "London Heathrow (LHR)", f.From.Title)
	assert.Equal(t, "KTM", f.To.SkyID)
	assert.Equal(t, "95673486", f.To.EntityID)
}

func TestSwap_Twice(t *testing.T) {
	f := validForm()

	f.Swap()
	f.Swap()

	assert.Equal(t, validForm(), f)
}

// ---- Params ----------------------------------------------------------------

func TestParams_RoundTrip(t *testing.T) {
	p := validForm().Params("EUR")

	assert.Equal(t, "KTM", p.OriginSkyID)
	assert.Equal(t, "LHR", p.DestinationSkyID)
	assert.Equal(t, "95673486", p.OriginEntityID)
	assert.Equal(t, "95565050", p.DestinationEntityID)
	assert.Equal(t, *date(2025, 6, 10), p.Date)
	require.NotNil(t, p.ReturnDate)
	assert.Equal(t, *date(2025, 6, 20), *p.ReturnDate)
	assert.Equal(t, 1, p.Adults)
	assert.Equal(t, "EUR", p.Currency)
	assert.True(t, p.RoundTrip())
}

func TestParams_OneWayDropsReturn(t *testing.T) {
	f := validForm()
	f.TripType = domain.OneWay

	p := f.Params("")

	assert.Nil(t, p.ReturnDate)
	assert.Equal(t, domain.DefaultCurrency, p.Currency)
}
