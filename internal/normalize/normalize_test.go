package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/normalize"
)

func int64p(n int64) *int64 { return &n }

// ---- scenarios ---------------------------------------------------------------

func TestRow_TableServiceWithBlankCoordinates(t *testing.T) {
	v, ok := normalize.Row(domain.RawRow{
		"name": "Be Our Guest", "loc": "Magic Kingdom", "type": "Table Service",
		"id": "90002476", "lat": "", "lon": "",
	})

	require.True(t, ok)
	assert.Equal(t, "Be Our Guest", v.Name)
	assert.Equal(t, "Magic Kingdom", v.Location)
	assert.Equal(t, "Table Service", v.Category)
	require.NotNil(t, v.ReservationID)
	assert.Equal(t, int64(90002476), *v.ReservationID)
	assert.Nil(t, v.Coordinates)
}

func TestRow_BlankIDIsWalkUp(t *testing.T) {
	v, ok := normalize.Row(domain.RawRow{
		"name": "Casey's Corner", "loc": "Magic Kingdom", "type": "Counter Service", "id": "",
	})

	require.True(t, ok)
	assert.Nil(t, v.ReservationID)
	assert.False(t, v.Reservable())
}

func TestRow_OneBadCoordinateClearsBoth(t *testing.T) {
	v, ok := normalize.Row(domain.RawRow{"name": "Sanaa", "lat": "28.42", "lon": "abc"})

	require.True(t, ok)
	assert.Nil(t, v.Coordinates, "latitude alone must not survive")
}

// ---- column handling -------------------------------------------------------

func TestRow_PaddedAndAliasedColumns(t *testing.T) {
	v, ok := normalize.Row(domain.RawRow{
		"  Name ":     "  Space 220  ",
		"Location":    "Epcot",
		" category":   "Table Service",
		"disney_id":   "19515902",
		"latitude ":   "28.3747",
		"Longitude":   "-81.5494",
		"happy_hour":  "   ",
		"unexpected":  "ignored",
		"booking_url": "https://www.opentable.com/space-220",
	})

	require.True(t, ok)
	assert.Equal(t, "Space 220", v.Name)
	assert.Equal(t, "Epcot", v.Location)
	assert.Equal(t, "Table Service", v.Category)
	assert.Equal(t, int64p(19515902), v.ReservationID)
	require.NotNil(t, v.Coordinates)
	assert.InDelta(t, 28.3747, v.Coordinates.Lat, 1e-9)
	assert.InDelta(t, -81.5494, v.Coordinates.Lon, 1e-9)
	assert.Empty(t, v.HappyHour, "whitespace-only is absent")
	assert.Equal(t, "https://www.opentable.com/space-220", v.ExternalBookingURL)
}

func TestRow_CanonicalColumnBeatsAlias(t *testing.T) {
	for i := 0; i < 20; i++ {
		v, ok := normalize.Row(domain.RawRow{"location": "Epcot", "loc": "Magic Kingdom", "park": "EPCOT", "name": "x"})
		require.True(t, ok)
		require.Equal(t, "Magic Kingdom", v.Location)
	}
}

func TestRow_MissingColumnsDefaultToEmpty(t *testing.T) {
	v, ok := normalize.Row(domain.RawRow{"name": "Aloha Isle"})

	require.True(t, ok)
	assert.Empty(t, v.Location)
	assert.Empty(t, v.Category)
	assert.Empty(t, v.Slug)
	assert.Nil(t, v.ReservationID)
	assert.NotNil(t, v.Discounts)
	assert.Empty(t, v.Discounts)
	assert.Nil(t, v.Coordinates)
}

// ---- reservation id --------------------------------------------------------

func TestRow_ReservationID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *int64
	}{
		{"plain digits", "18395610", int64p(18395610)},
		{"float string", "18395610.0", int64p(18395610)},
		{"padded", "  42 ", int64p(42)},
		{"float value", 90002476.0, int64p(90002476)},
		{"int value", 7, int64p(7)},
		{"fraction truncates", "12.9", int64p(12)},
		{"exponent", "1e3", int64p(1000)},
		{"non numeric", "N/A", nil},
		{"blank", "", nil},
		{"nil", nil, nil},
		{"zero", "0", nil},
		{"negative", "-5", nil},
		{"nan", "NaN", nil},
		{"infinite", "Inf", nil},
		{"overflow", "1e30", nil},
		{"bool", true, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := normalize.Row(domain.RawRow{"name": "x", "id": tc.in})
			require.True(t, ok)
			assert.Equal(t, tc.want, v.ReservationID)
		})
	}
}

// ---- coordinates -----------------------------------------------------------

func TestRow_Coordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon any
		present  bool
	}{
		{"strings", "28.4177", "-81.5812", true},
		{"numbers", 28.4177, -81.5812, true},
		{"lat only", "28.4", "", false},
		{"lon only", nil, "-81.5", false},
		{"bad lon", "28.42", "abc", false},
		{"bad lat", "abc", "-81.5", false},
		{"lat out of range", "91", "0", false},
		{"lon out of range", "0", "181", false},
		{"nan", "NaN", "1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := normalize.Row(domain.RawRow{"name": "x", "lat": tc.lat, "lon": tc.lon})
			require.True(t, ok)
			assert.Equal(t, tc.present, v.Coordinates != nil)
		})
	}
}

// ---- discounts -------------------------------------------------------------

func TestRow_Discounts(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"empty blob", "", []string{}},
		{"single", "DVC (10%)", []string{"DVC (10%)"}},
		{"comma blob", "DVC (10%), Annual Pass (10%)", []string{"DVC (10%)", "Annual Pass (10%)"}},
		{"mixed delimiters", "DVC; Annual Pass | Disney Visa", []string{"DVC", "Annual Pass", "Disney Visa"}},
		{"comma inside parens", "Disney Visa (10%, in-park)", []string{"Disney Visa (10%, in-park)"}},
		{"blank items", " , ;DVC;; ", []string{"DVC"}},
		{"pre-split", []string{" DVC ", "", "Tables in Wonderland"}, []string{"DVC", "Tables in Wonderland"}},
		{"pre-split any", []any{"DVC", nil, "  "}, []string{"DVC"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := normalize.Row(domain.RawRow{"name": "x", "disc": tc.in})
			require.True(t, ok)
			assert.Equal(t, tc.want, v.Discounts)
		})
	}
}

// ---- Rows ------------------------------------------------------------------

func TestRows_DropsNamelessAndKeepsOrder(t *testing.T) {
	res := normalize.Rows([]domain.RawRow{
		{"name": "B"},
		{"name": "   "},
		{"loc": "Epcot"},
		{"name": "A"},
	})

	require.Len(t, res.Venues, 2)
	assert.Equal(t, "B", res.Venues[0].Name)
	assert.Equal(t, "A", res.Venues[1].Name)
	assert.Equal(t, 2, res.Dropped)
}

func TestRows_EmptyInput(t *testing.T) {
	res := normalize.Rows(nil)

	assert.NotNil(t, res.Venues)
	assert.Empty(t, res.Venues)
	assert.Zero(t, res.Dropped)
}

func TestRows_Idempotent(t *testing.T) {
	first := normalize.Rows([]domain.RawRow{
		{"name": " Be Our Guest ", "loc": "Magic Kingdom", "type": "Table Service", "id": "90002476.0",
			"slug": "be-our-guest-restaurant", "disc": "Disney Visa (10%)", "lat": "28.4162", "lon": "-81.5798"},
		{"name": "Casey's Corner", "loc": "Magic Kingdom", "type": "Counter Service", "id": "", "tips": " Hot dogs "},
		{"name": "Jaleo", "ot": "https://www.opentable.com/r/jaleo", "disc": []any{"Disney Visa (10%)"}, "hh": "Daily 11:30am-6pm"},
	})

	second := normalize.Rows(normalize.ToRows(first.Venues))

	assert.Equal(t, first.Venues, second.Venues)
	assert.Zero(t, second.Dropped)
}

func TestSplitList_UnbalancedParens(t *testing.T) {
	assert.Equal(t, []string{"a", "b (c"}, normalize.SplitList("a, b (c"))
	assert.Equal(t, []string{"a)", "b"}, normalize.SplitList("a), b"))
}
