package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dining-scout/internal/catalog"
	"github.com/pkordes/dining-scout/internal/domain"
)

func rowsFixture() []domain.RawRow {
	return []domain.RawRow{
		{"name": "Be Our Guest", "loc": "Magic Kingdom", "type": "Table Service", "id": "90002476"},
		{"name": "The Boathouse", "loc": "Disney Springs", "type": "Table Service", "id": "18395610"},
		{"name": "Casey's Corner", "loc": "Magic Kingdom", "type": "Counter Service"},
		{"name": "", "loc": "Epcot", "type": "Snack"},
		{"name": "Dole Whip (Aloha Isle)", "loc": "Magic Kingdom", "type": "Snack"},
	}
}

func TestLoad_Stats(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: rowsFixture(), Skipped: 2})

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, domain.LoadStats{Rows: 5, Venues: 4, SkippedMalformed: 2, DroppedNameless: 1}, c.Stats())
	assert.Equal(t, 3, c.Stats().Skipped())
	assert.False(t, c.LoadedAt().IsZero())
}

func TestLoad_PreservesOrder(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: rowsFixture()})

	var names []string
	for _, v := range c.Venues() {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Be Our Guest", "The Boathouse", "Casey's Corner", "Dole Whip (Aloha Isle)"}, names)
}

func TestLocations_SortedAndDistinct(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: rowsFixture()})

	assert.Equal(t, []string{"Disney Springs", "Magic Kingdom"}, c.Locations())
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: rowsFixture()})

	assert.Equal(t, []string{"Table Service", "Counter Service", "Snack"}, c.Categories())
	assert.True(t, c.AllCategories().Contains("Snack"))
	assert.Len(t, c.AllCategories(), 3)
}

func TestOptions_SkipBlankValues(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: []domain.RawRow{
		{"name": "Pop-up Cart", "loc": "", "type": ""},
		{"name": "Be Our Guest", "loc": "Magic Kingdom", "type": "Table Service"},
		{"name": "Mystery Kiosk", "loc": "  ", "type": "Snack"},
	}})

	assert.Equal(t, []string{"Magic Kingdom"}, c.Locations())
	assert.Equal(t, []string{"Table Service", "Snack"}, c.Categories())
	// The default selection still covers the uncategorized venue.
	assert.True(t, c.AllCategories().Contains(""))
	assert.Len(t, c.AllCategories(), 3)
}

func TestLoad_Idempotent(t *testing.T) {
	a := catalog.Load(domain.RowBatch{Rows: rowsFixture()})
	b := catalog.Load(domain.RowBatch{Rows: rowsFixture()})

	assert.Equal(t, a.Venues(), b.Venues())
	assert.Equal(t, a.ID(), b.ID())
}

func TestID_ChangesWithContent(t *testing.T) {
	a := catalog.Load(domain.RowBatch{Rows: rowsFixture()})
	rows := rowsFixture()
	rows[0]["id"] = "1"
	b := catalog.Load(domain.RowBatch{Rows: rows})

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestVenues_ReturnsCopies(t *testing.T) {
	c := catalog.Load(domain.RowBatch{Rows: rowsFixture()})

	vs := c.Venues()
	vs[0].Name = "mutated"
	*vs[0].ReservationID = 1

	got, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "Be Our Guest", got.Name)
	assert.Equal(t, int64(90002476), *got.ReservationID)
}

func TestNew_CopiesInput(t *testing.T) {
	venues := []domain.Venue{{Name: "A", Discounts: []string{"DVC"}}}
	c := catalog.New(venues, domain.LoadStats{Venues: 1})

	venues[0].Discounts[0] = "mutated"

	got, _ := c.At(0)
	assert.Equal(t, []string{"DVC"}, got.Discounts)
}

func TestAt_OutOfRange(t *testing.T) {
	c := catalog.Load(domain.RowBatch{})

	_, ok := c.At(0)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Locations())
	assert.Empty(t, c.Categories())
}
