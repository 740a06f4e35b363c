package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/dining-scout/internal/domain"
	"github.com/pkordes/dining-scout/internal/search"
)

func venuesFixture() []domain.Venue {
	return []domain.Venue{
		{Name: "Be Our Guest", Location: "Magic Kingdom", Category: "Table Service"},
		{Name: "STK Steakhouse", Location: "Disney Springs", Category: "Table Service", Tips: "Happy hour at the bar"},
		{Name: "Casey's Corner", Location: "Magic Kingdom", Category: "Counter Service", Tips: "Try the corn dog nuggets"},
		{Name: "Space 220", Location: "Epcot", Category: "Table Service"},
		{Name: "Dole Whip (Aloha Isle)", Location: "Magic Kingdom", Category: "Snack"},
		{Name: "Everything Pop", Location: "All", Category: "Counter Service"},
	}
}

func names(vs []domain.Venue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

func allCategories() domain.CategorySet {
	return domain.NewCategorySet("Table Service", "Counter Service", "Snack")
}

func TestQuery_NoRestriction(t *testing.T) {
	got := search.Query(venuesFixture(), domain.Query{
		Location:   domain.AnyLocation(),
		Categories: allCategories(),
	})

	assert.Equal(t, names(venuesFixture()), names(got))
}

func TestQuery_LocationExactMatch(t *testing.T) {
	q := domain.Query{Location: domain.LocationIs("Magic Kingdom"), Categories: allCategories()}

	got := search.Query(venuesFixture(), q)

	assert.Equal(t, []string{"Be Our Guest", "Casey's Corner", "Dole Whip (Aloha Isle)"}, names(got))
}

func TestQuery_LocationNoPartialOrCaseInsensitiveMatch(t *testing.T) {
	for _, loc := range []string{"Magic", "magic kingdom", "Kingdom"} {
		got := search.Query(venuesFixture(), domain.Query{Location: domain.LocationIs(loc), Categories: allCategories()})
		assert.Empty(t, got, "location %q", loc)
	}
}

func TestQuery_LocationNamedAllIsARealValue(t *testing.T) {
	got := search.Query(venuesFixture(), domain.Query{Location: domain.LocationIs("All"), Categories: allCategories()})

	assert.Equal(t, []string{"Everything Pop"}, names(got))
}

func TestQuery_EmptyCategorySetYieldsNothing(t *testing.T) {
	for _, q := range []domain.Query{
		{Location: domain.AnyLocation(), Categories: domain.CategorySet{}},
		{Location: domain.AnyLocation(), Categories: nil},
		{Location: domain.LocationIs("Magic Kingdom"), Categories: domain.NewCategorySet(), Text: "guest"},
	} {
		assert.Empty(t, search.Query(venuesFixture(), q))
	}
}

func TestQuery_CategorySubset(t *testing.T) {
	got := search.Query(venuesFixture(), domain.Query{Categories: domain.NewCategorySet("Snack", "Counter Service")})

	assert.Equal(t, []string{"Casey's Corner", "Dole Whip (Aloha Isle)", "Everything Pop"}, names(got))
}

func TestQuery_TextIsCaseInsensitive(t *testing.T) {
	for _, text := range []string{"steak", "STEAK", "StEaK"} {
		got := search.Query(venuesFixture(), domain.Query{Categories: allCategories(), Text: text})
		assert.Equal(t, []string{"STK Steakhouse"}, names(got), "text %q", text)
	}
}

func TestQuery_TextMatchesLocationAndTips(t *testing.T) {
	byLocation := search.Query(venuesFixture(), domain.Query{Categories: allCategories(), Text: "epcot"})
	assert.Equal(t, []string{"Space 220"}, names(byLocation))

	byTips := search.Query(venuesFixture(), domain.Query{Categories: allCategories(), Text: "corn dog"})
	assert.Equal(t, []string{"Casey's Corner"}, names(byTips))
}

func TestQuery_EmptyTextIsNoRestriction(t *testing.T) {
	got := search.Query(venuesFixture(), domain.Query{Categories: allCategories(), Text: ""})

	assert.Len(t, got, len(venuesFixture()))
}

func TestQuery_WhitespaceTextIsMatchedLiterally(t *testing.T) {
	vs := []domain.Venue{
		{Name: "Steak House", Location: "Springs", Category: "C"},
		{Name: "Sanaa", Location: "Lodge", Category: "C"},
	}

	got := search.Query(vs, domain.Query{Categories: domain.NewCategorySet("C"), Text: " "})
	assert.Equal(t, []string{"Steak House"}, names(got))

	// A trailing space is part of the needle.
	got = search.Query(vs, domain.Query{Categories: domain.NewCategorySet("C"), Text: "steak "})
	assert.Equal(t, []string{"Steak House"}, names(got))
	got = search.Query(vs, domain.Query{Categories: domain.NewCategorySet("C"), Text: "sanaa "})
	assert.Empty(t, got)
}

func TestQuery_AbsentTipsNeverMatch(t *testing.T) {
	vs := []domain.Venue{{Name: "A", Location: "B", Category: "C"}}

	got := search.Query(vs, domain.Query{Categories: domain.NewCategorySet("C"), Text: "happy"})

	assert.Empty(t, got)
}

func TestQuery_DoesNotModifyInput(t *testing.T) {
	in := venuesFixture()
	before := names(in)

	_ = search.Query(in, domain.Query{Location: domain.LocationIs("Epcot"), Categories: allCategories()})

	assert.Equal(t, before, names(in))
}

func TestQuery_Idempotent(t *testing.T) {
	q := domain.Query{Location: domain.LocationIs("Magic Kingdom"), Categories: allCategories(), Text: "o"}

	first := search.Query(venuesFixture(), q)
	second := search.Query(venuesFixture(), q)

	assert.Equal(t, first, second)
}

// TestApply_Commutative checks every ordering of the three predicates and
// sequential application (filtering the output of one filter with the next)
// against the combined query.
func TestApply_Commutative(t *testing.T) {
	queries := []domain.Query{
		{Location: domain.LocationIs("Magic Kingdom"), Categories: domain.NewCategorySet("Counter Service", "Snack"), Text: "o"},
		{Location: domain.AnyLocation(), Categories: allCategories(), Text: "happy"},
		{Location: domain.LocationIs("Epcot"), Categories: domain.NewCategorySet("Snack"), Text: ""},
	}
	for _, q := range queries {
		want := search.Query(venuesFixture(), q)
		preds := []search.Predicate{search.ByLocation(q.Location), search.ByCategory(q.Categories), search.ByText(q.Text)}

		for _, order := range permutations(len(preds)) {
			ordered := make([]search.Predicate, len(order))
			for i, idx := range order {
				ordered[i] = preds[idx]
			}
			require.Equal(t, names(want), names(search.Apply(venuesFixture(), ordered...)), "order %v", order)

			staged := venuesFixture()
			for _, p := range ordered {
				staged = search.Apply(staged, p)
			}
			require.Equal(t, names(want), names(staged), "staged order %v", order)
		}
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := append(append(append([]int{}, p[:i]...), n-1), p[i:]...)
			out = append(out, q)
		}
	}
	return out
}
