package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	pageSQL, pageArgs, countSQL, countArgs := buildListQuery(ListFilter{Page: 1, PageSize: 5})

	assert.Equal(t,
		"SELECT id, first_name, last_name, phone_number FROM customers WHERE 1=1 ORDER BY id ASC LIMIT ? OFFSET ?",
		pageSQL)
	assert.Equal(t, []any{5, 0}, pageArgs)

	assert.Equal(t, "SELECT COUNT(*) FROM customers WHERE 1=1", countSQL)
	assert.Empty(t, countArgs)
}

func TestBuildListQuery_SearchPredicate(t *testing.T) {
	pageSQL, pageArgs, countSQL, countArgs := buildListQuery(ListFilter{Search: "Ann", Page: 1, PageSize: 5})

	assert.Contains(t, pageSQL, "(first_name LIKE ? OR last_name LIKE ? OR phone_number LIKE ?)")
	assert.Equal(t, []any{"%Ann%", "%Ann%", "%Ann%", 5, 0}, pageArgs)

	// count shares the predicate but carries no page window
	assert.Contains(t, countSQL, "(first_name LIKE ? OR last_name LIKE ? OR phone_number LIKE ?)")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.Equal(t, []any{"%Ann%", "%Ann%", "%Ann%"}, countArgs)
}

func TestBuildListQuery_CityPredicate(t *testing.T) {
	pageSQL, pageArgs, countSQL, countArgs := buildListQuery(ListFilter{City: "Austin", Page: 1, PageSize: 5})

	assert.Contains(t, pageSQL, "id IN (SELECT customer_id FROM addresses WHERE city = ?)")
	assert.Equal(t, []any{"Austin", 5, 0}, pageArgs)
	assert.Contains(t, countSQL, "id IN (SELECT customer_id FROM addresses WHERE city = ?)")
	assert.Equal(t, []any{"Austin"}, countArgs)
}

func TestBuildListQuery_BothPredicatesAND(t *testing.T) {
	pageSQL, pageArgs, _, countArgs := buildListQuery(ListFilter{Search: "Lee", City: "Dallas", Page: 2, PageSize: 5})

	require.Contains(t, pageSQL, "LIKE")
	require.Contains(t, pageSQL, "city = ?")
	// search args precede the city arg, page window last
	assert.Equal(t, []any{"%Lee%", "%Lee%", "%Lee%", "Dallas", 5, 5}, pageArgs)
	assert.Equal(t, []any{"%Lee%", "%Lee%", "%Lee%", "Dallas"}, countArgs)
}

func TestListFilter_Offset(t *testing.T) {
	cases := []struct {
		name string
		f    ListFilter
		want int
	}{
		{"first page", ListFilter{Page: 1, PageSize: 5}, 0},
		{"third page", ListFilter{Page: 3, PageSize: 5}, 10},
		{"zero page treated as first", ListFilter{Page: 0, PageSize: 5}, 0},
		{"negative page treated as first", ListFilter{Page: -2, PageSize: 5}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Offset())
		})
	}
}

func TestBuildListQuery_ArgsDoNotAlias(t *testing.T) {
	_, pageArgs, _, countArgs := buildListQuery(ListFilter{Search: "x", Page: 1, PageSize: 5})

	// appending the page window must not scribble over the count args
	require.Len(t, countArgs, 3)
	require.Len(t, pageArgs, 5)
	assert.Equal(t, "%x%", countArgs[2])
}
