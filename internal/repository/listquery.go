package repository

// ListFilter carries the customer-list predicates and page window. Zero-value
// Search/City mean "match all". Page is 1-based.
type ListFilter struct {
	Search   string
	City     string
	Page     int
	PageSize int
}

// Offset derives the SQL offset from the 1-based page number. Pages are not
// clamped to the last page; a page past the end simply yields zero rows.
func (f ListFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize
}

// buildListQuery renders the page query and the count query from the same
// predicate set, so the reported total can never drift from the page rows.
//
// Search matches first_name, last_name or phone_number as a substring; city
// matches customers owning at least one address in that city. Both LIKE and =
// are case-insensitive under the schema's utf8mb4_0900_ai_ci collation.
// Ordering is id ascending, which is a deliberate, documented choice; callers
// must not rely on any other order.
func buildListQuery(f ListFilter) (pageSQL string, pageArgs []any, countSQL string, countArgs []any) {
	where := " WHERE 1=1"
	args := []any{}

	if f.Search != "" {
		where += " AND (first_name LIKE ? OR last_name LIKE ? OR phone_number LIKE ?)"
		pat := "%" + f.Search + "%"
		args = append(args, pat, pat, pat)
	}
	if f.City != "" {
		where += " AND id IN (SELECT customer_id FROM addresses WHERE city = ?)"
		args = append(args, f.City)
	}

	countSQL = "SELECT COUNT(*) FROM customers" + where
	countArgs = args

	pageSQL = "SELECT id, first_name, last_name, phone_number FROM customers" +
		where + " ORDER BY id ASC LIMIT ? OFFSET ?"
	pageArgs = append(append([]any{}, args...), f.PageSize, f.Offset())

	return pageSQL, pageArgs, countSQL, countArgs
}
