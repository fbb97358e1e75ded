package roster

import "strings"

// Apply narrows the roster to the customers matching a free-text query
// and a location selector. A customer passes when the query is empty,
// matches the name case-insensitively, or appears verbatim in the raw
// contact string; the location must match exactly when set. The input
// slice is never mutated and relative ordering is preserved.
func Apply(customers []Customer, query, location string) []Customer {
	query = strings.TrimSpace(query)
	location = strings.TrimSpace(location)

	if query == "" && location == "" {
		out := make([]Customer, len(customers))
		copy(out, customers)

		return out
	}

	lowered := strings.ToLower(query)

	out := make([]Customer, 0, len(customers))

	for _, c := range customers {
		if query != "" && !matchesQuery(c, query, lowered) {
			continue
		}

		if location != "" && c.Location != location {
			continue
		}

		out = append(out, c)
	}

	return out
}

func matchesQuery(c Customer, raw, lowered string) bool {
	if strings.Contains(strings.ToLower(c.Name), lowered) {
		return true
	}

	// Contact numbers are matched on the raw string; a digits-only
	// query should not be case folded.
	if strings.Contains(c.Contact, raw) {
		return true
	}

	// Customers are keyed by contact number, and some backends send
	// only the customer_id field. The id stands in for the contact then
	// so those rows stay reachable by number; a populated contact
	// always takes precedence and the id is not consulted.
	return c.Contact == "" && strings.Contains(c.ID, raw)
}
