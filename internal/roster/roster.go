package roster

import "fmt"

// Customer is one entry in the collection roster. The backend keys
// customers by their contact number, so ID and Contact usually carry
// the same value; they are kept separate because the filter matches on
// the raw contact string while the ledger keys on the identifier.
type Customer struct {
	ID       string
	Name     string
	Contact  string
	Location string
}

// ValidationError reports a malformed roster entry. The roster is
// replaced atomically, so a single bad entry rejects the whole load.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("roster entry %d: %s", e.Index, e.Reason)
}

// Store holds the authoritative customer list for the current session.
// The roster is immutable once loaded and replaced wholesale on
// refresh. All mutations happen on the event loop goroutine; the store
// itself does no locking.
type Store struct {
	customers []Customer
	locations []string
}

func NewStore() *Store {
	return &Store{}
}

// Load validates and replaces the roster. Nothing is applied if any
// entry is invalid.
func (s *Store) Load(customers []Customer) error {
	for i, c := range customers {
		if c.ID == "" {
			return &ValidationError{Index: i, Reason: "missing customer id"}
		}
	}

	replacement := make([]Customer, len(customers))
	copy(replacement, customers)

	var locations []string

	seen := make(map[string]struct{})

	for _, c := range replacement {
		if c.Location == "" {
			continue
		}

		if _, ok := seen[c.Location]; ok {
			continue
		}

		seen[c.Location] = struct{}{}
		locations = append(locations, c.Location)
	}

	s.customers = replacement
	s.locations = locations

	return nil
}

// All returns a copy of the roster in load order.
func (s *Store) All() []Customer {
	out := make([]Customer, len(s.customers))
	copy(out, s.customers)

	return out
}

func (s *Store) Len() int {
	return len(s.customers)
}

// Locations returns the distinct location values in first-seen order,
// for use as filter options.
func (s *Store) Locations() []string {
	out := make([]string, len(s.locations))
	copy(out, s.locations)

	return out
}
