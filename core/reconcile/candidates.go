package reconcile

// CandidateSet indexes sheet candidates by order number.
//
// When the sheet holds the same order number twice, the later row replaces
// the earlier one but keeps its position. The bottom of the sheet is taken as
// the most recent edit.
type CandidateSet struct {
	byKey      map[int64]Candidate
	keys       []int64
	duplicates int
}

// NewCandidateSet builds a set from candidates in sheet order.
func NewCandidateSet(candidates []Candidate) *CandidateSet {
	s := &CandidateSet{
		byKey: make(map[int64]Candidate, len(candidates)),
		keys:  make([]int64, 0, len(candidates)),
	}
	for _, c := range candidates {
		if _, seen := s.byKey[c.OrderNumber]; seen {
			s.duplicates++
		} else {
			s.keys = append(s.keys, c.OrderNumber)
		}
		s.byKey[c.OrderNumber] = c
	}
	return s
}

// Keys returns the distinct order numbers in order of first appearance.
func (s *CandidateSet) Keys() []int64 {
	return s.keys
}

// Get returns the candidate for an order number.
func (s *CandidateSet) Get(key int64) (Candidate, bool) {
	c, ok := s.byKey[key]
	return c, ok
}

// Has reports whether the sheet contains the order number.
func (s *CandidateSet) Has(key int64) bool {
	_, ok := s.byKey[key]
	return ok
}

// Len returns the number of distinct order numbers.
func (s *CandidateSet) Len() int {
	return len(s.keys)
}

// Duplicates returns the number of rows that were overridden by a later row.
func (s *CandidateSet) Duplicates() int {
	return s.duplicates
}
