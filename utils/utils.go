package utils

var Has = struct{}{}

// IntSet is a set of (column) indexes.
type IntSet map[int]struct{}

func (s IntSet) Add(key int) {
	s[key] = Has
}

func (s IntSet) Has(key int) bool {
	_, in := s[key]
	return in
}

func (s IntSet) Remove(key int) {
	delete(s, key)
}

// Copy returns a deepcopy.
func (s IntSet) Copy() IntSet {
	out := make(IntSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func NewIntSet(values ...int) IntSet {
	s := make(IntSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func IsIn(l []string, s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
