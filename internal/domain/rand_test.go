package domain

// stubRand is a scripted Rand for tests. Each method cycles through its
// configured values; an empty script yields zeros/false.
type stubRand struct {
	normals  []float64
	bools    []bool
	floats   []float64
	ni, bi, fi int
}

func (s *stubRand) Normal() float64 {
	if len(s.normals) == 0 {
		return 0
	}
	v := s.normals[s.ni%len(s.normals)]
	s.ni++
	return v
}

func (s *stubRand) Bool() bool {
	if len(s.bools) == 0 {
		return false
	}
	v := s.bools[s.bi%len(s.bools)]
	s.bi++
	return v
}

func (s *stubRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}
