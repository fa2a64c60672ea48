package ir

// DefaultTolerance is the accepted deviation from a nominal duration, in
// percent.
const DefaultTolerance = 25

// Reader walks received durations and matches them against nominal timings.
type Reader struct {
	data      []int32
	index     int
	Tolerance uint32
}

func NewReader(data []int32) *Reader {
	return &Reader{data: data, Tolerance: DefaultTolerance}
}

// Peek returns the duration at offset from the current position, or 0 past
// the end.
func (r *Reader) Peek(offset int) int32 {
	i := r.index + offset
	if i < 0 || i >= len(r.data) {
		return 0
	}
	return r.data[i]
}

func (r *Reader) PeekMark(length uint32, offset int) bool {
	v := r.Peek(offset)
	return v > 0 && r.matches(uint32(v), length)
}

func (r *Reader) PeekSpace(length uint32, offset int) bool {
	v := r.Peek(offset)
	return v < 0 && r.matches(uint32(-v), length)
}

func (r *Reader) PeekItem(mark, space uint32) bool {
	return r.PeekMark(mark, 0) && r.PeekSpace(space, 1)
}

func (r *Reader) ExpectMark(length uint32) bool {
	if r.PeekMark(length, 0) {
		r.index++
		return true
	}
	return false
}

// ExpectItem consumes a mark and a space only if both match.
func (r *Reader) ExpectItem(mark, space uint32) bool {
	if r.PeekItem(mark, space) {
		r.index += 2
		return true
	}
	return false
}

func (r *Reader) matches(actual, nominal uint32) bool {
	lower := uint64(nominal) * uint64(100-r.Tolerance) / 100
	upper := uint64(nominal) * uint64(100+r.Tolerance) / 100
	return uint64(actual) >= lower && uint64(actual) <= upper
}
