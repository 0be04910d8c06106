package serializers

// Page is the paginated list envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope; nil results become an empty array.
func NewPage[T any](count int64, next, previous *string, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{Count: count, Next: next, Previous: previous, Results: results}
}
