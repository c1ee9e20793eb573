package repo

const (
	defaultTake = 25
	maxTake     = 100
)

// ListParams carries pagination and an optional case-insensitive substring
// filter. Callers that omit take should pass DefaultListParams().
type ListParams struct {
	Skip  int
	Take  int
	Query string
}

func DefaultListParams() ListParams {
	return ListParams{Take: defaultTake}
}

// clamp guards skip and take against out-of-range values. Take ends up in
// [1, maxTake], skip at >= 0.
func (p ListParams) clamp() ListParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Take < 1 {
		p.Take = 1
	}
	if p.Take > maxTake {
		p.Take = maxTake
	}
	return p
}
