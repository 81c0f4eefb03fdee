package shared

// Default paging values used when a list request leaves them unset
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Filter carries the offset paging and free-text keyword of list endpoints
type Filter struct {
	Skip   int
	Limit  int
	Search string
}

// Normalize clamps Skip and Limit into their valid ranges.
// A zero limit falls back to fallback.
func (f Filter) Normalize(fallback int) Filter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = fallback
	}
	f.Limit = min(f.Limit, MaxLimit)
	return f
}
