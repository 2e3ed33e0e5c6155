package request

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginatedRequest is offset based. Zero values fall back to defaults.
type PaginatedRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (p PaginatedRequest) GetOffset() int {
	if p.Offset < 0 {
		return 0
	}
	return p.Offset
}

func (p PaginatedRequest) GetLimit() int {
	if p.Limit < 1 {
		return DefaultLimit
	}
	if p.Limit > MaxLimit {
		return MaxLimit
	}
	return p.Limit
}
