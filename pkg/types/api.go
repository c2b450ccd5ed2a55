package types

// PoolRequest is the body of POST /api/lm/loras/pool.
type PoolRequest struct {
	PoolConfig PoolFilterConfig `json:"pool_config"`
	// Ordering of the returned items. Empty means filename.
	// example: filename
	SortBy SortBy `json:"sort_by,omitempty" example:"filename"`
}

// PoolResponse is returned by the Pool Resolver.
type PoolResponse struct {
	Items []PoolItem `json:"items"`
	// example: 42
	TotalCount int `json:"total_count" example:"42"`
}

// EmptyPool is the well-defined response every resolver failure maps to.
func EmptyPool() PoolResponse { return PoolResponse{Items: []PoolItem{}, TotalCount: 0} }

// LorasResponse wraps the full library returned by GET /api/lm/loras.
type LorasResponse struct {
	Loras []Lora `json:"loras"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
