package pool

import (
	"context"

	"loramgr/pkg/types"
)

// Resolver resolves filter criteria into an ordered pool. Implementations
// never fail: any error is reported as types.EmptyPool().
type Resolver interface {
	FetchPool(ctx context.Context, req types.PoolRequest) types.PoolResponse
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, req types.PoolRequest) types.PoolResponse

func (f ResolverFunc) FetchPool(ctx context.Context, req types.PoolRequest) types.PoolResponse {
	return f(ctx, req)
}

// Static resolves every request to the same items. Useful for tests and for
// hosts that already hold the pool.
func Static(items ...types.PoolItem) Resolver {
	return ResolverFunc(func(context.Context, types.PoolRequest) types.PoolResponse {
		out := make([]types.PoolItem, len(items))
		copy(out, items)
		return types.PoolResponse{Items: out, TotalCount: len(out)}
	})
}
