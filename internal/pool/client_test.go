package pool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loramgr/pkg/types"
)

func TestClient_FetchPool_PostsRequestAndDecodes(t *testing.T) {
	var got types.PoolRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PoolPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.PoolResponse{
			Items:      []types.PoolItem{{FileName: "a"}, {FileName: "b"}},
			TotalCount: 2,
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL + "/")
	req := types.PoolRequest{PoolConfig: baseConfig(), SortBy: types.SortByModelName}
	resp := c.FetchPool(context.Background(), req)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "a", resp.Items[0].FileName)
	assert.Equal(t, types.SortByModelName, got.SortBy)
	assert.Equal(t, []string{"SDXL 1.0", "Pony"}, got.PoolConfig.BaseModels)
}

func TestClient_FetchPool_ServerErrorYieldsEmptyPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	resp := NewClient(srv.URL).FetchPool(context.Background(), types.PoolRequest{})
	assert.Equal(t, 0, resp.TotalCount)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestClient_FetchPool_BadJSONYieldsEmptyPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	t.Cleanup(srv.Close)

	resp := NewClient(srv.URL).FetchPool(context.Background(), types.PoolRequest{})
	assert.Equal(t, types.EmptyPool(), resp)
}

func TestClient_FetchPool_TransportErrorYieldsEmptyPool(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp := NewClient(url, WithTimeout(time.Second)).FetchPool(context.Background(), types.PoolRequest{})
	assert.Equal(t, types.EmptyPool(), resp)
}

func TestClient_FetchPool_NullItemsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":null,"total_count":0}`))
	}))
	t.Cleanup(srv.Close)

	resp := NewClient(srv.URL).FetchPool(context.Background(), types.PoolRequest{})
	assert.NotNil(t, resp.Items)
}

func TestStatic_ReturnsCopies(t *testing.T) {
	r := Static(types.PoolItem{FileName: "x"})
	first := r.FetchPool(context.Background(), types.PoolRequest{})
	first.Items[0].FileName = "mutated"
	second := r.FetchPool(context.Background(), types.PoolRequest{})
	assert.Equal(t, "x", second.Items[0].FileName)
	assert.Equal(t, 1, second.TotalCount)
}
