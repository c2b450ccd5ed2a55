package cycler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loramgr/internal/pool"
	"loramgr/pkg/types"
)

func TestRestore_IgnoresLookahead(t *testing.T) {
	c := New(pool.Static())
	c.Restore(types.CyclerConfig{
		CurrentIndex:        3,
		TotalCount:          4,
		PoolConfigHash:      "abc",
		ModelStrength:       0.8,
		ClipStrength:        0.4,
		UseCustomClipRange:  true,
		SortBy:              types.SortByModelName,
		CurrentLoraName:     "LoRA 3",
		CurrentLoraFilename: "lora-03",
		ExecutionIndex:      intPtr(2),
		NextIndex:           intPtr(4),
		RepeatCount:         3,
		RepeatUsed:          1,
		DisplayRepeatUsed:   1,
		IsPaused:            true,
	})
	cfg := c.BuildConfig()
	assert.Nil(t, cfg.ExecutionIndex)
	assert.Nil(t, cfg.NextIndex)
	assert.Equal(t, 3, cfg.CurrentIndex)
	assert.Equal(t, 0.4, cfg.ClipStrength)
	assert.Equal(t, types.SortByModelName, cfg.SortBy)
	assert.True(t, cfg.IsPaused)
	assert.Equal(t, "lora-03", cfg.CurrentLoraFilename)
}

func TestRestore_SanitizesValues(t *testing.T) {
	c := New(pool.Static())
	c.Restore(types.CyclerConfig{
		CurrentIndex:  9,
		TotalCount:    2,
		ModelStrength: 0.6,
		ClipStrength:  0.1,
		SortBy:        "bogus",
		RepeatCount:   0,
		RepeatUsed:    5,
	})
	cfg := c.BuildConfig()
	assert.Equal(t, 2, cfg.CurrentIndex)
	assert.Equal(t, 0.6, cfg.ClipStrength, "clip follows model without custom range")
	assert.Equal(t, types.SortByFilename, cfg.SortBy)
	assert.Equal(t, 1, cfg.RepeatCount)
	assert.Equal(t, 1, cfg.RepeatUsed)
}

func TestRestore_ThenRefreshContinuesAfterCurrent(t *testing.T) {
	cfg := types.PoolFilterConfig{BaseModels: []string{"SDXL 1.0"}}
	c := New(pool.Static(makeItems(5)...))
	c.Restore(types.CyclerConfig{CurrentIndex: 3, TotalCount: 5, PoolConfigHash: pool.Fingerprint(cfg), RepeatCount: 1})
	c.RefreshList(context.Background(), cfg)
	assert.Equal(t, 3, c.CurrentIndex())
	assert.Equal(t, 4, c.Queue().Index)
}

func TestBuildConfig_RoundTripsThroughJSON(t *testing.T) {
	c := newRefreshed(t, 4)
	c.Queue()
	b, err := json.Marshal(c.BuildConfig())
	require.NoError(t, err)

	var decoded types.CyclerConfig
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.NotNil(t, decoded.NextIndex)
	assert.Equal(t, 2, *decoded.NextIndex)

	other := New(pool.Static())
	other.Restore(decoded)
	got := other.BuildConfig()
	assert.Equal(t, decoded.CurrentIndex, got.CurrentIndex)
	assert.Equal(t, decoded.PoolConfigHash, got.PoolConfigHash)
	assert.Nil(t, got.NextIndex)
}

func TestBuildConfig_PointersAreCopies(t *testing.T) {
	c := newRefreshed(t, 4)
	c.Queue()
	cfg := c.BuildConfig()
	*cfg.NextIndex = 99
	assert.Equal(t, 2, *c.NextIndex())
}
