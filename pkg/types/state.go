package types

// CyclerConfig is the persisted form of a cycler widget. It is produced as a
// whole by the cycler and never patched field by field.
//
// ExecutionIndex and NextIndex are written so a queued unit knows which index
// it was committed to; they are ignored when a snapshot is restored.
type CyclerConfig struct {
	CurrentIndex        int     `json:"current_index"`
	TotalCount          int     `json:"total_count"`
	PoolConfigHash      string  `json:"pool_config_hash"`
	ModelStrength       float64 `json:"model_strength"`
	ClipStrength        float64 `json:"clip_strength"`
	UseCustomClipRange  bool    `json:"use_custom_clip_range"`
	SortBy              SortBy  `json:"sort_by"`
	CurrentLoraName     string  `json:"current_lora_name"`
	CurrentLoraFilename string  `json:"current_lora_filename"`
	ExecutionIndex      *int    `json:"execution_index"`
	NextIndex           *int    `json:"next_index"`
	RepeatCount         int     `json:"repeat_count"`
	RepeatUsed          int     `json:"repeat_used"`
	DisplayRepeatUsed   int     `json:"display_repeat_used"`
	IsPaused            bool    `json:"is_paused"`
}

// CyclerReport is what the host sends back after a queued unit ran.
type CyclerReport struct {
	UnitID       string `json:"unit_id,omitempty"`
	Index        int    `json:"index"`
	TotalCount   int    `json:"total_count"`
	LoraName     string `json:"lora_name"`
	LoraFilename string `json:"lora_filename"`
}

// CountMode selects how many LoRAs the randomizer draws.
type CountMode string

const (
	CountFixed CountMode = "fixed"
	CountRange CountMode = "range"
)

// RollMode selects when the randomizer draws a new seed.
type RollMode string

const (
	// RollFixed replays the same draw until an explicit reroll.
	RollFixed RollMode = "fixed"
	// RollAlways draws a new seed for every queued unit.
	RollAlways RollMode = "always"
)

// LoraEntry is one LoRA picked by the randomizer with its strengths.
type LoraEntry struct {
	Name         string  `json:"name"`
	FileName     string  `json:"file_name"`
	Strength     float64 `json:"strength"`
	ClipStrength float64 `json:"clip_strength"`
	Active       bool    `json:"active"`
}

// RandomizerConfig is the persisted form of a randomizer widget.
// ExecutionSeed and NextSeed follow the same restore rule as the cycler's
// index pair. LastSeed, the seed behind LastUsed, is restored so a fixed
// roll replays the same draw across reloads.
type RandomizerConfig struct {
	CountMode              CountMode   `json:"count_mode"`
	CountFixed             int         `json:"count_fixed"`
	CountMin               int         `json:"count_min"`
	CountMax               int         `json:"count_max"`
	ModelStrengthMin       float64     `json:"model_strength_min"`
	ModelStrengthMax       float64     `json:"model_strength_max"`
	UseSameClipStrength    bool        `json:"use_same_clip_strength"`
	ClipStrengthMin        float64     `json:"clip_strength_min"`
	ClipStrengthMax        float64     `json:"clip_strength_max"`
	RollMode               RollMode    `json:"roll_mode"`
	LastUsed               []LoraEntry `json:"last_used"`
	LastSeed               *int64      `json:"last_seed,omitempty"`
	UseRecommendedStrength bool        `json:"use_recommended_strength"`
	RecommendedScaleMin    float64     `json:"recommended_strength_scale_min"`
	RecommendedScaleMax    float64     `json:"recommended_strength_scale_max"`
	PoolConfigHash         string      `json:"pool_config_hash"`
	ExecutionSeed          *int64      `json:"execution_seed"`
	NextSeed               *int64      `json:"next_seed"`
}

// RandomizerReport is what the host sends back after a randomized unit ran.
type RandomizerReport struct {
	UnitID string      `json:"unit_id,omitempty"`
	Seed   int64       `json:"seed"`
	Loras  []LoraEntry `json:"loras"`
}
