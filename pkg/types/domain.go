package types

// Lora is a LoRA asset discovered on disk together with its sidecar metadata.
type Lora struct {
	// File name without extension.
	// example: detail-tweaker-xl
	FileName string `json:"file_name" example:"detail-tweaker-xl"`
	// Display name from metadata; empty when unknown.
	// example: Detail Tweaker XL
	ModelName string `json:"model_name,omitempty" example:"Detail Tweaker XL"`
	// Absolute path to the model file.
	// example: /home/user/loras/style/detail-tweaker-xl.safetensors
	FilePath string `json:"file_path" example:"/home/user/loras/style/detail-tweaker-xl.safetensors"`
	// Folder relative to the library root, slash separated. Empty for the root.
	// example: style
	Folder string `json:"folder" example:"style"`
	// Base model family the LoRA was trained against.
	// example: SDXL 1.0
	BaseModel string   `json:"base_model,omitempty" example:"SDXL 1.0"`
	Tags      []string `json:"tags,omitempty"`
	// example: /api/lm/previews/detail-tweaker-xl.webp
	PreviewURL string `json:"preview_url,omitempty"`
	// License flags from the metadata; both default to false.
	AllowNoCredit bool `json:"allow_no_credit"`
	AllowSelling  bool `json:"allow_selling"`
	// Strengths suggested by the author; zero when unknown.
	RecommendedStrength     float64 `json:"recommended_strength,omitempty"`
	RecommendedClipStrength float64 `json:"recommended_clip_strength,omitempty"`
}

// Item projects a Lora onto the pool item returned to schedulers.
func (l Lora) Item() PoolItem {
	return PoolItem{
		FileName:                l.FileName,
		ModelName:               l.ModelName,
		FilePath:                l.FilePath,
		PreviewURL:              l.PreviewURL,
		RecommendedStrength:     l.RecommendedStrength,
		RecommendedClipStrength: l.RecommendedClipStrength,
	}
}

// PoolItem is one entry of a resolved pool.
type PoolItem struct {
	FileName   string `json:"file_name"`
	ModelName  string `json:"model_name,omitempty"`
	FilePath   string `json:"file_path"`
	PreviewURL string `json:"preview_url,omitempty"`
	// Optional author recommendations, used by the randomizer.
	RecommendedStrength     float64 `json:"recommended_strength,omitempty"`
	RecommendedClipStrength float64 `json:"recommended_clip_strength,omitempty"`
}

// DisplayName returns the model name, falling back to the file name.
func (p PoolItem) DisplayName() string {
	if p.ModelName != "" {
		return p.ModelName
	}
	return p.FileName
}

// IncludeExclude is a pair of string sets.
type IncludeExclude struct {
	Include []string `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// LicenseFilter restricts a pool by license terms. Absent flags are false.
type LicenseFilter struct {
	NoCreditRequired bool `json:"no_credit_required,omitempty" yaml:"no_credit_required,omitempty" toml:"no_credit_required,omitempty"`
	AllowSelling     bool `json:"allow_selling,omitempty" yaml:"allow_selling,omitempty" toml:"allow_selling,omitempty"`
}

// PoolFilterConfig is the filter criteria a pool is resolved from.
// Slices are sets: order and duplicates carry no meaning.
type PoolFilterConfig struct {
	BaseModels []string       `json:"base_models,omitempty" yaml:"base_models,omitempty" toml:"base_models,omitempty"`
	Tags       IncludeExclude `json:"tags" yaml:"tags" toml:"tags"`
	Folders    IncludeExclude `json:"folders" yaml:"folders" toml:"folders"`
	License    LicenseFilter  `json:"license" yaml:"license" toml:"license"`
}

// SortBy selects pool ordering.
type SortBy string

const (
	SortByFilename  SortBy = "filename"
	SortByModelName SortBy = "model_name"
)

// Valid reports whether s is a known sort key.
func (s SortBy) Valid() bool { return s == SortByFilename || s == SortByModelName }
