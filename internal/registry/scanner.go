package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"loramgr/internal/common/fsutil"
	"loramgr/pkg/types"
)

// MetadataSuffix is appended to a model's stem to find its sidecar file.
const MetadataSuffix = ".metadata.json"

// metadata is the sidecar written next to each model file.
type metadata struct {
	ModelName               string   `json:"model_name"`
	BaseModel               string   `json:"base_model"`
	Tags                    []string `json:"tags"`
	PreviewURL              string   `json:"preview_url"`
	AllowNoCredit           bool     `json:"allow_no_credit"`
	AllowSelling            bool     `json:"allow_selling"`
	RecommendedStrength     float64  `json:"recommended_strength"`
	RecommendedClipStrength float64  `json:"recommended_clip_strength"`
}

// Scanner walks a library root for model files.
type Scanner struct {
	exts []string
	log  zerolog.Logger
}

// NewScanner returns a scanner for *.safetensors files.
func NewScanner() *Scanner {
	return &Scanner{exts: []string{".safetensors"}, log: zerolog.Nop()}
}

// WithLogger returns s logging unreadable sidecars to l.
func (s *Scanner) WithLogger(l zerolog.Logger) *Scanner {
	s.log = l
	return s
}

// Scan walks dir recursively. FileName is the file name without extension,
// Folder the slash-separated directory relative to dir. Missing or broken
// sidecars leave the metadata empty.
func (s *Scanner) Scan(dir string) ([]types.Lora, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
		return nil, dirNotFoundError{dir: abs}
	}
	var loras []types.Lora
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(d.Name())
		if !s.matches(ext) {
			return nil
		}
		rel, err := filepath.Rel(abs, filepath.Dir(p))
		if err != nil {
			return err
		}
		folder := filepath.ToSlash(rel)
		if folder == "." {
			folder = ""
		}
		stem := strings.TrimSuffix(d.Name(), ext)
		l := types.Lora{FileName: stem, FilePath: p, Folder: folder}
		s.applyMetadata(&l, filepath.Join(filepath.Dir(p), stem+MetadataSuffix))
		loras = append(loras, l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dir: %w", err)
	}
	return loras, nil
}

func (s *Scanner) matches(ext string) bool {
	for _, e := range s.exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func (s *Scanner) applyMetadata(l *types.Lora, path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var m metadata
	if err := json.Unmarshal(b, &m); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("skip unreadable metadata")
		return
	}
	l.ModelName = m.ModelName
	l.BaseModel = m.BaseModel
	l.Tags = m.Tags
	l.PreviewURL = m.PreviewURL
	l.AllowNoCredit = m.AllowNoCredit
	l.AllowSelling = m.AllowSelling
	l.RecommendedStrength = m.RecommendedStrength
	l.RecommendedClipStrength = m.RecommendedClipStrength
}

// LoadDir scans dir with the default scanner.
func LoadDir(dir string) ([]types.Lora, error) {
	return NewScanner().Scan(dir)
}
