package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanner_ScanFiltersSafetensorsRecursively(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"a.safetensors",
		"b.SAFETENSORS", // case-insensitive
		"style/c.safetensors",
		"style/anime/d.safetensors",
		".cache/hidden.safetensors",
		"notes.txt",
		"model.ckpt",
	}
	for _, f := range files {
		writeFile(t, filepath.Join(dir, f), "")
	}
	loras, err := NewScanner().Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(loras) != 4 {
		t.Fatalf("expected 4 loras, got %d: %+v", len(loras), loras)
	}
	folders := map[string]string{}
	for _, l := range loras {
		folders[l.FileName] = l.Folder
	}
	if folders["a"] != "" || folders["c"] != "style" || folders["d"] != "style/anime" {
		t.Fatalf("unexpected folders: %v", folders)
	}
}

func TestScanner_ReadsMetadataSidecar(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.safetensors"), "")
	writeFile(t, filepath.Join(dir, "x"+MetadataSuffix), `{
		"model_name": "X Style",
		"base_model": "SDXL 1.0",
		"tags": ["style"],
		"allow_no_credit": true,
		"recommended_strength": 0.7
	}`)
	writeFile(t, filepath.Join(dir, "y.safetensors"), "")
	writeFile(t, filepath.Join(dir, "y"+MetadataSuffix), `{broken`)

	loras, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	byName := map[string]int{}
	for i, l := range loras {
		byName[l.FileName] = i
	}
	x := loras[byName["x"]]
	if x.ModelName != "X Style" || x.BaseModel != "SDXL 1.0" || !x.AllowNoCredit || x.AllowSelling || x.RecommendedStrength != 0.7 {
		t.Fatalf("unexpected metadata: %+v", x)
	}
	if y := loras[byName["y"]]; y.ModelName != "" || y.BaseModel != "" {
		t.Fatalf("broken sidecar should leave metadata empty: %+v", y)
	}
}

func TestScanner_MissingDir(t *testing.T) {
	_, err := NewScanner().Scan(filepath.Join(t.TempDir(), "absent"))
	if !IsDirNotFound(err) {
		t.Fatalf("expected dir not found, got %v", err)
	}
}

func TestScanner_ExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "loramgr-registry-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	writeFile(t, filepath.Join(hTmp, "x.safetensors"), "")
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	loras, err := NewScanner().Scan(tildePath)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(loras) != 1 || loras[0].FileName != "x" {
		t.Fatalf("unexpected loras: %+v", loras)
	}
}
