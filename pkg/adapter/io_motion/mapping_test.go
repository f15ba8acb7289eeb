// 指示: miu200521358
package io_motion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

func TestMappingRepositoryLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "humanoid.yaml")
	content := `name: humanoid_map
joints:
  - source: Hips
    target: hip
    twist: [0, 90, 0]
  - source: Spine
    target: spine
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("前提ファイル作成に失敗: %v", err)
	}

	mapping, err := NewMappingRepository().Load(path)
	if err != nil {
		t.Fatalf("読み込みに失敗: %v", err)
	}
	if mapping.Name != "humanoid_map" {
		t.Errorf("マッピング名が一致しない: %s", mapping.Name)
	}
	if mapping.Len() != 2 {
		t.Fatalf("対応数が一致しない: %d", mapping.Len())
	}

	entry, ok := mapping.BySource("Hips")
	if !ok {
		t.Fatal("Hipsの対応が見つからない")
	}
	if entry.TargetName != "hip" {
		t.Errorf("変換先名が一致しない: %s", entry.TargetName)
	}
	if !entry.Twist.NearEquals(mmath.NewQuaternionFromDegrees(0, 90, 0), 1e-10) {
		t.Errorf("ねじれ補正が一致しない: %v", entry.Twist)
	}

	spine, ok := mapping.BySource("Spine")
	if !ok {
		t.Fatal("Spineの対応が見つからない")
	}
	if !spine.Twist.IsIdent() {
		t.Errorf("省略時のねじれ補正が単位回転でない: %v", spine.Twist)
	}
}

func TestMappingRepositoryLoadUsesFileNameWhenUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biped.yml")
	content := `joints:
  - source: Hips
    target: hip
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("前提ファイル作成に失敗: %v", err)
	}

	mapping, err := NewMappingRepository().Load(path)
	if err != nil {
		t.Fatalf("読み込みに失敗: %v", err)
	}
	if mapping.Name != "biped" {
		t.Errorf("マッピング名が一致しない: %s", mapping.Name)
	}
}

func TestMappingRepositoryLoadRejectsInvalidInput(t *testing.T) {
	repo := NewMappingRepository()
	if _, err := repo.Load("humanoid.json"); err == nil {
		t.Error("未対応拡張子の読み込みが失敗しない")
	}

	path := filepath.Join(t.TempDir(), "dup.yaml")
	content := `joints:
  - source: Hips
    target: hip
  - source: Hips
    target: spine
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("前提ファイル作成に失敗: %v", err)
	}
	if _, err := repo.Load(path); err == nil {
		t.Error("変換元名の重複が失敗しない")
	}
}
