// 指示: miu200521358
package io_motion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
)

// MappingRepository はスケルトンマッピングのYAML読み込みを表す。
type MappingRepository struct{}

// NewMappingRepository はMappingRepositoryを生成する。
func NewMappingRepository() *MappingRepository {
	return &MappingRepository{}
}

// mappingDTO はマッピングYAMLのルートを表す。
type mappingDTO struct {
	Name   string            `yaml:"name"`
	Joints []mappingJointDTO `yaml:"joints"`
}

// mappingJointDTO は対応1件のYAMLを表す。
// twistはXYZ順のオイラー角(度)で、省略すると補正なし。
type mappingJointDTO struct {
	Source string      `yaml:"source"`
	Target string      `yaml:"target"`
	Twist  *[3]float64 `yaml:"twist,omitempty"`
}

// Load はスケルトンマッピングを読み込む。
func (r *MappingRepository) Load(path string) (*model.SkeletonMapping, error) {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".yaml") && !strings.EqualFold(ext, ".yml") {
		return nil, fmt.Errorf("マッピング拡張子が .yaml ではありません: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("マッピングファイルの読み取りに失敗しました: %w", err)
	}

	dto := mappingDTO{}
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("マッピングYAMLの解析に失敗しました: %w", err)
	}
	name := dto.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ext)
	}

	entries := make([]model.JointMapEntry, 0, len(dto.Joints))
	for _, joint := range dto.Joints {
		entry := model.JointMapEntry{
			SourceName: joint.Source,
			TargetName: joint.Target,
			Twist:      mmath.NewQuaternion(),
		}
		if joint.Twist != nil {
			entry.Twist = mmath.NewQuaternionFromDegrees(
				joint.Twist[0], joint.Twist[1], joint.Twist[2])
		}
		entries = append(entries, entry)
	}
	mapping, err := model.NewSkeletonMapping(name, entries)
	if err != nil {
		return nil, err
	}
	logMotionInfo("マッピング読込完了: name=%s joints=%d", name, mapping.Len())
	return mapping, nil
}
