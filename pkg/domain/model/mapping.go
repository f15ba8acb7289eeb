// 指示: miu200521358
package model

import (
	"fmt"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
)

// JointMapEntry は変換元ジョイントと変換先ジョイントの対応1件を表す。
// Twistは変換元の軸方向の違いを吸収する補正回転。
type JointMapEntry struct {
	SourceName string
	TargetName string
	Twist      mmath.Quaternion
}

// SkeletonMapping はスケルトン間のジョイント対応表を表す。
// 変換元・変換先のどちらからも引ける。
type SkeletonMapping struct {
	Name          string
	entries       []JointMapEntry
	sourceIndexes map[string]int
	targetIndexes map[string]int
}

// NewSkeletonMapping は対応1件以上からマッピングを生成する。
// 変換元・変換先どちらの側でも名前の重複は許さない。
func NewSkeletonMapping(name string, entries []JointMapEntry) (*SkeletonMapping, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("マッピング %q に対応がありません", name)
	}
	mapping := &SkeletonMapping{
		Name:          name,
		entries:       entries,
		sourceIndexes: make(map[string]int, len(entries)),
		targetIndexes: make(map[string]int, len(entries)),
	}
	for index, entry := range entries {
		if entry.SourceName == "" || entry.TargetName == "" {
			return nil, fmt.Errorf("マッピング %q の対応 %d に空名があります", name, index)
		}
		if _, ok := mapping.sourceIndexes[entry.SourceName]; ok {
			return nil, fmt.Errorf("マッピング %q の変換元 %q が重複しています",
				name, entry.SourceName)
		}
		if _, ok := mapping.targetIndexes[entry.TargetName]; ok {
			return nil, fmt.Errorf("マッピング %q の変換先 %q が重複しています",
				name, entry.TargetName)
		}
		mapping.sourceIndexes[entry.SourceName] = index
		mapping.targetIndexes[entry.TargetName] = index
	}
	return mapping, nil
}

// Len は対応件数を返す。
func (m *SkeletonMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries は対応一覧を返す。
func (m *SkeletonMapping) Entries() []JointMapEntry {
	if m == nil {
		return nil
	}
	return m.entries
}

// BySource は変換元ジョイント名から対応を引く。
func (m *SkeletonMapping) BySource(sourceName string) (JointMapEntry, bool) {
	if m == nil {
		return JointMapEntry{}, false
	}
	index, ok := m.sourceIndexes[sourceName]
	if !ok {
		return JointMapEntry{}, false
	}
	return m.entries[index], true
}

// ByTarget は変換先ジョイント名から対応を引く。
func (m *SkeletonMapping) ByTarget(targetName string) (JointMapEntry, bool) {
	if m == nil {
		return JointMapEntry{}, false
	}
	index, ok := m.targetIndexes[targetName]
	if !ok {
		return JointMapEntry{}, false
	}
	return m.entries[index], true
}

// Inverted は変換元と変換先を入れ替えた逆方向マッピングを返す。
// 補正回転は逆回転になる。
func (m *SkeletonMapping) Inverted() (*SkeletonMapping, error) {
	if m == nil {
		return nil, fmt.Errorf("マッピングが未設定です")
	}
	inverted := make([]JointMapEntry, len(m.entries))
	for index, entry := range m.entries {
		inverted[index] = JointMapEntry{
			SourceName: entry.TargetName,
			TargetName: entry.SourceName,
			Twist:      entry.Twist.Inverted(),
		}
	}
	return NewSkeletonMapping(m.Name+"(逆)", inverted)
}
