// 指示: miu200521358
// Package io_motion はモーション文書のJSON入出力とマッピング・レシピの
// YAML読み込みを提供する。
package io_motion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// LoadProgressEventType はモーション読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeCompleted は文書構築完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はモーション読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	ClipCount     int
	JointCount    int
	VertexCount   int
}

// MotionRepository はモーション文書のJSON読み書きを表す。
type MotionRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewMotionRepository はMotionRepositoryを生成する。
func NewMotionRepository() *MotionRepository {
	return &MotionRepository{}
}

// SetLoadProgressReporter は読込進捗受信コールバックを設定する。
func (r *MotionRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// reportLoadProgress は設定済みのコールバックへ進捗を通知する。
func (r *MotionRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *MotionRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// InferName はパスから文書名を推定する。
func (r *MotionRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はモーション文書を読み込む。
func (r *MotionRepository) Load(path string) (*moutput.MotionDocument, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("入力拡張子が .json ではありません: %s", path)
	}
	logMotionInfo("モーション読込開始: file=%s", filepath.Base(path))

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("モーションファイルの読み取りに失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})

	doc := documentDTO{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("モーションJSONの解析に失敗しました: %w", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:      LoadProgressEventTypeJsonParsed,
		ClipCount: len(doc.Clips),
	})

	document, err := doc.toDocument()
	if err != nil {
		return nil, err
	}
	if document.Name == "" {
		document.Name = r.InferName(path)
	}
	event := LoadProgressEvent{
		Type:      LoadProgressEventTypeCompleted,
		ClipCount: len(document.Clips),
	}
	if document.Skeleton != nil {
		event.JointCount = document.Skeleton.Len()
	}
	if document.Mesh != nil {
		event.VertexCount = len(document.Mesh.Vertices)
	}
	r.reportLoadProgress(event)
	logMotionInfo("モーション読込完了: clips=%d", len(document.Clips))
	return document, nil
}

// Save はモーション文書を書き込む。
func (r *MotionRepository) Save(path string, document *moutput.MotionDocument, options moutput.SaveOptions) error {
	if document == nil {
		return fmt.Errorf("保存対象の文書が未設定です")
	}
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return fmt.Errorf("出力拡張子が .json ではありません: %s", path)
	}
	if !options.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("出力先が既に存在します: %s", path)
		}
	}

	doc := fromDocument(document)
	var b []byte
	var err error
	if options.Indent {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("モーションJSONの生成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("モーションファイルの書き込みに失敗しました: %w", err)
	}
	logMotionInfo("モーション保存完了: file=%s bytes=%d", filepath.Base(path), len(b))
	return nil
}

// documentDTO はモーション文書JSONのルートを表す。
type documentDTO struct {
	Name     string       `json:"name,omitempty"`
	Clips    []clipDTO    `json:"clips"`
	Skeleton *skeletonDTO `json:"skeleton,omitempty"`
	Mesh     *meshDTO     `json:"mesh,omitempty"`
}

// clipDTO はクリップJSONを表す。
type clipDTO struct {
	Name     string     `json:"name"`
	Duration float64    `json:"duration"`
	Tracks   []trackDTO `json:"tracks"`
}

// trackDTO はトラックJSONを表す。回転は[x,y,z,w]で持つ。
type trackDTO struct {
	Kind         string       `json:"kind"`
	Target       string       `json:"target"`
	Times        []float64    `json:"times"`
	Translations [][3]float64 `json:"translations,omitempty"`
	Rotations    [][4]float64 `json:"rotations,omitempty"`
	Scales       [][3]float64 `json:"scales,omitempty"`
}

// skeletonDTO はスケルトンJSONを表す。
type skeletonDTO struct {
	Joints []jointDTO `json:"joints"`
}

// jointDTO はジョイントJSONを表す。親が無い場合はparentを-1にする。
type jointDTO struct {
	Name        string      `json:"name"`
	Parent      int         `json:"parent"`
	Translation *[3]float64 `json:"translation,omitempty"`
	Rotation    *[4]float64 `json:"rotation,omitempty"`
	Scale       *[3]float64 `json:"scale,omitempty"`
}

// meshDTO はメッシュJSONを表す。
type meshDTO struct {
	Name     string      `json:"name,omitempty"`
	Vertices []vertexDTO `json:"vertices"`
}

// vertexDTO は頂点JSONを表す。
type vertexDTO struct {
	Position [3]float64 `json:"position"`
	Joints   []int      `json:"joints"`
	Weights  []float64  `json:"weights"`
}

// toDocument はJSON表現をドメイン文書へ変換する。
func (d documentDTO) toDocument() (*moutput.MotionDocument, error) {
	document := &moutput.MotionDocument{Name: d.Name}
	for _, clip := range d.Clips {
		converted, err := clip.toClip()
		if err != nil {
			return nil, err
		}
		document.Clips = append(document.Clips, converted)
	}
	if d.Skeleton != nil {
		skeleton, err := d.Skeleton.toSkeleton()
		if err != nil {
			return nil, err
		}
		document.Skeleton = skeleton
	}
	if d.Mesh != nil {
		document.Mesh = d.Mesh.toMesh()
	}
	return document, nil
}

// toClip はクリップJSONをドメインクリップへ変換する。
func (d clipDTO) toClip() (*motion.Clip, error) {
	clip := motion.NewClip(d.Name, d.Duration)
	for _, track := range d.Tracks {
		converted, err := track.toTrack()
		if err != nil {
			return nil, fmt.Errorf("クリップ %q: %w", d.Name, err)
		}
		clip.Tracks = append(clip.Tracks, converted)
	}
	return clip, nil
}

// toTrack はトラックJSONをドメイントラックへ変換する。
func (d trackDTO) toTrack() (*motion.Track, error) {
	var target motion.TargetRef
	switch d.Kind {
	case "joint":
		target = motion.NewJointTarget(d.Target)
	case "node":
		target = motion.NewNodeTarget(d.Target)
	default:
		return nil, fmt.Errorf("トラック対象種別が不正です: %q", d.Kind)
	}
	track := &motion.Track{
		Target: target,
		Times:  append([]float64(nil), d.Times...),
	}
	if d.Translations != nil {
		track.Translations = make([]mmath.Vec3, len(d.Translations))
		for index, value := range d.Translations {
			track.Translations[index] = mmath.NewVec3(value[0], value[1], value[2])
		}
	}
	if d.Rotations != nil {
		track.Rotations = make([]mmath.Quaternion, len(d.Rotations))
		for index, value := range d.Rotations {
			track.Rotations[index] = quaternionFromXYZW(value)
		}
	}
	if d.Scales != nil {
		track.Scales = make([]mmath.Vec3, len(d.Scales))
		for index, value := range d.Scales {
			track.Scales[index] = mmath.NewVec3(value[0], value[1], value[2])
		}
	}
	return track, nil
}

// toSkeleton はスケルトンJSONをドメインスケルトンへ変換する。
func (d skeletonDTO) toSkeleton() (*model.Skeleton, error) {
	joints := make([]*model.Joint, 0, len(d.Joints))
	for _, joint := range d.Joints {
		bind := mmath.NewTransform()
		if joint.Translation != nil {
			bind.Translation = mmath.NewVec3(joint.Translation[0], joint.Translation[1], joint.Translation[2])
		}
		if joint.Rotation != nil {
			bind.Rotation = quaternionFromXYZW(*joint.Rotation)
		}
		if joint.Scale != nil {
			bind.Scale = mmath.NewVec3(joint.Scale[0], joint.Scale[1], joint.Scale[2])
		}
		joints = append(joints, &model.Joint{
			Name:          joint.Name,
			ParentIndex:   joint.Parent,
			BindTransform: bind,
		})
	}
	return model.NewSkeleton(joints)
}

// toMesh はメッシュJSONをドメインメッシュへ変換する。
func (d meshDTO) toMesh() *model.Mesh {
	mesh := &model.Mesh{Name: d.Name}
	for _, vertex := range d.Vertices {
		mesh.Vertices = append(mesh.Vertices, &model.Vertex{
			Position:     mmath.NewVec3(vertex.Position[0], vertex.Position[1], vertex.Position[2]),
			JointIndexes: append([]int(nil), vertex.Joints...),
			Weights:      append([]float64(nil), vertex.Weights...),
		})
	}
	return mesh
}

// fromDocument はドメイン文書をJSON表現へ変換する。
func fromDocument(document *moutput.MotionDocument) documentDTO {
	doc := documentDTO{Name: document.Name}
	for _, clip := range document.Clips {
		doc.Clips = append(doc.Clips, fromClip(clip))
	}
	if document.Skeleton != nil {
		doc.Skeleton = fromSkeleton(document.Skeleton)
	}
	if document.Mesh != nil {
		doc.Mesh = fromMesh(document.Mesh)
	}
	return doc
}

// fromClip はドメインクリップをJSON表現へ変換する。
func fromClip(clip *motion.Clip) clipDTO {
	dto := clipDTO{Name: clip.Name, Duration: clip.Duration}
	for _, track := range clip.Tracks {
		dto.Tracks = append(dto.Tracks, fromTrack(track))
	}
	return dto
}

// fromTrack はドメイントラックをJSON表現へ変換する。
func fromTrack(track *motion.Track) trackDTO {
	dto := trackDTO{
		Target: track.Target.Name,
		Times:  append([]float64(nil), track.Times...),
	}
	switch track.Target.Kind {
	case motion.TargetKindNode:
		dto.Kind = "node"
	default:
		dto.Kind = "joint"
	}
	if track.Translations != nil {
		dto.Translations = make([][3]float64, len(track.Translations))
		for index, value := range track.Translations {
			dto.Translations[index] = [3]float64{value.X, value.Y, value.Z}
		}
	}
	if track.Rotations != nil {
		dto.Rotations = make([][4]float64, len(track.Rotations))
		for index, value := range track.Rotations {
			dto.Rotations[index] = quaternionToXYZW(value)
		}
	}
	if track.Scales != nil {
		dto.Scales = make([][3]float64, len(track.Scales))
		for index, value := range track.Scales {
			dto.Scales[index] = [3]float64{value.X, value.Y, value.Z}
		}
	}
	return dto
}

// fromSkeleton はドメインスケルトンをJSON表現へ変換する。
func fromSkeleton(skeleton *model.Skeleton) *skeletonDTO {
	dto := &skeletonDTO{}
	for index := 0; index < skeleton.Len(); index++ {
		joint, err := skeleton.Get(index)
		if err != nil {
			continue
		}
		translation := [3]float64{
			joint.BindTransform.Translation.X,
			joint.BindTransform.Translation.Y,
			joint.BindTransform.Translation.Z,
		}
		rotation := quaternionToXYZW(joint.BindTransform.Rotation)
		scale := [3]float64{
			joint.BindTransform.Scale.X,
			joint.BindTransform.Scale.Y,
			joint.BindTransform.Scale.Z,
		}
		dto.Joints = append(dto.Joints, jointDTO{
			Name:        joint.Name,
			Parent:      joint.ParentIndex,
			Translation: &translation,
			Rotation:    &rotation,
			Scale:       &scale,
		})
	}
	return dto
}

// fromMesh はドメインメッシュをJSON表現へ変換する。
func fromMesh(mesh *model.Mesh) *meshDTO {
	dto := &meshDTO{Name: mesh.Name}
	for _, vertex := range mesh.Vertices {
		dto.Vertices = append(dto.Vertices, vertexDTO{
			Position: [3]float64{vertex.Position.X, vertex.Position.Y, vertex.Position.Z},
			Joints:   append([]int(nil), vertex.JointIndexes...),
			Weights:  append([]float64(nil), vertex.Weights...),
		})
	}
	return dto
}

// quaternionFromXYZW は[x,y,z,w]配列を回転へ変換する。
func quaternionFromXYZW(value [4]float64) mmath.Quaternion {
	q := mmath.NewQuaternion()
	q.V[0] = value[0]
	q.V[1] = value[1]
	q.V[2] = value[2]
	q.W = value[3]
	return q.Normalized()
}

// quaternionToXYZW は回転を[x,y,z,w]配列へ変換する。
func quaternionToXYZW(q mmath.Quaternion) [4]float64 {
	return [4]float64{q.V[0], q.V[1], q.V[2], q.W}
}
