// 指示: miu200521358
package io_motion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/minteractor"
)

// Recipe は編集手順のYAML定義を表す。手順は上から順に適用される。
type Recipe struct {
	Steps []RecipeStep `yaml:"steps"`
}

// RecipeStep は編集手順1件を表す。opごとに使うフィールドが異なる。
type RecipeStep struct {
	Op string `yaml:"op"`

	Clip    string `yaml:"clip,omitempty"`
	ClipB   string `yaml:"clip_b,omitempty"`
	NewName string `yaml:"new_name,omitempty"`
	Joint   string `yaml:"joint,omitempty"`
	Node    string `yaml:"node,omitempty"`

	Time     float64 `yaml:"time,omitempty"`
	NewTime  float64 `yaml:"new_time,omitempty"`
	Index    int     `yaml:"index,omitempty"`
	Start    int     `yaml:"start,omitempty"`
	Count    int     `yaml:"count,omitempty"`
	Factor   int     `yaml:"factor,omitempty"`
	Rate     float64 `yaml:"rate,omitempty"`
	Window   float64 `yaml:"window,omitempty"`
	Weight   float64 `yaml:"weight,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	From     float64 `yaml:"from,omitempty"`
	To       float64 `yaml:"to,omitempty"`

	Translation *[3]float64 `yaml:"translation,omitempty"`
	Rotation    *[3]float64 `yaml:"rotation,omitempty"`
	Scale       *[3]float64 `yaml:"scale,omitempty"`

	MappingPath string `yaml:"mapping,omitempty"`

	Sources []RecipeMixSource `yaml:"sources,omitempty"`
}

// RecipeMixSource は合成手順の合成元1件を表す。
type RecipeMixSource struct {
	Clip  string `yaml:"clip"`
	Joint string `yaml:"joint,omitempty"`
	Node  string `yaml:"node,omitempty"`
}

// LoadRecipe は編集手順YAMLを読み込む。
func LoadRecipe(path string) (*Recipe, error) {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".yaml") && !strings.EqualFold(ext, ".yml") {
		return nil, fmt.Errorf("レシピ拡張子が .yaml ではありません: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("レシピファイルの読み取りに失敗しました: %w", err)
	}
	recipe := &Recipe{}
	if err := yaml.Unmarshal(b, recipe); err != nil {
		return nil, fmt.Errorf("レシピYAMLの解析に失敗しました: %w", err)
	}
	if len(recipe.Steps) == 0 {
		return nil, fmt.Errorf("レシピに手順がありません: %s", path)
	}
	return recipe, nil
}

// RecipeRunner はレシピをユースケースへ適用する実行器を表す。
type RecipeRunner struct {
	usecase            *minteractor.MotionEditUsecase
	mappingReader      *MappingRepository
	defaultMappingPath string
}

// NewRecipeRunner はRecipeRunnerを生成する。
// defaultMappingPathはretarget手順がmappingを省略したときに使われる。
func NewRecipeRunner(usecase *minteractor.MotionEditUsecase, defaultMappingPath string) *RecipeRunner {
	return &RecipeRunner{
		usecase:            usecase,
		mappingReader:      NewMappingRepository(),
		defaultMappingPath: defaultMappingPath,
	}
}

// Apply はレシピ全手順を順に適用する。途中で失敗した手順以降は適用されない。
func (r *RecipeRunner) Apply(recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("レシピが未設定です")
	}
	for index, step := range recipe.Steps {
		if err := r.applyStep(step); err != nil {
			return fmt.Errorf("手順 %d (%s) の適用に失敗しました: %w", index+1, step.Op, err)
		}
		logMotionInfo("レシピ手順適用: index=%d op=%s", index+1, step.Op)
	}
	return nil
}

// stepTarget は手順のトラック対象指定を読み取る。
func stepTarget(joint, node string) (motion.TargetRef, error) {
	switch {
	case joint != "" && node != "":
		return motion.TargetRef{}, fmt.Errorf("jointとnodeは同時に指定できません")
	case joint != "":
		return motion.NewJointTarget(joint), nil
	case node != "":
		return motion.NewNodeTarget(node), nil
	default:
		return motion.TargetRef{}, fmt.Errorf("jointまたはnodeを指定してください")
	}
}

// stepTransform は手順の変換値指定を読み取る。省略した成分は単位値になる。
func stepTransform(step RecipeStep) mmath.Transform {
	transform := mmath.NewTransform()
	if step.Translation != nil {
		transform.Translation = mmath.NewVec3(
			step.Translation[0], step.Translation[1], step.Translation[2])
	}
	if step.Rotation != nil {
		transform.Rotation = mmath.NewQuaternionFromDegrees(
			step.Rotation[0], step.Rotation[1], step.Rotation[2])
	}
	if step.Scale != nil {
		transform.Scale = mmath.NewVec3(step.Scale[0], step.Scale[1], step.Scale[2])
	}
	return transform
}

// applyStep は手順1件を適用する。
func (r *RecipeRunner) applyStep(step RecipeStep) error {
	uc := r.usecase
	switch step.Op {
	case "select_clip":
		return uc.SelectClipByName(step.Clip)
	case "select_track":
		target, err := stepTarget(step.Joint, step.Node)
		if err != nil {
			return err
		}
		return uc.SelectTrack(target)
	case "insert_keyframe":
		return uc.InsertKeyframe(step.Time, stepTransform(step))
	case "delete_keyframes":
		return uc.DeleteKeyframes(step.Start, step.Count)
	case "replace_keyframe":
		return uc.ReplaceKeyframe(step.Index, stepTransform(step))
	case "set_keyframe_time":
		return uc.SetKeyframeTime(step.Index, step.NewTime)
	case "reduce_track":
		return uc.ReduceTrack(step.Factor)
	case "reduce_clip":
		return uc.ReduceClip(step.Factor)
	case "reverse_track":
		return uc.ReverseTrack()
	case "smooth_track":
		return uc.SmoothTrack(step.Window)
	case "smooth_clip":
		return uc.SmoothClip(step.Window)
	case "wrap_track":
		return uc.WrapTrack(step.Weight)
	case "wrap_clip":
		return uc.WrapClip(step.Weight)
	case "resample_rate":
		return uc.ResampleClipAtRate(step.Rate)
	case "resample_count":
		return uc.ResampleClipToNumber(step.Count)
	case "set_duration":
		return uc.SetClipDurationProportional(step.Duration)
	case "extract":
		return uc.ExtractClip(step.From, step.To, step.NewName)
	case "chain":
		return uc.ChainClips(step.Clip, step.ClipB, step.NewName)
	case "mix":
		sources := make([]minteractor.MixSource, 0, len(step.Sources))
		for _, source := range step.Sources {
			target, err := stepTarget(source.Joint, source.Node)
			if err != nil {
				return err
			}
			sources = append(sources, minteractor.MixSource{
				ClipName: source.Clip,
				Target:   target,
			})
		}
		return uc.MixClips(sources, step.NewName)
	case "retarget":
		return r.applyRetarget(step)
	case "support":
		return uc.TranslateForSupport()
	case "traction":
		return uc.TranslateForTraction()
	case "rename_clip":
		return uc.RenameClip(step.NewName)
	case "delete_clip":
		return uc.DeleteClip(step.Clip)
	case "checkpoint":
		uc.PreCheckpoint()
		return nil
	default:
		return fmt.Errorf("未対応の手順です: %q", step.Op)
	}
}

// applyRetarget はretarget手順を適用する。
// 変換元クリップは読み込み済み集合から名前で引く。
func (r *RecipeRunner) applyRetarget(step RecipeStep) error {
	mappingPath := step.MappingPath
	if mappingPath == "" {
		mappingPath = r.defaultMappingPath
	}
	if mappingPath == "" {
		return fmt.Errorf("マッピングファイルが指定されていません")
	}
	mapping, err := r.mappingReader.Load(mappingPath)
	if err != nil {
		return err
	}
	sourceClip := r.usecase.ClipSet().FindByName(step.Clip)
	if sourceClip == nil {
		return fmt.Errorf("変換元クリップ %q が見つかりません", step.Clip)
	}
	request := minteractor.RetargetRequest{
		SourceClip: sourceClip,
		Mapping:    mapping,
		NewName:    step.NewName,
	}
	if document := r.usecase.Document(); document != nil {
		request.SourceSkeleton = document.Skeleton
	}
	return r.usecase.Retarget(request)
}
