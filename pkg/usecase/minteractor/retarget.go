// 指示: miu200521358
package minteractor

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/miu200521358/mu_motion_edit/pkg/domain/mmath"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/model"
	"github.com/miu200521358/mu_motion_edit/pkg/domain/motion"
)

const (
	// retargetFallbackRate はトラックを持たない変換元ジョイントの
	// サンプリンググリッドのレート(fps)。
	retargetFallbackRate = 30.0
)

// RetargetRequest はクリップのスケルトン間リターゲット要求を表す。
// SourceSkeletonは変換元トラックのチャンネル欠落をバインドポーズで補うために
// 使われ、省略するとトラックの値だけを使う。
type RetargetRequest struct {
	SourceClip     *motion.Clip
	SourceSkeleton *model.Skeleton
	Mapping        *model.SkeletonMapping
	NewName        string
}

// Retarget は変換元クリップをマッピングに従って変換先スケルトン向けの
// 新クリップへ変換し、集合へ追加する。
// 各変換先ジョイントのトラックは変換元トラック自身のキーフレーム時刻で
// サンプリングし、補正回転を合成して作る。対応の無いジョイントにはトラックを作らない。
func (uc *MotionEditUsecase) Retarget(request RetargetRequest) error {
	if request.SourceClip == nil {
		return fmt.Errorf("変換元クリップが未設定です")
	}
	if request.Mapping == nil {
		return fmt.Errorf("マッピングが未設定です")
	}
	if request.NewName == "" || motion.IsReservedClipName(request.NewName) {
		return fmt.Errorf("変換先クリップ名が不正です: %q", request.NewName)
	}

	// 対応ごとのサンプリング時刻を決め、全時刻の和集合でポーズを先に作っておく
	sampleTimes := make(map[string][]float64, request.Mapping.Len())
	for _, entry := range request.Mapping.Entries() {
		sampleTimes[entry.SourceName] = retargetSampleTimes(request, entry.SourceName)
	}
	poseCache, err := buildPoseCache(request, sampleTimes)
	if err != nil {
		return err
	}

	newClip := motion.NewClip(request.NewName, request.SourceClip.Duration)
	entries := request.Mapping.Entries()
	newTracks := make([]*motion.Track, len(entries))
	var eg errgroup.Group
	for index, entry := range entries {
		eg.Go(func() error {
			newTrack, err := retargetJoint(request, entry, sampleTimes[entry.SourceName], poseCache)
			if err != nil {
				return fmt.Errorf("ジョイント %q のリターゲットに失敗しました: %w",
					entry.SourceName, err)
			}
			newTracks[index] = newTrack
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, newTrack := range newTracks {
		if newTrack != nil {
			newClip.Tracks = append(newClip.Tracks, newTrack)
		}
	}
	if len(newClip.Tracks) == 0 {
		return fmt.Errorf("マッピング %q で変換できるトラックがありません", request.Mapping.Name)
	}

	description := fmt.Sprintf("クリップ %q をマッピング %q で %q へリターゲット",
		request.SourceClip.Name, request.Mapping.Name, request.NewName)
	return uc.addClip(newClip, description)
}

// retargetSampleTimes は変換元ジョイントのサンプリング時刻列を返す。
// トラックがあればその時刻列、無ければ30fpsの等間隔グリッド。
func retargetSampleTimes(request RetargetRequest, sourceName string) []float64 {
	track := request.SourceClip.FindTrack(motion.NewJointTarget(sourceName))
	if track != nil {
		return track.Times
	}
	duration := request.SourceClip.Duration
	interval := 1.0 / retargetFallbackRate
	times := make([]float64, 0, int(duration*retargetFallbackRate)+2)
	for time := 0.0; time <= duration+motion.TimeEpsilon; time += interval {
		times = append(times, time)
	}
	if len(times) == 0 || duration-times[len(times)-1] > motion.TimeEpsilon {
		times = append(times, duration)
	}
	return times
}

// buildPoseCache は必要な全サンプリング時刻の変換元ポーズを昇順に作る。
// スケルトンが無い場合はnilを返し、トラック値だけでリターゲットする。
func buildPoseCache(request RetargetRequest, sampleTimes map[string][]float64) (map[float64]*model.Pose, error) {
	if request.SourceSkeleton == nil {
		return nil, nil
	}
	timeSet := make(map[float64]struct{})
	for _, times := range sampleTimes {
		for _, time := range times {
			timeSet[time] = struct{}{}
		}
	}
	sorted := make([]float64, 0, len(timeSet))
	for time := range timeSet {
		sorted = append(sorted, time)
	}
	sort.Float64s(sorted)

	cache := make(map[float64]*model.Pose, len(sorted))
	for _, time := range sorted {
		pose, err := model.NewPose(request.SourceSkeleton)
		if err != nil {
			return nil, err
		}
		if err := pose.SetToClip(request.SourceClip, time); err != nil {
			return nil, err
		}
		cache[time] = pose
	}
	return cache, nil
}

// retargetJoint は1対応ぶんの変換先トラックを作る。変換できない場合はnil。
// 変換元にトラックもジョイントも無い対応はスキップの印としてnilを返す。
func retargetJoint(request RetargetRequest, entry model.JointMapEntry,
	times []float64, poseCache map[float64]*model.Pose) (*motion.Track, error) {
	sourceTrack := request.SourceClip.FindTrack(motion.NewJointTarget(entry.SourceName))

	var sourceJoint *model.Joint
	if poseCache != nil {
		joint, err := request.SourceSkeleton.GetByName(entry.SourceName)
		if err == nil {
			sourceJoint = joint
		}
	}
	if sourceTrack == nil && sourceJoint == nil {
		return nil, nil
	}

	newTrack := &motion.Track{
		Target:    motion.NewJointTarget(entry.TargetName),
		Times:     append([]float64(nil), times...),
		Rotations: make([]mmath.Quaternion, len(times)),
	}
	if sourceJoint != nil || sourceTrack.HasTranslations() {
		newTrack.Translations = make([]mmath.Vec3, len(times))
	}

	for index, time := range times {
		var local mmath.Transform
		var err error
		if sourceJoint != nil {
			// ポーズ経由ならチャンネル欠落がバインドポーズで補われている
			local, err = poseCache[time].LocalTransform(sourceJoint.Index)
		} else {
			local, err = motion.Interpolate(sourceTrack, time)
		}
		if err != nil {
			return nil, err
		}
		newTrack.Rotations[index] = local.Rotation.Muled(entry.Twist).Normalized()
		if newTrack.Translations != nil {
			newTrack.Translations[index] = local.Translation
		}
	}
	return newTrack, nil
}
