// 指示: miu200521358
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_motion_edit/pkg/adapter/mpresenter/messages"
)

func TestParseOptionsWithFlags(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{
		"-in", "walk.json", "-recipe", "edit.yaml", "-out", "walk_out.json", "-map", "map.yaml",
	}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "walk.json" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.recipePath != "edit.yaml" {
		t.Fatalf("recipePath mismatch: %s", opts.recipePath)
	}
	if opts.outputPath != "walk_out.json" {
		t.Fatalf("outputPath mismatch: %s", opts.outputPath)
	}
	if opts.mappingPath != "map.yaml" {
		t.Fatalf("mappingPath mismatch: %s", opts.mappingPath)
	}
}

func TestParseOptionsWithPositionals(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{"walk.json", "edit.yaml", "result.json"}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.inputPath != "walk.json" {
		t.Fatalf("inputPath mismatch: %s", opts.inputPath)
	}
	if opts.recipePath != "edit.yaml" {
		t.Fatalf("recipePath mismatch: %s", opts.recipePath)
	}
	if opts.outputPath != "result.json" {
		t.Fatalf("outputPath mismatch: %s", opts.outputPath)
	}
}

func TestParseOptionsRequireInputAndRecipe(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	_, err := parseOptions([]string{"-recipe", "edit.yaml"}, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != messages.MessageInputRequired {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = parseOptions([]string{"-in", "walk.json"}, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != messages.MessageRecipeRequired {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseOptionsRequireJsonExt(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	_, err := parseOptions([]string{"-in", "walk.bvh", "-recipe", "edit.yaml"}, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), ".json") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveOutputPathDefault(t *testing.T) {
	out, err := resolveOutputPath(filepath.Join("work", "walk.json"), "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	expected := filepath.Join("work", "walk_edited.json")
	if out != expected {
		t.Fatalf("output mismatch: %s != %s", out, expected)
	}
}

func TestResolveOutputPathRequireJsonExt(t *testing.T) {
	_, err := resolveOutputPath("walk.json", "walk.bvh")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), ".json") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunAppliesRecipe(t *testing.T) {
	tempDir := t.TempDir()
	inPath := filepath.Join(tempDir, "walk.json")
	recipePath := filepath.Join(tempDir, "edit.yaml")
	outPath := filepath.Join(tempDir, "result.json")

	writeTestMotion(t, inPath, map[string]any{
		"name": "walker",
		"clips": []any{
			map[string]any{
				"name":     "walk",
				"duration": 2.0,
				"tracks": []any{
					map[string]any{
						"kind":   "joint",
						"target": "hip",
						"times":  []float64{0, 1.0, 2.0},
						"translations": []any{
							[]float64{0, 0, 0},
							[]float64{1, 0, 0},
							[]float64{2, 0, 0},
						},
					},
				},
			},
		},
	})
	recipe := `steps:
  - op: select_clip
    clip: walk
  - op: select_track
    joint: hip
  - op: reverse_track
  - op: rename_clip
    new_name: walk_back
`
	if err := os.WriteFile(recipePath, []byte(recipe), 0o644); err != nil {
		t.Fatalf("write recipe failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	err := run([]string{"-in", inPath, "-recipe", recipePath, "-out", outPath}, outBuf, errBuf)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	wantLine := messages.LogPrefix + " " + fmt.Sprintf(messages.LogEditComplete, outPath)
	if !strings.Contains(outBuf.String(), wantLine) {
		t.Fatalf("missing completion output: %s", outBuf.String())
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output failed: %v", err)
	}
	saved := map[string]any{}
	if err := json.Unmarshal(b, &saved); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	clips, ok := saved["clips"].([]any)
	if !ok || len(clips) != 1 {
		t.Fatalf("clips mismatch: %v", saved["clips"])
	}
	clip, ok := clips[0].(map[string]any)
	if !ok || clip["name"] != "walk_back" {
		t.Fatalf("clip name mismatch: %v", clips[0])
	}
}

func TestRunAttachesSkeletonDocument(t *testing.T) {
	tempDir := t.TempDir()
	inPath := filepath.Join(tempDir, "walk.json")
	rigPath := filepath.Join(tempDir, "rig.json")
	recipePath := filepath.Join(tempDir, "edit.yaml")
	outPath := filepath.Join(tempDir, "result.json")

	writeTestMotion(t, inPath, map[string]any{
		"clips": []any{
			map[string]any{
				"name":     "walk",
				"duration": 1.0,
				"tracks": []any{
					map[string]any{
						"kind":         "joint",
						"target":       "hip",
						"times":        []float64{0, 1.0},
						"translations": []any{[]float64{0, 1, 0}, []float64{0, 1, 0}},
					},
				},
			},
		},
	})
	writeTestMotion(t, rigPath, map[string]any{
		"clips": []any{},
		"skeleton": map[string]any{
			"joints": []any{
				map[string]any{
					"name":        "hip",
					"parent":      -1,
					"translation": []float64{0, 1, 0},
				},
			},
		},
		"mesh": map[string]any{
			"vertices": []any{
				map[string]any{
					"position": []float64{0, 0, 0},
					"joints":   []int{0},
					"weights":  []float64{1},
				},
			},
		},
	})
	recipe := `steps:
  - op: select_clip
    clip: walk
  - op: select_track
    joint: hip
  - op: support
`
	if err := os.WriteFile(recipePath, []byte(recipe), 0o644); err != nil {
		t.Fatalf("write recipe failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	err := run([]string{
		"-in", inPath, "-recipe", recipePath, "-out", outPath, "-skeleton", rigPath,
	}, outBuf, errBuf)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	wantLine := messages.LogPrefix + " " + fmt.Sprintf(messages.LogSkeletonAttached, 1)
	if !strings.Contains(outBuf.String(), wantLine) {
		t.Fatalf("missing skeleton output: %s", outBuf.String())
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestRunFailsOnBrokenRecipe(t *testing.T) {
	tempDir := t.TempDir()
	inPath := filepath.Join(tempDir, "walk.json")
	recipePath := filepath.Join(tempDir, "edit.yaml")

	writeTestMotion(t, inPath, map[string]any{
		"clips": []any{
			map[string]any{
				"name":     "walk",
				"duration": 1.0,
				"tracks": []any{
					map[string]any{
						"kind":         "joint",
						"target":       "hip",
						"times":        []float64{0},
						"translations": []any{[]float64{0, 0, 0}},
					},
				},
			},
		},
	})
	if err := os.WriteFile(recipePath, []byte("steps:\n  - op: explode\n"), 0o644); err != nil {
		t.Fatalf("write recipe failed: %v", err)
	}

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	err := run([]string{"-in", inPath, "-recipe", recipePath}, outBuf, errBuf)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), messages.MessageRecipeApplyFailed) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// writeTestMotion はテスト用モーションJSONを書き出す。
func writeTestMotion(t *testing.T, path string, document map[string]any) {
	t.Helper()
	b, err := json.Marshal(document)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write motion failed: %v", err)
	}
}
