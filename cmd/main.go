// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_motion_edit/pkg/adapter/io_motion"
	"github.com/miu200521358/mu_motion_edit/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_motion_edit/pkg/usecase/port/moutput"
)

// options はCLI引数を保持する。
type options struct {
	inputPath    string
	recipePath   string
	outputPath   string
	mappingPath  string
	skeletonPath string
}

// main はレシピに従ったモーション編集を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// progress は接頭辞付きの進捗行を出力する。
func progress(out io.Writer, format string, args ...any) {
	fmt.Fprintf(out, messages.LogPrefix+" "+format+"\n", args...)
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	repository := io_motion.NewMotionRepository()
	if !repository.CanLoad(opts.inputPath) {
		return fmt.Errorf(messages.MessageInputUnsupported, opts.inputPath)
	}

	usecase := minteractor.NewMotionEditUsecase(minteractor.MotionEditUsecaseDeps{
		MotionReader: repository,
		MotionWriter: repository,
	})

	progress(out, messages.LogLoadStart, opts.inputPath)
	loadResult, err := usecase.LoadMotion(minteractor.LoadRequest{Path: opts.inputPath})
	if err != nil {
		return fmt.Errorf(messages.MessageLoadFailed+": %w", err)
	}
	progress(out, messages.LogLoadComplete, loadResult.ClipCount, loadResult.RepairCount)

	if opts.skeletonPath != "" {
		rigDocument, err := repository.Load(opts.skeletonPath)
		if err != nil {
			return fmt.Errorf(messages.MessageSkeletonLoadFailed+": %w", err)
		}
		if rigDocument.Skeleton == nil {
			return fmt.Errorf(messages.MessageSkeletonMissing, opts.skeletonPath)
		}
		if err := usecase.AttachRig(rigDocument.Skeleton, rigDocument.Mesh); err != nil {
			return fmt.Errorf(messages.MessageSkeletonAttachFailed+": %w", err)
		}
		progress(out, messages.LogSkeletonAttached, rigDocument.Skeleton.Len())
	}

	recipe, err := io_motion.LoadRecipe(opts.recipePath)
	if err != nil {
		return fmt.Errorf(messages.MessageRecipeLoadFailed+": %w", err)
	}
	runner := io_motion.NewRecipeRunner(usecase, opts.mappingPath)
	progress(out, messages.LogRecipeStart, len(recipe.Steps))
	if err := runner.Apply(recipe); err != nil {
		return fmt.Errorf(messages.MessageRecipeApplyFailed+": %w", err)
	}

	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	progress(out, messages.LogSaveStart, outputPath)
	err = usecase.SaveMotion(minteractor.SaveRequest{
		Path:    outputPath,
		Options: moutput.SaveOptions{Indent: true, Overwrite: true},
	})
	if err != nil {
		return fmt.Errorf(messages.MessageSaveFailed+": %w", err)
	}
	progress(out, messages.LogEditComplete, outputPath)
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_motion_edit", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", messages.LabelMotionPath)
	recipe := fs.String("recipe", "", messages.LabelRecipePath)
	out := fs.String("out", "", messages.LabelOutputPath)
	mapping := fs.String("map", "", messages.LabelMappingPath)
	skeleton := fs.String("skeleton", "", messages.LabelSkeletonPath)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *recipe == "" && fs.NArg() > 1 {
		*recipe = fs.Arg(1)
	}
	if *out == "" && fs.NArg() > 2 {
		*out = fs.Arg(2)
	}
	if *in == "" {
		return options{}, errors.New(messages.MessageInputRequired)
	}
	if *recipe == "" {
		return options{}, errors.New(messages.MessageRecipeRequired)
	}

	if !strings.EqualFold(filepath.Ext(*in), ".json") {
		return options{}, fmt.Errorf(messages.MessageInputExtInvalid, *in)
	}
	if *skeleton != "" && !strings.EqualFold(filepath.Ext(*skeleton), ".json") {
		return options{}, fmt.Errorf(messages.MessageSkeletonExtInvalid, *skeleton)
	}

	return options{
		inputPath:    *in,
		recipePath:   *recipe,
		outputPath:   *out,
		mappingPath:  *mapping,
		skeletonPath: *skeleton,
	}, nil
}

// resolveOutputPath は出力モーションパスを解決する。
// 省略時は入力名に _edited を付けた隣のファイルへ書く。
func resolveOutputPath(inputPath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return filepath.Join(dir, base+"_edited.json"), nil
	}
	if !strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return "", fmt.Errorf(messages.MessageOutputExtInvalid, outputPath)
	}
	return outputPath, nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.MessageOutputDirFailed+": %w", err)
	}
	return nil
}
