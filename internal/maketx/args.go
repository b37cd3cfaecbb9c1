// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package maketx

import "github.com/pdiddy/tx-convert/pkg/types"

// Color space names used in the --colorconvert pair. The target space is
// always ACEScg; the source depends on the texture kind.
const (
	spaceSRGB   = "Utility - sRGB - Texture"
	spaceRaw    = "Utility - Raw"
	spaceACEScg = "ACES - ACEScg"
)

// BuildArgs constructs the full maketx argument list for one texture.
// Each invocation is pinned to a single tool thread; parallelism comes from
// running several processes, not from maketx itself.
func BuildArgs(tex types.Texture, target string, cfg types.ToolConfig) []string {
	args := []string{tex.Path}

	if cfg.OCIOPath != "" {
		args = append(args, "--colorconfig", cfg.OCIOPath)
	}

	args = append(args,
		"--opaque-detect", "--constant-color-detect", "--monochrome-detect",
		"--fixnan", "box3",
		"-u",
		"--filter", "lanczos3",
		"--attrib", "tiff:half", "1",
		"--unpremult",
		"--oiio",
	)

	args = append(args, "--colorconvert")
	if tex.Kind == types.KindColor {
		args = append(args, spaceSRGB, spaceACEScg)
	} else {
		args = append(args, spaceRaw, spaceACEScg)
	}

	if tex.Kind == types.KindDisplacement {
		args = append(args, "-d", "float")
	} else {
		args = append(args, "-d", "half")
	}

	if cfg.Verbose {
		args = append(args, "-v")
	}

	args = append(args, "--threads", "1", "-o", target)
	return args
}

// NewTask pairs a texture with its output path and argument list.
func NewTask(tex types.Texture, cfg types.ToolConfig) types.Task {
	target := types.OutputPath(tex.Path)
	return types.Task{
		SourcePath: tex.Path,
		TargetPath: target,
		Args:       BuildArgs(tex, target, cfg),
	}
}
