// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers candidate texture files and classifies them by the
// color treatment their filenames imply.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tx-convert/pkg/types"
)

// validExts lists the source texture extensions worth converting.
var validExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".exr":  true,
	".dds":  true,
	".tga":  true,
	".bmp":  true,
	".psd":  true,
}

// colorTags mark sRGB color maps; displacementTags mark displacement/height
// maps. Displacement wins when both match.
var (
	colorTags        = []string{"srgb", "basecolor", "albedo", "color", "diffuse"}
	displacementTags = []string{"dsp", "disp", "displacement", "zdisp", "height"}
)

// Classify derives the texture kind from the base filename.
func Classify(name string) types.TextureKind {
	low := strings.ToLower(filepath.Base(name))
	for _, tag := range displacementTags {
		if strings.Contains(low, tag) {
			return types.KindDisplacement
		}
	}
	for _, tag := range colorTags {
		if strings.Contains(low, tag) {
			return types.KindColor
		}
	}
	return types.KindData
}

// Textures walks root and returns every convertible texture in walk order.
// Files that are already .tx outputs are never candidates. The filter, when
// set, is a substring match on the file name.
func Textures(root string, cfg types.ScanConfig) ([]types.Texture, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var textures []types.Texture
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !cfg.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !validExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if cfg.Filter != "" && !strings.Contains(d.Name(), cfg.Filter) {
			return nil
		}
		textures = append(textures, types.Texture{
			Path: path,
			Kind: Classify(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return textures, nil
}
