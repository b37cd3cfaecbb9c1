// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// TextureKind classifies a source texture by the color treatment maketx
// should apply to it.
type TextureKind string

const (
	// KindColor marks sRGB color maps (albedo, diffuse, base color).
	KindColor TextureKind = "color"

	// KindData marks raw data maps (roughness, normals, masks).
	KindData TextureKind = "data"

	// KindDisplacement marks displacement and height maps, which are
	// converted at float precision instead of half.
	KindDisplacement TextureKind = "displacement"
)

// Texture is a candidate source file discovered by a scan.
type Texture struct {
	// Path is the source texture file path.
	Path string `json:"path" yaml:"path"`

	// Kind is the color classification derived from the filename.
	Kind TextureKind `json:"kind" yaml:"kind"`
}

// OutputPath returns the sibling .tx path for a source texture: same
// directory, extension replaced.
func OutputPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + ".tx"
}
