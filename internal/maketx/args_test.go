// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package maketx

import (
	"slices"
	"strings"
	"testing"

	"github.com/pdiddy/tx-convert/pkg/types"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name        string
		tex         types.Texture
		cfg         types.ToolConfig
		wantPairs   [][]string // consecutive argument pairs that must appear
		wantAbsent  []string
		wantPresent []string
	}{
		{
			name: "color texture converts from sRGB at half precision",
			tex:  types.Texture{Path: "rock_albedo.png", Kind: types.KindColor},
			cfg:  types.ToolConfig{OCIOPath: "/cfg/aces.ocio"},
			wantPairs: [][]string{
				{"--colorconfig", "/cfg/aces.ocio"},
				{"--colorconvert", "Utility - sRGB - Texture", "ACES - ACEScg"},
				{"-d", "half"},
				{"--threads", "1"},
				{"-o", "rock_albedo.tx"},
			},
			wantAbsent: []string{"-v"},
		},
		{
			name: "data texture converts from raw",
			tex:  types.Texture{Path: "rock_roughness.png", Kind: types.KindData},
			cfg:  types.ToolConfig{OCIOPath: "/cfg/aces.ocio"},
			wantPairs: [][]string{
				{"--colorconvert", "Utility - Raw", "ACES - ACEScg"},
				{"-d", "half"},
			},
		},
		{
			name: "displacement uses float precision",
			tex:  types.Texture{Path: "terrain_height.exr", Kind: types.KindDisplacement},
			cfg:  types.ToolConfig{OCIOPath: "/cfg/aces.ocio"},
			wantPairs: [][]string{
				{"--colorconvert", "Utility - Raw", "ACES - ACEScg"},
				{"-d", "float"},
			},
		},
		{
			name:       "no ocio omits colorconfig",
			tex:        types.Texture{Path: "mask.png", Kind: types.KindData},
			cfg:        types.ToolConfig{},
			wantAbsent: []string{"--colorconfig"},
		},
		{
			name:        "verbose adds -v",
			tex:         types.Texture{Path: "mask.png", Kind: types.KindData},
			cfg:         types.ToolConfig{Verbose: true},
			wantPresent: []string{"-v", "--unpremult", "--oiio", "--opaque-detect"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := BuildArgs(tt.tex, types.OutputPath(tt.tex.Path), tt.cfg)

			if args[0] != tt.tex.Path {
				t.Errorf("first argument = %q, want source path %q", args[0], tt.tex.Path)
			}
			for _, pair := range tt.wantPairs {
				if !containsSeq(args, pair) {
					t.Errorf("args missing sequence %q\nargs: %s", pair, strings.Join(args, " "))
				}
			}
			for _, flag := range tt.wantPresent {
				if !slices.Contains(args, flag) {
					t.Errorf("args missing %q", flag)
				}
			}
			for _, flag := range tt.wantAbsent {
				if slices.Contains(args, flag) {
					t.Errorf("args should not contain %q", flag)
				}
			}
		})
	}
}

func TestNewTask(t *testing.T) {
	tex := types.Texture{Path: "props/crate_diffuse.jpg", Kind: types.KindColor}
	task := NewTask(tex, types.ToolConfig{OCIOPath: "/cfg/aces.ocio"})

	if task.SourcePath != tex.Path {
		t.Errorf("source = %q, want %q", task.SourcePath, tex.Path)
	}
	if task.TargetPath != "props/crate_diffuse.tx" {
		t.Errorf("target = %q, want props/crate_diffuse.tx", task.TargetPath)
	}
	if !containsSeq(task.Args, []string{"-o", task.TargetPath}) {
		t.Errorf("args should name the target path, got: %v", task.Args)
	}
}

// containsSeq reports whether seq appears as consecutive elements of args.
func containsSeq(args, seq []string) bool {
	for i := 0; i+len(seq) <= len(args); i++ {
		if slices.Equal(args[i:i+len(seq)], seq) {
			return true
		}
	}
	return false
}
