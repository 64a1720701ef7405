package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveConfigPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "conf.yaml")

	tests := []struct {
		name     string
		explicit bool
		root     string
		path     string
		want     string
	}{
		{
			name: "default follows workspace root",
			root: "/home/u/proj",
			path: ".data2prompt.yaml",
			want: filepath.Join("/home/u/proj", ".data2prompt.yaml"),
		},
		{
			name:     "explicit relative path stays cwd-relative",
			explicit: true,
			root:     "/home/u/proj",
			path:     "conf/d2p.yaml",
			want:     "conf/d2p.yaml",
		},
		{
			name: "absolute default untouched",
			root: "/home/u/proj",
			path: abs,
			want: abs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveConfigPath(tt.explicit, tt.root, tt.path))
		})
	}
}
