package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Extension
		ok   bool
	}{
		{name: "png", path: "img/photo.png", want: PNG, ok: true},
		{name: "gif", path: "anim.gif", want: GIF, ok: true},
		{name: "dds", path: "/textures/wall.dds", want: DDS, ok: true},
		{name: "uppercase is not recognised", path: "photo.PNG", ok: false},
		{name: "jpeg spelling is not recognised", path: "photo.jpeg", ok: false},
		{name: "no extension", path: "README", ok: false},
		{name: "dot directory", path: "dir.png/file", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Of(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAnimated(t *testing.T) {
	assert.True(t, IsAnimated("a.gif"))
	for _, p := range []string{"a.bmp", "a.dds", "a.jpg", "a.png", "a.tga", "a.psd"} {
		assert.False(t, IsAnimated(p), p)
		assert.True(t, IsSupported(p), p)
	}
	assert.False(t, IsAnimated("a.GIF"))
}

func TestList(t *testing.T) {
	assert.Equal(t, ".bmp, .dds, .jpg, .png, .tga, .psd, .gif", List())
}
