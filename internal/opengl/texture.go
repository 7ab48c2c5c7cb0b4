package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// PatternAtlas is the RGBA image the pattern pass tiles across faces.
type PatternAtlas struct {
	ID            uint32
	Width, Height int32
}

// NewPatternAtlas uploads width×height RGBA8 pixels. Call it with the GL
// context current.
func NewPatternAtlas(width, height int, pixels []uint8) (*PatternAtlas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("atlas size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("atlas %dx%d needs %d bytes, got %d", width, height, width*height*4, len(pixels))
	}

	a := &PatternAtlas{Width: int32(width), Height: int32(height)}
	gl.GenTextures(1, &a.ID)
	gl.BindTexture(gl.TEXTURE_2D, a.ID)

	// patterns wrap in the shader, so the atlas itself clamps
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, a.Width, a.Height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return a, nil
}

// BindTexture makes the atlas available on texture unit unit.
func (a *PatternAtlas) BindTexture(unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, a.ID)
}

func (a *PatternAtlas) Destroy() {
	if a.ID != 0 {
		gl.DeleteTextures(1, &a.ID)
		a.ID = 0
	}
}
