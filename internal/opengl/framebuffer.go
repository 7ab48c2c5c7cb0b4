package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// GroundFramebuffer is the square off-screen target the ground AO pass
// renders into. The flood-light ground pass samples it back as u_fb.
type GroundFramebuffer struct {
	FBO      uint32
	ColorTex uint32
	Size     int32
}

// NewGroundFramebuffer creates an RGBA16F colour-only FBO of size×size.
func NewGroundFramebuffer(size int) (*GroundFramebuffer, error) {
	fb := &GroundFramebuffer{Size: int32(size)}

	gl.GenTextures(1, &fb.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F,
		int32(size), int32(size), 0, gl.RGBA, gl.HALF_FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &fb.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.ColorTex, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteTextures(1, &fb.ColorTex)
		gl.DeleteFramebuffers(1, &fb.FBO)
		return nil, fmt.Errorf("ground FBO incomplete: status=0x%X", status)
	}

	return fb, nil
}

// BeginAOPass redirects drawing into the framebuffer and clears it.
func (fb *GroundFramebuffer) BeginAOPass() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.Viewport(0, 0, fb.Size, fb.Size)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EndAOPass restores the default framebuffer and the caller's viewport.
func (fb *GroundFramebuffer) EndAOPass(viewportW, viewportH int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, viewportW, viewportH)
}

// BindTexture makes the colour attachment available on texture unit unit.
func (fb *GroundFramebuffer) BindTexture(unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
}

// Destroy frees GPU resources.
func (fb *GroundFramebuffer) Destroy() {
	if fb.FBO != 0 {
		gl.DeleteFramebuffers(1, &fb.FBO)
		fb.FBO = 0
	}
	if fb.ColorTex != 0 {
		gl.DeleteTextures(1, &fb.ColorTex)
		fb.ColorTex = 0
	}
}
