//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// attachmentFormat is the format of both color attachments.
const attachmentFormat = gputypes.TextureFormatRGBA8Unorm

// depthFormat is the format of the depth attachment.
const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// attachmentSet holds the color, object-ID and depth textures of a target.
type attachmentSet struct {
	colorTex  hal.Texture
	colorView hal.TextureView
	idTex     hal.Texture
	idView    hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
	width     uint32
	height    uint32
}

// ensure creates or recreates the textures if the requested dimensions
// differ from the current size. Matching dimensions are a no-op.
func (as *attachmentSet) ensure(device hal.Device, w, h uint32) error {
	if as.width == w && as.height == h && as.colorTex != nil {
		return nil
	}
	as.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}
	readable := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc

	var err error
	as.colorTex, as.colorView, err = createAttachment(device, "pick_color", size, attachmentFormat, readable)
	if err != nil {
		as.destroy(device)
		return err
	}
	as.idTex, as.idView, err = createAttachment(device, "pick_id", size, attachmentFormat, readable)
	if err != nil {
		as.destroy(device)
		return err
	}
	as.depthTex, as.depthView, err = createAttachment(device, "pick_depth", size, depthFormat,
		gputypes.TextureUsageRenderAttachment)
	if err != nil {
		as.destroy(device)
		return err
	}

	as.width = w
	as.height = h
	return nil
}

func createAttachment(
	device hal.Device, label string, size hal.Extent3D,
	format gputypes.TextureFormat, usage gputypes.TextureUsage,
) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: label + "_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

// ready reports whether the textures exist.
func (as *attachmentSet) ready() bool {
	return as.colorTex != nil
}

// destroy releases all textures and resets dimensions.
func (as *attachmentSet) destroy(device hal.Device) {
	release := func(tex *hal.Texture, view *hal.TextureView) {
		if *view != nil {
			device.DestroyTextureView(*view)
			*view = nil
		}
		if *tex != nil {
			device.DestroyTexture(*tex)
			*tex = nil
		}
	}
	release(&as.depthTex, &as.depthView)
	release(&as.idTex, &as.idView)
	release(&as.colorTex, &as.colorView)
	as.width = 0
	as.height = 0
}
