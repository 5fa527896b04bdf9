//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/switchgrid/pick"
	"github.com/gogpu/switchgrid/render"
)

// copyPitchAlignment is the BytesPerRow alignment required for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// fenceTimeout bounds every wait for GPU completion.
const fenceTimeout = 5 * time.Second

// ErrNilDevice is returned by NewPickTarget without a device or queue.
var ErrNilDevice = errors.New("gpu: nil device or queue")

// PickTarget is a render.Target backed by hal textures.
//
// PickTarget is not safe for concurrent use, except for SetLogger.
type PickTarget struct {
	device hal.Device
	queue  hal.Queue

	attachments attachmentSet
	pipeline    panelPipeline
	precompile  bool
	adapter     string

	// log is swapped by SetLogger while frames are being drawn.
	log atomic.Pointer[slog.Logger]

	// Reused between frames.
	verts      []render.WorldVertex
	vertexData []byte

	// destroyDevice is run by Destroy when the target owns its device.
	destroyDevice func()
}

// PickTargetOption configures a PickTarget.
type PickTargetOption func(*PickTarget)

// WithSPIRV lowers the panel shader to SPIR-V through naga before module
// creation.
func WithSPIRV() PickTargetOption {
	return func(t *PickTarget) { t.precompile = true }
}

// WithLogger sets the target's logger. By default nothing is logged.
func WithLogger(l *slog.Logger) PickTargetOption {
	return func(t *PickTarget) { t.SetLogger(l) }
}

// WithOwnedDevice registers a function that releases the device when the
// target is destroyed.
func WithOwnedDevice(release func()) PickTargetOption {
	return func(t *PickTarget) { t.destroyDevice = release }
}

// NewPickTarget creates a target on the given device. Textures are not
// created until Resize.
func NewPickTarget(device hal.Device, queue hal.Queue, opts ...PickTargetOption) (*PickTarget, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	t := &PickTarget{device: device, queue: queue}
	t.log.Store(slog.New(slog.DiscardHandler))
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// SetLogger replaces the target's logger. Nil silences it. SetLogger is
// safe to call while another goroutine draws or reads back.
func (t *PickTarget) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	t.log.Store(l)
}

func (t *PickTarget) logger() *slog.Logger { return t.log.Load() }

// Adapter returns the name of the adapter the target opened, or "" for a
// borrowed device.
func (t *PickTarget) Adapter() string { return t.adapter }

// Width returns the attachment width.
func (t *PickTarget) Width() int { return int(t.attachments.width) }

// Height returns the attachment height.
func (t *PickTarget) Height() int { return int(t.attachments.height) }

// Resize recreates the attachments. Non-positive dimensions release them.
func (t *PickTarget) Resize(width, height int) error {
	if t.device == nil {
		return nil
	}
	if width <= 0 || height <= 0 {
		t.attachments.destroy(t.device)
		return nil
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above
	if t.attachments.ready() && t.attachments.width == w && t.attachments.height == h {
		return nil
	}
	t.logger().Debug("pick target resize", "width", w, "height", h)
	if err := t.attachments.ensure(t.device, w, h); err != nil {
		return fmt.Errorf("gpu: resize %dx%d: %w", w, h, err)
	}
	return nil
}

// Draw records and submits one render pass for the frame.
func (t *PickTarget) Draw(frame *render.Frame, instances []render.Instance) error {
	if frame == nil {
		return render.ErrNilFrame
	}
	if t.device == nil || !t.attachments.ready() {
		return nil
	}
	if !t.pipeline.ready() {
		if err := t.pipeline.create(t.device, t.precompile); err != nil {
			return fmt.Errorf("gpu: %w", err)
		}
	}

	t.verts = render.Expand(t.verts[:0], instances)
	t.vertexData = buildPanelVertices(t.vertexData, t.verts)

	res, err := t.buildFrameResources(frame)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	defer res.destroy(t.device)

	if err := t.encodeSubmit(frame.Background, res, uint32(len(t.verts))); err != nil { //nolint:gosec // vertex count fits uint32
		return fmt.Errorf("gpu: %w", err)
	}
	return nil
}

// frameResources are the buffers and bind group of one Draw.
type frameResources struct {
	vertexBuf  hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

func (r *frameResources) destroy(device hal.Device) {
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
	}
	if r.vertexBuf != nil {
		device.DestroyBuffer(r.vertexBuf)
	}
}

func (t *PickTarget) buildFrameResources(frame *render.Frame) (*frameResources, error) {
	res := &frameResources{}

	if len(t.vertexData) > 0 {
		buf, err := t.createAndUploadBuffer("panel_vertices", t.vertexData,
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		res.vertexBuf = buf
	}

	uniform := makePanelUniform(frame)
	buf, err := t.createAndUploadBuffer("panel_uniforms", uniform,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(t.device)
		return nil, err
	}
	res.uniformBuf = buf

	bg, err := t.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "panel_uniform_bg",
		Layout: t.pipeline.uniformLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: panelUniformSize,
			}},
		},
	})
	if err != nil {
		res.destroy(t.device)
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	res.bindGroup = bg
	return res, nil
}

func (t *PickTarget) encodeSubmit(bg render.Color, res *frameResources, vertexCount uint32) error {
	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pick_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pick_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "pick_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       t.attachments.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: float64(bg[3])},
			},
			{
				View:       t.attachments.idView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              t.attachments.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	if vertexCount > 0 {
		rp.SetPipeline(t.pipeline.res.Pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, res.vertexBuf, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	return t.submitAndWait(encoder)
}

// ReadObjectID copies one texel of the id attachment and decodes it.
func (t *PickTarget) ReadObjectID(x, y int) (int, error) {
	if t.device == nil || !t.attachments.ready() {
		return pick.None, nil
	}
	if x < 0 || y < 0 || x >= t.Width() || y >= t.Height() {
		return pick.None, nil
	}
	px, err := t.readback(t.attachments.idTex, uint32(x), uint32(y), 1, 1, "pick_id_staging") //nolint:gosec // bounds checked above
	if err != nil {
		return pick.None, fmt.Errorf("gpu: read object id at (%d, %d): %w", x, y, err)
	}
	id := pick.DecodeRGBA8([4]uint8{px[0], px[1], px[2], px[3]})
	t.logger().Debug("pick readback", "x", x, "y", y, "id", id)
	return id, nil
}

// ColorImage reads the color attachment back.
func (t *PickTarget) ColorImage() (*image.RGBA, error) {
	if t.device == nil || !t.attachments.ready() {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	w, h := t.attachments.width, t.attachments.height
	pix, err := t.readback(t.attachments.colorTex, 0, 0, w, h, "pick_color_staging")
	if err != nil {
		return nil, fmt.Errorf("gpu: read color attachment: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	copy(img.Pix, pix)
	return img, nil
}

// readback copies a w×h region at (x, y) of tex into a tight RGBA8 slice.
func (t *PickTarget) readback(tex hal.Texture, x, y, w, h uint32, label string) ([]byte, error) {
	encoder, err := t.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer t.device.DestroyBuffer(stagingBuf)

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase: hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: x, Y: y, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		Size: hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	if err := t.submitAndWait(encoder); err != nil {
		return nil, err
	}

	raw := make([]byte, stagingSize)
	if err := t.queue.ReadBuffer(stagingBuf, 0, raw); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	if alignedBytesPerRow == bytesPerRow {
		return raw, nil
	}
	tight := make([]byte, uint64(bytesPerRow)*uint64(h))
	for row := uint32(0); row < h; row++ {
		src := int(row) * int(alignedBytesPerRow)
		dst := int(row) * int(bytesPerRow)
		copy(tight[dst:dst+int(bytesPerRow)], raw[src:src+int(bytesPerRow)])
	}
	return tight, nil
}

// submitAndWait ends encoding, submits and blocks on a fence.
func (t *PickTarget) submitAndWait(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer t.device.FreeCommandBuffer(cmdBuf)

	fence, err := t.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer t.device.DestroyFence(fence)

	if err := t.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := t.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (t *PickTarget) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := t.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	t.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Destroy releases the pipeline and textures, and the device when owned.
// Safe to call more than once.
func (t *PickTarget) Destroy() {
	if t.device == nil {
		return
	}
	t.pipeline.destroy()
	t.attachments.destroy(t.device)
	t.verts = nil
	t.vertexData = nil
	if t.destroyDevice != nil {
		t.destroyDevice()
		t.destroyDevice = nil
	}
	t.device = nil
	t.queue = nil
}

var _ render.Target = (*PickTarget)(nil)
