//go:build !nogpu

// Package gpu creates hardware render targets for a switchgrid Surface.
//
// Two sources of device are supported:
//
//   - NewTarget borrows the device of a host application (e.g. gogpu) that
//     exposes HalDevice() any and HalQueue() any.
//   - NewStandaloneTarget opens its own Vulkan device and releases it on
//     Destroy.
//
// A missing GPU is reported once, at construction, as ErrNoDevice.
//
// Usage:
//
//	target, err := gpu.NewStandaloneTarget()
//	if err != nil {
//	    return err // no GPU: fall back to render.NewSoftwareTarget()
//	}
//	surface, err := switchgrid.New(target, switchgrid.WithSize(4))
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/switchgrid"
	gpuimpl "github.com/gogpu/switchgrid/internal/gpu"
	"github.com/gogpu/switchgrid/render"
)

// ErrNoDevice is returned when no usable GPU device is available.
var ErrNoDevice = errors.New("gpu: no GPU device")

// NewTarget creates a render target on the host's device.
func NewTarget(handle render.DeviceHandle) (render.Target, error) {
	if handle == nil || handle.Device() == nil {
		return nil, ErrNoDevice
	}
	target, err := gpuimpl.NewPickTargetFromProvider(handle, gpuimpl.WithLogger(switchgrid.Logger()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	switchgrid.Logger().Info("gpu target created", "source", "host")
	return target, nil
}

// NewStandaloneTarget creates a render target on a Vulkan device it owns.
func NewStandaloneTarget() (render.Target, error) {
	target, err := gpuimpl.NewStandalonePickTarget(gpuimpl.WithLogger(switchgrid.Logger()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	switchgrid.Logger().Info("gpu target created", "source", "standalone", "adapter", target.Adapter())
	return target, nil
}
