//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

// ErrNoHAL is returned when a provider does not expose hal types.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

// halProvider is implemented by hosts (e.g. gogpu) that share their device.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewPickTargetFromProvider creates a target on a host-owned device. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewPickTargetFromProvider(provider any, opts ...PickTargetOption) (*PickTarget, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewPickTarget(device, queue, opts...)
}

// NewStandalonePickTarget opens a Vulkan device owned by the returned
// target. Discrete and integrated GPUs are preferred over other adapters.
func NewStandalonePickTarget(opts ...PickTargetOption) (*PickTarget, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	release := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	// Standalone Vulkan consumes SPIR-V; options may still override.
	opts = append([]PickTargetOption{WithSPIRV(), WithOwnedDevice(release)}, opts...)
	target, err := NewPickTarget(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		release()
		return nil, err
	}
	target.adapter = selected.Info.Name
	target.logger().Info("pick target: GPU initialized (standalone)", "adapter", target.adapter)
	return target, nil
}
