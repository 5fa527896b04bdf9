//go:build !nogpu

package gpu

import (
	"errors"
	"testing"
)

type fakeProvider struct {
	device, queue any
}

func (p fakeProvider) HalDevice() any { return p.device }
func (p fakeProvider) HalQueue() any  { return p.queue }

func TestNewPickTargetFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	target, err := NewPickTargetFromProvider(fakeProvider{device, queue})
	if err != nil {
		t.Fatalf("NewPickTargetFromProvider failed: %v", err)
	}
	defer target.Destroy()
	if target.device != device || target.queue != queue {
		t.Error("provider device/queue not stored")
	}
	if target.destroyDevice != nil {
		t.Error("host device must not be owned by the target")
	}
}

func TestNewPickTargetFromProviderRejects(t *testing.T) {
	tests := []struct {
		name     string
		provider any
	}{
		{"nil", nil},
		{"no hal methods", struct{}{}},
		{"wrong device type", fakeProvider{device: "device", queue: "queue"}},
		{"nil device", fakeProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPickTargetFromProvider(tt.provider); !errors.Is(err, ErrNoHAL) {
				t.Errorf("error = %v, want ErrNoHAL", err)
			}
		})
	}
}
