package opencl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlatformNewContext(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	require.Equal(t, 1, f.calls["CreateContext"])
	require.Equal(t, 2, ctx.NumDevices())
	require.Len(t, ctx.Devices(), 2)
	require.Contains(t, ctx.String(), "gpu")

	device := must1(ctx.DeviceByIndex(1))
	require.Equal(t, "Fake GPU 1", device.Name())

	_, err = ctx.DeviceByIndex(2)
	require.Error(t, err)
	_, err = ctx.DeviceByIndex(-1)
	require.Error(t, err)
}

func TestPlatformNewContextNoDevices(t *testing.T) {
	f := newFakeDriver()
	p := newPlatform(f, testPlatformID)

	// The fake platform has no CPU devices.
	f.failWith("DeviceIDs", DeviceNotFound)
	_, err := p.NewContext(DeviceTypeCPU)
	require.Error(t, err)
	require.Equal(t, DeviceNotFound, CodeOf(err))
	require.Zero(t, f.calls["CreateContext"])
}

func TestContextCreationFailure(t *testing.T) {
	f := newFakeDriver()
	p := newPlatform(f, testPlatformID)
	f.failWith("CreateContext", OutOfHostMemory)
	_, err := p.NewContext(DeviceTypeGPU)
	require.Error(t, err)
	require.Equal(t, OutOfHostMemory, CodeOf(err))
}

func TestContextDestroy(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	devices := ctx.Devices()
	queue := must1(devices[0].DefaultQueue())

	require.NoError(t, ctx.Destroy())
	require.Equal(t, 1, f.calls["ReleaseContext"])
	require.Equal(t, 1, f.calls["ReleaseQueue"])
	require.Zero(t, ctx.NumDevices())
	require.Equal(t, "Invalid context", ctx.String())

	// Devices and their queues are destroyed with the context.
	for _, device := range devices {
		require.False(t, device.IsValid())
	}
	require.False(t, queue.IsValid())

	// Destroying again is a no-op.
	require.NoError(t, ctx.Destroy())
	require.Equal(t, 1, f.calls["ReleaseContext"])
}

func TestContextDestroyOrder(t *testing.T) {
	f, ctx, err := testContext()
	require.NoError(t, err)
	must1(must1(ctx.DeviceByIndex(0)).DefaultQueue())
	require.NoError(t, ctx.Destroy())

	// Owned queues are released before the context itself.
	require.Len(t, f.released, 2)
	require.Contains(t, f.released[0], "queue:")
	require.Contains(t, f.released[1], "context:")
}
