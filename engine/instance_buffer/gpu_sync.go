package instance_buffer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/hans-linger/wormses/common"
)

// gpuSync implements the GPUSync interface.
type gpuSync struct {
	queue *wgpu.Queue
	src   InstanceBuffer

	transformBuffer *wgpu.Buffer
	colorBuffer     *wgpu.Buffer
}

// GPUSync mirrors a CPU instance buffer into a pair of GPU storage buffers,
// one for transforms and one for colors. Upload re-writes only the halves
// flagged dirty and clears the flags afterward, completing the write contract
// between the worm core and the renderer.
type GPUSync interface {
	// Upload writes any dirty instance data to the GPU queue and clears the
	// corresponding dirty flags. Safe to call every frame; clean halves are
	// skipped.
	Upload()

	// TransformBuffer returns the GPU storage buffer holding the per-instance
	// transform matrices.
	TransformBuffer() *wgpu.Buffer

	// ColorBuffer returns the GPU storage buffer holding the per-instance
	// RGB colors.
	ColorBuffer() *wgpu.Buffer

	// Release frees both GPU buffers. The sync must not be used afterward.
	Release()
}

var _ GPUSync = &gpuSync{}

// NewGPUSync creates GPU storage buffers sized to the source instance buffer
// and returns a sync that uploads dirty halves on demand.
//
// Parameters:
//   - device: the wgpu device used to create the buffers
//   - queue: the wgpu queue used for uploads
//   - src: the CPU-side instance buffer to mirror
//
// Returns:
//   - GPUSync: the newly created sync
//   - error: error if buffer creation fails
func NewGPUSync(device *wgpu.Device, queue *wgpu.Queue, src InstanceBuffer) (GPUSync, error) {
	transformBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Worm Instance Transforms",
		Size:             uint64(len(src.TransformData()) * 4),
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("instance_buffer: failed to create transform buffer: %w", err)
	}

	colorBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Worm Instance Colors",
		Size:             uint64(len(src.ColorData()) * 4),
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		transformBuffer.Release()
		return nil, fmt.Errorf("instance_buffer: failed to create color buffer: %w", err)
	}

	return &gpuSync{
		queue:           queue,
		src:             src,
		transformBuffer: transformBuffer,
		colorBuffer:     colorBuffer,
	}, nil
}

func (g *gpuSync) Upload() {
	if g.src.TransformsDirty() {
		g.queue.WriteBuffer(g.transformBuffer, 0, common.SliceToBytes(g.src.TransformData()))
		g.src.ClearTransformsDirty()
	}
	if g.src.ColorsDirty() {
		g.queue.WriteBuffer(g.colorBuffer, 0, common.SliceToBytes(g.src.ColorData()))
		g.src.ClearColorsDirty()
	}
}

func (g *gpuSync) TransformBuffer() *wgpu.Buffer {
	return g.transformBuffer
}

func (g *gpuSync) ColorBuffer() *wgpu.Buffer {
	return g.colorBuffer
}

func (g *gpuSync) Release() {
	if g.transformBuffer != nil {
		g.transformBuffer.Release()
		g.transformBuffer = nil
	}
	if g.colorBuffer != nil {
		g.colorBuffer.Release()
		g.colorBuffer = nil
	}
}
