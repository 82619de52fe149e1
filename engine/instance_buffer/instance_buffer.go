// package instance_buffer defines the write contract between the worm core
// and a renderer-owned buffer of per-instance transforms and colors, plus a
// CPU-backed default implementation. The core writes one 4x4 column-major
// transform and one RGB triple per ring each frame; the renderer re-uploads
// whichever halves are flagged dirty and clears the flags after upload.
package instance_buffer

import (
	"github.com/hans-linger/wormses/common"
)

// InstanceBuffer is the output sink the ring field writes into each tick.
// Implementations must tolerate out-of-range indices by ignoring the write
// rather than panicking.
//
// The dirty flags follow an upload handshake: the writer sets them, the
// consumer re-uploads and clears them. The core never blocks on the upload.
type InstanceBuffer interface {
	// Count returns the number of instances the buffer holds.
	Count() int

	// SetTransformAt stores the transform for instance index as a column-major
	// 4x4 matrix built from position, rotation, and uniform scale, and marks
	// the transform half of the buffer dirty.
	//
	// Parameters:
	//   - index: the instance index
	//   - position: world-space translation
	//   - rotation: rotation quaternion (x, y, z, w)
	//   - scale: uniform scale factor
	SetTransformAt(index int, position [3]float32, rotation [4]float32, scale float32)

	// SetColorAt stores the RGB color for instance index and marks the color
	// half of the buffer dirty.
	//
	// Parameters:
	//   - index: the instance index
	//   - rgb: the color, each channel in [0, 1]
	SetColorAt(index int, rgb [3]float32)

	// TransformsDirty reports whether transforms were written since the last
	// ClearTransformsDirty.
	TransformsDirty() bool

	// ColorsDirty reports whether colors were written since the last
	// ClearColorsDirty.
	ColorsDirty() bool

	// ClearTransformsDirty resets the transform dirty flag. Called by the
	// consumer after re-uploading.
	ClearTransformsDirty()

	// ClearColorsDirty resets the color dirty flag. Called by the consumer
	// after re-uploading.
	ClearColorsDirty()

	// TransformData returns the backing transform array, 16 floats per
	// instance in instance order. The slice is shared, not copied.
	TransformData() []float32

	// ColorData returns the backing color array, 3 floats per instance in
	// instance order. The slice is shared, not copied.
	ColorData() []float32

	// Release drops the backing arrays. Further writes are ignored.
	Release()
}

// buffer is the CPU-backed implementation of InstanceBuffer.
type buffer struct {
	transforms []float32 // 16 per instance, column-major
	colors     []float32 // 3 per instance

	transformsDirty bool
	colorsDirty     bool
}

var _ InstanceBuffer = &buffer{}

// NewInstanceBuffer creates a CPU-backed instance buffer for count instances.
// All transforms start as identity matrices and all colors as black.
//
// Parameters:
//   - count: the number of instances
//
// Returns:
//   - InstanceBuffer: the newly created buffer
func NewInstanceBuffer(count int) InstanceBuffer {
	if count < 0 {
		count = 0
	}
	b := &buffer{
		transforms: make([]float32, count*16),
		colors:     make([]float32, count*3),
	}
	for i := 0; i < count; i++ {
		common.Identity(b.transforms[i*16 : i*16+16])
	}
	return b
}

func (b *buffer) Count() int {
	return len(b.transforms) / 16
}

func (b *buffer) SetTransformAt(index int, position [3]float32, rotation [4]float32, scale float32) {
	if index < 0 || index*16+16 > len(b.transforms) {
		return
	}
	common.BuildTRSMatrix(b.transforms[index*16:index*16+16], position, rotation, scale)
	b.transformsDirty = true
}

func (b *buffer) SetColorAt(index int, rgb [3]float32) {
	if index < 0 || index*3+3 > len(b.colors) {
		return
	}
	copy(b.colors[index*3:index*3+3], rgb[:])
	b.colorsDirty = true
}

func (b *buffer) TransformsDirty() bool {
	return b.transformsDirty
}

func (b *buffer) ColorsDirty() bool {
	return b.colorsDirty
}

func (b *buffer) ClearTransformsDirty() {
	b.transformsDirty = false
}

func (b *buffer) ClearColorsDirty() {
	b.colorsDirty = false
}

func (b *buffer) TransformData() []float32 {
	return b.transforms
}

func (b *buffer) ColorData() []float32 {
	return b.colors
}

func (b *buffer) Release() {
	b.transforms = nil
	b.colors = nil
	b.transformsDirty = false
	b.colorsDirty = false
}
