// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer provides off-screen GPU layers: render targets a scene
// subtree is drawn into and that the compositor later samples.
//
// # Variants
//
// [Layer] is backend agnostic. [GLLayer] binds it to OpenGL and
// [WGPULayer] to the WebGPU HAL. A layer and its texture always belong to
// the same device API; constructors reject a driver of another API with
// [ErrAPIMismatch].
//
// # State machine
//
//	             EnsureAllocated
//	Unallocated ----------------> Allocated
//	     ^                           |
//	     |  Reset / ResetOnContextLoss
//	     +---------------------------+
//
//	Close (from either state) -> Destroyed
//
//   - ResetOnContextLoss only forgets the handle.
//   - Reset releases (tracker unbind + driver delete) if the device cache is
//     still initialized, otherwise only forgets the handle.
//   - Close deletes the handle without a tracker unbind.
//
// Both reset paths are guarded by "handle != 0", so at most one of them
// acts on a given allocation.
//
// # Thread Safety
//
// Layers are NOT thread-safe. Use them from the goroutine that owns the
// device context; see package renderstate for deferring Reset onto it.
package layer
