// Package hwlayer manages GPU-backed off-screen layers: textures a scene
// subtree is rendered into and that the compositor later samples.
//
// The root package only carries the shared logger. The work lives in
// sub-packages:
//
//   - gpucore: handles, targets, API tags and backend capability interfaces
//   - devicecache: the shared device state cache and its binding tracker
//   - texture: a single lazily allocated texture resource
//   - layer: the Layer contract and its GL and WebGPU variants
//   - renderstate: the registry that fans out context loss and deferred resets
//   - backend: a registry of drivers selectable by name
//   - backend/native, backend/opengl: WebGPU HAL and OpenGL drivers
//
// # Lifecycle
//
// A layer starts unallocated (handle 0). EnsureAllocated creates the texture,
// Bind makes it the active binding through the shared tracker. The handle
// returns to 0 through one of three paths:
//
//   - Reset: explicit recycle; releases the texture if the device cache is
//     still initialized, otherwise only forgets the handle
//   - ResetOnContextLoss: the device context is gone; the handle is forgotten
//     without any driver call
//   - Close: destruction; deletes the texture without touching the tracker
//
// # Logging
//
// hwlayer is silent by default. Use [SetLogger] to route lifecycle
// diagnostics to a [log/slog.Logger].
package hwlayer
