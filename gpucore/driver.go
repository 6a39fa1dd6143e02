package gpucore

// Driver abstracts the device-level texture primitives of one API backend.
//
// Driver calls are only valid on the goroutine that owns the device
// context. None of them are attempted once the context is known to be
// lost; callers reset their handles in memory instead.
//
// Resource lifecycle:
//   - GenTexture returns InvalidID when the driver could not allocate
//   - DeleteTexture on an InvalidID is a no-op
//   - IDs become invalid after deletion and may be reused by the driver
type Driver interface {
	// API returns the device API this driver talks to.
	API() API

	// GenTexture allocates a new texture handle described by desc.
	GenTexture(desc TextureDesc) TextureID

	// BindTexture makes id the texture bound to target on the active unit.
	// Binding InvalidID clears the binding.
	BindTexture(target TextureTarget, id TextureID)

	// ActiveTexture selects the texture unit subsequent binds apply to.
	ActiveTexture(unit int)

	// DeleteTexture destroys the driver resource behind id.
	DeleteTexture(id TextureID)
}

// BindingTracker records which texture is bound per unit so redundant
// driver bind calls can be skipped.
type BindingTracker interface {
	// BindTexture binds id to target unless it is already bound.
	BindTexture(target TextureTarget, id TextureID)

	// UnbindTexture forgets every binding of id. Unbinding a handle that
	// is not bound is allowed.
	UnbindTexture(id TextureID)

	// ForgetTexture drops any binding of id because the handle was deleted
	// or newly issued by the driver. It is bookkeeping, not an unbind.
	ForgetTexture(id TextureID)
}

// StateCache is the shared device state textures route bindings through.
//
// A StateCache has its own init/teardown lifecycle that texture owners do
// not control; IsInitialized must be checked before work that may run after
// teardown.
type StateCache interface {
	// IsInitialized reports whether the cache is live.
	IsInitialized() bool

	// TextureState returns the binding tracker, or nil when the cache has
	// been torn down.
	TextureState() BindingTracker
}
