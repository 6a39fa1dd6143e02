// Package gpucore provides the shared GPU vocabulary used by every hwlayer
// package: texture handles, targets, device API tags and the small
// capability interfaces a backend implements.
//
// # Architecture
//
// Layers never talk to a device API directly. They go through two narrow
// capabilities:
//
//	        +-----------------+
//	        |      layer      |
//	        +--------+--------+
//	                 |
//	        +--------v--------+
//	        |     texture     |
//	        +---+---------+---+
//	            |         |
//	 +----------v--+   +--v-----------+
//	 |  StateCache |   |    Driver    |
//	 | (tracker)   |   | (gl / native)|
//	 +-------------+   +--------------+
//
// [Driver] owns allocate/bind/destroy for one backend. [StateCache] is the
// process-wide device state with a [BindingTracker] that elides redundant
// binds. The cache is shared by many layers and may be torn down while
// deferred work still references it, which is why [StateCache.IsInitialized]
// is part of the contract.
//
// # Handles
//
// [TextureID] zero ([InvalidID]) means "not allocated". Every operation on
// an unallocated handle is a no-op rather than an error.
package gpucore
