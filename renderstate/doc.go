// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderstate owns the per-context bookkeeping around layers.
//
// A [RenderState] pairs one device cache with a render thread, or with a
// caller-supplied [Executor] owning the context. It:
//
//   - creates layers of the variant matching the cache driver's API
//   - keeps the set of live layers (registered on creation, removed on Close)
//   - on context loss, invalidates every layer before terminating the cache
//   - runs deferred resets on the render thread
//
// # Deferred resets
//
// A reset posted with [RenderState.DeferReset] may execute after the cache
// was terminated. Layers reference the cache weakly and re-check
// IsInitialized when the reset runs, so a late reset only forgets the
// handle.
//
// # Usage
//
//	caches, _ := devicecache.New(driver)
//	caches.Init()
//	rs, _ := renderstate.New(caches)
//	defer rs.Close()
//
//	l, _ := rs.CreateLayer(256, 256)
//	_ = rs.Run(func() {
//	    l.EnsureAllocated()
//	    l.Bind()
//	})
//
//	_ = rs.DeferReset(l)
package renderstate
