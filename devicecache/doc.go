// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package devicecache provides the device state cache shared by all layers
// of one device context.
//
// A [Caches] owns the [TextureState] binding tracker. Layers reference it
// through a weak [Ref] so that a torn down or collected cache is observed
// as uninitialized instead of being kept alive by deferred work.
package devicecache
