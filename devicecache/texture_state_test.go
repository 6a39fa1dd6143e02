// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package devicecache

import (
	"testing"

	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/internal/drivertest"
)

func newTestState(t *testing.T) (*TextureState, *drivertest.Recorder) {
	t.Helper()
	c, rec := newTestCaches(t)
	c.Init()
	return c.TextureState(), rec
}

func TestBindTextureElidesRedundantBinds(t *testing.T) {
	ts, rec := newTestState(t)

	ts.BindTexture(gpucore.Target2D, 7)
	ts.BindTexture(gpucore.Target2D, 7)
	ts.BindTexture(gpucore.Target2D, 7)

	if got := rec.Count(drivertest.OpBind); got != 1 {
		t.Errorf("driver binds = %d, want 1", got)
	}
	stats := ts.Stats()
	if stats.Binds != 1 || stats.Elided != 2 {
		t.Errorf("Stats() = %+v, want 1 bind and 2 elided", stats)
	}
	if ts.Bound(0) != 7 {
		t.Errorf("Bound(0) = %d, want 7", ts.Bound(0))
	}
}

func TestBindTextureDifferentTargetReachesDriver(t *testing.T) {
	ts, rec := newTestState(t)

	ts.BindTexture(gpucore.Target2D, 3)
	ts.BindTexture(gpucore.TargetExternal, 3)

	if got := rec.Count(drivertest.OpBind); got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
}

func TestUnbindTextureClearsTracker(t *testing.T) {
	ts, rec := newTestState(t)

	ts.BindTexture(gpucore.Target2D, 5)
	ts.UnbindTexture(5)

	if ts.Bound(0) != gpucore.InvalidID {
		t.Errorf("Bound(0) = %d after unbind, want 0", ts.Bound(0))
	}
	// Unbind is tracker-only.
	if got := len(rec.Calls()); got != 1 {
		t.Errorf("driver calls = %v, want only the bind", rec.Calls())
	}

	// A reused handle must be bound again.
	ts.BindTexture(gpucore.Target2D, 5)
	if got := rec.Count(drivertest.OpBind); got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
}

func TestUnbindTextureNotBound(t *testing.T) {
	ts, rec := newTestState(t)

	ts.BindTexture(gpucore.Target2D, 1)
	ts.UnbindTexture(42)

	if ts.Bound(0) != 1 {
		t.Errorf("Bound(0) = %d, want 1", ts.Bound(0))
	}
	if got := ts.Stats().Unbinds; got != 1 {
		t.Errorf("Unbinds = %d, want 1", got)
	}
	if len(rec.Calls()) != 1 {
		t.Errorf("unexpected driver calls: %v", rec.Calls())
	}
}

func TestActivateTexture(t *testing.T) {
	ts, rec := newTestState(t)

	ts.ActivateTexture(0) // already active
	ts.ActivateTexture(2)
	ts.ActivateTexture(2)
	ts.ActivateTexture(99) // out of range

	if got := rec.Count(drivertest.OpActive); got != 1 {
		t.Errorf("driver ActiveTexture calls = %d, want 1", got)
	}
	if ts.ActiveUnit() != 2 {
		t.Errorf("ActiveUnit() = %d, want 2", ts.ActiveUnit())
	}

	// Bindings are per unit.
	ts.BindTexture(gpucore.Target2D, 9)
	if ts.Bound(2) != 9 || ts.Bound(0) != 0 {
		t.Errorf("Bound(2)=%d Bound(0)=%d, want 9 and 0", ts.Bound(2), ts.Bound(0))
	}
}

func TestResetActiveTexture(t *testing.T) {
	ts, rec := newTestState(t)

	ts.ResetActiveTexture()
	ts.BindTexture(gpucore.Target2D, 4)

	calls := rec.Calls()
	if len(calls) != 2 || calls[0].Op != drivertest.OpActive || calls[1].Op != drivertest.OpBind {
		t.Fatalf("calls = %v, want [active unit0, bind]", calls)
	}
	if ts.ActiveUnit() != 0 {
		t.Errorf("ActiveUnit() = %d, want 0", ts.ActiveUnit())
	}
}

func TestResetBoundTextures(t *testing.T) {
	ts, rec := newTestState(t)

	ts.BindTexture(gpucore.Target2D, 8)
	ts.ResetBoundTextures()
	ts.BindTexture(gpucore.Target2D, 8)

	if got := rec.Count(drivertest.OpBind); got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
}

func TestForgetTextureAllowsRebind(t *testing.T) {
	ts, rec := newTestState(t)
	ts.BindTexture(gpucore.Target2D, 3)

	ts.ForgetTexture(3)
	ts.BindTexture(gpucore.Target2D, 3)

	if got := rec.Count(drivertest.OpBind); got != 2 {
		t.Errorf("driver binds = %d, want 2", got)
	}
	if got := ts.Stats().Unbinds; got != 0 {
		t.Errorf("Unbinds = %d, want 0", got)
	}
}
