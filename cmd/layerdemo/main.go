// Command layerdemo drives hardware layers through their full lifecycle:
// allocation, binding, deferred reset, context loss and recreation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/hwlayer"
	"github.com/gogpu/hwlayer/backend"
	_ "github.com/gogpu/hwlayer/backend/native"
	"github.com/gogpu/hwlayer/devicecache"
	"github.com/gogpu/hwlayer/gpucore"
	"github.com/gogpu/hwlayer/layer"
	"github.com/gogpu/hwlayer/renderstate"
)

func main() {
	var (
		backendName = flag.String("backend", backend.BackendNoop, "texture backend: gl or a registered driver")
		width       = flag.Int("width", 256, "layer width")
		height      = flag.Int("height", 256, "layer height")
		count       = flag.Int("layers", 3, "number of layers")
		units       = flag.Int("units", devicecache.DefaultMaxTextureUnits, "texture units tracked by the cache")
		verbose     = flag.Bool("v", false, "log every layer operation")
		external    = flag.Bool("external", false, "use external (OES) texture targets; gl only")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	hwlayer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := demoConfig{width: *width, height: *height, layers: *count, units: *units, external: *external}

	var err error
	if *backendName == "gl" {
		err = runGL(cfg)
	} else {
		err = runRegistered(*backendName, cfg)
	}
	if err != nil {
		log.Fatalf("layerdemo: %v", err)
	}
}

type demoConfig struct {
	width, height int
	layers        int
	units         int
	external      bool
}

// node names a layer in diagnostics.
type node string

func (n node) Name() string { return string(n) }

func runRegistered(name string, cfg demoConfig) error {
	if cfg.external {
		return errors.New("-external needs -backend gl")
	}
	driver, release, err := backend.Open(name)
	if err != nil {
		return fmt.Errorf("%w (available: %v, gl)", err, backend.Available())
	}
	defer release()
	return run(driver, cfg)
}

// run exercises the layer lifecycle on driver. Driver calls are made only
// from tasks on the render state's executor.
func run(driver gpucore.Driver, cfg demoConfig, opts ...renderstate.Option) error {
	caches, err := devicecache.New(driver, devicecache.WithMaxTextureUnits(cfg.units))
	if err != nil {
		return err
	}
	caches.Init()

	rs, err := renderstate.New(caches, opts...)
	if err != nil {
		return err
	}
	defer rs.Close()

	layers := make([]layer.Layer, 0, cfg.layers)
	for i := range cfg.layers {
		name := fmt.Sprintf("layer%d", i)
		lopts := []layer.Option{layer.WithRenderNode(node(name)), layer.WithLabel(name)}
		if cfg.external {
			lopts = append(lopts, layer.WithTarget(gpucore.TargetExternal))
		}
		l, err := rs.CreateLayer(cfg.width, cfg.height, lopts...)
		if err != nil {
			return err
		}
		layers = append(layers, l)
	}

	draw := func() {
		ts := caches.TextureState()
		for i, l := range layers {
			l.EnsureAllocated()
			if ts != nil {
				ts.ActivateTexture(i % ts.Units())
			}
			l.Bind()
		}
	}

	if err := rs.Run(draw); err != nil {
		return err
	}
	log.Printf("allocated: %s", rs.Stats())

	// A frame that binds the same layers again is elided by the cache.
	if err := rs.Run(draw); err != nil {
		return err
	}
	bs := caches.TextureState().Stats()
	log.Printf("bindings: %d issued, %d elided", bs.Binds, bs.Elided)

	// A host that draws with the context behind the cache's back leaves
	// the tracked bindings stale; the next frame binds everything again.
	if err := rs.InvalidateBindings(); err != nil {
		return err
	}
	if err := rs.Run(draw); err != nil {
		return err
	}
	bs = caches.TextureState().Stats()
	log.Printf("bindings after host draw: %d issued, %d elided", bs.Binds, bs.Elided)

	if len(layers) > 0 {
		if err := rs.DeferReset(layers[0]); err != nil {
			return err
		}
		if err := rs.Run(func() {}); err != nil {
			return err
		}
		log.Printf("after deferred reset: %s", rs.Stats())
	}

	rs.OnContextLost()
	log.Printf("after context loss: %s", rs.Stats())

	rs.OnContextCreated()
	if err := rs.Run(draw); err != nil {
		return err
	}
	log.Printf("after context recreation: %s", rs.Stats())

	err = rs.Run(func() {
		for _, l := range layers {
			l.Close()
		}
	})
	if err != nil {
		return err
	}
	log.Printf("closed: %s", rs.Stats())
	return nil
}
