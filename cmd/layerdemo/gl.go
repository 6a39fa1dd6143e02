package main

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/hwlayer/backend/opengl"
	"github.com/gogpu/hwlayer/renderstate"
)

// mainExecutor runs render work on the OS main thread, which owns the GL
// context.
type mainExecutor struct{}

func (mainExecutor) Post(fn func()) error {
	mainthread.CallNonBlock(fn)
	return nil
}

func (mainExecutor) Call(fn func()) error {
	mainthread.Call(fn)
	return nil
}

// Close waits for tasks posted before it.
func (mainExecutor) Close() {
	mainthread.Call(func() {})
}

var _ renderstate.Executor = mainExecutor{}

// runGL creates a hidden GLFW window for its OpenGL 3.3 core context and
// runs the demo against it.
func runGL(cfg demoConfig) error {
	var err error
	mainthread.Run(func() {
		err = runGLMain(cfg)
	})
	return err
}

func runGLMain(cfg demoConfig) error {
	var win *glfw.Window
	err := mainthread.CallErr(func() error {
		if err := glfw.Init(); err != nil {
			return fmt.Errorf("glfw init: %w", err)
		}
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

		w, err := glfw.CreateWindow(cfg.width, cfg.height, "layerdemo", nil, nil)
		if err != nil {
			glfw.Terminate()
			return fmt.Errorf("create window: %w", err)
		}
		w.MakeContextCurrent()
		win = w
		return nil
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(func() {
		win.Destroy()
		glfw.Terminate()
	})

	var driver *opengl.Driver
	err = mainthread.CallErr(func() error {
		var err error
		var opts []opengl.Option
		if cfg.external {
			opts = append(opts, opengl.WithExternalOES())
		}
		driver, err = opengl.NewDriver(opts...)
		return err
	})
	if err != nil {
		return err
	}
	return run(driver, cfg, renderstate.WithExecutor(mainExecutor{}))
}
