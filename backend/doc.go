// Package backend is a registry of texture drivers selectable by name.
//
// Driver packages register a Factory from init(). The native package
// registers the headless "noop" backend on import:
//
//	import _ "github.com/gogpu/hwlayer/backend/native"
//
//	driver, release, err := backend.Open(backend.BackendNoop)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer release()
//
// Drivers that need a current context created by the host (OpenGL) are
// constructed directly instead.
package backend
