// Package registry maps component names to vdom components.
//
// Tree documents and the page endpoint refer to components by name. A
// Registry is filled once at startup and then only read, so lookups
// take a read lock.
//
// # Usage
//
//	reg := registry.New()
//	reg.MustRegister("Greeting", greeting)
//
//	comp, ok := reg.Lookup("Greeting")
package registry
