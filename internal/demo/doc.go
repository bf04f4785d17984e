// Package demo holds the components the render service ships with: a
// full-page App shell and a few small components to render inside it.
//
// Register adds them to a registry so documents and page routes can
// refer to them by name.
package demo
