// Package errors provides structured, coded errors for the SSR engine,
// its document decoder, configuration layer, render service and CLI.
//
// Each error has a unique code (e.g., "E001") that maps to a short
// message, a detailed explanation and a documentation URL. Errors with
// the same code match under errors.Is, so a registered code doubles as a
// sentinel:
//
//	var ErrRenderDepthExceeded = errors.New("E001")
//
//	if stderrors.Is(err, ErrRenderDepthExceeded) { ... }
//
// # Error Categories
//
//   - render: serialization failures (depth, void children, tag names)
//   - document: tree documents that cannot be decoded
//   - config: ssr.json problems
//   - assets: asset manifest loading
//   - cli: command usage
//   - server: render service requests
//
// # Usage
//
//	err := errors.New("E041").
//	    WithSourceLocation("page.yaml", src, 12, 9).
//	    WithSuggestion("Register the component before decoding")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E041: Unknown component
//	//
//	//   page.yaml:12:9
//	//
//	//     10 │   props:
//	//     11 │     children:
//	//   → 12 │       - type: Greting
//	//        │         ^
//	//
//	//   Hint: Register the component before decoding
package errors
