// Package assets resolves build asset names to the paths pages should
// reference.
//
// The build pipeline writes an asset manifest mapping logical names to
// fingerprinted files. Both the flat form
//
//	{"main.js": "/static/js/main.1a2b3c.js", "main.css": "/static/css/main.4d5e6f.css"}
//
// and the create-react-app form with a "files" object are accepted.
// Manifests are read from disk with Load or from an S3 bucket with
// LoadS3. In development the bundle is served by a dev server instead, and
// Development returns the fixed mapping it uses.
//
//	manifest, _ := assets.Load("build/asset-manifest.json")
//	resolver := assets.NewResolver(manifest, "")
//	resolver.Asset("main.js") // "/static/js/main.1a2b3c.js"
//
// The render engine never touches asset paths: the resolver is handed to
// page components as a prop.
package assets
