// Package server exposes the render engine over HTTP and WebSocket.
//
// # Routes
//
//   - POST /render: the body is a JSON or YAML tree document; the response
//     is its markup. ?static=1 renders without hydration markers.
//   - GET /pages/{component}: renders a registered component as a full
//     page. Query parameters become props, the asset resolver is passed
//     as props["assets"], and the doctype is prepended. Responses carry
//     an ETag and honor If-None-Match.
//   - GET /ws: each text message is a tree document; each reply is
//     {"html": "..."} or {"error": {...}}.
//   - GET /static/*: built client assets from ServerConfig.StaticDir,
//     with long-lived caching for fingerprinted names.
//   - GET /healthz and GET /metrics.
//
// # Errors
//
// Failures are returned as {"error": {...}} with the coded error of
// internal/errors. Documents that cannot be decoded are 400, documents
// that decode but fail to render are 422, unknown page components are
// 404.
//
// # Usage
//
//	srv := server.New(server.DefaultServerConfig(), renderer, components,
//	    server.WithAssets(resolver),
//	    server.WithLogger(logger),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
