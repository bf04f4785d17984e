// Package config provides configuration parsing for the render service.
//
// The configuration is stored in ssr.json in the working directory.
// Every field is optional; missing values take the defaults from New.
//
// # Configuration File Structure
//
//	{
//	  "render": {
//	    "maxDepth": 1000,
//	    "hydratable": true,
//	    "rootAttribute": "data-ssr-root"
//	  },
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 3000,
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s",
//	    "maxBodyBytes": 1048576,
//	    "compress": true,
//	    "staticDir": "build/static",
//	    "trustedProxies": ["10.0.0.0/8"]
//	  },
//	  "assets": {
//	    "env": "production",
//	    "manifest": "build/asset-manifest.json",
//	    "prefix": "/"
//	  },
//	  "metrics": {"enabled": true, "namespace": "vango_ssr", "path": "/metrics"},
//	  "tracing": {"enabled": false},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// The SSR_ENV environment variable overrides assets.env. A manifest given
// as s3://bucket/key is fetched from S3 in assets.region.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	renderer := render.NewRenderer(cfg.RendererConfig())
package config
