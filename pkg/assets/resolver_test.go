package assets

import "testing"

func TestResolver(t *testing.T) {
	m := NewManifest()
	m.Set("main.js", "/static/js/main.abc123.js")
	m.Set("main.css", "")

	tests := []struct {
		name     string
		prefix   string
		source   string
		expected string
	}{
		{"no prefix", "", "main.js", "/static/js/main.abc123.js"},
		{"path prefix", "/public", "main.js", "/public/static/js/main.abc123.js"},
		{"trailing slash prefix", "/public/", "main.js", "/public/static/js/main.abc123.js"},
		{"cdn prefix", "https://cdn.example.com/", "main.js", "https://cdn.example.com/static/js/main.abc123.js"},
		{"missing entry gets prefix", "/public/", "unknown.js", "/public/unknown.js"},
		{"empty entry stays empty", "/public/", "main.css", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(m, tt.prefix)
			got := r.Asset(tt.source)
			if got != tt.expected {
				t.Errorf("Asset(%q) = %q, want %q", tt.source, got, tt.expected)
			}
		})
	}
}

func TestPassthroughResolver(t *testing.T) {
	tests := []struct {
		prefix   string
		source   string
		expected string
	}{
		{"", "main.js", "main.js"},
		{"/public/", "main.js", "/public/main.js"},
		{"/public/", "/main.js", "/public/main.js"},
	}

	for _, tt := range tests {
		r := NewPassthroughResolver(tt.prefix)
		if got := r.Asset(tt.source); got != tt.expected {
			t.Errorf("Asset(%q) with prefix %q = %q, want %q", tt.source, tt.prefix, got, tt.expected)
		}
	}
}
