package assets

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// EnvDevelopment selects the development asset mapping in ForEnv.
const EnvDevelopment = "development"

// Manifest holds the mapping from asset names to their built paths.
// It is safe for concurrent use.
type Manifest struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
// Use Load() to create a manifest from a JSON file.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[string]string),
	}
}

// Development returns the mapping used while a dev server serves the
// bundle: the script comes from the dev server and styles are injected
// by it, so main.css is empty.
func Development() *Manifest {
	return &Manifest{entries: map[string]string{
		"main.js":  "/static/js/bundle.js",
		"main.css": "",
	}}
}

// Parse decodes a manifest. A top-level "files" object is used when
// present; otherwise the document itself must map names to paths.
func Parse(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("E130").WithDetail("manifest is not a JSON object").Wrap(err)
	}

	if files, ok := raw["files"]; ok {
		var entries map[string]string
		if err := json.Unmarshal(files, &entries); err != nil {
			return nil, errors.New("E130").WithDetail(`"files" must map names to paths`).Wrap(err)
		}
		if entries == nil {
			entries = make(map[string]string)
		}
		return &Manifest{entries: entries}, nil
	}

	entries := make(map[string]string, len(raw))
	for name, v := range raw {
		var path string
		if err := json.Unmarshal(v, &path); err != nil {
			return nil, errors.New("E130").WithDetailf("entry %q is not a string", name).Wrap(err)
		}
		entries[name] = path
	}
	return &Manifest{entries: entries}, nil
}

// Load reads a manifest file.
//
// If the file does not exist or cannot be read, an error is returned.
// In development, use Development or ForEnv instead.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E130").WithDetailf("could not read %s", path).Wrap(err)
	}
	m, err := Parse(data)
	if err != nil {
		if ve, ok := errors.As(err); ok {
			ve.Location = &errors.Location{File: path}
		}
		return nil, err
	}
	return m, nil
}

// ForEnv returns the development mapping for EnvDevelopment and loads
// the manifest at path otherwise.
func ForEnv(env, path string) (*Manifest, error) {
	if env == EnvDevelopment {
		return Development(), nil
	}
	return Load(path)
}

// Resolve returns the built path for the given asset name.
// If not found, returns the name unchanged.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has returns true if the manifest contains the given asset name.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[source]
	return ok
}

// Set adds or updates an entry in the manifest.
func (m *Manifest) Set(source, resolved string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[source] = resolved
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Names returns the asset names in sorted order.
func (m *Manifest) Names() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names
}

// All returns a copy of all manifest entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		result[k] = v
	}
	return result
}
