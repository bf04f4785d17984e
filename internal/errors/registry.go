package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E039)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Render depth exceeded",
		Detail:   "Component resolution nested deeper than the configured maximum. This usually means a component renders itself, directly or through a cycle.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Void element given children",
		Detail:   "Void elements such as <br> and <img> cannot have children or inner HTML.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E002",
	},
	"E003": {
		Category: CategoryRender,
		Message:  "Unresolvable component",
		Detail:   "A component failed to produce a node.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E003",
	},
	"E004": {
		Category: CategoryRender,
		Message:  "Invalid tag name",
		Detail:   "Tag names must start with a letter and contain only letters, digits, ':', '_', '.' or '-'.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E004",
	},
	"E005": {
		Category: CategoryRender,
		Message:  "Element has both children and dangerouslySetInnerHTML",
		Detail:   "An element can set either children or dangerouslySetInnerHTML, not both.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E005",
	},
	"E006": {
		Category: CategoryRender,
		Message:  "Unknown node kind",
		DocURL:   "https://vango.dev/docs/ssr/errors/E006",
	},

	// ============================================
	// Document Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryDocument,
		Message:  "Invalid tree document",
		Detail:   "The document could not be decoded into a render tree.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E040",
	},
	"E041": {
		Category: CategoryDocument,
		Message:  "Unknown component",
		Detail:   "The document references a component that is not registered.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E041",
	},
	"E042": {
		Category: CategoryDocument,
		Message:  "Component already registered",
		Detail:   "Component names must be unique within a registry.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E042",
	},

	// ============================================
	// Configuration Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   "https://vango.dev/docs/ssr/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "Port must be between 0 and 65535.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E122",
	},

	// ============================================
	// Asset Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryAssets,
		Message:  "Asset manifest could not be loaded",
		DocURL:   "https://vango.dev/docs/ssr/errors/E130",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		DocURL:   "https://vango.dev/docs/ssr/errors/E140",
	},

	// ============================================
	// Server Errors (E150-E159)
	// ============================================

	"E150": {
		Category: CategoryServer,
		Message:  "Not found",
		DocURL:   "https://vango.dev/docs/ssr/errors/E150",
	},
	"E151": {
		Category: CategoryServer,
		Message:  "Request body too large",
		Detail:   "Documents are limited by server.maxBodyBytes.",
		DocURL:   "https://vango.dev/docs/ssr/errors/E151",
	},
	"E152": {
		Category: CategoryServer,
		Message:  "Request body could not be read",
		DocURL:   "https://vango.dev/docs/ssr/errors/E152",
	},
	"E153": {
		Category: CategoryServer,
		Message:  "Internal server error",
		DocURL:   "https://vango.dev/docs/ssr/errors/E153",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
