package render

import "github.com/vango-dev/vango-ssr/internal/errors"

// Sentinel errors returned by rendering. Match them with errors.Is; the
// returned errors carry the same code plus detail about the failing node.
var (
	ErrRenderDepthExceeded        = errors.New("E001")
	ErrInvalidVoidElementChildren = errors.New("E002")
	ErrUnresolvableComponent      = errors.New("E003")
	ErrInvalidTagName             = errors.New("E004")
	ErrInnerHTMLWithChildren      = errors.New("E005")
	ErrUnknownNodeKind            = errors.New("E006")
)
