package demo

import (
	"strconv"

	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/internal/registry"
	"github.com/vango-dev/vango-ssr/pkg/assets"
	"github.com/vango-dev/vango-ssr/pkg/vdom"
)

const defaultTitle = "Vango SSR"

// Register adds every demo component to reg.
func Register(reg *registry.Registry) error {
	for _, c := range []struct {
		name string
		comp vdom.Component
	}{
		{"App", App},
		{"Greeting", Greeting},
		{"Counter", Counter},
	} {
		if err := reg.Register(c.name, c.comp); err != nil {
			return err
		}
	}
	return nil
}

// App renders a complete HTML document for a client bundle.
//
// Props:
//   - assets: an assets.Resolver, map[string]string or map[string]any
//     giving the paths of main.js and main.css
//   - title: the document title
//   - children: the content of the root element; without children the
//     page greets props["name"]
//
// An empty main.css (the development bundle injects styles itself) leaves
// the stylesheet link out.
var App = vdom.Pure("App", func(p vdom.Props) *vdom.VNode {
	title := p.String("title")
	if title == "" {
		title = defaultTitle
	}
	css := assetPath(p["assets"], "main.css")
	js := assetPath(p["assets"], "main.js")

	var content any = p.Children()
	if len(p.Children()) == 0 {
		content = vdom.Composite(Greeting, vdom.Props{"name": p["name"]})
	}

	return vdom.Html(vdom.Lang("en"),
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
			vdom.Title(title),
			vdom.If(css != "", vdom.Link(vdom.Rel("stylesheet"), vdom.Href(css))),
		),
		vdom.Body(
			vdom.Noscript("You need to enable JavaScript to run this app."),
			vdom.Div(vdom.ID("root"), content),
			vdom.If(js != "", vdom.Script(vdom.Src(js))),
		),
	)
})

// Greeting renders a heading for props["name"], "world" by default.
var Greeting = vdom.Pure("Greeting", func(p vdom.Props) *vdom.VNode {
	name := p.String("name")
	if name == "" {
		name = "world"
	}
	return vdom.H1(vdom.Class("greeting"), "Hello, ", name, "!")
})

// Counter renders a stepper for props["count"], which may be a number or
// a numeric string. Anything else is an error.
var Counter = vdom.Func("Counter", func(p vdom.Props) (*vdom.VNode, error) {
	count, err := intProp(p["count"])
	if err != nil {
		return nil, err
	}
	return vdom.Div(vdom.Class("counter"),
		vdom.Button(vdom.Type("button"), vdom.Aria("label", "decrement"), vdom.OnClick(func() {}), "-"),
		vdom.Span(vdom.Aria("live", "polite"), strconv.Itoa(count)),
		vdom.Button(vdom.Type("button"), vdom.Aria("label", "increment"), vdom.OnClick(func() {}), "+"),
	), nil
})

func assetPath(v any, name string) string {
	switch a := v.(type) {
	case assets.Resolver:
		return a.Asset(name)
	case map[string]string:
		return a[name]
	case map[string]any:
		s, _ := a[name].(string)
		return s
	case vdom.Props:
		return a.String(name)
	}
	return ""
}

func intProp(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case string:
		if n == "" {
			return 0, nil
		}
		if i, err := strconv.Atoi(n); err == nil {
			return i, nil
		}
	}
	return 0, errors.Newf(errors.CategoryRender, "count must be an integer, got %v", v)
}
