package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-ssr/internal/demo"
	"github.com/vango-dev/vango-ssr/internal/errors"
	"github.com/vango-dev/vango-ssr/internal/registry"
	"github.com/vango-dev/vango-ssr/pkg/render"
	"github.com/vango-dev/vango-ssr/pkg/tree"
)

func renderCmd(configDir *string) *cobra.Command {
	var (
		static     bool
		doctype    bool
		hydratable bool
		maxDepth   int
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to HTML",
		Long: `Render a JSON or YAML document and print the markup.

The document is read from file, or from stdin when file is "-" or omitted.

Examples:
  vango-ssr render page.json
  echo '{"type": "Greeting", "props": {"name": "Ada"}}' | vango-ssr render --static
  vango-ssr render --doctype page.yaml > index.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			rc := cfg.RendererConfig()
			if cmd.Flags().Changed("hydratable") {
				rc.Hydratable = hydratable
			}
			if cmd.Flags().Changed("max-depth") {
				if maxDepth < 1 {
					return usageError("--max-depth must be at least 1, got %d", maxDepth)
				}
				rc.MaxDepth = maxDepth
			}

			name, data, err := readDocument(cmd, args)
			if err != nil {
				return err
			}

			components := registry.New()
			if err := demo.Register(components); err != nil {
				return err
			}
			node, err := tree.NewDecoder(components).Decode(name, data)
			if err != nil {
				return err
			}

			renderer := render.NewRenderer(rc)
			var html string
			if static {
				html, err = renderer.RenderToStaticMarkup(node)
			} else {
				html, err = renderer.RenderToString(node)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if doctype {
				io.WriteString(out, render.Doctype)
			}
			io.WriteString(out, html)
			io.WriteString(out, "\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "Render without hydration markers")
	cmd.Flags().BoolVar(&doctype, "doctype", false, "Prepend "+render.Doctype)
	cmd.Flags().BoolVar(&hydratable, "hydratable", false, "Emit hydration markers (default from ssr.json)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum component nesting (default from ssr.json)")

	return cmd
}

// readDocument returns the document and the name used in error locations.
func readDocument(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, usageError("reading stdin: %v", err)
		}
		return "stdin", data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, errors.New("E140").
			WithDetailf("cannot read %s", args[0]).
			Wrap(err)
	}
	return args[0], data, nil
}
