// Command vango-ssr renders component trees to HTML from the command line
// or as an HTTP service.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vango-dev/vango-ssr/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	errors.SetColor(colorOutput(os.Getenv("NO_COLOR"), term.IsTerminal(int(os.Stderr.Fd()))))
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configDir string
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "vango-ssr",
		Short: "Render component trees to HTML",
		Long: `vango-ssr renders component trees to HTML strings.

Documents are JSON or YAML trees of elements, text and registered
components. They can be rendered once from a file or stdin, or served
over HTTP and WebSocket.

Configuration is read from ssr.json in the config directory when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.SetColor(false)
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing ssr.json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Print errors without ANSI colors")

	rootCmd.AddCommand(
		renderCmd(&configDir),
		serveCmd(&configDir),
		configCmd(&configDir),
		versionCmd(),
	)
	return rootCmd
}

// usageError reports bad command usage.
func usageError(format string, args ...any) *errors.Error {
	return errors.New("E140").WithDetailf(format, args...)
}

// colorOutput reports whether errors are printed in color: only on a
// terminal and only when NO_COLOR is unset.
func colorOutput(noColorEnv string, terminal bool) bool {
	return terminal && noColorEnv == ""
}
