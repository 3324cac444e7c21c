package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/nyxxdocs/internal/templates/components/mock"
	"github.com/codr1/nyxxdocs/internal/theme"
)

// Renders here have no viewer, so the mode is the explicit flag or the
// resolver's fallback.
var resolver = theme.Resolver{Fallback: theme.DefaultMode}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "render",
		Short:         "Render the chat mock-ups to static HTML",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newListCmd(), newExampleCmd(), newAllCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered examples",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range mock.Examples() {
				e, _ := mock.Lookup(name)
				cmd.Printf("%-22s %s\n", name, e.Title)
			}
		},
	}
}

func newExampleCmd() *cobra.Command {
	var light bool
	cmd := &cobra.Command{
		Use:   "example <name>",
		Short: "Print one example as an HTML fragment",
		Example: `
# Dark fragment on stdout
render example ping-slash

# Light fragment
render example select-menu --light
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderExample(cmd.Context(), cmd.OutOrStdout(), args[0], modeFlag(cmd, light))
		},
	}
	cmd.Flags().BoolVar(&light, "light", false, "Render with the light theme")
	return cmd
}

func newAllCmd() *cobra.Command {
	var (
		out   string
		light bool
	)
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Write every example to DIR/<name>.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			written, err := renderAll(cmd.Context(), out, modeFlag(cmd, light))
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %d examples to %s\n", written, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output directory")
	cmd.Flags().BoolVar(&light, "light", false, "Render with the light theme")
	return cmd
}

// modeFlag only forces a mode when --light was given.
func modeFlag(cmd *cobra.Command, light bool) *bool {
	if !cmd.Flags().Changed("light") {
		return nil
	}
	return &light
}

func renderExample(ctx context.Context, w io.Writer, name string, light *bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := mock.Lookup(name)
	if err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	conv := e.Build()
	explicit := light
	if explicit == nil {
		explicit = conv.Light
	}
	mode := resolver.Resolve(ctx, explicit, theme.ServerEnvironment{})
	component, err := mock.ExampleComponent(name, mock.RenderOptions{Mode: mode})
	if err != nil {
		return err
	}
	return component.Render(ctx, w)
}

func renderAll(ctx context.Context, dir string, light *bool) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	names := mock.Examples()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, name := range names {
		g.Go(func() error {
			path := filepath.Join(dir, name+".html")
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := renderExample(ctx, f, name, light); err != nil {
				f.Close()
				return fmt.Errorf("render %s: %w", name, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", path, err)
			}
			log.Debug().Str("example", name).Str("path", path).Msg("Example rendered")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(names), nil
}
