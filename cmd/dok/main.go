package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
}

// CLI holds the global flags and commands.
type CLI struct {
	Verbose   bool   `short:"v" help:"Enable verbose logging."`
	Unsafe    bool   `help:"Disable HTML sanitization. Allows all raw HTML."`
	Settings  string `short:"s" help:"Site settings file." default:"settings.yml" type:"path"`
	Content   string `help:"Content root directory." default:"content" type:"path"`
	Output    string `short:"o" help:"Output directory for the generated site." default:"public" type:"path"`
	Templates string `help:"Templates directory; missing templates fall back to the built-in ones." default:"templates" type:"path"`
	Assets    string `help:"Static assets directory, copied to <output>/assets." default:"assets" type:"path"`
	Workers   int    `help:"Parallel workers for loading and link scanning (0 uses every CPU)." default:"0"`

	Build BuildCmd `cmd:"" default:"1" help:"Generate the site (default)."`
	Serve ServeCmd `cmd:"" help:"Run a local preview server that rebuilds on change."`
	New   NewCmd   `cmd:"" help:"Scaffold a new site or article."`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dok"),
		kong.Description("dok - a static site generator for dated, nested notes"),
		kong.UsageOnError(),
	)
	if err := ctx.Run(&Global{Logger: slog.Default()}, &cli); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}
