package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"dok/internal/builder"
	"dok/internal/config"
	"dok/internal/scaffold"
	"dok/internal/server"
)

type BuildCmd struct{}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("--- Building site ---")
	stats, err := runBuild(ctx, g, root)
	if err != nil {
		return err
	}
	fmt.Printf("📄 Site: %d articles, %d tags, %d pages generated.\n", stats.Articles, stats.Tags, stats.Pages)
	fmt.Println("✅ Build successful.")
	return nil
}

type ServeCmd struct {
	Port int `short:"p" help:"Port for the local preview server." default:"1313"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return server.Run(ctx, server.Options{
		Port:      s.Port,
		OutputDir: root.Output,
		Watch:     []string{root.Content, root.Templates, root.Assets, root.Settings},
		Logger:    g.Logger,
		Build: func(ctx context.Context) error {
			stats, err := runBuild(ctx, g, root)
			if err != nil {
				return err
			}
			fmt.Printf("📄 Site: %d pages generated.\n", stats.Pages)
			return nil
		},
	})
}

type NewCmd struct {
	Site    NewSiteCmd    `cmd:"" help:"Create a new site scaffold."`
	Article NewArticleCmd `cmd:"" help:"Create a new article dated today."`
}

type NewSiteCmd struct {
	Name string `arg:"" help:"Directory of the new site."`
}

func (n *NewSiteCmd) Run(_ *Global, _ *CLI) error {
	return scaffold.CreateNewSite(n.Name, time.Now())
}

type NewArticleCmd struct {
	Title  string `arg:"" help:"Title of the article."`
	Parent string `help:"Folder, relative to the content root, to create the article in."`
}

func (n *NewArticleCmd) Run(_ *Global, root *CLI) error {
	_, err := scaffold.CreateNewContent(root.Content, n.Title, n.Parent, time.Now())
	return err
}

// runBuild loads the settings and builds the site once.
func runBuild(ctx context.Context, g *Global, root *CLI) (builder.Stats, error) {
	settings, err := config.LoadSettings(root.Settings)
	if err != nil {
		return builder.Stats{}, err
	}
	stats, err := builder.BuildSite(ctx, builder.BuildOptions{
		ContentDir:       root.Content,
		OutputDir:        root.Output,
		TemplateDir:      root.Templates,
		AssetsDir:        root.Assets,
		CleanDestination: true,
		Unsafe:           root.Unsafe,
		Workers:          root.Workers,
		Logger:           g.Logger,
	}, settings)
	if err != nil {
		return builder.Stats{}, fmt.Errorf("site generation failed: %w", err)
	}
	return stats, nil
}
