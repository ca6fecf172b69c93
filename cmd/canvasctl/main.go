package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/bttk/canvas-mcp/internal/apiauth"
	"github.com/bttk/canvas-mcp/pkg/config"
	"github.com/bttk/canvas-mcp/pkg/memory"
)

func main() {
	if len(os.Args) < 3 || os.Args[1] != "projects" || os.Args[2] != "list" {
		fmt.Println("Usage: canvasctl projects list [-config path]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("canvasctl", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the configuration file (default: ~/.config/canvasmcp/config.json)")
	_ = fs.Parse(os.Args[3:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()
	opts := []memory.Option{memory.WithTimeout(cfg.API.Timeout.Duration)}
	if cfg.API.Cert != "" {
		opts = append(opts, memory.WithCertificate(cfg.API.Cert))
	}
	if cfg.API.OAuth.Enabled() {
		opts = append(opts, memory.WithTokenSource(apiauth.TokenSource(ctx, cfg.API.OAuth, nil)))
	}
	client, err := memory.NewClient(cfg.API.URL, cfg.API.Token, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}

	list, err := client.Projects.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list projects")
	}

	fmt.Printf("%-24s %-24s %s\n", "NAME", "PERMALINK", "URL")
	fmt.Printf("%-24s %-24s %s\n", "----", "---------", "---")
	for _, p := range list.Projects {
		name := p.Name
		if p.IsDefault || p.Name == list.DefaultProject {
			name += " *"
		}
		fmt.Printf("%-24s %-24s %s\n", name, p.Slug(), client.Projects.URL(p))
	}
}
