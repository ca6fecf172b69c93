package main

import (
	"context"
	"errors"
	"flag"
	"io"
	stdlog "log"
	"log/syslog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bttk/canvas-mcp/internal/apiauth"
	"github.com/bttk/canvas-mcp/pkg/canvasmcp"
	"github.com/bttk/canvas-mcp/pkg/config"
	"github.com/bttk/canvas-mcp/pkg/memory"
	"github.com/bttk/canvas-mcp/pkg/project"
)

func main() {
	var configPath string
	var sessionProject string
	var verbose bool
	var debug bool
	flag.StringVar(&configPath, "config", "", "path to config file (default: ~/.config/canvasmcp/config.json)")
	flag.StringVar(&sessionProject, "project", "", "project used by tool calls that do not name one")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging of input/output")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	setupLogger(debug)

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load %s", configPath)
	}

	ctx, cancel := signalContext()
	defer cancel()
	if sessionProject != "" {
		ctx = project.WithSession(ctx, sessionProject)
	}

	// Initialize resource API client
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

	// Create MCP Server
	s := server.NewMCPServer(
		"Canvas MCP Server",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	creator := canvasmcp.NewClientCreator(client, cfg.Project.Default)

	// Tool registry map
	toolRegistry := map[string]func(*server.MCPServer){
		"canvas": func(s *server.MCPServer) {
			canvasmcp.RegisterCanvas(s, creator)
		},
		"list_projects": func(s *server.MCPServer) {
			canvasmcp.RegisterListProjects(s, client.Projects)
		},
	}

	// Register tools based on config
	for name, registerFunc := range toolRegistry {
		if enabled, ok := cfg.MCP.Tools[name]; ok && enabled {
			log.Info().Msgf("Registering tool %s", name)
			registerFunc(s)
		} else if !ok {
			log.Warn().Msgf("Tool %s not found in config, skipping", name)
		}
	}
	canvasmcp.RegisterCanvasSpec(s)

	if cfg.MCP.Transport == config.TransportHTTP {
		if err := ServeHTTP(ctx, s, cfg.MCP.Addr, sessionProject); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
		return
	}

	// Start the server using Stdio
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if verbose {
		in = &loggingReader{os.Stdin}
		out = &loggingWriter{os.Stdout}
	}
	if err := ServeStdio(ctx, s, in, out); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Server error")
	}
}

type loggingReader struct {
	r io.Reader
}

func (lr *loggingReader) Read(p []byte) (n int, err error) {
	n, err = lr.r.Read(p)
	if n > 0 {
		log.Info().Msgf("IN: %q", p[:n])
	}
	return n, err
}

type loggingWriter struct {
	w io.Writer
}

func (lw *loggingWriter) Write(p []byte) (n int, err error) {
	if len(p) < 50 {
		log.Info().Msgf("OUT: %q", p)
	} else {
		log.Info().Msgf("OUT: %q...", p[:50])
	}
	return lw.w.Write(p)
}

// signalContext returns a context cancelled on SIGTERM or SIGINT.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// ServeStdio serves srv on in/out until ctx is cancelled or in is closed.
// Tool calls inherit ctx, including its session project.
func ServeStdio(ctx context.Context, srv *server.MCPServer, in io.Reader, out io.Writer) error {
	s := server.NewStdioServer(srv)
	return s.Listen(ctx, in, out)
}

// ServeHTTP serves srv over streamable HTTP on addr. Inbound request headers
// are forwarded to the resource API so callers authenticate as themselves.
func ServeHTTP(ctx context.Context, srv *server.MCPServer, addr, sessionProject string) error {
	httpServer := newStreamableServer(srv, sessionProject)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting streamable HTTP server")
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newStreamableServer wraps srv so every tool call sees the inbound request
// headers and, when set, the session project.
func newStreamableServer(srv *server.MCPServer, sessionProject string) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(srv,
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			ctx = memory.InboundHeadersFromRequest(ctx, r)
			if sessionProject != "" {
				ctx = project.WithSession(ctx, sessionProject)
			}
			return ctx
		}),
	)
}

func setupLogger(debug bool) {
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Stamp,
	}}
	if syslogger, err := syslog.New(stdlog.LstdFlags, "canvasmcp"); err == nil {
		writers = append(writers, zerolog.SyslogLevelWriter(syslogger))
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
