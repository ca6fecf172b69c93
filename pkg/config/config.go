package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Transports the MCP server can listen on.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Duration is a time.Duration read from a JSON string such as "30s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// OAuth configures client-credentials authentication against the resource API.
type OAuth struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	TokenURL     string   `json:"token_url"`
	Scopes       []string `json:"scopes"`
}

// Enabled reports whether OAuth credentials are configured.
func (o OAuth) Enabled() bool {
	return o.ClientID != ""
}

// Config represents the configuration of the canvas MCP server.
type Config struct {
	API struct {
		URL     string   `json:"url"`
		Cert    string   `json:"cert"`
		Token   string   `json:"token"`
		Timeout Duration `json:"timeout"`
		OAuth   OAuth    `json:"oauth"`
	} `json:"api"`
	Project struct {
		Default string `json:"default"`
	} `json:"project"`
	MCP struct {
		Transport string          `json:"transport"`
		Addr      string          `json:"addr"`
		Tools     map[string]bool `json:"tools"`
	} `json:"mcp"`
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.API,
		validation.Field(&c.API.URL, validation.Required, is.URL),
	); err != nil {
		return err
	}
	if c.API.OAuth.Enabled() {
		if err := validation.ValidateStruct(&c.API.OAuth,
			validation.Field(&c.API.OAuth.ClientSecret, validation.Required),
			validation.Field(&c.API.OAuth.TokenURL, validation.Required, is.URL),
		); err != nil {
			return err
		}
	}
	return validation.ValidateStruct(&c.MCP,
		validation.Field(&c.MCP.Transport, validation.In(TransportStdio, TransportHTTP)),
		validation.Field(&c.MCP.Addr, validation.When(c.MCP.Transport == TransportHTTP, validation.Required)),
	)
}

// Load loads the configuration from a JSON file.
// If path is empty, it searches for "canvasmcp/config.json" in XDG config directories.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = xdg.SearchConfigFile("canvasmcp/config.json")
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.API.Timeout.Duration == 0 {
		cfg.API.Timeout.Duration = 30 * time.Second
	}
	if cfg.MCP.Transport == "" {
		cfg.MCP.Transport = TransportStdio
	}
	if cfg.MCP.Transport == TransportHTTP && cfg.MCP.Addr == "" {
		cfg.MCP.Addr = "127.0.0.1:8090"
	}

	if cfg.API.Cert != "" && !filepath.IsAbs(cfg.API.Cert) {
		if cfg.API.Cert, err = filepath.Abs(filepath.Join(filepath.Dir(path), cfg.API.Cert)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
