// Package cmd implements the CLI subcommands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/nftjctl/nftjctl/internal/audit"
	"github.com/nftjctl/nftjctl/internal/brand"
	"github.com/nftjctl/nftjctl/internal/config"
	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/i18n"
	"github.com/nftjctl/nftjctl/internal/logging"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

var Printer = i18n.NewCLIPrinter()

// App bundles what every subcommand needs: config, engine, logger, and
// the optional audit store.
type App struct {
	Config *config.Config
	Engine engine.Engine
	Logger *logging.Logger
	Audit  *audit.Store
}

// setup loads the config and wires the engine. The audit store is
// best-effort: a failure to open it degrades to a warning.
func setup(configFile string) (*App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger := logging.Default()
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	app := &App{
		Config: cfg,
		Engine: engine.NewNFT(nil, cfg.EngineOptions(), logger),
		Logger: logger,
	}

	if cfg.Audit.Enabled {
		dbPath := cfg.Audit.DBPath
		if dbPath == "" {
			dbPath = filepath.Join(brand.GetStateDir(), "audit.db")
		}
		store, err := audit.NewStore(dbPath, cfg.Audit.RetentionDays, nil)
		if err != nil {
			logger.Warn("audit store unavailable", "path", dbPath, "error", err)
		} else {
			app.Audit = store
		}
	}
	return app, nil
}

// Close releases the app's resources.
func (a *App) Close() {
	if a.Audit != nil {
		a.Audit.Close()
	}
}

// record writes an audit entry when the store is open.
func (a *App) record(op string, doc *ruleset.Document, opErr error) {
	if a.Audit == nil {
		return
	}
	if err := a.Audit.Record(op, doc, opErr); err != nil {
		a.Logger.Warn("audit record failed", "op", op, "error", err)
	}
}

// readDocument loads a ruleset document from path; "-" reads stdin.
// YAML files are converted to JSON before decoding.
func readDocument(path string) (*ruleset.Document, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read ruleset file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", path, err)
		}
	}

	var doc ruleset.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode ruleset file %s: %w", path, err)
	}
	return &doc, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(raw))
}

// normalizeYAML rewrites yaml.v2's interface-keyed maps into string-keyed
// ones so the value can pass through encoding/json.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		for i, item := range val {
			val[i] = normalizeYAML(item)
		}
		return val
	default:
		return v
	}
}
