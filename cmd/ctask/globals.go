package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"ctask/internal/storage"
	logx "ctask/pkg/logx"
)

const (
	defaultStateName  = "ctaskconfig.json"
	defaultSQLiteName = "ctaskconfig.db"
)

// Globals are flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	State    string `help:"State file path (default ~/ctaskconfig.json, or ~/ctaskconfig.db with --store=sqlite). A .yaml/.yml extension selects YAML." type:"path" placeholder:"PATH"`
	Store    string `help:"Storage driver." enum:"file,sqlite" default:"file"`
	LogLevel string `help:"Log level (trace, debug, info, warn, error)." enum:"trace,debug,info,warn,error" default:"warn"`
	LogFile  string `help:"Also write JSON logs to this file." type:"path" placeholder:"PATH"`
}

func (g *Globals) logger() (*logx.Service, logx.Logger) {
	return logx.NewService(logx.Config{
		Level:   g.LogLevel,
		Console: true,
		File: logx.FileConfig{
			Enabled: strings.TrimSpace(g.LogFile) != "",
			Path:    g.LogFile,
		},
	})
}

// storageConfig resolves the state location. The home directory is only
// consulted when --state is not given.
func (g *Globals) storageConfig() (storage.Config, error) {
	path := strings.TrimSpace(g.State)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return storage.Config{}, fmt.Errorf("locate home directory: %w", err)
		}
		name := defaultStateName
		if g.Store == "sqlite" {
			name = defaultSQLiteName
		}
		path = filepath.Join(home, name)
	}
	return storage.Config{Driver: g.Store, Path: path}, nil
}

func (g *Globals) openStore(log logx.Logger) (storage.Store, error) {
	cfg, err := g.storageConfig()
	if err != nil {
		return nil, err
	}
	log.Debug("opening state", logx.String("driver", cfg.Driver), logx.String("path", cfg.Path))
	return storage.Open(cfg, log)
}
