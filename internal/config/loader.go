package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "config.yaml"

// Load builds Options from, in increasing priority: env-default tags, the
// config file, environment variables and the command-line flags in args.
// The file path comes from -c/-config or the CONFIG env. A missing default
// file is ignored; a missing explicit file is an error.
func Load(args []string) (*Options, error) {
	fs := flag.NewFlagSet("exhibition", flag.ContinueOnError)
	var (
		addr, dsn, path string
	)
	fs.StringVar(&addr, "a", "", "run on ip:port server")
	fs.StringVar(&dsn, "d", "", "db address")
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	if envPath := os.Getenv("CONFIG"); envPath != "" && path == "" {
		path = envPath
	}
	explicitPath := path != ""
	if !explicitPath {
		path = defaultConfigPath
	}

	var opts Options
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &opts); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&opts); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if addr != "" {
		opts.Server.Address = addr
	}
	if dsn != "" {
		opts.Database.DSN = dsn
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &opts, nil
}
