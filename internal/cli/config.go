package cli

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	kposflag "github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"

	"github.com/gonzalop/ftpengine"
)

const (
	envPrefix   = "FTPLS_"
	defaultPort = "21"
)

// Config is the merged configuration of a listing run.
type Config struct {
	Address    string        `koanf:"address"`
	User       string        `koanf:"user"`
	Password   string        `koanf:"password"`
	Timeout    time.Duration `koanf:"timeout"`
	LineEnding string        `koanf:"line-ending"`
	Debug      bool          `koanf:"debug"`
	ShowSystem bool          `koanf:"show-system"`
	ShowPwd    bool          `koanf:"show-pwd"`
	NoColor    bool          `koanf:"no-color"`
}

// registerFlags declares the flags of the root command on pf.
func registerFlags(pf *pflag.FlagSet) {
	pf.StringP("config", "c", "", "Configuration file path")
	pf.StringP("user", "u", "anonymous", "Login name")
	pf.StringP("password", "p", "anonymous@", "Login password")
	pf.Duration("timeout", 30*time.Second, "Timeout for dialing and for each read or write")
	pf.String("line-ending", "crlf", "Command terminator: crlf or lf")
	pf.Bool("debug", false, "Log the protocol exchange to stderr")
	pf.Bool("show-system", false, "Print the server system type (SYST)")
	pf.Bool("show-pwd", false, "Print the working directory (PWD)")
	pf.Bool("no-color", false, "Do not highlight directories")
}

// loadConfig merges, from lowest to highest priority, a YAML config file,
// FTPLS_* environment variables, and the flags in pf. A positional address
// overrides the address key.
func loadConfig(pf *pflag.FlagSet, args []string) (*Config, error) {
	k := koanf.New(".")

	cfgPath, err := pf.GetString("config")
	if err != nil {
		return nil, err
	}
	if cfgPath == "" {
		cfgPath = findConfigFile(configSearchPaths())
	}
	if cfgPath != "" {
		if err := k.Load(kfile.Provider(cfgPath), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", cfgPath, err)
		}
	}

	if err := k.Load(kenv.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	if err := k.Load(kposflag.Provider(pf, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(args) > 0 {
		cfg.Address = args[0]
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates cfg and adds the default port to the address.
func (cfg *Config) normalize() error {
	if cfg.Address == "" {
		return fmt.Errorf("no server address given")
	}
	if _, _, err := net.SplitHostPort(cfg.Address); err != nil {
		cfg.Address = net.JoinHostPort(cfg.Address, defaultPort)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if _, err := ftpengine.ParseLineEnding(cfg.LineEnding); err != nil {
		return err
	}
	return nil
}

// envKey maps FTPLS_LINE_ENDING to line-ending.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
}

// configSearchPaths returns the directories searched for ftpls.yaml, in order
// of precedence: the current directory, $HOME/.ftpls, /etc/ftpls.
func configSearchPaths() []string {
	paths := []string{"."}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".ftpls"))
	}
	return append(paths, "/etc/ftpls")
}

func findConfigFile(dirs []string) string {
	for _, dir := range dirs {
		for _, ext := range []string{"yaml", "yml"} {
			path := filepath.Join(dir, "ftpls."+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
