package repos

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is where the project list is expected, relative to the
// working directory.
const DefaultConfigPath = "./jobs.toml"

// Config is the parsed jobs.toml file.
type Config struct {
	Git GitConfig `toml:"git"`
}

// GitConfig names the project repositories whose job-dsl files get injected
// into the CasC document.
type GitConfig struct {
	RepoURLs []string `toml:"repo_urls"`
}

// LoadConfig reads and decodes the jobs.toml file at path.
func LoadConfig(path string) (Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return config, nil
}
