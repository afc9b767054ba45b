// Package config loads command-line defaults from a YAML or JSON file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"sigs.k8s.io/yaml"

	"github.com/seiflotfy/huffman"
)

// Config is the command-line configuration.
type Config struct {
	// Parallelism is the number of goroutines that count symbol
	// frequencies; 0 means GOMAXPROCS.
	Parallelism int `json:"parallelism"`
	// ChunkSize is the number of symbols each counting goroutine takes.
	ChunkSize int `json:"chunkSize"`
	// CacheSize is the number of code books the decoder keeps.
	CacheSize int  `json:"cacheSize"`
	Verbose   bool `json:"verbose"`
	JSON      bool `json:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ChunkSize: 1 << 20,
		CacheSize: 16,
	}
}

// Load reads path over the defaults. Unknown fields are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects negative sizes.
func (c *Config) Validate() error {
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be >= 0, got %d", c.Parallelism)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunkSize must be >= 0, got %d", c.ChunkSize)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cacheSize must be >= 0, got %d", c.CacheSize)
	}
	return nil
}

// Options translates c into codec options. logf is installed only when
// c.Verbose is set.
func (c *Config) Options(logf func(string, ...any)) []huffman.Option {
	p := c.Parallelism
	if p == 0 {
		p = runtime.GOMAXPROCS(0)
	}
	opts := []huffman.Option{
		huffman.WithParallelism(p),
		huffman.WithChunkSize(c.ChunkSize),
		huffman.WithCodebookCache(c.CacheSize),
	}
	if c.Verbose && logf != nil {
		opts = append(opts, huffman.WithLogf(logf))
	}
	return opts
}
