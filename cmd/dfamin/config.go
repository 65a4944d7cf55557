package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geange/dfamin"
)

// Config The optional dfamin.yaml. Flags given on the command line override it.
type Config struct {
	OutputDir   string `yaml:"output_dir"`
	Render      string `yaml:"render"` // dot, png, svg or none
	Policy      string `yaml:"policy"` // distinguish-missing or implicit-sink
	LogLevel    string `yaml:"log_level"`
	GraphvizBin string `yaml:"graphviz_bin"`
	Width       int    `yaml:"width"` // diagram width in pixels for png output
}

func defaultConfig() Config {
	return Config{
		OutputDir:   "output",
		Render:      "dot",
		Policy:      dfamin.DistinguishMissing.String(),
		LogLevel:    "info",
		GraphvizBin: "dot",
		Width:       900,
	}
}

// loadConfig reads path over the defaults. Unknown fields are errors.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// renderer returns the renderer for cfg.Render and the file extension of its output.
func (c Config) renderer() (dfamin.Renderer, string, error) {
	switch c.Render {
	case "dot":
		return dfamin.DotRenderer{}, "dot", nil
	case "png", "svg":
		return dfamin.GraphvizRenderer{Binary: c.GraphvizBin, Format: c.Render, Width: c.Width}, c.Render, nil
	case "none", "":
		return dfamin.NopRenderer{}, "", nil
	default:
		return nil, "", fmt.Errorf("unknown render format %q", c.Render)
	}
}
