// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxNodes is the node capacity used when a Config does not
	// specify one.
	DefaultMaxNodes = 25
	// MinMaxNodes is the smallest legal node capacity. A split must be
	// able to give both new siblings at least minFill entries.
	MinMaxNodes = 2*minFill - 1
	// minFill is the least number of entries held by any node other
	// than the root.
	minFill = 2
)

// Config holds the tunable parameters of an Index.
type Config struct {
	// MaxNodes is the maximum number of objects in a leaf node and the
	// maximum number of children in an internal node.
	MaxNodes int `mapstructure:"max_nodes"`
	// HilbertReplay, when set, makes Unlock insert the deferred
	// objects in Hilbert curve order of their bounding boxes instead of
	// the order in which they were recorded.
	HilbertReplay bool `mapstructure:"hilbert_replay"`
	// LogLevel is the logrus level name used when Logger is nil.
	LogLevel string `mapstructure:"log_level"`
	// Logger receives the index diagnostics. If nil, a new logrus
	// logger at LogLevel is used.
	Logger logrus.FieldLogger `mapstructure:"-"`
}

// DefaultConfig returns the configuration used by New when it is given
// a nil Config.
func DefaultConfig() Config {
	return Config{
		MaxNodes:      DefaultMaxNodes,
		HilbertReplay: true,
		LogLevel:      logrus.WarnLevel.String(),
	}
}

// DecodeConfig builds a Config from a generic key/value map, such as a
// section of a JSON or YAML settings file. Keys absent from the map
// keep their DefaultConfig values.
func DecodeConfig(m map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, wrapErr("failed to create config decoder", err)
	}
	if err = dec.Decode(m); err != nil {
		return Config{}, wrapErr("failed to decode config", err)
	}
	if err = cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxNodes < MinMaxNodes {
		return fmtErr("max nodes must be at least %d, got %d", MinMaxNodes, cfg.MaxNodes)
	}
	if cfg.Logger == nil && cfg.LogLevel != "" {
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			return wrapErr("invalid log level %q", err, cfg.LogLevel)
		}
	}
	return nil
}

func (cfg *Config) logger() logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	l := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		l.SetLevel(level)
	}
	return l.WithField("component", "rtree")
}
