// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultMaxNodes, cfg.MaxNodes)
	assert.True(t, cfg.HilbertReplay)
	assert.Equal(t, "warning", cfg.LogLevel)
	assert.Nil(t, cfg.Logger)
	assert.NoError(t, cfg.validate())
}

func TestDecodeConfig(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{})

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Typed", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{
			"max_nodes":      8,
			"hilbert_replay": false,
			"log_level":      "debug",
		})

		require.NoError(t, err)
		assert.Equal(t, 8, cfg.MaxNodes)
		assert.False(t, cfg.HilbertReplay)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("WeaklyTyped", func(t *testing.T) {
		cfg, err := DecodeConfig(map[string]interface{}{
			"max_nodes":      "12",
			"hilbert_replay": "false",
		})

		require.NoError(t, err)
		assert.Equal(t, 12, cfg.MaxNodes)
		assert.False(t, cfg.HilbertReplay)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{
			"max_node": 8,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rtree: failed to decode config")
		assert.Contains(t, err.Error(), "max_node")
	})

	t.Run("BadType", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{
			"max_nodes": "many",
		})

		assert.ErrorContains(t, err, "rtree: failed to decode config")
	})

	t.Run("MaxNodesTooSmall", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{
			"max_nodes": 2,
		})

		assert.EqualError(t, err, "rtree: max nodes must be at least 3, got 2")
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		_, err := DecodeConfig(map[string]interface{}{
			"log_level": "loud",
		})

		assert.ErrorContains(t, err, `rtree: invalid log level "loud"`)
	})
}

func TestConfig_logger(t *testing.T) {
	t.Run("Given", func(t *testing.T) {
		l := logrus.New()
		cfg := Config{Logger: l}

		assert.Same(t, l, cfg.logger())
	})

	t.Run("Level", func(t *testing.T) {
		cfg := Config{LogLevel: "debug"}

		entry, ok := cfg.logger().(*logrus.Entry)

		require.True(t, ok)
		assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())
		assert.Equal(t, "rtree", entry.Data["component"])
	})
}
