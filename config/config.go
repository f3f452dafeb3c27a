// Copyright 2025 strata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads engine defaults from an optional TOML file.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the engine.
type Config struct {
	Sample   SampleConfig   `mapstructure:"sample"`
	Split    SplitConfig    `mapstructure:"split"`
	Validate ValidateConfig `mapstructure:"validate"`
}

type SampleConfig struct {
	// DefaultSize is the sample size used when the caller does not pass one.
	DefaultSize int `mapstructure:"default_size" validate:"gt=0"`
	// DefaultMethod is the sampling strategy used when the caller does not
	// pass one.
	DefaultMethod string `mapstructure:"default_method" validate:"oneof=random stratified head tail"`
}

type SplitConfig struct {
	// DefaultTestFraction is the share of rows assigned to the test subset.
	DefaultTestFraction float64 `mapstructure:"default_test_fraction" validate:"gt=0,lt=1"`
}

type ValidateConfig struct {
	// SigmaMultiplier bounds the outlier interval [mean-kσ, mean+kσ].
	SigmaMultiplier float64 `mapstructure:"sigma_multiplier" validate:"gt=0"`
	// TypeMixThreshold is the fraction of parsable values above which a text
	// column is reported as mistyped.
	TypeMixThreshold float64 `mapstructure:"type_mix_threshold" validate:"gt=0,lt=1"`
	// MonetaryKeywords marks column names whose values must not be negative.
	MonetaryKeywords []string `mapstructure:"monetary_keywords" validate:"min=1"`
}

// GetDefaultConfig returns the built-in defaults.
func GetDefaultConfig() *Config {
	return &Config{
		Sample: SampleConfig{
			DefaultSize:   1000,
			DefaultMethod: "random",
		},
		Split: SplitConfig{
			DefaultTestFraction: 0.2,
		},
		Validate: ValidateConfig{
			SigmaMultiplier:  3,
			TypeMixThreshold: 0.5,
			MonetaryKeywords: []string{"amount", "price", "count"},
		},
	}
}

// LoadConfig loads configuration from a TOML file. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	defaults := GetDefaultConfig()
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("sample.default_size", defaults.Sample.DefaultSize)
	v.SetDefault("sample.default_method", defaults.Sample.DefaultMethod)
	v.SetDefault("split.default_test_fraction", defaults.Split.DefaultTestFraction)
	v.SetDefault("validate.sigma_multiplier", defaults.Validate.SigmaMultiplier)
	v.SetDefault("validate.type_mix_threshold", defaults.Validate.TypeMixThreshold)
	v.SetDefault("validate.monetary_keywords", defaults.Validate.MonetaryKeywords)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Trace(err)
		}
	} else if err := v.ReadConfig(strings.NewReader("")); err != nil {
		return nil, errors.Trace(err)
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, errors.Trace(err)
	}
	return &config, nil
}
