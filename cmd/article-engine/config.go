// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/pkg/types"
)

const envPrefix = "ARTICLE_ENGINE"

// configureEnv lets every config key be set from the environment:
// writing.language is read from ARTICLE_ENGINE_WRITING_LANGUAGE.
// AutomaticEnv only resolves keys viper already knows, so each field of
// types.Config is registered with its default first.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v, "", reflect.ValueOf(types.DefaultConfig()))
}

// registerDefaults walks a config struct by its mapstructure tags.
// Squashed structs share their parent's prefix.
func registerDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, opts, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		fv := val.Field(i)
		if opts == "squash" {
			registerDefaults(v, prefix, fv)
			continue
		}
		if name == "" || name == "-" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if fv.Kind() == reflect.Struct {
			registerDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}

// decodeConfig reads the merged defaults, config file and environment from v.
func decodeConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}
