package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when it exists, before any --config file.
const DefaultPath = "nineslice.toml"

// EnvPrefix is prepended to the upper-cased flag names to form the
// environment variables consulted for each flag.
const EnvPrefix = "NINESLICE_"

// TOML is a kong.ConfigurationLoader for TOML files. Top-level keys are flag
// names, written snake_case (output_dir) or kebab-case (output-dir).
//
//	source_path = "Assets/TextEditor.png"
//	output_dir  = "Assets"
//	base_name   = "TextEditor"
//	top = 50
//	left = 50
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if v, ok := values[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
			return v, nil
		}
		return values[flag.Name], nil
	}
	return f, nil
}
