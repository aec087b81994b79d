// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// yamlLoader is a kong.ConfigurationLoader for YAML files. A flag is resolved
// from the key that is its name in snake_case, looked up first in the section
// named for its command (if any) and then at the top level.
func yamlLoader(r io.Reader) (kong.Resolver, error) {
	var values map[string]any
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		return lookupFlag(values, parent, flag.Name), nil
	}), nil
}

func lookupFlag(values map[string]any, parent *kong.Path, name string) any {
	key := strcase.ToSnake(name)
	if parent != nil && parent.Command != nil {
		if sec, ok := values[parent.Command.Name].(map[string]any); ok {
			if v, ok := sec[key]; ok {
				return v
			}
		}
	}
	return values[key]
}
