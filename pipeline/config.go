// elAlign: concurrent alignment chunking for assembly polishing.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elalign/blob/master/LICENSE.txt>.

package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tools holds the locations of the external programs that elalign
// runs. Each entry is either a path or a name looked up in PATH.
type Tools struct {
	Minimap2 string `yaml:"minimap2"`
	GraphMap string `yaml:"graphmap"`
	Sort     string `yaml:"sort"`
}

// Environment variables that override the entries of a tools file.
const (
	Minimap2Env = "ELALIGN_MINIMAP2"
	GraphMapEnv = "ELALIGN_GRAPHMAP"
	SortEnv     = "ELALIGN_SORT"
)

// DefaultTools returns the tool locations used when nothing else is
// configured.
func DefaultTools() *Tools {
	return &Tools{
		Minimap2: "minimap2",
		GraphMap: "graphmap",
		Sort:     "sort",
	}
}

// LoadTools loads tool locations from a YAML file. Missing entries,
// an empty path, or a missing file all fall back to DefaultTools.
// Environment variables take precedence over the file.
func LoadTools(path string) (*Tools, error) {
	tools := DefaultTools()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, tools); err != nil {
				return nil, fmt.Errorf("failed to parse tools file %v: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read tools file %v: %w", path, err)
		}
	}
	tools.applyEnvOverrides()
	return tools, nil
}

func (t *Tools) applyEnvOverrides() {
	if v := os.Getenv(Minimap2Env); v != "" {
		t.Minimap2 = v
	}
	if v := os.Getenv(GraphMapEnv); v != "" {
		t.GraphMap = v
	}
	if v := os.Getenv(SortEnv); v != "" {
		t.Sort = v
	}
}
