// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/amr-curator/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the studies matching opts to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) error {
	studies, err := s.exportStudies(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(studies)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the studies matching opts to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) error {
	studies, err := s.exportStudies(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(studies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportStudies(ctx context.Context, opts QueryOptions) ([]types.Study, error) {
	opts.MaxResults = exportLimit
	studies, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if studies == nil {
		studies = []types.Study{}
	}
	return studies, nil
}
