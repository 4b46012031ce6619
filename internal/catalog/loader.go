package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed missions.yaml
var defaultPackYAML []byte

//go:embed pack_schema.json
var packSchemaJSON string

// pack is the on-disk mission pack layout.
type pack struct {
	Missions []Mission `yaml:"missions"`
}

// Load builds the catalog from the embedded default mission pack, or from a
// user-supplied pack when packPath is non-empty. External packs are validated
// against the pack schema before use; the embedded pack is trusted.
func Load(packPath string) (*Catalog, error) {
	var p pack

	if packPath != "" {
		data, err := os.ReadFile(packPath)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to read pack %s: %w", packPath, err)
		}
		if err := validatePack(data); err != nil {
			return nil, fmt.Errorf("catalog: pack %s rejected: %w", packPath, err)
		}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("catalog: failed to parse pack %s: %w", packPath, err)
		}
	} else {
		if err := yaml.Unmarshal(defaultPackYAML, &p); err != nil {
			return nil, fmt.Errorf("catalog: failed to parse embedded pack: %w", err)
		}
	}

	c := &Catalog{
		missions: p.Missions,
		items:    storeItems,
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// validatePack checks a YAML mission pack against the embedded JSON Schema.
func validatePack(data []byte) error {
	schema, err := jsonschema.CompileString("pack_schema.json", packSchemaJSON)
	if err != nil {
		return fmt.Errorf("cannot compile pack schema: %w", err)
	}

	// The validator expects json.Unmarshal value types, so the YAML document
	// is round-tripped through JSON before validation.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("not valid YAML: %w", err)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("cannot re-encode pack: %w", err)
	}
	var doc any
	if err := json.Unmarshal(buf, &doc); err != nil {
		return fmt.Errorf("cannot re-decode pack: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return err
	}
	return nil
}
