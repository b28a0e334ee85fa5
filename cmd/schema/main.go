// Command schema emits JSON Schemas for the tuning documents, so editors
// can validate physics.json and entities.json while designers tune them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/seojinpark/blade/internal/infrastructure/config"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "", "directory to write the schemas")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "-out is required")
		os.Exit(1)
	}

	schemas := []struct {
		file        string
		title       string
		description string
		value       interface{}
	}{
		{
			file:        "physics.schema.json",
			title:       "Blade Physics Tuning",
			description: "Validates physics.json: display, movement, jump, dash, wall, combat, and feedback settings",
			value:       new(config.PhysicsConfig),
		},
		{
			file:        "entities.schema.json",
			title:       "Blade Entity Definitions",
			description: "Validates entities.json: the player definition and the enemy kind table",
			value:       new(config.EntitiesConfig),
		},
	}

	for _, s := range schemas {
		path := filepath.Join(outDir, s.file)
		if err := writeSchema(path, buildSchema(s.value, s.title, s.description)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", s.file, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func buildSchema(value interface{}, title, description string) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(value)
	schema.Title = title
	schema.Description = description
	return schema
}

// writeSchema replaces the target atomically so a watching editor never
// sees a half-written document.
func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
