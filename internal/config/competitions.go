package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// CompetitionEntry is one row of the declarative competitions manifest.
// Disabled entries stay in the file so past ingests remain documented.
type CompetitionEntry struct {
	CompetitionID int64  `koanf:"competition_id" validate:"required,gt=0"`
	SeasonID      int64  `koanf:"season_id" validate:"required,gt=0"`
	Name          string `koanf:"name"`
	Enabled       bool   `koanf:"enabled"`
}

type Manifest struct {
	Competitions []CompetitionEntry `koanf:"competitions" validate:"required,dive"`
}

// LoadManifest reads the competitions YAML manifest from path.
func LoadManifest(path string) (Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Manifest{}, fmt.Errorf("load competitions manifest %s: %w", path, err)
	}

	var manifest Manifest
	if err := k.UnmarshalWithConf("", &manifest, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal competitions manifest: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(manifest); err != nil {
		return Manifest{}, fmt.Errorf("validate competitions manifest: %w", err)
	}

	seen := make(map[[2]int64]bool, len(manifest.Competitions))
	for _, entry := range manifest.Competitions {
		key := [2]int64{entry.CompetitionID, entry.SeasonID}
		if seen[key] {
			return Manifest{}, fmt.Errorf("duplicate manifest entry competition_id=%d season_id=%d", entry.CompetitionID, entry.SeasonID)
		}
		seen[key] = true
	}

	return manifest, nil
}

// Enabled returns the entries the pipeline should process, in file order.
func (m Manifest) Enabled() []CompetitionEntry {
	out := make([]CompetitionEntry, 0, len(m.Competitions))
	for _, entry := range m.Competitions {
		if entry.Enabled {
			out = append(out, entry)
		}
	}
	return out
}
