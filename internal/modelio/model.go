// Package modelio reads YAML network definitions and assembles them into a
// core network.
package modelio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"mecore/internal/core"
	"mecore/pkg/domain"
)

// Entry is a template definition: an id plus the template attributes inline.
type Entry[T any] struct {
	ID   string `yaml:"id" validate:"required"`
	Data T      `yaml:",inline"`
}

// MetabolicDef binds a metabolic reaction to its stoichiometry and enzyme.
type MetabolicDef struct {
	ID                 string  `yaml:"id" validate:"required"`
	StoichiometricData string  `yaml:"stoichiometric_data" validate:"required"`
	ComplexData        string  `yaml:"complex_data,omitempty"`
	Keff               float64 `yaml:"keff,omitempty" validate:"gte=0"`
	Reverse            bool    `yaml:"reverse,omitempty"`
}

// TemplateReactionDef binds a single-template reaction.
type TemplateReactionDef struct {
	ID       string `yaml:"id" validate:"required"`
	Template string `yaml:"template" validate:"required"`
}

// Reactions groups reaction definitions by kind.
type Reactions struct {
	Metabolic       []MetabolicDef        `yaml:"metabolic,omitempty" validate:"dive"`
	Transcription   []TemplateReactionDef `yaml:"transcription,omitempty" validate:"dive"`
	Translation     []TemplateReactionDef `yaml:"translation,omitempty" validate:"dive"`
	TRNACharging    []TemplateReactionDef `yaml:"trna_charging,omitempty" validate:"dive"`
	PostTranslation []TemplateReactionDef `yaml:"posttranslation,omitempty" validate:"dive"`
}

// Model is a complete network definition. Complex formation reactions are
// created for every id in ComplexFormations and formation reactions for every
// generic.
type Model struct {
	Globals           domain.GlobalInfo                `yaml:"globals"`
	Species           []domain.Species                 `yaml:"species" validate:"dive"`
	Stoichiometric    []Entry[domain.Stoichiometric]   `yaml:"stoichiometric_data,omitempty" validate:"dive"`
	Modifications     []Entry[domain.Modification]     `yaml:"modification_data,omitempty" validate:"dive"`
	Subreactions      []Entry[domain.Subreaction]      `yaml:"subreaction_data,omitempty" validate:"dive"`
	Complexes         []Entry[domain.ComplexFormation] `yaml:"complex_data,omitempty" validate:"dive"`
	Transcriptions    []Entry[domain.Transcription]    `yaml:"transcription_data,omitempty" validate:"dive"`
	Translations      []Entry[domain.Translation]      `yaml:"translation_data,omitempty" validate:"dive"`
	TRNAs             []Entry[domain.TRNACharging]     `yaml:"trna_data,omitempty" validate:"dive"`
	Translocations    []Entry[domain.Translocation]    `yaml:"translocation_data,omitempty" validate:"dive"`
	PostTranslations  []Entry[domain.PostTranslation]  `yaml:"posttranslation_data,omitempty" validate:"dive"`
	Generics          []Entry[domain.Generic]          `yaml:"generic_data,omitempty" validate:"dive"`
	ComplexFormations []string                         `yaml:"complex_formations,omitempty"`
	Reactions         Reactions                        `yaml:"reactions"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode parses a model and validates it. Unknown fields are rejected and
// zero global parameters take their defaults before validation.
func Decode(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode model: empty document")
		}
		return nil, fmt.Errorf("decode model: %w", err)
	}
	m.Globals = m.Globals.WithDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile decodes the model stored at path.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks field constraints and reference integrity between
// reaction definitions and templates.
func (m *Model) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}
	known := func(items map[string]bool, kind domain.EntityType, id, reaction string) error {
		if !items[id] {
			return fmt.Errorf("invalid model: reaction %s references unknown %s %q", reaction, kind, id)
		}
		return nil
	}
	complexes := ids(m.Complexes)
	stoich := ids(m.Stoichiometric)
	for _, id := range m.ComplexFormations {
		if !complexes[id] {
			return fmt.Errorf("invalid model: complex formation for unknown complex %q", id)
		}
	}
	for _, def := range m.Reactions.Metabolic {
		if err := known(stoich, domain.EntityStoichiometricData, def.StoichiometricData, def.ID); err != nil {
			return err
		}
		if def.ComplexData != "" {
			if err := known(complexes, domain.EntityComplexData, def.ComplexData, def.ID); err != nil {
				return err
			}
		}
	}
	checks := []struct {
		kind  domain.EntityType
		defs  []TemplateReactionDef
		known map[string]bool
	}{
		{domain.EntityTranscriptionData, m.Reactions.Transcription, ids(m.Transcriptions)},
		{domain.EntityTranslationData, m.Reactions.Translation, ids(m.Translations)},
		{domain.EntityTRNAData, m.Reactions.TRNACharging, ids(m.TRNAs)},
		{domain.EntityPostTranslation, m.Reactions.PostTranslation, ids(m.PostTranslations)},
	}
	for _, c := range checks {
		for _, def := range c.defs {
			if err := known(c.known, c.kind, def.Template, def.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func ids[T any](entries []Entry[T]) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		out[e.ID] = true
	}
	return out
}

// Build assembles the model onto n: species, templates, derived formation
// reactions and the declared reactions, then recomputes every reaction.
func (m *Model) Build(n *core.Network) error {
	n.SetGlobals(m.Globals)
	for _, sp := range m.Species {
		if err := n.AddSpecies(sp); err != nil {
			return err
		}
	}
	steps := []func() error{
		func() error { return addTemplates(n, m.Stoichiometric, core.NewStoichiometricData) },
		func() error { return addTemplates(n, m.Modifications, core.NewModificationData) },
		func() error { return addTemplates(n, m.Subreactions, core.NewSubreactionData) },
		func() error { return addTemplates(n, m.Complexes, core.NewComplexData) },
		func() error { return addTemplates(n, m.Transcriptions, core.NewTranscriptionData) },
		func() error { return addTemplates(n, m.Translations, core.NewTranslationData) },
		func() error { return addTemplates(n, m.TRNAs, core.NewTRNAData) },
		func() error { return addTemplates(n, m.Translocations, core.NewTranslocationData) },
		func() error { return addTemplates(n, m.PostTranslations, core.NewPostTranslationData) },
		func() error { return addTemplates(n, m.Generics, core.NewGenericData) },
		func() error { return m.addDerivedReactions(n) },
		func() error { return m.addReactions(n) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return n.RecomputeAll()
}

// NewNetwork builds the model onto a fresh network.
func (m *Model) NewNetwork(opts ...core.NetworkOption) (*core.Network, error) {
	n := core.NewNetwork(m.Globals, opts...)
	if err := m.Build(n); err != nil {
		return nil, err
	}
	return n, nil
}

func addTemplates[D, T any](n *core.Network, entries []Entry[D], add func(*core.Network, string, D) (T, error)) error {
	for _, e := range entries {
		if _, err := add(n, e.ID, e.Data); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) addDerivedReactions(n *core.Network) error {
	for _, id := range m.ComplexFormations {
		cd, err := n.ComplexData().Get(id)
		if err != nil {
			return err
		}
		if _, err := cd.CreateComplexFormation(); err != nil {
			return err
		}
	}
	for _, g := range n.GenericData().List() {
		if _, err := g.CreateReactions(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) addReactions(n *core.Network) error {
	for _, def := range m.Reactions.Metabolic {
		r, err := core.NewMetabolicReaction(n, def.ID)
		if err != nil {
			return err
		}
		if def.Keff > 0 {
			r.Keff = def.Keff
		}
		r.Reverse = def.Reverse
		if err := r.SetStoichiometricData(def.StoichiometricData); err != nil {
			return err
		}
		if def.ComplexData != "" {
			if err := r.SetComplexData(def.ComplexData); err != nil {
				return err
			}
		}
	}
	for _, def := range m.Reactions.Transcription {
		r, err := core.NewTranscriptionReaction(n, def.ID)
		if err != nil {
			return err
		}
		if err := r.SetTranscriptionData(def.Template); err != nil {
			return err
		}
	}
	for _, def := range m.Reactions.Translation {
		r, err := core.NewTranslationReaction(n, def.ID)
		if err != nil {
			return err
		}
		if err := r.SetTranslationData(def.Template); err != nil {
			return err
		}
	}
	for _, def := range m.Reactions.TRNACharging {
		r, err := core.NewTRNAChargingReaction(n, def.ID)
		if err != nil {
			return err
		}
		if err := r.SetTRNAData(def.Template); err != nil {
			return err
		}
	}
	for _, def := range m.Reactions.PostTranslation {
		r, err := core.NewPostTranslationReaction(n, def.ID)
		if err != nil {
			return err
		}
		if err := r.SetPostTranslationData(def.Template); err != nil {
			return err
		}
	}
	return nil
}
