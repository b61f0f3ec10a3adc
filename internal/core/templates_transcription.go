package core

import (
	"strings"

	"mecore/internal/dogma"
	"mecore/pkg/domain"
)

// TranscriptionData describes the synthesis of RNA products from a
// transcription unit.
type TranscriptionData struct {
	templateBase
	domain.Transcription
}

// NewTranscriptionData registers a transcription template on n.
func NewTranscriptionData(n *Network, id string, data domain.Transcription) (*TranscriptionData, error) {
	base, err := newTemplateBase(n, EntityTranscriptionData, id)
	if err != nil {
		return nil, err
	}
	t := &TranscriptionData{templateBase: base, Transcription: data.Clone()}
	if t.Modifications == nil {
		t.Modifications = make(map[string]float64)
	}
	if t.Subreactions == nil {
		t.Subreactions = make(map[string]float64)
	}
	if err := n.transcriptions.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// NucleotideCount maps each nucleoside triphosphate to its occurrences in the
// sequence.
func (t *TranscriptionData) NucleotideCount() map[string]int {
	out := make(map[string]int, len(dogma.Bases))
	for _, b := range dogma.Bases {
		ntp, _ := dogma.Triphosphate(b)
		out[ntp] = strings.Count(t.NucleotideSequence, string(b))
	}
	return out
}

// RNATypes lists the RNA type of every registered product.
func (t *TranscriptionData) RNATypes() []string {
	out := make([]string, 0, len(t.RNAProducts))
	for _, id := range t.RNAProducts {
		if sp, err := t.network.species.Get(id); err == nil {
			out = append(out, sp.RNAType)
		}
	}
	return out
}

// CodesStableRNA reports whether a registered product is a tRNA, rRNA or ncRNA.
func (t *TranscriptionData) CodesStableRNA() bool {
	for _, rt := range t.RNATypes() {
		switch rt {
		case domain.RNATypeTRNA, domain.RNATypeRRNA, domain.RNATypeNCRNA:
			return true
		}
	}
	return false
}

// ExcisedBases returns the monophosphates released by processing stable RNA
// out of the transcription unit, keyed by species id. It is empty for units
// without products or coding only mRNA.
func (t *TranscriptionData) ExcisedBases() (map[string]int, error) {
	if len(t.RNAProducts) == 0 {
		return map[string]int{}, nil
	}
	onlyMRNA := true
	for _, rt := range t.RNATypes() {
		if rt != domain.RNATypeMRNA {
			onlyMRNA = false
		}
	}
	if onlyMRNA {
		return map[string]int{}, nil
	}
	counts := make(map[byte]int, len(dogma.Bases))
	for _, b := range dogma.Bases {
		counts[b] = strings.Count(t.NucleotideSequence, string(b))
	}
	for _, id := range t.RNAProducts {
		sp, err := t.network.species.Get(id)
		if err != nil {
			return nil, err
		}
		for _, b := range dogma.Bases {
			counts[b] -= strings.Count(sp.NucleotideSequence, string(b))
		}
	}
	out := make(map[string]int, len(counts))
	for b, c := range counts {
		ntp, _ := dogma.Triphosphate(b)
		out[dogma.Monophosphate(ntp)] = c
	}
	return out, nil
}

// Mass returns the mass in kDa of the processed transcript.
func (t *TranscriptionData) Mass() (float64, error) {
	excised, err := t.ExcisedBases()
	if err != nil {
		return 0, err
	}
	return dogma.RNAMass(t.NucleotideSequence, excised), nil
}
