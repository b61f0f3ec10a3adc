package core

import (
	"strings"

	"mecore/internal/dogma"
	"mecore/pkg/domain"
)

// TRNAData describes the charging of a tRNA with its amino acid.
type TRNAData struct {
	templateBase
	domain.TRNACharging
}

// NewTRNAData registers a tRNA charging template on n.
func NewTRNAData(n *Network, id string, data domain.TRNACharging) (*TRNAData, error) {
	base, err := newTemplateBase(n, EntityTRNAData, id)
	if err != nil {
		return nil, err
	}
	t := &TRNAData{templateBase: base, TRNACharging: data.Clone()}
	if t.Modifications == nil {
		t.Modifications = make(map[string]float64)
	}
	if err := n.trnas.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// GenericTRNAID names the pooled tRNA charged with the template's amino acid.
func (t *TRNAData) GenericTRNAID() string { return genericTRNAID(t.AminoAcid) }

func genericTRNAID(aminoAcid string) string { return "generic_tRNA_" + aminoAcid }

// Structure slices the RNA sequence into cloverleaf regions for annotation.
// Structural anomalies are raised as warnings; a missing RNA species is an error.
func (t *TRNAData) Structure() (dogma.TRNAStructure, error) {
	sp, err := t.network.species.Get(t.RNA)
	if err != nil {
		return dogma.TRNAStructure{}, err
	}
	seq := sp.NucleotideSequence
	if t.StartPosition == 1 {
		seq = "_" + seq
	}
	s, anomalies := dogma.AnnotateTRNA(seq, t.Anticodon, strings.Contains(t.AminoAcid, "lys"))
	for _, msg := range anomalies {
		t.network.warn(ruleTRNAStructure, EntityTRNAData, t.id, "%s", msg)
	}
	return s, nil
}
