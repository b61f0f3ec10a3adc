package core

import (
	"strings"

	"mecore/internal/dogma"
	"mecore/pkg/domain"
)

// TranslationData describes the synthesis of a protein from an mRNA.
type TranslationData struct {
	templateBase
	domain.Translation
}

// NewTranslationData registers a translation template on n. ProteinPerMRNA
// defaults to 1.
func NewTranslationData(n *Network, id string, data domain.Translation) (*TranslationData, error) {
	base, err := newTemplateBase(n, EntityTranslationData, id)
	if err != nil {
		return nil, err
	}
	t := &TranslationData{templateBase: base, Translation: data.Clone()}
	if t.ProteinPerMRNA == 0 {
		t.ProteinPerMRNA = 1
	}
	if t.Modifications == nil {
		t.Modifications = make(map[string]float64)
	}
	if t.Subreactions == nil {
		t.Subreactions = make(map[string]float64)
	}
	if err := n.translations.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// FirstCodon returns the first codon in the RNA alphabet.
func (t *TranslationData) FirstCodon() string {
	return dogma.ToRNA(t.NucleotideSequence[:min(3, len(t.NucleotideSequence))])
}

// LastCodon returns the last codon in the RNA alphabet.
func (t *TranslationData) LastCodon() string {
	return dogma.ToRNA(t.NucleotideSequence[max(0, len(t.NucleotideSequence)-3):])
}

// StartsWithStartCodon reports whether the first codon is a configured start codon.
func (t *TranslationData) StartsWithStartCodon() bool {
	return t.network.globals.IsStartCodon(t.FirstCodon())
}

// AminoAcidSequence translates the nucleotide sequence. Trailing stops are
// dropped, the first residue is forced to methionine and internal stops and
// unknown codons become lysine.
func (t *TranslationData) AminoAcidSequence() string {
	seq := strings.TrimRight(dogma.Translate(t.NucleotideSequence), string(dogma.Stop))
	if seq == "" {
		return ""
	}
	if seq[0] != dogma.Initiator {
		seq = string(dogma.Initiator) + seq[1:]
	}
	return strings.ReplaceAll(seq, string(dogma.Stop), string(dogma.UnknownResidue))
}

// CodonCount counts codons in the RNA alphabet excluding the terminal stop
// codon. One occurrence of a configured start codon is removed to account for
// initiation.
func (t *TranslationData) CodonCount() map[string]int {
	seq := t.NucleotideSequence
	counts := make(map[string]int)
	for i := 0; i < len(seq)-3; i += 3 {
		counts[dogma.ToRNA(seq[i:min(i+3, len(seq))])]++
	}
	if first := t.FirstCodon(); t.StartsWithStartCodon() {
		counts[first]--
		if counts[first] == 0 {
			delete(counts, first)
		}
	}
	return counts
}

// AminoAcidCount counts residues keyed by amino-acid species id.
func (t *TranslationData) AminoAcidCount() map[string]int {
	counts := make(map[string]int)
	for _, letter := range []byte(t.AminoAcidSequence()) {
		if id, ok := dogma.AminoAcid(letter); ok {
			counts[id]++
		}
	}
	return counts
}

// Mass returns the protein mass in kDa.
func (t *TranslationData) Mass() float64 {
	residues := make(map[byte]int)
	for _, letter := range []byte(t.AminoAcidSequence()) {
		residues[letter]++
	}
	return dogma.ProteinMass(residues)
}

// ElongationSubreactions returns the registered elongation subreactions with
// their multiplicities: one "<aa>_addition_at_<codon>" per codon (UGA adds
// selenocysteine) plus the network-wide elongation steps once per peptide bond.
func (t *TranslationData) ElongationSubreactions() map[string]float64 {
	return t.registered(t.elongationDemand())
}

// StartSubreactions returns the network-wide initiation subreaction ids.
func (t *TranslationData) StartSubreactions() []string {
	return append([]string(nil), t.network.globals.TranslationStartSubreactions...)
}

// TerminationSubreactions returns the registered termination subreaction for
// the last codon, if its release factor is configured.
func (t *TranslationData) TerminationSubreactions() []string {
	var out []string
	for id := range t.registered(t.terminationDemand()) {
		out = append(out, id)
	}
	return out
}

func (t *TranslationData) elongationDemand() map[string]float64 {
	out := make(map[string]float64)
	counts := t.CodonCount()
	for _, codon := range sortedKeys(counts) {
		count := counts[codon]
		if count <= 0 {
			continue
		}
		var stem string
		if dogma.ToDNA(codon) == "TGA" {
			stem = "sec"
		} else {
			letter, ok := dogma.Codon(codon)
			if !ok || letter == dogma.Stop {
				continue
			}
			aa, _ := dogma.AminoAcid(letter)
			stem = dogma.AminoAcidStem(aa)
		}
		out[stem+"_addition_at_"+codon] += float64(count)
	}
	bonds := float64(len(t.AminoAcidSequence()) - 1)
	if bonds > 0 {
		for _, id := range t.network.globals.TranslationElongationSubreactions {
			out[id] = bonds
		}
	}
	return out
}

func (t *TranslationData) terminationDemand() map[string]float64 {
	last := t.LastCodon()
	factor, ok := t.network.globals.TranslationTerminators[last]
	if !ok {
		return nil
	}
	return map[string]float64{last + "_" + factor + "_mediated_termination": 1}
}

// subreactionDemand merges the explicit subreaction map with the derived
// initiation, elongation and termination steps. Unregistered ids are kept so
// the reaction can report them.
func (t *TranslationData) subreactionDemand() map[string]float64 {
	out := make(map[string]float64, len(t.Subreactions))
	for id, c := range t.Subreactions {
		out[id] += c
	}
	for _, id := range t.network.globals.TranslationStartSubreactions {
		out[id]++
	}
	for id, c := range t.elongationDemand() {
		out[id] += c
	}
	for id, c := range t.terminationDemand() {
		out[id] += c
	}
	return out
}

func (t *TranslationData) registered(demand map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(demand))
	for id, c := range demand {
		if t.network.subreactions.Has(id) {
			out[id] = c
		}
	}
	return out
}
