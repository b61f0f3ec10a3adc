package core

import (
	"fmt"

	"mecore/internal/dogma"
	"mecore/pkg/domain"
	"mecore/pkg/symbolic"
)

// pyrophosphateID is released once per phosphodiester bond.
const pyrophosphateID = "ppi_c"

// translationEnergy is the per-residue cost of peptide bond formation, tRNA
// charging and ribosome translocation.
var translationEnergy = map[string]float64{
	"h2o_c": -4,
	"h_c":   4,
	"pi_c":  4,
	"gtp_c": -2,
	"gdp_c": 2,
	"atp_c": -2,
	"adp_c": 2,
}

// TranscriptionReaction transcribes a transcription unit into its RNA products.
type TranscriptionReaction struct {
	reactionBase
	transcriptionID string
}

// NewTranscriptionReaction registers an empty transcription reaction on n.
func NewTranscriptionReaction(n *Network, id string) (*TranscriptionReaction, error) {
	base, err := newReactionBase(n, domain.ReactionTranscription, id)
	if err != nil {
		return nil, err
	}
	r := &TranscriptionReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTranscriptionData binds the transcription template.
func (r *TranscriptionReaction) SetTranscriptionData(id string) error {
	return r.bind(&r.transcriptionID, EntityTranscriptionData, id)
}

// TranscriptionDataID returns the bound template id.
func (r *TranscriptionReaction) TranscriptionDataID() string { return r.transcriptionID }

func (r *TranscriptionReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityTranscriptionData, ID: r.transcriptionID})
}

// Update rebuilds the stoichiometry: RNA products, nucleotide consumption,
// pyrophosphate release and the polymerase coupling.
func (r *TranscriptionReaction) Update() error {
	n := r.network
	if r.transcriptionID == "" {
		return fmt.Errorf("transcription reaction %s: no transcription data bound", r.id)
	}
	data, err := n.transcriptions.Get(r.transcriptionID)
	if err != nil {
		return err
	}
	seq := data.NucleotideSequence
	acc := accumulator{}

	polymerase := data.RNAPolymerase
	if polymerase == "" {
		polymerase = n.globals.RNAPolymeraseID
	}
	n.addCatalyst(acc, r.id, polymerase, n.polymeraseDemand(len(seq)))

	for _, id := range data.RNAProducts {
		n.species.GetOrCreate(id, SpeciesTranscribedGene)
		acc.addConst(id, 1)
	}

	consumed := make(map[string]float64, len(dogma.Bases))
	unknown := 0
	for i := 0; i < len(seq); i++ {
		ntp, ok := dogma.Triphosphate(seq[i])
		if !ok {
			unknown++
			continue
		}
		consumed[ntp]--
	}
	if unknown > 0 {
		n.warn(ruleUnknownNucleotide, EntityTranscriptionData, data.id, "%d unrecognised bases skipped", unknown)
	}
	if err := n.addCounts(acc, consumed, 1); err != nil {
		return fmt.Errorf("transcription reaction %s: %w", r.id, err)
	}
	if len(seq) > 0 {
		if err := n.addCounts(acc, map[string]float64{pyrophosphateID: float64(len(seq) - 1)}, 1); err != nil {
			return fmt.Errorf("transcription reaction %s: %w", r.id, err)
		}
	}

	if err := n.addModifications(acc, r.id, data.Modifications); err != nil {
		return fmt.Errorf("transcription reaction %s: %w", r.id, err)
	}
	if err := n.addSubreactions(acc, r.id, data.Subreactions); err != nil {
		return fmt.Errorf("transcription reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *TranscriptionReaction) Record() ReactionRecord { return r.record(r.Templates()) }

// TranslationReaction translates an mRNA into its protein.
type TranslationReaction struct {
	reactionBase
	translationID string
}

// NewTranslationReaction registers an empty translation reaction on n.
func NewTranslationReaction(n *Network, id string) (*TranslationReaction, error) {
	base, err := newReactionBase(n, domain.ReactionTranslation, id)
	if err != nil {
		return nil, err
	}
	r := &TranslationReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTranslationData binds the translation template.
func (r *TranslationReaction) SetTranslationData(id string) error {
	return r.bind(&r.translationID, EntityTranslationData, id)
}

// TranslationDataID returns the bound template id.
func (r *TranslationReaction) TranslationDataID() string { return r.translationID }

func (r *TranslationReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityTranslationData, ID: r.translationID})
}

// Update rebuilds the stoichiometry: ribosome coupling, mRNA dilution, amino
// acids with their generic tRNAs, energy cost and the translation subreactions.
func (r *TranslationReaction) Update() error {
	n := r.network
	if r.translationID == "" {
		return fmt.Errorf("translation reaction %s: no translation data bound", r.id)
	}
	data, err := n.translations.Get(r.translationID)
	if err != nil {
		return err
	}
	if data.ProteinPerMRNA <= 0 {
		return fmt.Errorf("translation reaction %s: protein per mRNA must be positive, got %g", r.id, data.ProteinPerMRNA)
	}
	if data.NucleotideSequence != "" && !data.StartsWithStartCodon() {
		n.warn(ruleStartCodon, EntityTranslationData, data.id, "%s starts with %q which is not a start codon", data.MRNA, data.FirstCodon())
	}
	aa := data.AminoAcidSequence()
	length := len(aa)
	acc := accumulator{}

	n.addCatalyst(acc, r.id, n.globals.RibosomeID, n.ribosomeDemand(length))

	if !n.species.Has(data.MRNA) {
		n.warn(ruleMissingTranscript, EntityReaction, r.id, "transcript %s not found", data.MRNA)
		n.species.GetOrCreate(data.MRNA, SpeciesTranscribedGene)
	}
	acc.addConst(data.MRNA, -1/data.ProteinPerMRNA)
	n.species.GetOrCreate(data.Protein, SpeciesTranslatedGene)
	acc.addConst(data.Protein, 1)

	counts := data.AminoAcidCount()
	for _, id := range sortedKeys(counts) {
		count := float64(counts[id])
		if !n.species.Has(id) {
			return fmt.Errorf("translation reaction %s: %w", r.id, ErrNotFound{Entity: EntitySpecies, ID: id})
		}
		acc.addConst(id, -count)
		trna := genericTRNAID(id)
		if !n.species.Has(trna) {
			n.warn(ruleMissingGenericTRNA, EntityReaction, r.id, "tRNA for %s not found", id)
			continue
		}
		acc.addConst(trna, -count)
	}
	if length > 0 {
		if err := n.addCounts(acc, translationEnergy, float64(length)); err != nil {
			return fmt.Errorf("translation reaction %s: %w", r.id, err)
		}
	}

	if err := n.addSubreactions(acc, r.id, data.subreactionDemand()); err != nil {
		return fmt.Errorf("translation reaction %s: %w", r.id, err)
	}
	if err := n.addModifications(acc, r.id, data.Modifications); err != nil {
		return fmt.Errorf("translation reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *TranslationReaction) Record() ReactionRecord { return r.record(r.Templates()) }

// TRNAChargingReaction produces one generic tRNA of an amino acid from a
// concrete tRNA, the amino acid and its synthetase.
type TRNAChargingReaction struct {
	reactionBase
	trnaID string
}

// NewTRNAChargingReaction registers an empty charging reaction on n.
func NewTRNAChargingReaction(n *Network, id string) (*TRNAChargingReaction, error) {
	base, err := newReactionBase(n, domain.ReactionTRNACharging, id)
	if err != nil {
		return nil, err
	}
	r := &TRNAChargingReaction{reactionBase: base}
	if err := n.addReaction(r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTRNAData binds the tRNA template.
func (r *TRNAChargingReaction) SetTRNAData(id string) error {
	return r.bind(&r.trnaID, EntityTRNAData, id)
}

// TRNADataID returns the bound template id.
func (r *TRNAChargingReaction) TRNADataID() string { return r.trnaID }

func (r *TRNAChargingReaction) Templates() []TemplateRef {
	return refs(TemplateRef{Kind: EntityTRNAData, ID: r.trnaID})
}

// Update rebuilds the stoichiometry. The tRNA and amino acid are consumed at
// a = μ/keff_tRNA/3600 and the synthetase at μ/keff_syn/3600·(1+a), which is
// second order in μ.
func (r *TRNAChargingReaction) Update() error {
	n := r.network
	if r.trnaID == "" {
		return fmt.Errorf("tRNA charging reaction %s: no tRNA data bound", r.id)
	}
	data, err := n.trnas.Get(r.trnaID)
	if err != nil {
		return err
	}
	acc := accumulator{}
	generic := data.GenericTRNAID()
	n.species.GetOrCreate(generic, SpeciesGeneric)
	acc.addConst(generic, 1)

	amount := dilution(n.keff(data.TRNAKeff))
	for _, id := range []string{data.RNA, data.AminoAcid} {
		if !n.species.Has(id) {
			return fmt.Errorf("tRNA charging reaction %s: %w", r.id, ErrNotFound{Entity: EntitySpecies, ID: id})
		}
		acc.add(id, amount.Neg())
	}

	if data.Synthetase == "" {
		n.warn(ruleMissingMachinery, EntityReaction, r.id, "no synthetase configured for %s", data.id)
	} else {
		synthetase := data.Synthetase
		if cd, err := n.complexes.Get(synthetase); err == nil {
			synthetase = cd.ComplexID()
		}
		demand := dilution(n.keff(data.SynthetaseKeff)).Mul(symbolic.Const(1).Add(amount))
		n.addCatalyst(acc, r.id, synthetase, demand)
	}

	if err := n.addModifications(acc, r.id, data.Modifications); err != nil {
		return fmt.Errorf("tRNA charging reaction %s: %w", r.id, err)
	}
	r.replace(acc)
	return nil
}

func (r *TRNAChargingReaction) Record() ReactionRecord { return r.record(r.Templates()) }
