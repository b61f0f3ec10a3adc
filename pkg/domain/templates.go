package domain

// Attribute records for each template kind. The network core embeds these in its
// live template types; snapshots and model definitions carry them as plain data.

// Stoichiometric encodes the stoichiometry of a base metabolic conversion.
type Stoichiometric struct {
	Stoichiometry map[string]float64 `json:"stoichiometry" yaml:"stoichiometry"`
	// Subreactions rarely holds anything; it couples a second diluted enzyme.
	Subreactions map[string]float64 `json:"subreactions,omitempty" yaml:"subreactions,omitempty"`
	LowerBound   float64            `json:"lower_bound" yaml:"lower_bound"`
	UpperBound   float64            `json:"upper_bound" yaml:"upper_bound"`
}

// Modification describes a chemical modification of an RNA or protein.
type Modification struct {
	Stoichiometry map[string]float64 `json:"stoichiometry" yaml:"stoichiometry"`
	Enzyme        string             `json:"enzyme,omitempty" yaml:"enzyme,omitempty"`
	Keff          float64            `json:"keff" yaml:"keff"`
}

// Subreaction describes a discrete elongation or processing step.
type Subreaction struct {
	Stoichiometry map[string]float64 `json:"stoichiometry" yaml:"stoichiometry"`
	Enzyme        string             `json:"enzyme,omitempty" yaml:"enzyme,omitempty"`
	Keff          float64            `json:"keff" yaml:"keff"`
}

// ComplexFormation describes the assembly of subunits into an enzyme complex.
type ComplexFormation struct {
	// Stoichiometry maps subunit ids to counts.
	Stoichiometry map[string]float64 `json:"stoichiometry" yaml:"stoichiometry"`
	// Modifications maps modification template ids to counts.
	Modifications map[string]float64 `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Chaperones    map[string]float64 `json:"chaperones,omitempty" yaml:"chaperones,omitempty"`
	// ComplexAlias names the physical complex when several templates yield it.
	ComplexAlias string `json:"complex_id,omitempty" yaml:"complex_id,omitempty"`
}

// Transcription describes synthesis of RNA products from a transcription unit.
type Transcription struct {
	NucleotideSequence string             `json:"nucleotide_sequence" yaml:"nucleotide_sequence"`
	RNAProducts        []string           `json:"rna_products" yaml:"rna_products"`
	RNAPolymerase      string             `json:"rna_polymerase,omitempty" yaml:"rna_polymerase,omitempty"`
	RhoDependent       bool               `json:"rho_dependent,omitempty" yaml:"rho_dependent,omitempty"`
	Modifications      map[string]float64 `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Subreactions       map[string]float64 `json:"subreactions,omitempty" yaml:"subreactions,omitempty"`
}

// Translation describes synthesis of a protein from an mRNA.
type Translation struct {
	MRNA               string             `json:"mrna" yaml:"mrna"`
	Protein            string             `json:"protein" yaml:"protein"`
	NucleotideSequence string             `json:"nucleotide_sequence" yaml:"nucleotide_sequence"`
	ProteinPerMRNA     float64            `json:"protein_per_mrna" yaml:"protein_per_mrna"`
	Modifications      map[string]float64 `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Subreactions       map[string]float64 `json:"subreactions,omitempty" yaml:"subreactions,omitempty"`
}

// TRNACharging describes charging of a tRNA with its amino acid.
type TRNACharging struct {
	AminoAcid      string             `json:"amino_acid" yaml:"amino_acid"`
	RNA            string             `json:"rna" yaml:"rna"`
	Codon          string             `json:"codon" yaml:"codon"`
	Synthetase     string             `json:"synthetase,omitempty" yaml:"synthetase,omitempty"`
	SynthetaseKeff float64            `json:"synthetase_keff" yaml:"synthetase_keff"`
	TRNAKeff       float64            `json:"trna_keff" yaml:"trna_keff"`
	Modifications  map[string]float64 `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	// Anticodon and StartPosition drive structural annotation only.
	Anticodon     string `json:"anticodon,omitempty" yaml:"anticodon,omitempty"`
	StartPosition int    `json:"start_position,omitempty" yaml:"start_position,omitempty"`
}

// Translocase flags how a translocation enzyme couples to its substrate.
type Translocase struct {
	LengthDependent bool `json:"length_dependent" yaml:"length_dependent"`
	FixedKeff       bool `json:"fixed_keff" yaml:"fixed_keff"`
}

// Translocation describes a membrane translocation pathway.
type Translocation struct {
	Keff                  float64                `json:"keff" yaml:"keff"`
	Enzymes               map[string]Translocase `json:"enzymes,omitempty" yaml:"enzymes,omitempty"`
	LengthDependentEnergy bool                   `json:"length_dependent_energy,omitempty" yaml:"length_dependent_energy,omitempty"`
	Stoichiometry         map[string]float64     `json:"stoichiometry,omitempty" yaml:"stoichiometry,omitempty"`
}

// PostTranslation describes protein maturation after translation.
type PostTranslation struct {
	ProcessedProteinID    string             `json:"processed_protein_id" yaml:"processed_protein_id"`
	UnprocessedProteinID  string             `json:"unprocessed_protein_id" yaml:"unprocessed_protein_id"`
	Translocation         map[string]float64 `json:"translocation,omitempty" yaml:"translocation,omitempty"`
	FoldingMechanism      string             `json:"folding_mechanism,omitempty" yaml:"folding_mechanism,omitempty"`
	AggregationPropensity float64            `json:"aggregation_propensity,omitempty" yaml:"aggregation_propensity,omitempty"`
	// KeqFolding and KFolding are keyed by temperature.
	KeqFolding        map[string]float64 `json:"keq_folding,omitempty" yaml:"keq_folding,omitempty"`
	KFolding          map[string]float64 `json:"k_folding,omitempty" yaml:"k_folding,omitempty"`
	PropensityScaling float64            `json:"propensity_scaling" yaml:"propensity_scaling"`
	Modifications     map[string]float64 `json:"modifications,omitempty" yaml:"modifications,omitempty"`
	Subreactions      map[string]float64 `json:"subreactions,omitempty" yaml:"subreactions,omitempty"`
	SurfaceArea       map[string]float64 `json:"surface_area,omitempty" yaml:"surface_area,omitempty"`
}

// Generic describes a pooled species standing in for interchangeable components.
// Exactly one of Components (equal consumption) or Weights (unequal) is used;
// Weights wins when both are set.
type Generic struct {
	Components []string           `json:"components,omitempty" yaml:"components,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// Weighted reports whether the generic uses a weighted mapping.
func (g Generic) Weighted() bool { return g.Weights != nil }

func cloneCounts(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy.
func (s Stoichiometric) Clone() Stoichiometric {
	s.Stoichiometry = cloneCounts(s.Stoichiometry)
	s.Subreactions = cloneCounts(s.Subreactions)
	return s
}

// Clone returns a deep copy.
func (m Modification) Clone() Modification {
	m.Stoichiometry = cloneCounts(m.Stoichiometry)
	return m
}

// Clone returns a deep copy.
func (s Subreaction) Clone() Subreaction {
	s.Stoichiometry = cloneCounts(s.Stoichiometry)
	return s
}

// Clone returns a deep copy.
func (c ComplexFormation) Clone() ComplexFormation {
	c.Stoichiometry = cloneCounts(c.Stoichiometry)
	c.Modifications = cloneCounts(c.Modifications)
	c.Chaperones = cloneCounts(c.Chaperones)
	return c
}

// Clone returns a deep copy.
func (t Transcription) Clone() Transcription {
	t.RNAProducts = append([]string(nil), t.RNAProducts...)
	t.Modifications = cloneCounts(t.Modifications)
	t.Subreactions = cloneCounts(t.Subreactions)
	return t
}

// Clone returns a deep copy.
func (t Translation) Clone() Translation {
	t.Modifications = cloneCounts(t.Modifications)
	t.Subreactions = cloneCounts(t.Subreactions)
	return t
}

// Clone returns a deep copy.
func (t TRNACharging) Clone() TRNACharging {
	t.Modifications = cloneCounts(t.Modifications)
	return t
}

// Clone returns a deep copy.
func (t Translocation) Clone() Translocation {
	if t.Enzymes != nil {
		enzymes := make(map[string]Translocase, len(t.Enzymes))
		for k, v := range t.Enzymes {
			enzymes[k] = v
		}
		t.Enzymes = enzymes
	}
	t.Stoichiometry = cloneCounts(t.Stoichiometry)
	return t
}

// Clone returns a deep copy.
func (p PostTranslation) Clone() PostTranslation {
	p.Translocation = cloneCounts(p.Translocation)
	p.KeqFolding = cloneCounts(p.KeqFolding)
	p.KFolding = cloneCounts(p.KFolding)
	p.Modifications = cloneCounts(p.Modifications)
	p.Subreactions = cloneCounts(p.Subreactions)
	p.SurfaceArea = cloneCounts(p.SurfaceArea)
	return p
}

// Clone returns a deep copy.
func (g Generic) Clone() Generic {
	g.Components = append([]string(nil), g.Components...)
	g.Weights = cloneCounts(g.Weights)
	return g
}
