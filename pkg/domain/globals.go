package domain

// Default catalytic and elongation constants.
const (
	// DefaultKeff is the catalytic efficiency, per second, used when a template does not override it.
	DefaultKeff = 65.0
	// DefaultRibosomeKmax and DefaultRibosomeKappa parameterize the ribosome
	// elongation rate k = mu*kmax/(mu+kappa).
	DefaultRibosomeKmax  = 22.7
	DefaultRibosomeKappa = 0.391
	// DefaultPolymeraseRateFactor scales the RNA polymerase rate relative to the ribosome.
	DefaultPolymeraseRateFactor = 3.0
)

// GlobalInfo is the bag of network-wide parameters consulted by several template kinds.
type GlobalInfo struct {
	// MetStartCodons lists start codons (RNA alphabet) that initiate with methionine.
	MetStartCodons                    []string          `json:"met_start_codons" yaml:"met_start_codons" validate:"dive,len=3"`
	TranslationElongationSubreactions []string          `json:"translation_elongation_subreactions,omitempty" yaml:"translation_elongation_subreactions,omitempty"`
	TranslationStartSubreactions      []string          `json:"translation_start_subreactions,omitempty" yaml:"translation_start_subreactions,omitempty"`
	TranslationTerminators            map[string]string `json:"translation_terminators,omitempty" yaml:"translation_terminators,omitempty" validate:"dive,keys,len=3,endkeys,required"`
	RibosomeID                        string            `json:"ribosome_id" yaml:"ribosome_id" validate:"required"`
	RNAPolymeraseID                   string            `json:"rna_polymerase_id" yaml:"rna_polymerase_id" validate:"required"`
	DefaultKeff                       float64           `json:"default_keff" yaml:"default_keff" validate:"gt=0"`
	RibosomeKmax                      float64           `json:"ribosome_kmax" yaml:"ribosome_kmax" validate:"gt=0"`
	RibosomeKappa                     float64           `json:"ribosome_kappa" yaml:"ribosome_kappa" validate:"gt=0"`
	PolymeraseRateFactor              float64           `json:"polymerase_rate_factor" yaml:"polymerase_rate_factor" validate:"gt=0"`
}

// DefaultGlobalInfo returns the parameters used by E. coli style models.
func DefaultGlobalInfo() GlobalInfo {
	return GlobalInfo{
		MetStartCodons:       []string{"AUG", "GUG", "UUG", "AUU", "CUG"},
		RibosomeID:           "ribosome",
		RNAPolymeraseID:      "RNA_Polymerase",
		DefaultKeff:          DefaultKeff,
		RibosomeKmax:         DefaultRibosomeKmax,
		RibosomeKappa:        DefaultRibosomeKappa,
		PolymeraseRateFactor: DefaultPolymeraseRateFactor,
	}
}

// WithDefaults fills zero-valued scalars from DefaultGlobalInfo. Zero is never
// a usable rate parameter, so it always selects the default.
func (g GlobalInfo) WithDefaults() GlobalInfo {
	def := DefaultGlobalInfo()
	if g.MetStartCodons == nil {
		g.MetStartCodons = def.MetStartCodons
	}
	if g.RibosomeID == "" {
		g.RibosomeID = def.RibosomeID
	}
	if g.RNAPolymeraseID == "" {
		g.RNAPolymeraseID = def.RNAPolymeraseID
	}
	if g.DefaultKeff == 0 {
		g.DefaultKeff = def.DefaultKeff
	}
	if g.RibosomeKmax == 0 {
		g.RibosomeKmax = def.RibosomeKmax
	}
	if g.RibosomeKappa == 0 {
		g.RibosomeKappa = def.RibosomeKappa
	}
	if g.PolymeraseRateFactor == 0 {
		g.PolymeraseRateFactor = def.PolymeraseRateFactor
	}
	return g
}

// IsStartCodon reports whether codon (RNA alphabet) is a configured start codon.
func (g GlobalInfo) IsStartCodon(codon string) bool {
	for _, c := range g.MetStartCodons {
		if c == codon {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (g GlobalInfo) Clone() GlobalInfo {
	cp := g
	cp.MetStartCodons = append([]string(nil), g.MetStartCodons...)
	cp.TranslationElongationSubreactions = append([]string(nil), g.TranslationElongationSubreactions...)
	cp.TranslationStartSubreactions = append([]string(nil), g.TranslationStartSubreactions...)
	if g.TranslationTerminators != nil {
		cp.TranslationTerminators = make(map[string]string, len(g.TranslationTerminators))
		for k, v := range g.TranslationTerminators {
			cp.TranslationTerminators[k] = v
		}
	}
	return cp
}
