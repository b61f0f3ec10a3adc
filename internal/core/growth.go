package core

import (
	"fmt"

	"mecore/pkg/symbolic"
)

// secondsPerHour converts per-second efficiencies to the per-hour growth rate.
const secondsPerHour = 3600.0

// Warning rule names raised during recomputation.
const (
	ruleMissingMachinery    = "missing_machinery"
	ruleMissingSubreaction  = "missing_subreaction"
	ruleMissingModification = "missing_modification"
	ruleMissingGenericTRNA  = "missing_generic_trna"
	ruleMissingTransport    = "missing_translocation"
	ruleMissingTranscript   = "missing_transcript"
	ruleStartCodon          = "start_codon"
	ruleUnknownNucleotide   = "unknown_nucleotide"
	ruleProteinLength       = "protein_length"
	ruleTRNAStructure       = "trna_structure"
	ruleGenericPrefix       = "generic_id_prefix"
	ruleStaleGeneric        = "stale_generic_formation"
)

// dilution is the growth-coupled demand μ/keff/3600 for one unit of catalyst.
func dilution(keff float64) Expr {
	return symbolic.Mu().Scale(1 / keff / secondsPerHour)
}

// elongationDemand is length·μ/k/3600 for an elongation rate
// k = μ·kmax/(μ+κ), which reduces to length·(μ+κ)/kmax/3600.
func elongationDemand(length, kmax, kappa float64) Expr {
	return symbolic.Poly(kappa, 1).Scale(length / kmax / secondsPerHour)
}

func (n *Network) keff(k float64) float64 {
	if k <= 0 {
		return n.globals.DefaultKeff
	}
	return k
}

func (n *Network) ribosomeDemand(length int) Expr {
	return elongationDemand(float64(length), n.globals.RibosomeKmax, n.globals.RibosomeKappa)
}

func (n *Network) polymeraseDemand(length int) Expr {
	g := n.globals
	return elongationDemand(float64(length), g.RibosomeKmax*g.PolymeraseRateFactor, g.RibosomeKappa)
}

// addCatalyst consumes demand of a catalytic species, or warns and omits the
// term when the species is not registered.
func (n *Network) addCatalyst(acc accumulator, reactionID, speciesID string, demand Expr) {
	if speciesID == "" {
		return
	}
	if !n.species.Has(speciesID) {
		n.warn(ruleMissingMachinery, EntityReaction, reactionID, "%s not found, coupling omitted", speciesID)
		return
	}
	acc.add(speciesID, demand.Neg())
}

// addCounts adds scale × coefficient for every species of stoichiometry. Every
// species must already be registered.
func (n *Network) addCounts(acc accumulator, stoichiometry map[string]float64, scale float64) error {
	for _, id := range sortedKeys(stoichiometry) {
		if !n.species.Has(id) {
			return ErrNotFound{Entity: EntitySpecies, ID: id}
		}
		acc.addConst(id, stoichiometry[id]*scale)
	}
	return nil
}

// addSubreactions applies every referenced subreaction: its stoichiometry times
// the multiplicity plus its enzyme coupled at count·μ/keff/3600. Unregistered
// subreactions are warned about and skipped.
func (n *Network) addSubreactions(acc accumulator, reactionID string, counts map[string]float64) error {
	for _, id := range sortedKeys(counts) {
		count := counts[id]
		sub, err := n.subreactions.Get(id)
		if err != nil {
			n.warn(ruleMissingSubreaction, EntityReaction, reactionID, "subreaction %s not in network", id)
			continue
		}
		if err := n.addCounts(acc, sub.Stoichiometry, count); err != nil {
			return fmt.Errorf("subreaction %s: %w", id, err)
		}
		n.addCatalyst(acc, reactionID, sub.Enzyme, dilution(n.keff(sub.Keff)).Scale(count))
	}
	return nil
}

// addModifications mirrors addSubreactions for modification templates.
func (n *Network) addModifications(acc accumulator, reactionID string, counts map[string]float64) error {
	for _, id := range sortedKeys(counts) {
		count := counts[id]
		mod, err := n.modifications.Get(id)
		if err != nil {
			n.warn(ruleMissingModification, EntityReaction, reactionID, "modification %s not in network", id)
			continue
		}
		if err := n.addCounts(acc, mod.Stoichiometry, count); err != nil {
			return fmt.Errorf("modification %s: %w", id, err)
		}
		n.addCatalyst(acc, reactionID, mod.Enzyme, dilution(n.keff(mod.Keff)).Scale(count))
	}
	return nil
}
