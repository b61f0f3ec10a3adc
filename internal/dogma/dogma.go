// Package dogma holds the genetic code, nucleotide and amino-acid species
// mappings and residue masses used when expanding sequences into
// stoichiometry.
package dogma

import "strings"

// Stop is the amino-acid letter assigned to stop codons.
const Stop = '*'

// UnknownResidue is substituted for codons missing from the table and for
// internal stop codons.
const UnknownResidue = 'K'

// Initiator is the residue every protein is forced to start with.
const Initiator = 'M'

var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

var aminoAcids = map[byte]string{
	'A': "ala__L_c", 'R': "arg__L_c", 'N': "asn__L_c", 'D': "asp__L_c",
	'C': "cys__L_c", 'E': "glu__L_c", 'Q': "gln__L_c", 'G': "gly_c",
	'H': "his__L_c", 'I': "ile__L_c", 'L': "leu__L_c", 'K': "lys__L_c",
	'M': "met__L_c", 'F': "phe__L_c", 'P': "pro__L_c", 'S': "ser__L_c",
	'T': "thr__L_c", 'W': "trp__L_c", 'Y': "tyr__L_c", 'V': "val__L_c",
}

var transcriptionTable = map[byte]string{
	'A': "atp_c",
	'T': "utp_c",
	'G': "gtp_c",
	'C': "ctp_c",
}

// Bases lists the DNA alphabet in the order used for composition reports.
var Bases = []byte{'A', 'T', 'G', 'C'}

// Codon returns the amino-acid letter for a DNA or RNA codon. The second
// result is false for codons outside the standard table.
func Codon(codon string) (byte, bool) {
	aa, ok := codonTable[ToDNA(codon)]
	return aa, ok
}

// AminoAcid returns the species id of an amino-acid letter.
func AminoAcid(letter byte) (string, bool) {
	id, ok := aminoAcids[letter]
	return id, ok
}

// AminoAcidStem strips compartment and stereochemistry from an amino-acid
// species id, e.g. "met__L_c" becomes "met".
func AminoAcidStem(id string) string {
	stem, _, _ := strings.Cut(id, "_")
	return stem
}

// Triphosphate returns the nucleoside triphosphate consumed for a DNA base.
func Triphosphate(base byte) (string, bool) {
	id, ok := transcriptionTable[base]
	return id, ok
}

// Monophosphate maps a triphosphate id such as "atp_c" to "amp_c".
func Monophosphate(triphosphate string) string {
	return strings.Replace(triphosphate, "tp_c", "mp_c", 1)
}

// ToRNA rewrites thymine as uracil.
func ToRNA(seq string) string { return strings.ReplaceAll(seq, "T", "U") }

// ToDNA rewrites uracil as thymine.
func ToDNA(seq string) string { return strings.ReplaceAll(seq, "U", "T") }

// Codons splits seq into consecutive triplets. A trailing partial codon is kept.
func Codons(seq string) []string {
	out := make([]string, 0, (len(seq)+2)/3)
	for i := 0; i < len(seq); i += 3 {
		end := min(i+3, len(seq))
		out = append(out, seq[i:end])
	}
	return out
}

// Translate maps every codon of seq to its amino-acid letter. Unknown codons
// become UnknownResidue; stop codons are kept as Stop.
func Translate(seq string) string {
	var b strings.Builder
	b.Grow(len(seq) / 3)
	for _, codon := range Codons(seq) {
		aa, ok := codonTable[ToDNA(codon)]
		if !ok {
			aa = UnknownResidue
		}
		b.WriteByte(aa)
	}
	return b.String()
}
