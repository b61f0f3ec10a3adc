package dogma

// Average residue masses in Dalton, i.e. free molecule minus one water.
var aminoAcidResidueMass = map[byte]float64{
	'A': 71.0788, 'R': 156.1875, 'N': 114.1038, 'D': 115.0886,
	'C': 103.1388, 'E': 129.1155, 'Q': 128.1307, 'G': 57.0519,
	'H': 137.1411, 'I': 113.1594, 'L': 113.1594, 'K': 128.1741,
	'M': 131.1926, 'F': 147.1766, 'P': 97.1167, 'S': 87.0782,
	'T': 101.1051, 'W': 186.2132, 'Y': 163.1760, 'V': 99.1326,
}

// Nucleotide monophosphate residue masses in Dalton keyed by DNA base.
var nucleotideResidueMass = map[byte]float64{
	'A': 329.2059,
	'T': 306.1660,
	'G': 345.2053,
	'C': 305.1812,
}

var monophosphateMass = map[string]float64{
	"amp_c": nucleotideResidueMass['A'],
	"ump_c": nucleotideResidueMass['T'],
	"gmp_c": nucleotideResidueMass['G'],
	"cmp_c": nucleotideResidueMass['C'],
}

// WaterMass is the mass of one water molecule in Dalton.
const WaterMass = 18.01528

// ProteinMass returns the mass in kDa of a protein with the given residue
// letter counts. Unknown letters contribute nothing.
func ProteinMass(residues map[byte]int) float64 {
	var total float64
	n := 0
	for aa, count := range residues {
		if m, ok := aminoAcidResidueMass[aa]; ok {
			total += m * float64(count)
			n += count
		}
	}
	if n == 0 {
		return 0
	}
	return (total + WaterMass) / 1000
}

// RNAMass returns the mass in kDa of the RNA transcribed from a DNA sequence
// after removing excised monophosphates (keyed by species id, e.g. "amp_c").
func RNAMass(seq string, excised map[string]int) float64 {
	var total float64
	n := 0
	for i := 0; i < len(seq); i++ {
		if m, ok := nucleotideResidueMass[seq[i]]; ok {
			total += m
			n++
		}
	}
	for id, count := range excised {
		total -= monophosphateMass[id] * float64(count)
		n -= count
	}
	if n <= 0 {
		return 0
	}
	return (total + WaterMass) / 1000
}
