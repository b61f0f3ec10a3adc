package dogma

import (
	"fmt"
	"strings"
)

// anticodonSearchFrom is the first sequence index scanned for the anticodon.
const anticodonSearchFrom = 33

// TRNAStructure holds the positional slices of a tRNA sequence in the
// conventional cloverleaf numbering. Gaps in the D-loop are padded with 'x'.
type TRNAStructure struct {
	Positions0To16  string `json:"positions_0_16"`
	DLoop17To20     string `json:"d_loop_17_20"`
	Positions21To45 string `json:"positions_21_45"`
	VLoop46To47     string `json:"v_loop_46_47"`
	Positions48To76 string `json:"positions_48_76"`
}

// AnnotateTRNA slices seq around the anticodon. Lysine tRNAs carry a one base
// shift at the anticodon. Structural anomalies are returned as messages and
// leave the affected slices empty; they never abort annotation.
func AnnotateTRNA(seq, anticodon string, lysine bool) (TRNAStructure, []string) {
	var s TRNAStructure
	var anomalies []string
	if len(seq) < 29 || len(seq) <= anticodonSearchFrom {
		return s, []string{fmt.Sprintf("sequence of length %d too short to annotate", len(seq))}
	}
	s.Positions0To16 = seq[:17]
	s.Positions48To76 = seq[len(seq)-29:]

	idx := -1
	if anticodon != "" {
		idx = strings.Index(seq[anticodonSearchFrom:], anticodon)
	}
	if idx < 0 {
		return s, append(anomalies, fmt.Sprintf("anticodon %q not found after position %d", anticodon, anticodonSearchFrom))
	}
	codonStart := idx + anticodonSearchFrom
	if lysine {
		codonStart++
	}
	regionStart, regionEnd := codonStart-13, codonStart+3+9
	if regionStart < 0 || regionEnd > len(seq) {
		return s, append(anomalies, "conserved region 21-45 out of range")
	}
	s.Positions21To45 = seq[regionStart:regionEnd]

	_, afterHead, _ := strings.Cut(seq, s.Positions0To16)
	dLoop, _, _ := strings.Cut(afterHead, s.Positions21To45)
	if before, after, ok := strings.Cut(dLoop, "GG"); !ok {
		anomalies = append(anomalies, "no GG sequence in D-loop")
	} else {
		// 17 and 17a precede the GG pair, 20 to 20b follow it.
		var b strings.Builder
		switch len(before) {
		case 0:
			b.WriteString("xx")
		case 1:
			b.WriteString(before + "x")
		default:
			b.WriteString(before)
		}
		b.WriteString("GG")
		if next := strings.Index(after, "GG"); next >= 0 {
			after = after[:next]
		}
		switch len(after) {
		case 0:
			anomalies = append(anomalies, "position 20 must exist")
		case 1:
			b.WriteString(after + "xx")
		case 2:
			b.WriteString(after + "x")
		case 3:
			b.WriteString(after)
		default:
			anomalies = append(anomalies, "too many bases at positions 20, 20a, 20b")
		}
		s.DLoop17To20 = b.String()
	}

	body, _, _ := strings.Cut(seq, s.Positions48To76)
	if _, vLoop, ok := strings.Cut(body, s.Positions21To45); ok {
		s.VLoop46To47 = vLoop
	} else {
		anomalies = append(anomalies, "variable loop not delimited by conserved regions")
	}
	return s, anomalies
}
