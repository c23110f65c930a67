package vcf

// GraphOptions controls which derived fields are folded into a graph ID.
// One value is used for every record of a run.
type GraphOptions struct {
	UseType   bool // append "_<type>"
	UseStrand bool // append "_<strands>"
}
