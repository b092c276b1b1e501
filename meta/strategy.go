package meta

// Strategy represents how an Engine decides acceptance.
//
// The matrix walk always has the final say. A prefilter can only reject
// early, so both strategies accept exactly the same inputs.
type Strategy int

const (
	// UseMatrix walks the transition matrices for every input.
	// Selected when:
	//   - EnablePrefilter is false in config
	//   - The language has more than MaxLiterals words
	UseMatrix Strategy = iota

	// UsePrefilterMatrix checks length, affix and containment conditions
	// derived from the enumerated language before walking the matrices.
	UsePrefilterMatrix
)

// String returns a human-readable representation of the Strategy
func (s Strategy) String() string {
	switch s {
	case UseMatrix:
		return "UseMatrix"
	case UsePrefilterMatrix:
		return "UsePrefilterMatrix"
	default:
		return "Unknown"
	}
}
