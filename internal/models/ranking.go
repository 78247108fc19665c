package models

// Classification buckets the gap between estimated and market probability
type Classification string

const (
	ClassStrongUndervalued Classification = "strong_undervalued"
	ClassUndervalued       Classification = "undervalued"
	ClassFair              Classification = "fair"
	ClassOvervalued        Classification = "overvalued"
	ClassStrongOvervalued  Classification = "strong_overvalued"
	ClassUnknown           Classification = "unknown"
)

// Mark is a per-race recommendation label
type Mark string

const (
	MarkPrimary    Mark = "primary"
	MarkSecondary  Mark = "secondary"
	MarkTertiary   Mark = "tertiary"
	MarkQuaternary Mark = "quaternary"
	MarkQuinary    Mark = "quinary"
	MarkNone       Mark = ""
)

// Marks lists the assignable marks in order
var Marks = []Mark{MarkPrimary, MarkSecondary, MarkTertiary, MarkQuaternary, MarkQuinary}

// Symbol returns the card symbol used in printed output
func (m Mark) Symbol() string {
	switch m {
	case MarkPrimary:
		return "◎"
	case MarkSecondary:
		return "○"
	case MarkTertiary:
		return "▲"
	case MarkQuaternary:
		return "△"
	case MarkQuinary:
		return "☆"
	default:
		return ""
	}
}

// Tier qualifies a mark's reliability
type Tier string

const (
	TierS     Tier = "S"
	TierA     Tier = "A"
	TierB     Tier = "B"
	TierC     Tier = "C"
	TierUnset Tier = ""
)

// ScoredEntrant is an entrant after estimation and divergence evaluation
type ScoredEntrant struct {
	Features       FeatureRecord  `json:"features"`
	Probability    float64        `json:"probability"`
	Divergence     *float64       `json:"divergence"`
	Classification Classification `json:"classification"`
	CompositeScore float64        `json:"composite_score"`
}

// RankedEntrant is a scored entrant with its final label
type RankedEntrant struct {
	ScoredEntrant
	Position int  `json:"position"`
	Mark     Mark `json:"mark"`
	Tier     Tier `json:"tier"`
}
