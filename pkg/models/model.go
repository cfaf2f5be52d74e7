package models

// ModelTier selects the model capability level for a stage.
type ModelTier string

const (
	// TierHaiku is the lightweight, fast model for simple stages.
	TierHaiku ModelTier = "haiku"
	// TierSonnet is the balanced model for standard work.
	TierSonnet ModelTier = "sonnet"
	// TierOpus is the most capable model for complex stages.
	TierOpus ModelTier = "opus"
)

// Valid returns true if the tier is a known value.
func (t ModelTier) Valid() bool {
	switch t {
	case TierHaiku, TierSonnet, TierOpus:
		return true
	default:
		return false
	}
}
