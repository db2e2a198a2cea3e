package contracts

// Profile is an investor risk profile
type Profile string

const (
	ProfileConservative Profile = "conservador"
	ProfileModerate     Profile = "moderado"
	ProfileAggressive   Profile = "arrojado"
)

// Recommendations holds the three ranked lists produced by the engine.
// Entries point at the input records; they are never copies.
// ⭐ SSOT: Engine → Renderer 추천 결과 전달
type Recommendations struct {
	Conservative []*FundRecord `json:"conservative"`
	Moderate     []*FundRecord `json:"moderate"`
	Aggressive   []*FundRecord `json:"aggressive"`
}

// ByProfile returns the list for a profile, nil for unknown profiles
func (r *Recommendations) ByProfile(p Profile) []*FundRecord {
	switch p {
	case ProfileConservative:
		return r.Conservative
	case ProfileModerate:
		return r.Moderate
	case ProfileAggressive:
		return r.Aggressive
	default:
		return nil
	}
}

// Profiles returns the profiles in display order
func Profiles() []Profile {
	return []Profile{ProfileConservative, ProfileModerate, ProfileAggressive}
}
