package session

// Pillar names the four Ikigai categories
type Pillar string

const (
	PillarLove       Pillar = "love"
	PillarSkills     Pillar = "skills"
	PillarWorldNeeds Pillar = "worldNeeds"
	PillarPaidFor    Pillar = "paidFor"
)

// Pillars lists the four categories in display order
var Pillars = []Pillar{PillarLove, PillarSkills, PillarWorldNeeds, PillarPaidFor}

// Answers holds the free-text responses for the four Ikigai pillars
type Answers struct {
	Love       []string `json:"love"`
	Skills     []string `json:"skills"`
	WorldNeeds []string `json:"worldNeeds"`
	PaidFor    []string `json:"paidFor"`
}

// PartialAnswers carries a partial update. A nil category means "leave as is";
// a non-nil category replaces the whole list, even when empty.
type PartialAnswers struct {
	Love       []string `json:"love"`
	Skills     []string `json:"skills"`
	WorldNeeds []string `json:"worldNeeds"`
	PaidFor    []string `json:"paidFor"`
}

// EmptyAnswers returns an Answers value with all four pillars empty
func EmptyAnswers() Answers {
	return Answers{
		Love:       []string{},
		Skills:     []string{},
		WorldNeeds: []string{},
		PaidFor:    []string{},
	}
}

// clone returns a deep copy, so holders of the copy cannot reach the
// original's backing arrays
func (a Answers) clone() Answers {
	return Answers{
		Love:       cloneList(a.Love),
		Skills:     cloneList(a.Skills),
		WorldNeeds: cloneList(a.WorldNeeds),
		PaidFor:    cloneList(a.PaidFor),
	}
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// IsComplete reports whether every pillar has at least one entry.
// This predicate, not a stored flag, decides questionnaire completion.
func (a Answers) IsComplete() bool {
	return len(a.Love) > 0 &&
		len(a.Skills) > 0 &&
		len(a.WorldNeeds) > 0 &&
		len(a.PaidFor) > 0
}

// TotalAnswers returns the number of entries across all pillars
func (a Answers) TotalAnswers() int {
	return len(a.Love) + len(a.Skills) + len(a.WorldNeeds) + len(a.PaidFor)
}

// ByPillar returns the entries for one pillar
func (a Answers) ByPillar(p Pillar) []string {
	switch p {
	case PillarLove:
		return a.Love
	case PillarSkills:
		return a.Skills
	case PillarWorldNeeds:
		return a.WorldNeeds
	case PillarPaidFor:
		return a.PaidFor
	}
	return nil
}

// Merge returns a new Answers where each pillar present in the partial
// replaces the existing list wholesale. The receiver is never mutated.
func (a Answers) Merge(partial PartialAnswers) Answers {
	merged := Answers{
		Love:       a.Love,
		Skills:     a.Skills,
		WorldNeeds: a.WorldNeeds,
		PaidFor:    a.PaidFor,
	}
	if partial.Love != nil {
		merged.Love = partial.Love
	}
	if partial.Skills != nil {
		merged.Skills = partial.Skills
	}
	if partial.WorldNeeds != nil {
		merged.WorldNeeds = partial.WorldNeeds
	}
	if partial.PaidFor != nil {
		merged.PaidFor = partial.PaidFor
	}
	return merged
}
