package model

// Quest is a quest definition from the quest catalog.
// Prerequisite is empty when the quest has none.
type Quest struct {
	ID            string
	Title         string
	Description   string
	RewardXP      int
	RewardGold    int
	RequiredLevel int
	Prerequisite  string
}

// HasPrerequisite reports whether another quest must be completed first.
func (q Quest) HasPrerequisite() bool {
	return q.Prerequisite != ""
}
