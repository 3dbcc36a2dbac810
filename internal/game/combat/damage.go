package combat

// MinDamage is the floor for every basic attack. It guarantees that each
// attack lowers the defender's health, so a battle always terminates.
const MinDamage = 1

// Probabilities for rolls made against the injected Rand.
const (
	CriticalChance = 0.5 // Rogue Critical Strike
	EscapeChance   = 0.5
)

// ClericHealAmount is the most HP a Cleric heal restores.
const ClericHealAmount = 30

// Rand is the randomness source for critical strikes and escape attempts.
// *math/rand/v2.Rand satisfies it; tests inject fixed rolls.
type Rand interface {
	Float64() float64
}

// CalcDamage calculates basic attack damage:
//
//	max(attackerStrength - defenderStrength/4, 1)
//
// Division rounds down; strengths are never negative.
func CalcDamage(attackerStrength, defenderStrength int) int {
	return max(attackerStrength-defenderStrength/4, MinDamage)
}

// roll reports whether a roll from rng lands under chance.
func roll(rng Rand, chance float64) bool {
	return rng.Float64() < chance
}
