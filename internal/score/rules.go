package score

type Rules struct {
	JudgmentRange float64 // Pixels either side of the line a tap can hit
	MissThreshold float64 // Pixels past the line before a note expires

	ExpiryPenalty int
	TapPenalty    int

	StarPoints  int
	HeartPoints int

	ComboThreshold  int     // Combo, counting the current hit, that enables the multiplier
	ComboMultiplier float64 // Applied to the base points, floored

	// Bonus paid when a color combo reaches exactly this many hits
	ColorMilestones map[int]int

	TargetScore int
}

func DefaultRules() Rules {
	return Rules{
		JudgmentRange:   120,
		MissThreshold:   50,
		ExpiryPenalty:   50,
		TapPenalty:      20,
		StarPoints:      100,
		HeartPoints:     150,
		ComboThreshold:  5,
		ComboMultiplier: 1.5,
		ColorMilestones: map[int]int{3: 100, 5: 300},
		TargetScore:     1000,
	}
}
