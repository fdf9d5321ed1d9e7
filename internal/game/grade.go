package game

type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

type gradeStep struct {
	Ratio float64 // minimum score / target
	Grade Grade
}

// Highest first, the first step reached wins
var gradeSteps = [...]gradeStep{
	{Ratio: 1.5, Grade: GradeS},
	{Ratio: 1.2, Grade: GradeA},
	{Ratio: 1.0, Grade: GradeB},
	{Ratio: 0.7, Grade: GradeC},
}

func GradeFor(score, target int) Grade {
	if target <= 0 {
		return GradeS
	}
	ratio := float64(score) / float64(target)
	for _, step := range gradeSteps {
		if ratio >= step.Ratio {
			return step.Grade
		}
	}
	return GradeD
}
