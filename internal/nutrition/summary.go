package nutrition

import (
	"fmt"
	"math"
)

// Macros is the tracked subset of a profile used for daily goals.
type Macros struct {
	Calories float64 `json:"calories" example:"2000"`
	Protein  float64 `json:"protein" example:"50"`
	Carbs    float64 `json:"carbs" example:"250"`
	Fat      float64 `json:"fat" example:"70"`
}

// Percentages holds consumed/goal ratios as whole percents. Values above 100
// mean the goal was exceeded.
type Percentages struct {
	Calories int `json:"calories" example:"90"`
	Protein  int `json:"protein" example:"80"`
	Carbs    int `json:"carbs" example:"80"`
	Fat      int `json:"fat" example:"86"`
}

// Summary compares a day's consumption to the user's goals.
type Summary struct {
	Consumed    Macros      `json:"consumed"`
	Goals       Macros      `json:"goals"`
	Remaining   Macros      `json:"remaining"`
	Percentages Percentages `json:"percentages"`
}

// ComputeSummary derives remaining amounts and goal percentages.
// Remaining is clamped at zero; overshoot only shows in Percentages.
// A zero goal field fails with ErrGoalZero instead of dividing by zero.
func ComputeSummary(consumed, goal Macros) (Summary, error) {
	c := [4]float64{consumed.Calories, consumed.Protein, consumed.Carbs, consumed.Fat}
	g := [4]float64{goal.Calories, goal.Protein, goal.Carbs, goal.Fat}

	var remaining [4]float64
	var pct [4]int
	for i := range c {
		name := fieldNames[i]
		if !finite(c[i]) || c[i] < 0 {
			return Summary{}, invalid("consumed %s must be a non-negative number", name)
		}
		if !finite(g[i]) || g[i] < 0 {
			return Summary{}, invalid("goal %s must be a non-negative number", name)
		}
		if g[i] == 0 {
			return Summary{}, fmt.Errorf("%w: %s", ErrGoalZero, name)
		}
		ratio := math.Round(c[i] / g[i] * 100)
		if !finite(ratio) || ratio >= math.MaxInt32 {
			return Summary{}, invalid("%s percentage is out of range", name)
		}
		remaining[i] = math.Max(0, g[i]-c[i])
		pct[i] = int(ratio)
	}

	return Summary{
		Consumed:    consumed,
		Goals:       goal,
		Remaining:   Macros{Calories: remaining[0], Protein: remaining[1], Carbs: remaining[2], Fat: remaining[3]},
		Percentages: Percentages{Calories: pct[0], Protein: pct[1], Carbs: pct[2], Fat: pct[3]},
	}, nil
}
