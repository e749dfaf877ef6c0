package nutrition

// BMI categories.
const (
	Underweight  = "Underweight"
	NormalWeight = "Normal weight"
	Overweight   = "Overweight"
	Obese        = "Obese"
)

const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

var recommendations = map[string][]string{
	Underweight: {
		"Increase calorie intake with nutrient-dense foods",
		"Include more protein-rich foods in your diet",
		"Eat frequent, smaller meals throughout the day",
		"Consider strength training to build muscle mass",
		"Consult with a nutritionist for a personalized meal plan",
	},
	NormalWeight: {
		"Maintain your current healthy lifestyle",
		"Continue balanced diet with variety of nutrients",
		"Stay physically active with regular exercise",
		"Monitor your weight periodically",
		"Focus on overall wellness and stress management",
	},
	Overweight: {
		"Reduce calorie intake by 300-500 calories per day",
		"Increase physical activity to 150+ minutes per week",
		"Focus on whole foods and reduce processed foods",
		"Practice portion control",
		"Consider consulting a healthcare provider for guidance",
	},
	Obese: {
		"Consult with a healthcare provider for a comprehensive plan",
		"Create a sustainable calorie deficit (500-750 cal/day)",
		"Start with low-impact exercises like walking or swimming",
		"Work with a registered dietitian",
		"Focus on long-term lifestyle changes, not quick fixes",
		"Consider joining a support group",
	},
}

// WeightRange is a body weight interval in kilograms.
type WeightRange struct {
	Min float64 `json:"min" example:"53.5"`
	Max float64 `json:"max" example:"72"`
}

// BMIResult is the outcome of EvaluateBMI.
type BMIResult struct {
	BMI                float64     `json:"bmi" example:"24.2"`
	Category           string      `json:"category" example:"Normal weight"`
	HealthyWeightRange WeightRange `json:"healthyWeightRange"`
	Recommendations    []string    `json:"recommendations"`
}

// EvaluateBMI computes BMI from height in centimetres and weight in kilograms.
// BMI and the healthy range are rounded half away from zero to one decimal,
// and the category is taken from the rounded value.
func EvaluateBMI(heightCm, weightKg float64) (BMIResult, error) {
	if !finite(heightCm) || heightCm <= 0 {
		return BMIResult{}, invalid("height must be a positive number, got %v", heightCm)
	}
	if !finite(weightKg) || weightKg <= 0 {
		return BMIResult{}, invalid("weight must be a positive number, got %v", weightKg)
	}

	h := heightCm / 100
	bmi := round1(weightKg / (h * h))
	if !finite(bmi) {
		return BMIResult{}, invalid("height %v cm and weight %v kg give no finite BMI", heightCm, weightKg)
	}
	healthy := WeightRange{
		Min: round1(healthyBMIMin * h * h),
		Max: round1(healthyBMIMax * h * h),
	}
	if !finite(healthy.Max) || healthy.Min >= healthy.Max {
		return BMIResult{}, invalid("height %v cm is out of range", heightCm)
	}
	category := BMICategory(bmi)

	recs := make([]string, len(recommendations[category]))
	copy(recs, recommendations[category])

	return BMIResult{
		BMI:                bmi,
		Category:           category,
		HealthyWeightRange: healthy,
		Recommendations:    recs,
	}, nil
}

// BMICategory maps a BMI value to its band. Lower bounds are inclusive.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return NormalWeight
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

const (
	cmPerInch = 2.54
	kgToLb    = 2.2046226218
)

// ImperialToMetric converts inches and pounds to centimetres and kilograms.
func ImperialToMetric(heightIn, weightLb float64) (heightCm, weightKg float64) {
	return heightIn * cmPerInch, weightLb / kgToLb
}
