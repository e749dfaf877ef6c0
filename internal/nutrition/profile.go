// Package nutrition holds the pure nutrient arithmetic and BMI rules used by the API.
// Nothing in here performs I/O or keeps state, so every function is safe to call
// from concurrent request handlers.
package nutrition

// Profile is the nutrient content of a food, meal item, meal or day.
// Calories, Protein, Carbs and Fat are always tracked; the remaining fields are
// optional on input and decode to zero when absent.
type Profile struct {
	Calories float64 `json:"calories" example:"250"`
	Protein  float64 `json:"protein" example:"12"`
	Carbs    float64 `json:"carbs" example:"30"`
	Fat      float64 `json:"fat" example:"8"`
	Fiber    float64 `json:"fiber" example:"3"`
	Sugar    float64 `json:"sugar" example:"5"`
	Sodium   float64 `json:"sodium" example:"120"`
	Calcium  float64 `json:"calcium" example:"40"`
	Iron     float64 `json:"iron" example:"1.2"`
	VitaminA float64 `json:"vitaminA" example:"90"`
	VitaminC float64 `json:"vitaminC" example:"15"`
	VitaminD float64 `json:"vitaminD" example:"0"`
}

// fields returns pointers to every nutrient in a fixed order.
func (p *Profile) fields() [12]*float64 {
	return [12]*float64{
		&p.Calories, &p.Protein, &p.Carbs, &p.Fat,
		&p.Fiber, &p.Sugar, &p.Sodium, &p.Calcium,
		&p.Iron, &p.VitaminA, &p.VitaminC, &p.VitaminD,
	}
}

var fieldNames = [12]string{
	"calories", "protein", "carbs", "fat",
	"fiber", "sugar", "sodium", "calcium",
	"iron", "vitaminA", "vitaminC", "vitaminD",
}

// Validate reports ErrInvalidInput when any nutrient is negative or not finite.
func (p Profile) Validate() error {
	for i, f := range p.fields() {
		if !finite(*f) || *f < 0 {
			return invalid("%s must be a non-negative number", fieldNames[i])
		}
	}
	return nil
}

// Scale multiplies every nutrient by factor.
func (p Profile) Scale(factor float64) Profile {
	out := p
	for _, f := range out.fields() {
		*f *= factor
	}
	return out
}

// Add returns the element-wise sum of p and q.
func (p Profile) Add(q Profile) Profile {
	out := p
	src := q.fields()
	for i, f := range out.fields() {
		*f += *src[i]
	}
	return out
}

// Macros returns the four tracked macro fields.
func (p Profile) Macros() Macros {
	return Macros{Calories: p.Calories, Protein: p.Protein, Carbs: p.Carbs, Fat: p.Fat}
}

// SumProfiles adds profiles element-wise. An empty call yields the zero profile.
func SumProfiles(profiles ...Profile) Profile {
	var total Profile
	for _, p := range profiles {
		total = total.Add(p)
	}
	return total
}

// CheckedSum is SumProfiles that fails with ErrInvalidInput when a total overflows.
func CheckedSum(profiles ...Profile) (Profile, error) {
	total := SumProfiles(profiles...)
	if err := total.Validate(); err != nil {
		return Profile{}, invalid("total overflows: %v", err)
	}
	return total, nil
}

// FoodReference is one catalog food as seen by a computation: identity, name,
// serving description and the nutrients of exactly one serving.
type FoodReference struct {
	ID          uint
	Name        string
	ServingSize float64
	ServingUnit string
	Nutrition   Profile
}

// Item is a scaled meal item. FoodName is a snapshot taken at logging time.
type Item struct {
	FoodID    uint    `json:"foodId"`
	FoodName  string  `json:"foodName"`
	Quantity  float64 `json:"quantity"`
	Nutrition Profile `json:"nutrition"`
}

// ScaleItem computes the contribution of quantity servings of food.
func ScaleItem(food FoodReference, quantity float64) (Item, error) {
	if !finite(quantity) || quantity <= 0 {
		return Item{}, invalid("quantity must be a positive number, got %v", quantity)
	}
	if err := food.Nutrition.Validate(); err != nil {
		return Item{}, err
	}
	scaled := food.Nutrition.Scale(quantity)
	if err := scaled.Validate(); err != nil {
		return Item{}, invalid("%v servings of food %d overflow: %v", quantity, food.ID, err)
	}
	return Item{
		FoodID:    food.ID,
		FoodName:  food.Name,
		Quantity:  quantity,
		Nutrition: scaled,
	}, nil
}

// ItemsTotal sums the nutrition of items.
func ItemsTotal(items []Item) Profile {
	var total Profile
	for _, it := range items {
		total = total.Add(it.Nutrition)
	}
	return total
}

// CheckedItemsTotal is ItemsTotal that fails with ErrInvalidInput when a total overflows.
func CheckedItemsTotal(items []Item) (Profile, error) {
	total := ItemsTotal(items)
	if err := total.Validate(); err != nil {
		return Profile{}, invalid("meal total overflows: %v", err)
	}
	return total, nil
}
