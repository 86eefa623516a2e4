package dataset

// Food classifications derived from the food name at storage time.
const (
	ClassificationFruit        = "fruit"
	ClassificationVegetable    = "vegetable"
	ClassificationUnclassified = "unclassified"
)

// foodClassifications is the static classification table for known foods.
var foodClassifications = map[string]string{
	"orange":     ClassificationFruit,
	"beetroot":   ClassificationVegetable,
	"strawberry": ClassificationFruit,
	"cucumber":   ClassificationVegetable,
	"celery":     ClassificationVegetable,
	"banana":     ClassificationFruit,
	"carrot":     ClassificationVegetable,
	"apple":      ClassificationFruit,
}

// ClassifyFood returns the classification for a food name.
// Foods outside the static table are unclassified.
func ClassifyFood(name string) string {
	if c, ok := foodClassifications[name]; ok {
		return c
	}
	return ClassificationUnclassified
}
