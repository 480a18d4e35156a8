package recipe

import (
	"strings"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Language  string           `json:"language"`
	Recipe    string           `json:"recipe"`
	Nutrition *NutritionRecord `json:"nutrition,omitempty"`
}

// NutritionRecord is the structured payload returned by the image analysis step.
type NutritionRecord struct {
	Ingredients       []string   `json:"ingredients"`
	Foods             []FoodItem `json:"foods"`
	OverallAssessment string     `json:"overallAssessment"`
}

// FoodItem holds the nutrient breakdown for a single detected food.
type FoodItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Healthy  bool    `json:"isHealthy"`
	Reason   string  `json:"reason"`
}

// Image is a binary attachment sent alongside a prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is one call to the inference backend.
type Request struct {
	Prompt string
	Image  *Image
}

// ParseIngredients splits a free-text ingredient list on commas, semicolons
// and newlines, dropping blank entries.
func ParseIngredients(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	ingredients := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			ingredients = append(ingredients, f)
		}
	}
	return ingredients
}
