package document

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipegen/internal/recipe"
)

var fixedNow = time.Date(2024, 3, 9, 18, 30, 5, 0, time.UTC)

const threeSections = `## Egg Toast
A quick breakfast.

## Ingredients
- 2 eggs
* 1 slice **bread**

## Instructions
1. Toast the bread.
2. Fry the eggs.
`

func TestBuild_HeadingSections(t *testing.T) {
	doc, err := Build(Data{Recipe: threeSections, Language: "en"}, fixedNow)
	require.NoError(t, err)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, []string{"Egg Toast", "Ingredients", "Instructions"},
		[]string{doc.Sections[0].Title, doc.Sections[1].Title, doc.Sections[2].Title})
	assert.Equal(t, "A quick breakfast.", doc.Sections[0].Body)
	assert.Equal(t, "• 2 eggs\n• 1 slice bread", doc.Sections[1].Body)
	assert.Equal(t, "1. Toast the bread.\n2. Fry the eggs.", doc.Sections[2].Body)

	assert.Equal(t, DefaultTitle, doc.Title)
	assert.Equal(t, "Generated on 2024-03-09 18:30:05", doc.Footer)
	assert.Regexp(t, `^Generated on \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, doc.Footer)
	assert.False(t, doc.RTL)
}

func TestParseSections_Preamble(t *testing.T) {
	sections := ParseSections("Here is your recipe!\n\n# **Pancakes** #\nFluffy.\n### Time\n20 minutes")
	require.Len(t, sections, 3)
	assert.Equal(t, Section{Title: "", Body: "Here is your recipe!"}, sections[0])
	assert.Equal(t, Section{Title: "Pancakes", Body: "Fluffy."}, sections[1])
	assert.Equal(t, Section{Title: "Time", Body: "20 minutes"}, sections[2])
}

func TestParseSections_EmptyHeadingBody(t *testing.T) {
	sections := ParseSections("## Title\n## Description\nTasty")
	require.Len(t, sections, 2)
	assert.Equal(t, "", sections[0].Body)
	assert.Equal(t, "Tasty", sections[1].Body)
}

func TestParseSections_ColonFallback(t *testing.T) {
	text := "Title: Rice Bowl\n\nIngredients: rice, soy sauce\n- rice\n\nJust enjoy it.\n\nServe warm\nwith tea: optional"
	sections := ParseSections(text)
	require.Len(t, sections, 4)
	assert.Equal(t, Section{Title: "Title", Body: "Rice Bowl"}, sections[0])
	assert.Equal(t, Section{Title: "Ingredients", Body: "rice, soy sauce\n• rice"}, sections[1])
	assert.Equal(t, Section{Body: "Just enjoy it."}, sections[2])
	assert.Equal(t, Section{Body: "Serve warm\nwith tea: optional"}, sections[3])
}

func TestParseSections_HashtagIsNotHeading(t *testing.T) {
	sections := ParseSections("#yummy\n\nTips: eat fast")
	require.Len(t, sections, 2)
	assert.Equal(t, Section{Body: "#yummy"}, sections[0])
	assert.Equal(t, Section{Title: "Tips", Body: "eat fast"}, sections[1])
}

func TestBuild_TitleAndNutrition(t *testing.T) {
	doc, err := Build(Data{
		Recipe: "## Rice\nBoil it.",
		Title:  "  My Rice  ",
		Nutrition: &recipe.NutritionRecord{
			Ingredients: []string{"rice"},
			Foods: []recipe.FoodItem{
				{Name: "Rice", Quantity: "1 cup", Calories: 200, Protein: 4, Carbs: 45, Fat: 0.4, Healthy: true, Reason: "plain"},
			},
			OverallAssessment: "ok",
		},
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "My Rice", doc.Title)
	require.Len(t, doc.Sections, 2)
	n := doc.Sections[1]
	assert.Equal(t, "Nutrition Analysis", n.Title)
	assert.Contains(t, n.Body, "• Rice (1 cup): 200 kcal, protein 4g, carbs 45g, fat 0.4g")
	assert.Contains(t, n.Body, "healthy: plain")
	assert.Contains(t, n.Body, "Overall: ok")
}

func TestBuild_EmptyRecipe(t *testing.T) {
	_, err := Build(Data{Recipe: " \n "}, fixedNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRenderFailure))
}

func TestBuild_RTL(t *testing.T) {
	ar, err := Build(Data{Recipe: "## وصفة\nأرز", Language: "ar"}, fixedNow)
	require.NoError(t, err)
	assert.True(t, ar.RTL)

	en, err := Build(Data{Recipe: "## Recipe\nRice", Language: "en"}, fixedNow)
	require.NoError(t, err)
	assert.False(t, en.RTL)
}

func TestIsRTL(t *testing.T) {
	for _, lang := range []string{"ar", "he", "fa", "ur", "ar-EG"} {
		assert.True(t, IsRTL(lang), lang)
	}
	for _, lang := range []string{"", "en", "es", "hi", "ja", "zh", "bogus tag"} {
		assert.False(t, IsRTL(lang), lang)
	}
}

func TestFromResult(t *testing.T) {
	n := &recipe.NutritionRecord{Ingredients: []string{"rice"}}
	d := FromResult(&recipe.Result{Language: "es", Recipe: "## Arroz", Nutrition: n})
	assert.Equal(t, Data{Recipe: "## Arroz", Language: "es", Nutrition: n}, d)
}
