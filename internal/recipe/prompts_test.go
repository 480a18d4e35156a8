package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrompt_AllLanguagesInterpolateIngredients(t *testing.T) {
	for _, lang := range SupportedLanguages() {
		for _, intent := range []Intent{IntentRecipeFromIngredients, IntentRecipeFromDetectedIngredients} {
			p := Prompt(intent, lang, "egg, bread")
			assert.NotEmpty(t, p, "%s/%s", intent, lang)
			assert.Contains(t, p, "egg, bread", "%s/%s", intent, lang)
			assert.NotContains(t, p, ingredientsPlaceholder, "%s/%s", intent, lang)
			assert.Contains(t, p, "##", "%s/%s", intent, lang)
		}
	}
}

func TestPrompt_NutritionDemandsSchema(t *testing.T) {
	for _, lang := range SupportedLanguages() {
		p := Prompt(IntentNutritionFromImage, lang, "")
		assert.Contains(t, p, `"overallAssessment"`, lang)
		assert.Contains(t, p, `"ingredients"`, lang)
		assert.Contains(t, p, "ONLY one JSON object", lang)
	}
}

func TestPrompt_FallsBackToDefaultLanguage(t *testing.T) {
	want := Prompt(IntentRecipeFromIngredients, DefaultLanguage, "rice")

	assert.Equal(t, want, Prompt(IntentRecipeFromIngredients, "xx", "rice"))
	assert.Equal(t, want, Prompt(IntentRecipeFromIngredients, "", "rice"))
	assert.Equal(t, want, Prompt(IntentRecipeFromIngredients, "not a tag!", "rice"))
}

func TestPrompt_RegionalTagUsesBaseLanguage(t *testing.T) {
	assert.Equal(t,
		Prompt(IntentRecipeFromIngredients, "es", "huevo"),
		Prompt(IntentRecipeFromIngredients, "es-MX", "huevo"))
	assert.Equal(t,
		Prompt(IntentRecipeFromIngredients, "fr", "oeuf"),
		Prompt(IntentRecipeFromIngredients, " FR ", "oeuf"))
}

func TestPrompt_UnknownIntent(t *testing.T) {
	assert.Empty(t, Prompt(Intent(42), "en", "rice"))
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.Len(t, langs, 13)
	assert.Contains(t, langs, "ar")
	assert.Contains(t, langs, "mr")
	for intent, templates := range catalog {
		assert.Len(t, templates, len(langs), intent.String())
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"en":      "en",
		"es-MX":   "es",
		"zh-Hant": "zh",
		" AR ":    "ar",
		"":        "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLanguage(in), in)
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("mr"))
	assert.True(t, IsSupported("pt-BR"))
	assert.False(t, IsSupported("sw"))
	assert.False(t, IsSupported(""))
	assert.False(t, IsSupported("../../etc"))
}
