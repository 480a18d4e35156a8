package recipe

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const defaultImageMIMEType = "image/jpeg"

// Generator is the inference backend: a prompt, optionally with one image, in;
// text out.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Pipeline turns ingredients or a food photo into a Result.
type Pipeline struct {
	generator Generator
	logger    *zap.Logger
}

// NewPipeline creates a Pipeline around an already constructed generator.
func NewPipeline(generator Generator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{generator: generator, logger: logger}
}

// FromIngredients generates a recipe from a caller supplied ingredient list.
func (p *Pipeline) FromIngredients(ctx context.Context, ingredients []string, lang string) (*Result, error) {
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	lang = resultLanguage(lang)

	prompt := Prompt(IntentRecipeFromIngredients, lang, strings.Join(ingredients, ", "))
	p.logger.Info("generating recipe from ingredients",
		zap.Int("ingredients", len(ingredients)), zap.String("language", lang))

	text, err := p.generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}
	return &Result{Language: lang, Recipe: text}, nil
}

// FromImage analyses a food photo, then generates a recipe from the detected
// ingredients. The second call is only made once the analysis has succeeded.
func (p *Pipeline) FromImage(ctx context.Context, img Image, lang string) (*Result, error) {
	if len(img.Data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageAnalysis)
	}
	if img.MIMEType == "" {
		img.MIMEType = defaultImageMIMEType
	}
	lang = resultLanguage(lang)

	p.logger.Info("analysing food image",
		zap.Int("bytes", len(img.Data)), zap.String("mime_type", img.MIMEType), zap.String("language", lang))

	raw, err := p.generate(ctx, Request{Prompt: Prompt(IntentNutritionFromImage, lang, ""), Image: &img})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageAnalysis, err)
	}

	nutrition, err := ExtractNutrition(raw)
	if err != nil {
		p.logger.Warn("could not parse nutrition payload", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrImageAnalysis, err)
	}
	if len(nutrition.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrImageAnalysis, ErrNoFoodDetected)
	}

	ingredients := strings.Join(nutrition.Ingredients, ", ")
	p.logger.Info("generating recipe from detected ingredients", zap.String("ingredients", ingredients))

	text, err := p.generate(ctx, Request{Prompt: Prompt(IntentRecipeFromDetectedIngredients, lang, ingredients)})
	if err != nil {
		return nil, err
	}
	return &Result{Language: lang, Recipe: text, Nutrition: nutrition}, nil
}

func (p *Pipeline) generate(ctx context.Context, req Request) (string, error) {
	text, err := p.generator.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInferenceFailure, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrInferenceFailure)
	}
	return text, nil
}

func resultLanguage(lang string) string {
	if lang = strings.TrimSpace(lang); lang == "" {
		return DefaultLanguage
	}
	return lang
}
