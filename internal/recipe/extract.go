package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	jsonFence = "```json"
	fence     = "```"
)

// ExtractPayload isolates the structured part of raw model output. A block
// fenced as json wins over a generic fenced block; with no fences the whole
// text is used.
func ExtractPayload(raw string) string {
	if i := strings.Index(raw, jsonFence); i >= 0 {
		return between(raw[i+len(jsonFence):])
	}
	if i := strings.Index(raw, fence); i >= 0 {
		return between(raw[i+len(fence):])
	}
	return strings.TrimSpace(raw)
}

// between returns the text up to the next closing fence, or all of it when
// the fence was never closed.
func between(rest string) string {
	if j := strings.Index(rest, fence); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// ExtractNutrition recovers a NutritionRecord from raw model output.
func ExtractNutrition(raw string) (*NutritionRecord, error) {
	payload := ExtractPayload(raw)
	if payload == "" {
		return nil, &MalformedResponseError{Payload: raw, Err: fmt.Errorf("empty payload")}
	}

	var rec NutritionRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, &MalformedResponseError{Payload: payload, Err: err}
	}
	if err := rec.validate(); err != nil {
		return nil, &MalformedResponseError{Payload: payload, Err: err}
	}
	rec.Ingredients = compact(rec.Ingredients)
	return &rec, nil
}

func (r *NutritionRecord) validate() error {
	for _, f := range r.Foods {
		values := map[string]float64{
			"calories": f.Calories,
			"protein":  f.Protein,
			"carbs":    f.Carbs,
			"fat":      f.Fat,
			"fiber":    f.Fiber,
			"sugar":    f.Sugar,
		}
		for field, v := range values {
			if v < 0 {
				return fmt.Errorf("food %q has negative %s: %v", f.Name, field, v)
			}
		}
	}
	return nil
}

// compact trims ingredient names and drops blank ones. The result is never nil.
func compact(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
