// Package document lays out generated recipes as paginated PDF documents.
package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"recipegen/internal/recipe"
)

// DefaultTitle heads every document that does not carry its own title.
const DefaultTitle = "AI-Generated Recipe"

const footerLayout = "2006-01-02 15:04:05"

// ErrRenderFailure is matched by every error returned from Build and Render.
var ErrRenderFailure = errors.New("render failed")

// RenderError reports the destination that could not be produced.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrRenderFailure, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrRenderFailure, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

func (e *RenderError) Is(target error) bool { return target == ErrRenderFailure }

// Data is the input to a render: the recipe text plus optional metadata.
type Data struct {
	Recipe    string                  `json:"recipe"`
	Language  string                  `json:"language,omitempty"`
	Title     string                  `json:"title,omitempty"`
	Nutrition *recipe.NutritionRecord `json:"nutrition,omitempty"`
}

// FromResult converts a pipeline result into render input.
func FromResult(r *recipe.Result) Data {
	return Data{Recipe: r.Recipe, Language: r.Language, Nutrition: r.Nutrition}
}

// Section is one titled block of the document. Title may be empty.
type Section struct {
	Title string
	Body  string
}

// Document is the laid out content of a PDF before it is written.
type Document struct {
	Title       string
	Language    string
	RTL         bool
	Sections    []Section
	Footer      string
	GeneratedAt time.Time
}

// Build turns render input into a Document. It fails only on empty text.
func Build(data Data, now time.Time) (*Document, error) {
	if strings.TrimSpace(data.Recipe) == "" {
		return nil, &RenderError{Err: errors.New("recipe text is empty")}
	}

	title := strings.TrimSpace(data.Title)
	if title == "" {
		title = DefaultTitle
	}

	sections := ParseSections(data.Recipe)
	if data.Nutrition != nil && len(data.Nutrition.Foods) > 0 {
		sections = append(sections, nutritionSection(data.Nutrition))
	}

	return &Document{
		Title:       title,
		Language:    data.Language,
		RTL:         IsRTL(data.Language),
		Sections:    sections,
		Footer:      "Generated on " + now.Format(footerLayout),
		GeneratedAt: now,
	}, nil
}

var (
	headingRe   = regexp.MustCompile(`^\s*#{1,6}(?:\s+(.*))?$`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	listItemRe  = regexp.MustCompile(`^\s*[*\-+]\s+`)
)

// ParseSections splits markdown text into sections on heading lines. Text
// without any heading falls back to one section per paragraph, using the part
// before a colon on the paragraph's first line as its title.
func ParseSections(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		if headingRe.MatchString(line) {
			return splitHeadings(lines)
		}
	}
	return splitParagraphs(text)
}

func splitHeadings(lines []string) []Section {
	var (
		sections []Section
		title    string
		body     []string
		started  bool
	)
	flush := func() {
		b := cleanBody(strings.Join(body, "\n"))
		if started || b != "" {
			sections = append(sections, Section{Title: title, Body: b})
		}
	}
	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			title = cleanInline(strings.TrimRight(strings.TrimSpace(m[1]), "#"))
			body = nil
			started = true
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

func splitParagraphs(text string) []Section {
	var sections []Section
	for _, para := range paragraphRe.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		firstLine, _, _ := strings.Cut(para, "\n")
		if label, content, ok := strings.Cut(para, ":"); ok && len(label) < len(firstLine) {
			sections = append(sections, Section{Title: cleanInline(label), Body: cleanBody(content)})
			continue
		}
		sections = append(sections, Section{Body: cleanBody(para)})
	}
	return sections
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.TrimSpace(s)
}

// cleanBody drops emphasis markers and normalises list bullets, keeping the
// line and paragraph structure.
func cleanBody(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if listItemRe.MatchString(line) {
			line = listItemRe.ReplaceAllString(line, "• ")
		}
		lines[i] = cleanInline(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func nutritionSection(n *recipe.NutritionRecord) Section {
	var sb strings.Builder
	for _, f := range n.Foods {
		sb.WriteString("• " + f.Name)
		if f.Quantity != "" {
			sb.WriteString(" (" + f.Quantity + ")")
		}
		fmt.Fprintf(&sb, ": %s kcal, protein %sg, carbs %sg, fat %sg, fiber %sg, sugar %sg",
			num(f.Calories), num(f.Protein), num(f.Carbs), num(f.Fat), num(f.Fiber), num(f.Sugar))
		if f.Reason != "" {
			verdict := "less healthy"
			if f.Healthy {
				verdict = "healthy"
			}
			sb.WriteString(" - " + verdict + ": " + f.Reason)
		}
		sb.WriteString("\n")
	}
	if n.OverallAssessment != "" {
		sb.WriteString("\nOverall: " + n.OverallAssessment)
	}
	return Section{Title: "Nutrition Analysis", Body: strings.TrimSpace(sb.String())}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
	"Adlm": true,
}

// IsRTL reports whether lang is written in a right-to-left script.
func IsRTL(lang string) bool {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	script, conf := tag.Script()
	if conf == language.No {
		return false
	}
	return rtlScripts[script.String()]
}
