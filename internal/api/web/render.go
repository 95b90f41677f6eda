package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/money"
)

const (
	maxStars         = 5
	shownExamples    = 3
	errorTemplateKey = "error"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is the view model shared by every tab
type pageData struct {
	State         entity.AppState
	Tabs          []tabLink
	ProductCount  int
	Greeting      string
	Examples      []string
	FamilyOptions []entity.Option
	HealthOptions []entity.Option
	NeedOptions   []string
	Plan          entity.FinancialPlan
}

type tabLink struct {
	ID    entity.Tab
	Label string
}

var templateFuncs = template.FuncMap{
	"ntd":   money.NTD,
	"stars": stars,
}

// parseTemplates builds one template set per tab on top of the shared layout
func parseTemplates() (map[string]*template.Template, error) {
	layout, err := template.New("layout").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(entity.Tabs)+1)
	for _, tab := range entity.Tabs {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		page, err := clone.ParseFS(templateFS, "templates/"+string(tab.ID)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", tab.ID, err)
		}
		pages[string(tab.ID)] = page
	}

	errPage, err := template.New(errorTemplateKey).ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error page: %w", err)
	}
	pages[errorTemplateKey] = errPage

	return pages, nil
}

func newPageData(st entity.AppState, examples []string) pageData {
	tabs := make([]tabLink, 0, len(entity.Tabs))
	for _, t := range entity.Tabs {
		tabs = append(tabs, tabLink{ID: t.ID, Label: t.Label})
	}

	count := 0
	if v, ok := st.DataSummary["total_products"].(float64); ok {
		count = int(v)
	}

	return pageData{
		State:         st,
		Tabs:          tabs,
		ProductCount:  count,
		Greeting:      entity.ChatGreeting,
		Examples:      examples[:min(len(examples), shownExamples)],
		FamilyOptions: entity.FamilyOptions,
		HealthOptions: entity.HealthOptions,
		NeedOptions:   entity.NeedOptions,
	}
}

func execute(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stars(n int) string {
	n = min(max(n, 0), maxStars)
	return strings.Repeat("★", n) + strings.Repeat("☆", maxStars-n)
}
