// README: Plan module data contracts (travel request in, validated itinerary out).
package plan

import (
	"context"
	"strings"
)

// TravelRequest is the structured input for one plan generation.
type TravelRequest struct {
	Destination string   `json:"destination" binding:"required"`
	Duration    string   `json:"duration" binding:"required"`
	Timing      string   `json:"timing"`
	Budget      string   `json:"budget" binding:"required"`
	Companions  string   `json:"companions" binding:"required"`
	Style       []string `json:"style"`
	FreeText    string   `json:"freeText,omitempty"`
}

// Normalize trims surrounding whitespace from every text field.
// Style entries keep their order and duplicates.
func (r TravelRequest) Normalize() TravelRequest {
	out := TravelRequest{
		Destination: strings.TrimSpace(r.Destination),
		Duration:    strings.TrimSpace(r.Duration),
		Timing:      strings.TrimSpace(r.Timing),
		Budget:      strings.TrimSpace(r.Budget),
		Companions:  strings.TrimSpace(r.Companions),
		FreeText:    strings.TrimSpace(r.FreeText),
	}
	if len(r.Style) > 0 {
		out.Style = make([]string, len(r.Style))
		for i, s := range r.Style {
			out.Style[i] = strings.TrimSpace(s)
		}
	}
	return out
}

// MissingFields lists the JSON names of required fields that are empty.
func (r TravelRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.Duration) == "" {
		missing = append(missing, "duration")
	}
	if strings.TrimSpace(r.Budget) == "" {
		missing = append(missing, "budget")
	}
	if strings.TrimSpace(r.Companions) == "" {
		missing = append(missing, "companions")
	}
	return missing
}

// PlanResult is a validated itinerary. Every schedule item and hotel carries
// finite numeric coordinates.
type PlanResult struct {
	Title       string            `json:"title" validate:"notblank"`
	Days        []DayPlan         `json:"days" validate:"min=1,dive"`
	Hotels      []HotelSuggestion `json:"hotels" validate:"dive"`
	PackingList []string          `json:"packingList,omitempty"`
	Advice      []string          `json:"advice,omitempty"`
}

type DayPlan struct {
	Day      int            `json:"day" validate:"gte=1"`
	Schedule []ScheduleItem `json:"schedule" validate:"dive"`
}

type ScheduleItem struct {
	Time        string  `json:"time"`
	Place       string  `json:"place" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type HotelSuggestion struct {
	Name     string   `json:"name" validate:"notblank"`
	Area     string   `json:"area"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
	Lat      float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng      float64  `json:"lng" validate:"gte=-180,lte=180"`
}

// Spots returns every schedule item across all days in itinerary order.
func (p *PlanResult) Spots() []ScheduleItem {
	var out []ScheduleItem
	for _, d := range p.Days {
		out = append(out, d.Schedule...)
	}
	return out
}

// Generator is the text-completion collaborator. One call per plan; the
// returned text is expected to be JSON, possibly fenced.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Language selects the locale of prompts and caller-facing messages.
type Language string

const (
	LangEnglish  Language = "en"
	LangJapanese Language = "ja"
)

// ParseLanguage maps a tag such as "ja-JP" or an Accept-Language header to a
// supported Language, falling back to English.
func ParseLanguage(tag string) Language {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, ",;"); i >= 0 {
		tag = tag[:i]
	}
	if strings.HasPrefix(tag, "ja") {
		return LangJapanese
	}
	return LangEnglish
}
