package survey

import (
	"fmt"
	"strings"
)

// Place is the stored location: region code, resolved display name and the
// free-text city.
type Place struct {
	RegionKey  string `json:"region_key"`
	RegionName string `json:"region_name"`
	City       string `json:"city"`
}

// Profile is the persisted document, one per user. JSON tags double as the
// field keys of partial updates.
type Profile struct {
	UserID          int64              `json:"user_id"`
	Username        string             `json:"username"`
	Name            string             `json:"name"`
	Phone           string             `json:"phone"`
	Age             int                `json:"age"`
	PlaceOfLiving   Place              `json:"place_of_living"`
	Categories      []string           `json:"driving_categories"`
	Experience      map[string]float64 `json:"driving_experience"`
	SemiTrailers    []string           `json:"semi_trailer_types"`
	WorkTypes       []string           `json:"types_of_work"`
	Vehicles        []string           `json:"types_of_cars"`
	ADRLicense      bool               `json:"is_adr_license"`
	RaceDurations   []string           `json:"race_duration_preference"`
	DesiredSalary   int                `json:"desired_salary"`
	DocsAbroad      []string           `json:"docs_for_driving_abroad"`
	MilitaryBooking bool               `json:"military_booking"`
	Description     string             `json:"description"`
}

// Sanitize strips pictographs from every stored string field, lists included.
// Identity fields stay byte-identical, whatever they contain.
func (p *Profile) Sanitize() {
	p.Name = StripEmoji(p.Name)
	p.Phone = StripEmoji(p.Phone)
	p.PlaceOfLiving.RegionKey = StripEmoji(p.PlaceOfLiving.RegionKey)
	p.PlaceOfLiving.RegionName = StripEmoji(p.PlaceOfLiving.RegionName)
	p.PlaceOfLiving.City = StripEmoji(p.PlaceOfLiving.City)
	p.Categories = stripEmojiList(p.Categories)
	p.SemiTrailers = stripEmojiList(p.SemiTrailers)
	p.WorkTypes = stripEmojiList(p.WorkTypes)
	p.Vehicles = stripEmojiList(p.Vehicles)
	p.RaceDurations = stripEmojiList(p.RaceDurations)
	p.DocsAbroad = stripEmojiList(p.DocsAbroad)
	p.Description = StripEmoji(p.Description)
	if p.Experience != nil {
		cleaned := make(map[string]float64, len(p.Experience))
		for k, v := range p.Experience {
			cleaned[StripEmoji(k)] = v
		}
		p.Experience = cleaned
	}
}

func yesNo(v bool) string {
	if v {
		return "Так"
	}
	return "Ні"
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	return strings.Join(items, ", ")
}

// FormatProfile renders the stored document as the user-facing summary.
func FormatProfile(p *Profile) string {
	var b strings.Builder
	b.WriteString(MsgProfileHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Ім'я: %s\n", p.Name)
	fmt.Fprintf(&b, "Телефон: %s\n", p.Phone)
	fmt.Fprintf(&b, "Вік: %d\n", p.Age)
	location := p.PlaceOfLiving.RegionName
	if p.PlaceOfLiving.City != "" {
		if location != "" {
			location += ", "
		}
		location += p.PlaceOfLiving.City
	}
	fmt.Fprintf(&b, "Місце проживання: %s\n", location)
	fmt.Fprintf(&b, "Категорії: %s\n", joinOrDash(p.Categories))
	if len(p.Experience) > 0 {
		b.WriteString("Стаж водіння:\n")
		for _, cat := range p.Categories {
			if years, ok := p.Experience[cat]; ok {
				fmt.Fprintf(&b, "  %s: %s р.\n", cat, formatYears(years))
			}
		}
	}
	if len(p.SemiTrailers) > 0 {
		fmt.Fprintf(&b, "Напівпричепи: %s\n", joinOrDash(p.SemiTrailers))
	}
	fmt.Fprintf(&b, "Види роботи: %s\n", joinOrDash(p.WorkTypes))
	fmt.Fprintf(&b, "Авто: %s\n", joinOrDash(p.Vehicles))
	fmt.Fprintf(&b, "Посвідчення ADR: %s\n", yesNo(p.ADRLicense))
	fmt.Fprintf(&b, "Тривалість рейсів: %s\n", joinOrDash(p.RaceDurations))
	fmt.Fprintf(&b, "Бажана зарплата: %d грн\n", p.DesiredSalary)
	fmt.Fprintf(&b, "Документи для закордону: %s\n", joinOrDash(p.DocsAbroad))
	fmt.Fprintf(&b, "Бронювання: %s\n", yesNo(p.MilitaryBooking))
	if p.Description != "" {
		fmt.Fprintf(&b, "\nПро себе: %s\n", p.Description)
	}
	return b.String()
}

func formatYears(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s
}
