package poster

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		"ATHLETE":    "ATHLET",
		"STATISTICS": "STATISTIK",
		"Number":     "Anzahl",
		"Weekly":     "Wöchentlich",
		"Total":      "Gesamt",
		"Avg":        "Ø",
		"Min":        "Min",
		"Max":        "Max",
		"km":         "km",
		"mi":         "mi",
		"January":    "Januar",
		"February":   "Februar",
		"March":      "März",
		"April":      "April",
		"May":        "Mai",
		"June":       "Juni",
		"July":       "Juli",
		"August":     "August",
		"September":  "September",
		"October":    "Oktober",
		"November":   "November",
		"December":   "Dezember",
	},
	language.French: {
		"ATHLETE":    "ATHLÈTE",
		"STATISTICS": "STATISTIQUES",
		"Number":     "Nombre",
		"Weekly":     "Hebdo",
		"Total":      "Total",
		"Avg":        "Moy",
		"Min":        "Min",
		"Max":        "Max",
		"km":         "km",
		"mi":         "mi",
		"January":    "janvier",
		"February":   "février",
		"March":      "mars",
		"April":      "avril",
		"May":        "mai",
		"June":       "juin",
		"July":       "juillet",
		"August":     "août",
		"September":  "septembre",
		"October":    "octobre",
		"November":   "novembre",
		"December":   "décembre",
	},
}

func init() {
	for tag, set := range translations {
		for key, msg := range set {
			message.SetString(tag, key, msg)
		}
	}
}

// ParseLanguage falls back to English for empty or unknown tags.
func ParseLanguage(str string) language.Tag {
	if str == "" {
		return language.English
	}
	tag, err := language.Parse(str)
	if err != nil {
		return language.English
	}
	return tag
}

func (p *Poster) SetLanguage(tag language.Tag) {
	p.language = tag
	p.printer = message.NewPrinter(tag)
}

func (p *Poster) Translate(str string) string {
	return p.printer.Sprintf(str)
}

func (p *Poster) MonthName(m time.Month) string {
	return p.Translate(m.String())
}

// FormatFloat formats f with one decimal using the poster language.
func (p *Poster) FormatFloat(f float64) string {
	return p.printer.Sprintf("%.1f", f)
}

func (p *Poster) FormatDistance(d Distance) string {
	return p.FormatFloat(p.Units.Convert(d)) + " " + p.Translate(p.Units.Symbol)
}
