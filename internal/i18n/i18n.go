// Package i18n holds the display-layer string tables keyed by language.
// The core consumes these tables; it does not own translation content.
package i18n

// Language is a supported display language.
type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
	LanguageFR Language = "fr"
	LanguageES Language = "es"
)

// DefaultLanguage is used whenever a requested language is unknown.
const DefaultLanguage = LanguagePT

// Parse maps a raw language code onto a supported Language, falling back
// to the default for anything unknown or empty.
func Parse(s string) Language {
	switch Language(s) {
	case LanguagePT, LanguageEN, LanguageFR, LanguageES:
		return Language(s)
	}
	return DefaultLanguage
}

// Table carries the strings the admin dashboard needs for a sale listing.
// Every language fills every field; the structure is identical across
// languages.
type Table struct {
	StatusPending   string
	StatusSucceeded string
	StatusRefunded  string
	DeletedOffer    string
	OrderBump       string
	UpsellSale      string
	TotalsMismatch  string
}

var tables = map[Language]Table{
	LanguagePT: {
		StatusPending:   "pendente",
		StatusSucceeded: "concluída",
		StatusRefunded:  "reembolsada",
		DeletedOffer:    "oferta removida",
		OrderBump:       "adicional",
		UpsellSale:      "upsell",
		TotalsMismatch:  "totais divergentes",
	},
	LanguageEN: {
		StatusPending:   "pending",
		StatusSucceeded: "completed",
		StatusRefunded:  "refunded",
		DeletedOffer:    "offer removed",
		OrderBump:       "add-on",
		UpsellSale:      "upsell",
		TotalsMismatch:  "totals mismatch",
	},
	LanguageFR: {
		StatusPending:   "en attente",
		StatusSucceeded: "terminée",
		StatusRefunded:  "remboursée",
		DeletedOffer:    "offre supprimée",
		OrderBump:       "supplément",
		UpsellSale:      "vente additionnelle",
		TotalsMismatch:  "totaux divergents",
	},
	LanguageES: {
		StatusPending:   "pendiente",
		StatusSucceeded: "completada",
		StatusRefunded:  "reembolsada",
		DeletedOffer:    "oferta eliminada",
		OrderBump:       "adicional",
		UpsellSale:      "upsell",
		TotalsMismatch:  "totales divergentes",
	},
}

// For returns the string table for a language, defaulting for unknown ones.
func For(lang Language) Table {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[DefaultLanguage]
}

// StatusLabel translates a lifecycle status value for display. Unknown
// values come back unchanged so a listing can still render the raw record.
func (t Table) StatusLabel(status string) string {
	switch status {
	case "pending":
		return t.StatusPending
	case "succeeded":
		return t.StatusSucceeded
	case "refunded":
		return t.StatusRefunded
	}
	return status
}
