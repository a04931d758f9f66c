package model

// Entry represents one quarterly fiscal-impact observation
type Entry struct {
	Quarter    string     `json:"quarter"`              // Fiscal quarter in YYYY-QQ form (QQ in 01..04)
	Amount     float64    `json:"amount"`               // Signed magnitude in billions of dollars
	Category   Category   `json:"category,omitempty"`   // Motivation category (empty when not yet classified)
	Exogeneity Exogeneity `json:"exogeneity,omitempty"` // Exogeneity classification (set together with Category)
}

// Classified reports whether the entry carries a motivation classification
func (e Entry) Classified() bool {
	return e.Category != "" && e.Exogeneity != ""
}

// Category classifies the legislative motivation behind a revenue change
type Category string

const (
	CategorySpendingDriven  Category = "Spending-driven"
	CategoryCountercyclical Category = "Countercyclical"
	CategoryDeficitDriven   Category = "Deficit-driven"
	CategoryLongRun         Category = "Long-run"
)

// Exogeneity classifies whether a revenue change responds to the state of the economy
type Exogeneity string

const (
	ExogeneityEndogenous Exogeneity = "Endogenous"
	ExogeneityExogenous  Exogeneity = "Exogenous"
)

// Act represents one legislative act recovered from the act-by-act summary.
// Built in a single pass and never mutated afterward.
type Act struct {
	ActName             string  `json:"act_name"`
	DateSigned          string  `json:"date_signed"` // ISO YYYY-MM-DD when recoverable, else SignedRaw verbatim
	SignedRaw           string  `json:"signed_raw"`  // Verbatim text after the signing marker
	StandardEntries     []Entry `json:"standard_entries"`
	RetroactiveEntries  []Entry `json:"retroactive_entries"`
	PresentValueEntries []Entry `json:"present_value_entries"`
	Narrative           string  `json:"narrative"`
}

// EntryCount returns the total number of entries across all three sections
func (a *Act) EntryCount() int {
	return len(a.StandardEntries) + len(a.RetroactiveEntries) + len(a.PresentValueEntries)
}

// PrimaryClassification returns the act's leading category and exogeneity:
// the first classified entry, scanning standard entries then retroactive ones.
// Both values are empty when no entry carries a classification.
func (a *Act) PrimaryClassification() (Category, Exogeneity) {
	for _, list := range [][]Entry{a.StandardEntries, a.RetroactiveEntries} {
		for _, e := range list {
			if e.Classified() {
				return e.Category, e.Exogeneity
			}
		}
	}
	return "", ""
}
