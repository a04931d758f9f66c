package model

// Label represents one evidentiary quotation attributing legislative
// motivation to a source and date. It references its parent act by name only.
type Label struct {
	ActName    string     `json:"act_name"`
	Exogeneity Exogeneity `json:"exogeneity"` // Copied from the act's primary classification
	Category   Category   `json:"category"`   // Copied from the act's primary classification
	Motivation string     `json:"motivation"` // Quoted text, at least MinQuoteLen characters
	Source     string     `json:"source"`     // Attributed speaker or citation (may be empty)
	Date       string     `json:"date"`       // Raw M/D/Y text near the quote (may be empty)
}

// Attributed reports whether the label carries any attribution at all
func (l Label) Attributed() bool {
	return l.Source != "" || l.Date != ""
}
