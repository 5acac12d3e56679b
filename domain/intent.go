package domain

// IntentRule maps a keyword set to a canned response. The rule table is
// static and read-only at runtime; tuning it is a content edit, not a code
// change.
type IntentRule struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Response string   `yaml:"response" json:"response"`
}
