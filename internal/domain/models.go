package domain

// Option represents one selectable value
type Option struct {
	Label   string `json:"label" yaml:"label" toml:"label"`
	Value   string `json:"value" yaml:"value" toml:"value"`
	IsError bool   `json:"isError,omitempty" yaml:"isError,omitempty" toml:"is_error,omitempty"`
}

// NewOption creates an option whose label and value are the same text
func NewOption(text string) Option {
	return Option{Label: text, Value: text}
}

// Selection is an ordered list of chosen options, insertion order is display order
type Selection []Option

// Clone returns a copy that shares no backing array with s
func (s Selection) Clone() Selection {
	if s == nil {
		return Selection{}
	}
	out := make(Selection, len(s))
	copy(out, s)
	return out
}

// Append returns a new selection with opt at the end
func (s Selection) Append(opt Option) Selection {
	out := make(Selection, len(s), len(s)+1)
	copy(out, s)
	return append(out, opt)
}

// RemoveValue returns a new selection without any entry matching value.
// A missing value yields an equal copy.
func (s Selection) RemoveValue(value string) Selection {
	out := make(Selection, 0, len(s))
	for _, opt := range s {
		if opt.Value != value {
			out = append(out, opt)
		}
	}
	return out
}

// RemoveLast returns a new selection without its final entry
func (s Selection) RemoveLast() Selection {
	if len(s) == 0 {
		return Selection{}
	}
	return s[:len(s)-1].Clone()
}

// HasValue reports whether any entry carries value
func (s Selection) HasValue(value string) bool {
	for _, opt := range s {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values returns the identities in display order
func (s Selection) Values() []string {
	values := make([]string, len(s))
	for i, opt := range s {
		values[i] = opt.Value
	}
	return values
}

// LookupResult is the projection of the external options lookup
type LookupResult struct {
	Loading bool
	Options []Option
}
