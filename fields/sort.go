package fields

// SortChoice maps a submitted value to a sort expression in "-field"
// notation, a leading dash meaning descending.
type SortChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Sort  string `json:"-"`
}

// SortField translates a submitted value into a sort criterion.
type SortField struct {
	name    string
	choices []SortChoice
}

// NewSortField creates a sort field over the given choices.
func NewSortField(name string, choices ...SortChoice) *SortField {
	return &SortField{name: name, choices: choices}
}

func (f *SortField) Name() string {
	return f.name
}

func (f *SortField) Kind() Kind {
	return KindSort
}

// Sort resolves a submitted value to its sort expression. Unknown
// values report false.
func (f *SortField) Sort(value string) (string, bool) {
	for _, c := range f.choices {
		if c.Value == value {
			return c.Sort, true
		}
	}
	return "", false
}

// Choices returns the configured sort choices.
func (f *SortField) Choices() []SortChoice {
	return f.choices
}
