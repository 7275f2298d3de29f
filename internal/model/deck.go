package model

// Section is a named group of bullet items on a slide. Order matters for
// layout, so sections are a slice, not a map.
type Section struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// SlideContent is the draft (and later filtered) content of one slide slot
type SlideContent struct {
	Index    int               `json:"slide"`
	Title    string            `json:"title"`
	Sections []Section         `json:"sections"`
	Metrics  map[string]string `json:"metrics,omitempty"` // Short strings for the metric bar
	Hooks    []string          `json:"hooks,omitempty"`
}

// Deck is the assembled set of slides plus run metadata
type Deck struct {
	Company string         `json:"company"`
	Domain  string         `json:"domain"`
	Slides  []SlideContent `json:"slides"`
}

// SectionItems returns the items of the named section, nil if absent
func (s *SlideContent) SectionItems(name string) []string {
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec.Items
		}
	}
	return nil
}
