package model

// DraftClaim is a single candidate bullet or sentence destined for a slide.
// Text is never truncated with an ellipsis; any layout shortening happens at
// word boundaries or via paraphrase before the claim is created, and the
// pre-shortened original is kept in Original for verification.
type DraftClaim struct {
	SlideIndex int    `json:"slide"`              // 1-based slide slot
	Section    string `json:"section"`            // Section name on the slide
	Text       string `json:"text"`               // The literal slide text
	Original   string `json:"original,omitempty"` // Pre-shortened source text, if different
	Origin     string `json:"origin,omitempty"`   // Which record/bundle field produced it (e.g. "onepager:products_services")
}
