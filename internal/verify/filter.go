package verify

import (
	"strings"

	"github.com/praxal/teasergen/internal/model"
)

// Filter removes everything the verifier could not stand behind. A slide
// item survives only if some verified citation's claim text equals it,
// contains it, or is contained by it (after the verifier's own
// normalization). Sections left empty disappear from the slide.
func Filter(deck *model.Deck, citations []model.Citation) *model.Deck {
	var verifiedTexts []string
	for _, c := range citations {
		if c.Verified {
			verifiedTexts = append(verifiedTexts, cleanForMatching(c.Claim.Text))
		}
	}

	filtered := &model.Deck{
		Company: deck.Company,
		Domain:  deck.Domain,
	}
	for _, slide := range deck.Slides {
		out := model.SlideContent{
			Index:   slide.Index,
			Title:   slide.Title,
			Metrics: slide.Metrics,
		}
		for _, sec := range slide.Sections {
			var items []string
			for _, item := range sec.Items {
				if itemVerified(item, verifiedTexts) {
					items = append(items, item)
				}
			}
			if len(items) > 0 {
				out.Sections = append(out.Sections, model.Section{Name: sec.Name, Items: items})
			}
		}
		for _, hook := range slide.Hooks {
			if itemVerified(hook, verifiedTexts) {
				out.Hooks = append(out.Hooks, hook)
			}
		}
		filtered.Slides = append(filtered.Slides, out)
	}
	return filtered
}

func itemVerified(item string, verifiedTexts []string) bool {
	clean := cleanForMatching(item)
	if clean == "" {
		return false
	}
	for _, t := range verifiedTexts {
		if t == "" {
			continue
		}
		if t == clean || strings.Contains(t, clean) || strings.Contains(clean, t) {
			return true
		}
	}
	return false
}
