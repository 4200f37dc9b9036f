package imagesearch

import "strings"

type termEntry struct {
	key   string
	terms []string
}

var relatedTerms = []termEntry{
	{"party", []string{"party", "celebration", "balloons"}},
	{"wedding", []string{"wedding", "bride", "flowers"}},
	{"church", []string{"church", "worship", "prayer"}},
	{"community", []string{"community", "people", "gathering"}},
	{"nature", []string{"nature", "forest", "landscape"}},
	{"food", []string{"food", "meal", "restaurant"}},
	{"diva", []string{"fashion", "glamour", "elegant woman"}},
	{"hospital", []string{"hospital", "medical", "healthcare"}},
	{"business", []string{"business", "office", "professional"}},
	{"school", []string{"school", "students", "education"}},
	{"sports", []string{"sports", "fitness", "athlete"}},
	{"music", []string{"music", "concert", "performance"}},
	{"tech", []string{"technology", "computer", "digital"}},
	{"kids", []string{"children", "family", "play"}},
	{"love", []string{"love", "heart", "romance"}},
	{"clothes", []string{"clothing", "fashion", "wardrobe"}},
	{"people", []string{"people", "crowd", "group"}},
}

// NormalizeQuery lowercases and trims a search query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// RelatedTerms expands a normalized query into the terms actually
// searched. Among table keys that contain the query or are contained in
// it, the longest wins; ties go to the earlier entry. Without a match the
// query is searched as is and with "event" and "background" appended.
func RelatedTerms(query string) []string {
	best := -1
	for i, e := range relatedTerms {
		if !strings.Contains(query, e.key) && !strings.Contains(e.key, query) {
			continue
		}
		if best < 0 || len(e.key) > len(relatedTerms[best].key) {
			best = i
		}
	}
	if best >= 0 {
		out := make([]string, len(relatedTerms[best].terms))
		copy(out, relatedTerms[best].terms)
		return out
	}
	return []string{query, query + " event", query + " background"}
}

// PopularSearches is offered while the search box is (nearly) empty.
var PopularSearches = []string{"church", "party", "wedding", "nature", "business"}

var fallbackSuggestions = []string{"church", "party", "nature", "food", "business"}

const maxSuggestions = 5

// entries are checked in order, partial keys first
var suggestionTable = []termEntry{
	{"ch", []string{"church", "worship", "celebration"}},
	{"chu", []string{"church", "worship", "prayer"}},
	{"pa", []string{"party", "celebration", "people"}},
	{"par", []string{"party", "celebration", "gathering"}},
	{"we", []string{"wedding", "bride", "celebration"}},
	{"wed", []string{"wedding", "bride", "love"}},
	{"bu", []string{"business", "office", "meeting"}},
	{"bus", []string{"business", "professional", "corporate"}},
	{"na", []string{"nature", "forest", "landscape"}},
	{"nat", []string{"nature", "trees", "mountains"}},
	{"fo", []string{"food", "restaurant", "meal"}},
	{"foo", []string{"food", "cooking", "dinner"}},

	{"church", []string{"worship", "prayer", "cross", "faith", "bible"}},
	{"party", []string{"celebration", "balloons", "confetti", "dancing", "cake"}},
	{"wedding", []string{"bride", "groom", "flowers", "rings", "love"}},
	{"business", []string{"office", "meeting", "professional", "corporate", "team"}},
	{"nature", []string{"forest", "mountains", "sunset", "trees", "landscape"}},
	{"community", []string{"people", "gathering", "volunteers", "together", "crowd"}},
	{"school", []string{"students", "classroom", "learning", "education", "books"}},
	{"food", []string{"restaurant", "dinner", "cooking", "meal", "chef"}},
	{"diva", []string{"fashion", "glamour", "style", "elegant", "beauty"}},
	{"hospital", []string{"medical", "healthcare", "doctor", "clinic", "nurse"}},
	{"sports", []string{"fitness", "athlete", "game", "active", "competition"}},
	{"music", []string{"concert", "instruments", "performance", "band", "singing"}},
	{"tech", []string{"technology", "computers", "digital", "innovation", "coding"}},
	{"kids", []string{"children", "family", "play", "fun", "toys"}},
	{"love", []string{"heart", "romance", "couple", "valentine", "flowers"}},
	{"fitness", []string{"gym", "exercise", "workout", "health", "training"}},
	{"coffee", []string{"cafe", "espresso", "morning", "beans", "latte"}},
	{"beach", []string{"ocean", "sand", "summer", "vacation", "tropical"}},
}

// Suggestions returns up to five search words for what has been typed
// so far.
func Suggestions(typed string) []string {
	q := NormalizeQuery(typed)
	if len(q) < 2 {
		return append([]string(nil), PopularSearches...)
	}
	for _, e := range suggestionTable {
		if q == e.key || strings.HasPrefix(q, e.key) || strings.Contains(e.key, q) {
			n := min(len(e.terms), maxSuggestions)
			return append([]string(nil), e.terms[:n]...)
		}
	}
	return append([]string(nil), fallbackSuggestions...)
}
