package sentiment

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const GeneralAspect = "general"

// closeMatchCutoff is the minimum similarity for a requested aspect to be
// corrected to a catalog aspect.
const closeMatchCutoff = 0.6

type aspectKeywords struct {
	Name     string
	Keywords []string
}

// aspectCatalog is ordered; auto-detected aspects are reported in this order.
var aspectCatalog = []aspectKeywords{
	{"Price", []string{"price", "affordable", "cheap", "expensive", "cost", "worth", "value", "overpriced",
		"reasonable", "pricing", "discount", "deal", "offer", "promo", "money"}},
	{"Packaging", []string{"packaging", "box", "packed", "packing", "wrap", "unboxing", "sealed",
		"bubble wrap", "damaged box", "torn packaging"}},
	{"Delivery", []string{"delivery", "delivered", "shipment", "shipping", "arrived", "courier", "dispatch",
		"late", "on time", "delayed", "express", "tracking", "logistics"}},
	{"Quality", []string{"quality", "material", "durability", "build", "finish", "texture", "well-made",
		"sturdy", "broke", "broken", "fragile", "solid", "snapped", "inferior", "top notch", "wear and tear"}},
	{"Service", []string{"service", "support", "customer care", "helpful", "rude", "staff", "agent",
		"call center", "representative", "live chat", "assistance", "unresponsive", "complaint", "ticket"}},
	{"Design", []string{"design", "look", "style", "appearance", "aesthetic", "beautiful", "ugly", "color",
		"sleek", "elegant", "modern", "outdated", "compact", "trendy", "form factor"}},
	{"Battery", []string{"battery", "charge", "charging", "power", "drains fast", "recharge", "charging time"}},
	{"Performance", []string{"performance", "speed", "lag", "smooth", "slow", "responsive", "crash", "freeze",
		"bug", "glitch", "processing", "frame rate", "snappy", "hang", "multitasking", "load time"}},
	{"Features", []string{"feature", "function", "tool", "option", "setting", "mode", "customizable",
		"automation", "integration", "compatibility", "smart", "button", "shortcut", "accessibility"}},
	{"Usability", []string{"usability", "easy to use", "user-friendly", "interface", "navigation",
		"instructions", "manual", "complicated", "confusing", "intuitive", "setup", "installation", "ergonomic"}},
	{"Warranty", []string{"warranty", "guarantee", "return", "replacement", "refund", "policy", "coverage",
		"claim", "money back"}},
	{"Authenticity", []string{"authentic", "original", "genuine", "fake", "duplicate", "counterfeit",
		"real product", "verified"}},
	{"Availability", []string{"stock", "out of stock", "available", "sold out", "restock", "in stock",
		"backordered"}},
}

// DetectAspects returns the catalog aspects whose keywords occur in text.
func DetectAspects(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, a := range aspectCatalog {
		if mentions(lower, a.Keywords) {
			found = append(found, a.Name)
		}
	}
	return found
}

// ResolveAspect maps a user supplied aspect onto the catalog, tolerating casing
// and small typos. It returns false when nothing is close enough.
func ResolveAspect(requested string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(requested))
	if want == "" {
		return "", false
	}

	best, bestScore := "", 0.0
	for _, a := range aspectCatalog {
		score := similarity(strings.ToLower(a.Name), want)
		if score > bestScore {
			best, bestScore = a.Name, score
		}
	}
	if bestScore < closeMatchCutoff {
		return "", false
	}
	return best, true
}

func keywordsFor(aspect string) []string {
	for _, a := range aspectCatalog {
		if a.Name == aspect {
			return append([]string{strings.ToLower(a.Name)}, a.Keywords...)
		}
	}
	return []string{strings.ToLower(aspect)}
}

func mentions(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// similarity is the difflib ratio 2*M/T over the characters of both strings,
// with candidate as the first sequence the way get_close_matches orders them.
func similarity(candidate, want string) float64 {
	return difflib.NewMatcher(strings.Split(candidate, ""), strings.Split(want, "")).Ratio()
}
