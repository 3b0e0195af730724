package compiler

// Centralized tables for intent parsing. New websites, selectors and
// city aliases are added here without touching the classifier or the
// handlers.

// site pairs a recognizable site name with its canonical URL. The
// table is an ordered slice, not a map: substring extraction scans it
// top to bottom, so when a command mentions two known sites the
// earliest declared one wins. That tie-break is deliberate and load
// bearing; keep the declaration order stable.
type site struct {
	Name string
	URL  string
}

var websiteTable = []site{
	{"google", "https://www.google.com"},
	{"google.com", "https://www.google.com"},
	{"youtube", "https://www.youtube.com"},
	{"youtube.com", "https://www.youtube.com"},
	{"github", "https://www.github.com"},
	{"github.com", "https://www.github.com"},
	{"stackoverflow", "https://stackoverflow.com"},
	{"stackoverflow.com", "https://stackoverflow.com"},
	{"reddit", "https://www.reddit.com"},
	{"reddit.com", "https://www.reddit.com"},
	{"wikipedia", "https://www.wikipedia.org"},
	{"wikipedia.org", "https://www.wikipedia.org"},
	{"amazon", "https://www.amazon.in"},
	{"amazon.in", "https://www.amazon.in"},
	{"amazon.com", "https://www.amazon.com"},
	{"twitter", "https://www.twitter.com"},
	{"twitter.com", "https://www.twitter.com"},
	{"linkedin", "https://www.linkedin.com"},
	{"linkedin.com", "https://www.linkedin.com"},
	{"facebook", "https://www.facebook.com"},
	{"facebook.com", "https://www.facebook.com"},
}

// websiteURL resolves an exact site name to its URL
func websiteURL(name string) (string, bool) {
	for _, s := range websiteTable {
		if s.Name == name {
			return s.URL, true
		}
	}
	return "", false
}

// fieldSelectorMap maps spoken field names to CSS selectors
var fieldSelectorMap = map[string]string{
	"search box":   "input[name='q'], textarea[name='q'], input[type='search']",
	"search field": "input[name='q'], textarea[name='q'], input[type='search']",
	"email":        "input[type='email']",
	"password":     "input[type='password']",
	"username":     "input[name='username'], input[name='user']",
	"name":         "input[name='name'], input[name='fullname']",
}

// elementSelectorMap maps spoken element names to CSS selectors
var elementSelectorMap = map[string]string{
	"submit button": "input[type='submit'], button[type='submit'], button.submit",
	"search button": "input[type='submit'], button[type='submit'], button.search",
	"login button":  "input[type='submit'], button[type='submit'], button.login",
	"first result":  "div.g a",
	"first link":    "a:first-of-type",
	"button":        "button",
}

// cityAliases maps abbreviations and airport codes to canonical city names
var cityAliases = map[string]string{
	"nyc":             "New York",
	"new york city":   "New York",
	"sf":              "San Francisco",
	"san fran":        "San Francisco",
	"sfo":             "San Francisco",
	"la":              "Los Angeles",
	"lax":             "Los Angeles",
	"chi":             "Chicago",
	"ord":             "Chicago",
	"dc":              "Washington DC",
	"washington d.c.": "Washington DC",
	"mumbai":          "Mumbai",
	"bombay":          "Mumbai",
	"bom":             "Mumbai",
	"delhi":           "Delhi",
	"del":             "Delhi",
	"new delhi":       "Delhi",
	"bengaluru":       "Bengaluru",
	"bangalore":       "Bengaluru",
	"blr":             "Bengaluru",
	"chennai":         "Chennai",
	"madras":          "Chennai",
	"maa":             "Chennai",
	"kolkata":         "Kolkata",
	"calcutta":        "Kolkata",
	"ccu":             "Kolkata",
	"london":          "London",
	"lon":             "London",
	"lhr":             "London",
	"paris":           "Paris",
	"cdg":             "Paris",
	"miami":           "Miami",
	"mia":             "Miami",
}

// siteConfig carries site-specific selectors for composed actions
type siteConfig struct {
	SearchSelector     string
	FirstVideoSelector string
}

var siteConfigs = map[string]siteConfig{
	"youtube": {
		SearchSelector:     "input[name='search_query']",
		FirstVideoSelector: "ytd-video-renderer a#video-title[href*='watch']:not([href*='shorts'])",
	},
	"google": {
		SearchSelector: "textarea[name='q']",
	},
	"wikipedia": {
		SearchSelector: "#searchInput",
	},
	"wikipedia.org": {
		SearchSelector: "#searchInput",
	},
	"amazon": {
		SearchSelector: "input[name='field-keywords']",
	},
}

// actionKeywords defines which phrases trigger which intent
var actionKeywords = map[string][]string{
	"navigate":    {"go to", "navigate to", "open", "visit"},
	"search":      {"search", "find", "look for", "look up"},
	"fill":        {"fill", "enter", "input", "type in"},
	"click":       {"click", "press", "tap"},
	"wait":        {"wait", "pause", "delay"},
	"screenshot":  {"screenshot", "capture", "take a picture", "snap"},
	"book_flight": {"book flight", "book a flight", "search flight", "find flight", "fly from"},
	"play":        {"play", "watch", "listen to"},
}
