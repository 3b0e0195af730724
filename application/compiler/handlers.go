package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
)

// handlerFunc turns a normalized command and its extracted entities
// into an action plan. Handlers are pure and total: when the required
// text cannot be extracted they return an empty plan, never an error.
type handlerFunc func(command string, ents entities.Entities) entities.ActionPlan

// handlerRegistry maps each intent to its plan builder
var handlerRegistry = map[entities.Intent]handlerFunc{
	entities.IntentNavigate:   handleNavigate,
	entities.IntentSearch:     handleSearch,
	entities.IntentPlay:       handlePlay,
	entities.IntentFill:       handleFill,
	entities.IntentClick:      handleClick,
	entities.IntentPressKey:   handlePressKey,
	entities.IntentWait:       handleWait,
	entities.IntentScreenshot: handleScreenshot,
	entities.IntentBookFlight: handleBookFlight,
}

func handleNavigate(command string, _ entities.Entities) entities.ActionPlan {
	target := stripPhrases(command, actionKeywords["navigate"])

	var url string
	if mapped, ok := websiteURL(target); ok {
		url = mapped
	} else if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		url = target
	} else {
		// bare domain
		url = "https://www." + target
	}

	return entities.ActionPlan{{Type: entities.ActionGoto, Value: url}}
}

func handleSearch(command string, ents entities.Entities) entities.ActionPlan {
	website := ents.Website
	if website == "" {
		website = "google"
	}

	query := stripPhrases(command, []string{"search for", "search", "find", "look for", "look up", "on google", "google"})
	if ents.Website != "" {
		query = stripPhrases(query, []string{"on " + ents.Website, ents.Website})
	}
	if ents.Screenshot {
		query = stripPhrases(query, []string{"and take a screenshot", "take a screenshot", "screenshot"})
	}
	query = strings.TrimSpace(query)

	cfg, ok := siteConfigs[website]
	if !ok {
		cfg = siteConfigs["google"]
	}
	url, ok := websiteURL(website)
	if !ok {
		url, _ = websiteURL("google")
	}

	plan := entities.ActionPlan{
		{Type: entities.ActionGoto, Value: url},
		{Type: entities.ActionFill, Selector: cfg.SearchSelector, Value: query},
		{Type: entities.ActionPress, Selector: cfg.SearchSelector, Key: "Enter"},
	}
	if ents.Screenshot {
		plan = append(plan, entities.Action{Type: entities.ActionScreenshot, Filename: "search_results.png"})
	}
	return plan
}

func handlePlay(command string, _ entities.Entities) entities.ActionPlan {
	query := stripPhrases(command, []string{"play", "watch", "listen to", "search youtube for", "find on youtube", "on youtube"})

	// media playback always targets YouTube for now
	cfg := siteConfigs["youtube"]
	url, _ := websiteURL("youtube")

	return entities.ActionPlan{
		{Type: entities.ActionGoto, Value: url},
		{Type: entities.ActionFill, Selector: cfg.SearchSelector, Value: query},
		{Type: entities.ActionPress, Selector: cfg.SearchSelector, Key: "Enter"},
		// dynamic result lists need a beat to render before the click resolves
		{Type: entities.ActionWait, TimeoutMs: 3000},
		{Type: entities.ActionClick, Selector: cfg.FirstVideoSelector},
	}
}

var fillPattern = regexp.MustCompile(`(?:fill|enter|input|type\s+in)\s+(?:the\s+)?(.+?)\s+with\s+(.+)`)

func handleFill(command string, _ entities.Entities) entities.ActionPlan {
	m := fillPattern.FindStringSubmatch(command)
	if m == nil {
		return nil
	}
	field := strings.TrimSpace(m[1])
	value := strings.TrimSpace(m[2])

	selector, ok := fieldSelectorMap[strings.ToLower(field)]
	if !ok {
		selector = fmt.Sprintf("input[name='%s'], textarea[name='%s']", field, field)
	}

	return entities.ActionPlan{{Type: entities.ActionFill, Selector: selector, Value: value}}
}

var clickPattern = regexp.MustCompile(`(?:click|press|tap)\s+(?:the\s+)?(.+)`)

func handleClick(command string, _ entities.Entities) entities.ActionPlan {
	if strings.Contains(command, "first") {
		return entities.ActionPlan{{Type: entities.ActionClickResult}}
	}

	m := clickPattern.FindStringSubmatch(command)
	if m == nil {
		return nil
	}
	element := strings.TrimSpace(m[1])

	selector, ok := elementSelectorMap[strings.ToLower(element)]
	if !ok {
		selector = fmt.Sprintf("button, input[type='button'], a[href*='%s']", element)
	}

	return entities.ActionPlan{{Type: entities.ActionClick, Selector: selector}}
}

var pressPattern = regexp.MustCompile(`press\s+(.+?)(?:\s+in|\s+on)\s+(?:the\s+)?(.+)`)

func handlePressKey(command string, _ entities.Entities) entities.ActionPlan {
	m := pressPattern.FindStringSubmatch(command)
	if m == nil {
		return nil
	}
	key := strings.TrimSpace(m[1])
	field := strings.TrimSpace(m[2])

	selector, ok := fieldSelectorMap[strings.ToLower(field)]
	if !ok {
		selector = fmt.Sprintf("input[name='%s'], textarea[name='%s']", field, field)
	}

	return entities.ActionPlan{{Type: entities.ActionPress, Selector: selector, Key: key}}
}

var waitPattern = regexp.MustCompile(`(?:wait|pause|delay)\s+(?:for\s+)?(\d+)(?:\s*(ms|milliseconds|seconds|sec|s))?`)

func handleWait(command string, _ entities.Entities) entities.ActionPlan {
	m := waitPattern.FindStringSubmatch(command)
	if m == nil {
		return nil
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	// bare numbers and "ms" stay milliseconds; second units scale up
	unit := strings.ToLower(m[2])
	if unit != "" && unit != "ms" && unit != "milliseconds" {
		value *= 1000
	}

	return entities.ActionPlan{{Type: entities.ActionWait, TimeoutMs: value}}
}

var screenshotPattern = regexp.MustCompile(`(?:screenshot|capture)\s+(?:of\s+)?(.+)`)

func handleScreenshot(command string, _ entities.Entities) entities.ActionPlan {
	filename := "screenshot.png"
	if m := screenshotPattern.FindStringSubmatch(command); m != nil {
		name := m[1]
		for _, word := range []string{"and", "take", "a", "the"} {
			name = strings.ReplaceAll(name, word, "")
		}
		if name = strings.TrimSpace(name); name != "" {
			filename = name
		}
	}

	return entities.ActionPlan{{Type: entities.ActionScreenshot, Filename: filename}}
}

// flightPatterns are tried in order, most specific first. The first
// match wins.
var flightPatterns = []*regexp.Regexp{
	// "search for flights from X to Y <date phrase>"
	regexp.MustCompile(`(?:search|book|find)\s+(?:for\s+)?(?:a\s+)?flights?\s+from\s+(.+?)\s+to\s+(.+?)\s+(.+)`),
	// "search/book/find [a] [flight] from X to Y on/for date"
	regexp.MustCompile(`(?:search|book|find)(?:\s+for)?(?:\s+a)?(?:\s+flights?)?(?:\s+from)\s+(.+?)\s+to\s+(.+?)(?:\s+on\s+|\s+for\s+|\s+date\s*:?\s*)(.+)`),
	// "I want to fly from X to Y on date"
	regexp.MustCompile(`(?:i\s+want\s+to\s+fly|i\s+need\s+a\s+flight|i\s+would\s+like\s+to\s+book)(?:\s+from)?\s+(.+?)\s+to\s+(.+?)(?:\s+on\s+|\s+for\s+|\s+date\s*:?\s*)(.+)`),
	// "fly/flight/trip from X to Y on date"
	regexp.MustCompile(`(?:fly|flights?|trip)\s+from\s+(.+?)\s+to\s+(.+?)(?:\s+on\s+|\s+for\s+|\s+date\s*:?\s*)(.+)`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func handleBookFlight(command string, _ entities.Entities) entities.ActionPlan {
	for _, pattern := range flightPatterns {
		m := pattern.FindStringSubmatch(command)
		if m == nil {
			continue
		}

		origin := canonicalCity(m[1])
		destination := canonicalCity(m[2])
		date := ParseDate(m[3])

		return entities.ActionPlan{{
			Type:        entities.ActionBookFlight,
			Origin:      origin,
			Destination: destination,
			Date:        date,
		}}
	}
	return nil
}

// canonicalCity collapses whitespace and resolves aliases and airport
// codes to the canonical city name
func canonicalCity(raw string) string {
	city := whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")
	if mapped, ok := cityAliases[strings.ToLower(city)]; ok {
		return mapped
	}
	return city
}

// stripPhrases removes every occurrence of the given phrases and trims
// the result
func stripPhrases(command string, phrases []string) string {
	out := command
	for _, p := range phrases {
		out = strings.ReplaceAll(out, p, "")
	}
	return strings.TrimSpace(out)
}
