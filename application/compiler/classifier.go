package compiler

import (
	"strings"

	"github.com/kn1ghtofzero/web-automation-agent/domain/entities"
)

// Classify detects the primary intent of a normalized command and
// extracts loosely-structured entities. It is total: unmatched
// commands return IntentNone with empty entities, never an error.
//
// The checks form a totally-ordered rule chain evaluated top to
// bottom. Booking phrases go first because they are the most specific
// and must pre-empt generic "search"/"find" wording; the ordering
// below is behavior, not style.
func Classify(command string) (entities.Intent, entities.Entities) {
	var ents entities.Entities

	// Flight booking, which must win over generic search wording
	if containsAny(command, actionKeywords["book_flight"]) {
		return entities.IntentBookFlight, ents
	}
	if strings.Contains(command, "from") && strings.Contains(command, "to") &&
		containsAny(command, []string{"flight", "fly", "trip"}) {
		return entities.IntentBookFlight, ents
	}

	// Media playback
	if containsAny(command, actionKeywords["play"]) {
		if strings.Contains(command, "youtube") || strings.Contains(command, "video") {
			ents.Platform = "youtube"
		}
		return entities.IntentPlay, ents
	}

	// Screenshot flag can co-exist with other categories
	hasScreenshot := containsAny(command, actionKeywords["screenshot"])
	if hasScreenshot {
		ents.Screenshot = true
	}

	if containsAny(command, actionKeywords["search"]) {
		if website := extractWebsite(command); website != "" {
			ents.Website = website
		}
		return entities.IntentSearch, ents
	}

	if containsAny(command, actionKeywords["navigate"]) {
		if website := extractWebsite(command); website != "" {
			ents.Website = website
		}
		return entities.IntentNavigate, ents
	}

	if containsAny(command, actionKeywords["fill"]) && strings.Contains(command, "with") {
		return entities.IntentFill, ents
	}

	// "press" is also a click keyword, so click pre-empts the keypress
	// rule below
	if containsAny(command, actionKeywords["click"]) {
		return entities.IntentClick, ents
	}

	if strings.Contains(command, "press") && strings.Contains(command, "in") {
		return entities.IntentPressKey, ents
	}

	if containsAny(command, actionKeywords["wait"]) {
		return entities.IntentWait, ents
	}

	if hasScreenshot {
		return entities.IntentScreenshot, ents
	}

	return entities.IntentNone, entities.Entities{}
}

// extractWebsite returns the first known site name mentioned in the
// command, scanning the site table in declaration order
func extractWebsite(command string) string {
	for _, s := range websiteTable {
		if strings.Contains(command, s.Name) {
			return s.Name
		}
	}
	return ""
}

func containsAny(command string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(command, kw) {
			return true
		}
	}
	return false
}
