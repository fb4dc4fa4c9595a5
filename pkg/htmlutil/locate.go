package htmlutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Predicate decides whether an element is the one being looked for.
type Predicate func(sel *goquery.Selection) bool

// Locate returns the first descendant of sel with the given tag that satisfies
// every predicate, or nil when there is none. A miss is never an error, callers
// decide what an absent element means for their field.
func Locate(sel *goquery.Selection, tag string, predicates ...Predicate) *goquery.Selection {
	if sel == nil {
		return nil
	}
	var found *goquery.Selection
	sel.Find(tag).EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
		for _, p := range predicates {
			if !p(candidate) {
				return true
			}
		}
		found = candidate
		return false
	})
	return found
}

// LocateSelector is Locate for a plain css selector.
func LocateSelector(sel *goquery.Selection, selector string) *goquery.Selection {
	if sel == nil {
		return nil
	}
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil
	}
	return found
}

// AttrMatches matches elements that have the attribute and whose value contains a
// match of re.
func AttrMatches(key string, re *regexp.Regexp) Predicate {
	return func(sel *goquery.Selection) bool {
		value, ok := sel.Attr(key)
		return ok && re.MatchString(value)
	}
}

// ClassMatches matches re against the whole class list (space separated) as well as
// against each class on its own.
func ClassMatches(re *regexp.Regexp) Predicate {
	return func(sel *goquery.Selection) bool {
		value, ok := sel.Attr("class")
		if !ok {
			return false
		}
		classes := strings.Fields(value)
		if re.MatchString(strings.Join(classes, " ")) {
			return true
		}
		for _, c := range classes {
			if re.MatchString(c) {
				return true
			}
		}
		return false
	}
}

// HasAttr matches elements that carry the attribute, whatever its value.
func HasAttr(key string) Predicate {
	return func(sel *goquery.Selection) bool {
		_, ok := sel.Attr(key)
		return ok
	}
}

// StringMatches matches elements whose sole string (see SoleString) contains a
// match of re.
func StringMatches(re *regexp.Regexp) Predicate {
	return func(sel *goquery.Selection) bool {
		if len(sel.Nodes) == 0 {
			return false
		}
		text, ok := SoleString(sel.Nodes[0])
		return ok && re.MatchString(text)
	}
}
