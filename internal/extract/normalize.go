package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strippedTags are removed wholesale before any extraction stage runs.
var strippedTags = []string{
	"script", "style", "nav", "header", "footer", "aside", "menu",
	"iframe", "noscript", "svg", "form", "button", "link", "meta",
}

// noiseMarkers are matched case-insensitively as substrings of class and id
// attributes. Any element carrying one is ad, navigation, paywall or social
// chrome and is pruned with its subtree.
var noiseMarkers = []string{
	"advert", "adsense", "ad-container", "banner", "sponsor", "promo",
	"cookie", "consent", "gdpr", "newsletter", "subscribe", "paywall",
	"premium-wall", "social", "share", "comment", "related", "recommend",
	"sidebar", "breadcrumb", "navigation", "navbar", "menubar", "widget",
	"popup",
}

// Normalize destructively prunes non-content nodes from the tree. Absence of
// matches is a no-op; there is no failure mode.
func Normalize(doc *goquery.Document) {
	doc.Find(strings.Join(strippedTags, ", ")).Remove()

	doc.Find("[class], [id]").Each(func(_ int, s *goquery.Selection) {
		attrs := strings.ToLower(s.AttrOr("class", "") + " " + s.AttrOr("id", ""))
		for _, marker := range noiseMarkers {
			if strings.Contains(attrs, marker) {
				s.Remove()
				return
			}
		}
	})
}
