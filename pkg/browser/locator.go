package browser

import (
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// LocatorKind is the strategy used to identify an element on the page.
type LocatorKind int

const (
	KindID LocatorKind = iota
	KindName
	KindClassName
	KindCSS
	KindXPath
	KindLinkText
	KindPartialLinkText
)

var kindNames = map[LocatorKind]string{
	KindID:              "id",
	KindName:            "name",
	KindClassName:       "class",
	KindCSS:             "css",
	KindXPath:           "xpath",
	KindLinkText:        "link_text",
	KindPartialLinkText: "partial_link_text",
}

func (k LocatorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Locator is one hypothesis for finding an element.
type Locator struct {
	Kind     LocatorKind
	Selector string
}

func (l Locator) String() string {
	return l.Kind.String() + "=" + l.Selector
}

func ByID(id string) Locator           { return Locator{Kind: KindID, Selector: id} }
func ByName(name string) Locator       { return Locator{Kind: KindName, Selector: name} }
func ByClassName(class string) Locator { return Locator{Kind: KindClassName, Selector: class} }
func ByCSS(sel string) Locator         { return Locator{Kind: KindCSS, Selector: sel} }
func ByXPath(expr string) Locator      { return Locator{Kind: KindXPath, Selector: expr} }
func ByLinkText(text string) Locator   { return Locator{Kind: KindLinkText, Selector: text} }
func ByPartialLinkText(text string) Locator {
	return Locator{Kind: KindPartialLinkText, Selector: text}
}

// query translates the locator into a chromedp selector and query options.
func (l Locator) query() (string, []chromedp.QueryOption) {
	switch l.Kind {
	case KindID:
		return cssAttr("id", l.Selector), []chromedp.QueryOption{chromedp.ByQuery}
	case KindName:
		return cssAttr("name", l.Selector), []chromedp.QueryOption{chromedp.ByQuery}
	case KindClassName:
		return "." + l.Selector, []chromedp.QueryOption{chromedp.ByQuery}
	case KindXPath:
		return l.Selector, []chromedp.QueryOption{chromedp.BySearch}
	case KindLinkText:
		return "//a[normalize-space(.)=" + XPathLiteral(l.Selector) + "]", []chromedp.QueryOption{chromedp.BySearch}
	case KindPartialLinkText:
		return "//a[contains(normalize-space(.), " + XPathLiteral(l.Selector) + ")]", []chromedp.QueryOption{chromedp.BySearch}
	default:
		return l.Selector, []chromedp.QueryOption{chromedp.ByQuery}
	}
}

// cssAttr builds an exact attribute selector, e.g. [id="CountryId"].
func cssAttr(name, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return fmt.Sprintf(`[%s="%s"]`, name, r.Replace(value))
}

// XPathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so values holding both quote kinds are split with concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
