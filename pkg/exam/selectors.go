package exam

import (
	"examwatch/pkg/browser"
)

// Locator hypotheses for the booking site. The markup differs between page
// variants, so each control lists every shape seen so far, most specific first.
var (
	CountrySelectLocators = []browser.Locator{
		browser.ByID("CountryId"),
		browser.ByName("CountryId"),
		browser.ByXPath("//select[contains(@name, 'Country')]"),
	}

	LocationSelectLocators = []browser.Locator{
		browser.ByID("TestCentreLocationName"),
		browser.ByName("TestCentreLocationName"),
		browser.ByXPath("//select[contains(@name, 'Location')]"),
	}

	TestTypeSelectLocators = []browser.Locator{
		browser.ByID("TestModuleId"),
		browser.ByName("TestModuleId"),
		browser.ByXPath("//select[contains(@name, 'TestModule')]"),
	}

	ResultsContainerLocators = []browser.Locator{
		browser.ByID("venue-selection-results"),
	}

	LoginLinkLocators = []browser.Locator{
		browser.ByLinkText("Login Here"),
		browser.ByPartialLinkText("Login"),
		browser.ByXPath("//a[contains(text(), 'Login')]"),
		browser.ByClassName("login-link"),
	}

	UsernameLocators = []browser.Locator{
		browser.ByID("Username"),
		browser.ByName("Username"),
		browser.ByXPath("//input[@type='text']"),
		browser.ByXPath("//input[contains(@placeholder, 'sername')]"),
	}

	PasswordLocators = []browser.Locator{
		browser.ByID("Password"),
		browser.ByName("Password"),
		browser.ByXPath("//input[@type='password']"),
		browser.ByXPath("//input[contains(@placeholder, 'assword')]"),
	}

	LoginButtonLocators = []browser.Locator{
		browser.ByXPath("//input[@value='Login']"),
		browser.ByXPath("//button[contains(text(), 'Login')]"),
		browser.ByXPath("//input[@type='submit']"),
		browser.ByClassName("login-button"),
	}

	LoginSuccessLocators = []browser.Locator{
		browser.ByPartialLinkText("My Account"),
		browser.ByPartialLinkText("Account"),
		browser.ByXPath("//a[contains(text(), 'Account')]"),
		browser.ByClassName("user-menu"),
	}
)

// AvailableDaySelectors are mutually exclusive fallbacks: the first selector
// with any match wins and the rest are not consulted.
var AvailableDaySelectors = []string{
	"td.high-availability-date a",
	".high-availability-date a",
	"td.medium-availability-date a",
	".medium-availability-date a",
	"td.selected-legend a",
	".selected-legend a",
	// CSS form of //td[@data-handler='selectDay' and not(contains(@class,'ui-datepicker-unselectable'))]//a
	"td[data-handler='selectDay']:not(.ui-datepicker-unselectable) a",
	"td:not(.ui-datepicker-unselectable):not(.ui-state-disabled) a",
	"td[data-event='click'] a",
}

// VenueLinkLocators lists the ways the venue's accordion link has been marked up.
func VenueLinkLocators(venueName, venueID string) []browser.Locator {
	name := browser.XPathLiteral(venueName)
	locs := []browser.Locator{
		browser.ByXPath("//a[contains(text(), " + name + ")]"),
	}
	if venueID != "" {
		target := browser.XPathLiteral("#venue-info-" + venueID)
		partial := browser.XPathLiteral("venue-info-" + venueID)
		locs = append(locs,
			browser.ByXPath("//a[@data-target="+target+"]"),
			browser.ByXPath("//a[contains(@data-target, "+partial+")]"),
		)
	}
	return append(locs,
		browser.ByXPath("//h3[@class='panel-title']//a[contains(text(), "+name+")]"),
		browser.ByPartialLinkText(venueName),
		browser.ByXPath("//div[@class='panel panel-default']//a[normalize-space()="+name+"]"),
	)
}

// CalendarLocators finds the venue's date picker once its panel is open.
func CalendarLocators(venueID string) []browser.Locator {
	if venueID == "" {
		return []browser.Locator{browser.ByCSS(".ui-datepicker-inline"), browser.ByCSS("[id^='session-date-']")}
	}
	return []browser.Locator{
		browser.ByID("session-date-" + venueID),
		browser.ByCSS("#venue-info-" + venueID + " .ui-datepicker-inline"),
	}
}
