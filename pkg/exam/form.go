package exam

import (
	"context"
	"fmt"
	"time"

	"examwatch/pkg/browser"
	"examwatch/pkg/logger"

	"go.uber.org/zap"
)

// FormNavigator drives the booking site's search form up to the venue results.
type FormNavigator struct {
	timing Timing
}

// NewFormNavigator creates a navigator using the given delays and timeouts.
func NewFormNavigator(timing Timing) *FormNavigator {
	return &FormNavigator{timing: timing}
}

// PrepareSearch loads the search page and selects country, location and
// test type in order. Any control that never resolves aborts the navigation
// with a FormStepError naming the step.
func (n *FormNavigator) PrepareSearch(ctx context.Context, drv browser.Driver, cfg CheckConfig) error {
	log := logger.FromContext(ctx)
	resolver := browser.NewResolver(drv, cfg.ImplicitWait)

	if err := drv.Navigate(ctx, cfg.BaseURL); err != nil {
		return stepError(StepNavigate, err)
	}
	log.Info("Search page loaded", zap.String("url", cfg.BaseURL))

	if err := sleep(ctx, n.timing.PageSettle); err != nil {
		return stepError(StepNavigate, err)
	}

	steps := []struct {
		name     string
		locators []browser.Locator
		choose   func(el *browser.Element) error
		settle   time.Duration
		value    string
	}{
		{
			name:     StepCountry,
			locators: CountrySelectLocators,
			choose:   func(el *browser.Element) error { return drv.SelectByValue(ctx, el, cfg.CountryID) },
			settle:   n.timing.AfterCountry,
			value:    cfg.CountryID,
		},
		{
			name:     StepLocation,
			locators: LocationSelectLocators,
			choose:   func(el *browser.Element) error { return drv.SelectByLabel(ctx, el, cfg.Location) },
			settle:   n.timing.AfterLocation,
			value:    cfg.Location,
		},
		{
			name:     StepTestType,
			locators: TestTypeSelectLocators,
			choose:   func(el *browser.Element) error { return drv.SelectByLabel(ctx, el, cfg.TestType) },
			settle:   n.timing.AfterTestType,
			value:    cfg.TestType,
		},
	}

	for _, step := range steps {
		res := resolver.Resolve(ctx, step.locators, n.timing.ControlTimeout, false)
		if !res.Found() {
			return stepError(step.name, fmt.Errorf("%w after %d attempts", ErrControlNotFound, res.Attempts))
		}
		if err := step.choose(res.Element); err != nil {
			return stepError(step.name, err)
		}
		log.Info("Form option selected",
			zap.String("step", step.name),
			zap.String("value", step.value),
			zap.Stringer("locator", res.Locator))

		if err := sleep(ctx, step.settle); err != nil {
			return stepError(step.name, err)
		}
	}

	return nil
}

// Login signs in with creds. The caller decides whether it runs at all; the
// search flow itself works anonymously.
func (n *FormNavigator) Login(ctx context.Context, drv browser.Driver, cfg CheckConfig, creds Credentials) error {
	log := logger.FromContext(ctx)
	resolver := browser.NewResolver(drv, cfg.ImplicitWait)

	if err := drv.Navigate(ctx, cfg.BaseURL); err != nil {
		return stepError(StepLogin, err)
	}
	if err := sleep(ctx, n.timing.PageSettle); err != nil {
		return stepError(StepLogin, err)
	}

	link, err := n.require(ctx, resolver, "login link", LoginLinkLocators, n.timing.ControlTimeout, true)
	if err != nil {
		return err
	}
	if err := drv.Click(ctx, link); err != nil {
		return stepError(StepLogin, err)
	}
	if err := sleep(ctx, n.timing.AfterLoginClick); err != nil {
		return stepError(StepLogin, err)
	}

	username, err := n.require(ctx, resolver, "username field", UsernameLocators, n.timing.ControlTimeout, false)
	if err != nil {
		return err
	}
	if err := drv.SendKeys(ctx, username, creds.Username); err != nil {
		return stepError(StepLogin, err)
	}

	password, err := n.require(ctx, resolver, "password field", PasswordLocators, n.timing.LoginFieldTimeout, false)
	if err != nil {
		return err
	}
	if err := drv.SendKeys(ctx, password, creds.Password); err != nil {
		return stepError(StepLogin, err)
	}

	submit, err := n.require(ctx, resolver, "login button", LoginButtonLocators, n.timing.LoginFieldTimeout, true)
	if err != nil {
		return err
	}
	if err := drv.Click(ctx, submit); err != nil {
		return stepError(StepLogin, err)
	}
	if err := sleep(ctx, n.timing.AfterLoginSend); err != nil {
		return stepError(StepLogin, err)
	}

	// The account menu only renders for an authenticated session.
	if _, err := n.require(ctx, resolver, "account marker", LoginSuccessLocators, n.timing.ControlTimeout, false); err != nil {
		return err
	}

	log.Info("Logged in", zap.String("username", creds.Username))
	return nil
}

func (n *FormNavigator) require(ctx context.Context, r *browser.Resolver, what string, locators []browser.Locator, timeout time.Duration, clickable bool) (*browser.Element, error) {
	res := r.Resolve(ctx, locators, timeout, clickable)
	if !res.Found() {
		return nil, stepError(StepLogin, fmt.Errorf("%s: %w", what, ErrControlNotFound))
	}
	return res.Element, nil
}
