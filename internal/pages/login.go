package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/dataset"
)

// LoginPage covers /login, the signup form and session teardown
type LoginPage struct {
	Base
	sel LoginSelectors
}

// NewLoginPage wraps page with the default login selectors
func NewLoginPage(page playwright.Page, opts ...Option) (*LoginPage, error) {
	return NewLoginPageWithSelectors(page, DefaultLoginSelectors(), opts...)
}

// NewLoginPageWithSelectors wraps page with a custom selector catalog
func NewLoginPageWithSelectors(page playwright.Page, sel LoginSelectors, opts ...Option) (*LoginPage, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	base, err := newBase(page, "LoginPage", opts)
	if err != nil {
		return nil, err
	}
	return &LoginPage{Base: base, sel: sel}, nil
}

// Selectors returns the catalog the page was built with
func (p *LoginPage) Selectors() LoginSelectors {
	return p.sel
}

// IsLoaded reports whether the login email, password and button are visible
func (p *LoginPage) IsLoaded() bool {
	p.logger.Info("Checking if login page is loaded")
	return p.IsVisible(p.sel.LoginEmail, p.timeouts.Soft) &&
		p.IsVisible(p.sel.LoginPassword, p.timeouts.Soft) &&
		p.IsVisible(p.sel.LoginButton, p.timeouts.Soft)
}

// Login submits the credentials and reports whether the logout link appeared
func (p *LoginPage) Login(email, password string) (bool, error) {
	p.logger.Info("Logging in", zap.String("email", email))
	if err := p.Fill(p.sel.LoginEmail, email); err != nil {
		return false, err
	}
	if err := p.Fill(p.sel.LoginPassword, password); err != nil {
		return false, err
	}
	if err := p.clickAndSettle(p.sel.LoginButton); err != nil {
		return false, err
	}
	return p.IsVisible(p.sel.LogoutLink, p.timeouts.Soft), nil
}

// LoginError returns the login form's error banner, if shown
func (p *LoginPage) LoginError() (string, bool, error) {
	if !p.IsVisible(p.sel.ErrorMessage, p.timeouts.Soft) {
		return "", false, nil
	}
	text, err := p.Text(p.sel.ErrorMessage)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}

// Signup starts registration and reports whether the account form appeared
func (p *LoginPage) Signup(name, email string) (bool, error) {
	p.logger.Info("Signing up", zap.String("name", name), zap.String("email", email))
	if err := p.Fill(p.sel.SignupName, name); err != nil {
		return false, err
	}
	if err := p.Fill(p.sel.SignupEmail, email); err != nil {
		return false, err
	}
	if err := p.clickAndSettle(p.sel.SignupButton); err != nil {
		return false, err
	}
	return p.IsVisible(p.sel.SignupForm, p.timeouts.Soft), nil
}

// CompleteRegistration fills the account form that follows Signup and
// reports whether the "ACCOUNT CREATED!" heading is shown.
func (p *LoginPage) CompleteRegistration(user dataset.Registration) (bool, error) {
	p.logger.Info("Completing registration form")

	gender := p.sel.GenderMale
	if strings.EqualFold(user.Gender, "female") {
		gender = p.sel.GenderFemale
	}
	if err := p.Click(gender); err != nil {
		return false, err
	}
	if err := p.Fill(p.sel.Password, user.Password); err != nil {
		return false, err
	}

	selects := []struct{ selector, label string }{
		{p.sel.Days, user.Day},
		{p.sel.Months, user.Month},
		{p.sel.Years, user.Year},
	}
	for _, s := range selects {
		if err := p.selectLabel(s.selector, s.label); err != nil {
			return false, err
		}
	}

	for _, box := range []string{p.sel.Newsletter, p.sel.Optin} {
		if err := p.page.Locator(box).First().Check(); err != nil {
			return false, fmt.Errorf("check %q: %w", box, err)
		}
	}

	fields := []struct{ selector, value string }{
		{p.sel.FirstName, user.FirstName},
		{p.sel.LastName, user.LastName},
		{p.sel.Company, user.Company},
		{p.sel.Address1, user.Address1},
		{p.sel.Address2, user.Address2},
	}
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return false, err
		}
	}
	if err := p.selectLabel(p.sel.Country, user.Country); err != nil {
		return false, err
	}
	fields = []struct{ selector, value string }{
		{p.sel.State, user.State},
		{p.sel.City, user.City},
		{p.sel.Zipcode, user.Zipcode},
		{p.sel.MobileNumber, user.MobileNumber},
	}
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return false, err
		}
	}

	if err := p.clickAndSettle(p.sel.CreateAccountButton); err != nil {
		return false, err
	}
	if !p.IsVisible(p.sel.AccountCreatedMessage, p.timeouts.Soft) {
		return false, nil
	}
	heading, err := p.Text(p.sel.AccountCreatedMessage)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(heading), "ACCOUNT CREATED!"), nil
}

// Logout follows the logout link and reports whether the login form is back.
// It returns false without error when no user is logged in.
func (p *LoginPage) Logout() (bool, error) {
	p.logger.Info("Logging out")
	if !p.IsVisible(p.sel.LogoutLink, p.timeouts.Soft) {
		return false, nil
	}
	if err := p.clickAndSettle(p.sel.LogoutLink); err != nil {
		return false, err
	}
	return p.IsLoaded(), nil
}

// DeleteAccount follows the delete account link; false when it is not shown
func (p *LoginPage) DeleteAccount() (bool, error) {
	p.logger.Info("Deleting account")
	if !p.IsVisible(p.sel.DeleteAccountLink, p.timeouts.Soft) {
		return false, nil
	}
	if err := p.clickAndSettle(p.sel.DeleteAccountLink); err != nil {
		return false, err
	}
	return true, nil
}

func (p *LoginPage) selectLabel(selector, label string) error {
	_, err := p.page.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	if err != nil {
		return fmt.Errorf("select %q in %q: %w", label, selector, err)
	}
	return nil
}
