package pages

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/adyen/shopcheck/internal/artifact"
	"github.com/adyen/shopcheck/internal/dataset"
)

// orderPlacedText is the confirmation heading after a successful payment
const orderPlacedText = "ORDER PLACED!"

// CheckoutPage covers order review, payment and the confirmation that follows
type CheckoutPage struct {
	Base
	sel CheckoutSelectors
}

// NewCheckoutPage wraps page with the default checkout selectors
func NewCheckoutPage(page playwright.Page, opts ...Option) (*CheckoutPage, error) {
	return NewCheckoutPageWithSelectors(page, DefaultCheckoutSelectors(), opts...)
}

// NewCheckoutPageWithSelectors wraps page with a custom selector catalog
func NewCheckoutPageWithSelectors(page playwright.Page, sel CheckoutSelectors, opts ...Option) (*CheckoutPage, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	base, err := newBase(page, "CheckoutPage", opts)
	if err != nil {
		return nil, err
	}
	return &CheckoutPage{Base: base, sel: sel}, nil
}

// Selectors returns the catalog the page was built with
func (p *CheckoutPage) Selectors() CheckoutSelectors {
	return p.sel
}

// IsLoaded reports whether the address, order summary and place order button are visible
func (p *CheckoutPage) IsLoaded() bool {
	p.logger.Info("Checking if checkout page is loaded")
	return p.IsVisible(p.sel.AddressDetails, p.timeouts.Soft) &&
		p.IsVisible(p.sel.OrderInfo, p.timeouts.Soft) &&
		p.IsVisible(p.sel.PlaceOrderButton, p.timeouts.Soft)
}

// DeliveryAddress returns the delivery address block as rendered
func (p *CheckoutPage) DeliveryAddress() (string, bool, error) {
	p.logger.Info("Getting delivery address")
	if !p.IsVisible(p.sel.AddressDetails, p.timeouts.Soft) {
		return "", false, nil
	}
	text, err := p.Text(p.sel.AddressDetails)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}

// PlaceOrder moves on to payment and reports whether the card form appeared
func (p *CheckoutPage) PlaceOrder() (bool, error) {
	p.logger.Info("Placing order")
	if !p.IsVisible(p.sel.PlaceOrderButton, p.timeouts.Soft) {
		return false, nil
	}
	if err := p.clickAndSettle(p.sel.PlaceOrderButton); err != nil {
		return false, err
	}
	return p.IsVisible(p.sel.PaymentName, p.timeouts.Soft), nil
}

// CompletePayment submits card and reports whether the confirmation reads "ORDER PLACED!".
// It reports false without error when the card form is not shown.
func (p *CheckoutPage) CompletePayment(card dataset.Payment) (bool, error) {
	p.logger.Info("Completing payment", zap.String("name_on_card", card.NameOnCard))
	if !p.IsVisible(p.sel.PaymentName, p.timeouts.Soft) {
		p.logger.Warn("Payment form is not shown")
		return false, nil
	}
	fields := []struct{ selector, value string }{
		{p.sel.PaymentName, card.NameOnCard},
		{p.sel.PaymentCardNumber, card.CardNumber},
		{p.sel.PaymentCVC, card.CVC},
		{p.sel.PaymentExpiryMonth, card.ExpiryMonth},
		{p.sel.PaymentExpiryYear, card.ExpiryYear},
	}
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return false, err
		}
	}
	if err := p.clickAndSettle(p.sel.PaymentSubmit); err != nil {
		return false, err
	}
	msg, ok, err := p.ConfirmationMessage()
	if err != nil || !ok {
		return false, err
	}
	return strings.Contains(strings.ToUpper(msg), orderPlacedText), nil
}

// ConfirmationMessage returns the order confirmation heading, if shown
func (p *CheckoutPage) ConfirmationMessage() (string, bool, error) {
	if !p.IsVisible(p.sel.OrderPlaced, p.timeouts.Soft) {
		return "", false, nil
	}
	text, err := p.Text(p.sel.OrderPlaced)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}

// DownloadInvoice saves the invoice offered after payment and returns its path.
// It reports false without error when no download link is shown.
func (p *CheckoutPage) DownloadInvoice() (string, bool, error) {
	p.logger.Info("Downloading invoice")
	if !p.IsVisible(p.sel.DownloadInvoice, p.timeouts.Soft) {
		return "", false, nil
	}
	download, err := p.page.ExpectDownload(func() error {
		return p.Click(p.sel.DownloadInvoice)
	}, playwright.PageExpectDownloadOptions{Timeout: millis(p.timeouts.Navigation)})
	if err != nil {
		return "", false, fmt.Errorf("download invoice: %w", err)
	}

	suggested := download.SuggestedFilename()
	ext := strings.TrimPrefix(filepath.Ext(suggested), ".")
	if ext == "" {
		ext = "txt"
	}
	path, err := artifact.Path(p.downloadDir, "", strings.TrimSuffix(suggested, filepath.Ext(suggested)), ext, p.now())
	if err != nil {
		return "", false, err
	}
	if err := download.SaveAs(path); err != nil {
		return "", false, fmt.Errorf("save invoice to %s: %w", path, err)
	}
	p.logger.Info("Invoice saved", zap.String("path", path))
	return path, true, nil
}

// ContinueAfterOrder leaves the confirmation page; false when the continue button is not shown
func (p *CheckoutPage) ContinueAfterOrder() (bool, error) {
	p.logger.Info("Continuing after order")
	if !p.IsVisible(p.sel.ContinueButton, p.timeouts.Soft) {
		return false, nil
	}
	if err := p.clickAndSettle(p.sel.ContinueButton); err != nil {
		return false, err
	}
	return true, nil
}
