//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/dataset"
	"github.com/adyen/shopcheck/internal/pages"
)

// searchFor opens the products page and submits term
func searchFor(t *testing.T, term string) *pages.ProductsPage {
	t.Helper()
	s := newSession(t)
	open(t, s, "/products")

	products := mustPage(pages.NewProductsPage(s.Page, pageOptions(t)...))(t)
	if err := products.SearchProduct(term); err != nil {
		t.Fatalf("Failed to search for %q: %v", term, err)
	}
	return products
}

// checkSearchedTitle expects the results heading to read "SEARCHED PRODUCTS"
func checkSearchedTitle(t *testing.T, products *pages.ProductsPage) {
	t.Helper()
	title, err := products.Title()
	if err != nil {
		t.Fatalf("Failed to read title: %v", err)
	}
	if !strings.Contains(strings.ToUpper(title), "SEARCHED PRODUCTS") {
		t.Errorf("Expected title to contain 'SEARCHED PRODUCTS', got '%s'", title)
	}
}

// TestSearch_ExistingProduct searches for a known term
// Feature: Product search
//
//	Scenario: Search for an existing product
//	  Given I am on the products page
//	  When I search for "dress"
//	  Then more than 0 products are shown
//	  And the title reads "SEARCHED PRODUCTS"
func TestSearch_ExistingProduct(t *testing.T) {
	t.Parallel()
	products := searchFor(t, dataset.SearchTerms[0])

	count, err := products.SearchResultsCount()
	if err != nil {
		t.Fatalf("Failed to count results: %v", err)
	}
	if count == 0 {
		t.Errorf("Expected results for %q, got none", dataset.SearchTerms[0])
	}

	checkSearchedTitle(t, products)
}

// TestSearch_Category searches for a category name
//
//	Scenario: Search by category
//	  Given I am on the products page
//	  When I search for "tops"
//	  Then more than 0 products are shown
//	  And the title reads "SEARCHED PRODUCTS"
func TestSearch_Category(t *testing.T) {
	t.Parallel()
	products := searchFor(t, "tops")

	count, err := products.SearchResultsCount()
	if err != nil {
		t.Fatalf("Failed to count results: %v", err)
	}
	if count == 0 {
		t.Error("Expected results for 'tops', got none")
	}
	checkSearchedTitle(t, products)
}

// TestSearch_NoResults searches for a term nothing matches
//
//	Scenario: Search for a nonexistent product
//	  Given I am on the products page
//	  When I search for a random 20 character term
//	  Then no products are shown
func TestSearch_NoResults(t *testing.T) {
	t.Parallel()
	term := lo.RandomString(20, lo.LowerCaseLettersCharset)
	products := searchFor(t, term)

	count, err := products.SearchResultsCount()
	if err != nil {
		t.Fatalf("Failed to count results: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no results for %q, got %d", term, count)
	}
}

// TestSearch_Terms logs how many products each known term returns
//
//	Scenario Outline: Search for <term>
//	  Given I am on the products page
//	  When I search for <term>
//	  Then the number of results is recorded
func TestSearch_Terms(t *testing.T) {
	t.Parallel()
	for _, term := range dataset.SearchTerms {
		t.Run(term, func(t *testing.T) {
			t.Parallel()
			products := searchFor(t, term)

			count, err := products.SearchResultsCount()
			if err != nil {
				t.Fatalf("Failed to count results: %v", err)
			}
			t.Logf("search %q returned %d products", term, count)
		})
	}
}
