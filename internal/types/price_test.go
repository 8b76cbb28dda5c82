package types_test

import (
	"encoding/json"
	"testing"

	"github.com/pantryworks/recipedb/internal/types"
)

// TestParsePrice tests decimal parsing rules
func TestParsePrice(t *testing.T) {
	price, err := types.ParsePrice("12.50")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if price.String() != "12.50" {
		t.Errorf("Expected 12.50, got %s", price.String())
	}

	// One fractional digit widens to two
	price, err = types.ParsePrice("3.5")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if price.String() != "3.50" {
		t.Errorf("Expected 3.50, got %s", price.String())
	}

	// Whole numbers gain the fraction
	price, err = types.ParsePrice("7")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if price.String() != "7.00" {
		t.Errorf("Expected 7.00, got %s", price.String())
	}

	// Negatives round-trip and report Negative
	price, err = types.ParsePrice("-0.99")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !price.Negative() || price.String() != "-0.99" {
		t.Errorf("Expected -0.99 negative, got %s", price.String())
	}

	// Values fill the column to its top
	price, err = types.ParsePrice("9999.99")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if price.String() != "9999.99" {
		t.Errorf("Expected 9999.99, got %s", price.String())
	}

	// Values past the column range are rejected up front
	if _, err := types.ParsePrice("10000.00"); err == nil {
		t.Error("Expected error for a value past the column range")
	}

	// Absurd magnitudes must not wrap into a bogus positive value
	if _, err := types.ParsePrice("92233720368547758.00"); err == nil {
		t.Error("Expected error for an overflowing magnitude")
	}

	// More than two fractional digits is an error, never rounded
	if _, err := types.ParsePrice("1.005"); err == nil {
		t.Error("Expected error for three decimal places")
	}
	if _, err := types.ParsePrice(""); err == nil {
		t.Error("Expected error for empty value")
	}
	if _, err := types.ParsePrice("abc"); err == nil {
		t.Error("Expected error for non-decimal input")
	}
}

// TestPriceJSON tests that both JSON tokens parse and output is a string
func TestPriceJSON(t *testing.T) {
	var fromString types.Price
	if err := json.Unmarshal([]byte(`"5.25"`), &fromString); err != nil {
		t.Fatalf("Failed to unmarshal string token: %v", err)
	}

	var fromNumber types.Price
	if err := json.Unmarshal([]byte(`5.25`), &fromNumber); err != nil {
		t.Fatalf("Failed to unmarshal number token: %v", err)
	}

	if fromString != fromNumber {
		t.Errorf("String and number tokens should agree: %v vs %v", fromString, fromNumber)
	}

	out, err := json.Marshal(fromNumber)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(out) != `"5.25"` {
		t.Errorf("Expected serialized string \"5.25\", got %s", out)
	}

	var price types.Price
	if err := json.Unmarshal([]byte(`5.255`), &price); err == nil {
		t.Error("Expected error for a number with three decimal places")
	}
}

// TestPriceScan tests database scan conversions
func TestPriceScan(t *testing.T) {
	var price types.Price

	if err := price.Scan([]byte("9.99")); err != nil {
		t.Fatalf("Failed to scan bytes: %v", err)
	}
	if price.String() != "9.99" {
		t.Errorf("Expected 9.99, got %s", price.String())
	}

	if err := price.Scan("4.20"); err != nil {
		t.Fatalf("Failed to scan string: %v", err)
	}
	if price.String() != "4.20" {
		t.Errorf("Expected 4.20, got %s", price.String())
	}

	if err := price.Scan(int64(3)); err != nil {
		t.Fatalf("Failed to scan int64: %v", err)
	}
	if price.String() != "3.00" {
		t.Errorf("Expected 3.00, got %s", price.String())
	}

	if err := price.Scan(2.5); err != nil {
		t.Fatalf("Failed to scan float64: %v", err)
	}
	if price.String() != "2.50" {
		t.Errorf("Expected 2.50, got %s", price.String())
	}

	if err := price.Scan(true); err == nil {
		t.Error("Expected error for unsupported type")
	}
}
