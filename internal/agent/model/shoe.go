package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shoe is a catalog record as exposed to the model and API clients.
type Shoe struct {
	ID       string  `json:"_id,omitempty"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Gender   string  `json:"gender"`
	Sizes    []int   `json:"sizes"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	InStock  bool    `json:"in_stock"`
	ImageURL string  `json:"image,omitempty"`
}

// SearchCriteria holds optional catalog filters. Empty strings and empty
// NumberArgs mean the criterion is absent.
type SearchCriteria struct {
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	Color       string    `json:"color,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	PriceMin    NumberArg `json:"price_min,omitempty"`
	PriceMax    NumberArg `json:"price_max,omitempty"`
	Size        NumberArg `json:"size,omitempty"`
	InStockOnly *bool     `json:"in_stock_only,omitempty"`
	MinRating   NumberArg `json:"min_rating,omitempty"`
}

// StockOnly reports whether out-of-stock shoes are excluded. Defaults to true.
func (c SearchCriteria) StockOnly() bool {
	return c.InStockOnly == nil || *c.InStockOnly
}

// NumberArg is a numeric argument as produced by a language model: a JSON
// number, a numeric string, or null. Parsing is deferred so that a bad value
// surfaces as an invalid-argument error instead of a decode failure.
type NumberArg string

func (n *NumberArg) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberArg(strings.TrimSpace(s))
	default:
		*n = NumberArg(b)
	}
	return nil
}

func (n NumberArg) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("null"), nil
	}
	if _, err := n.Float64(); err != nil {
		return json.Marshal(string(n))
	}
	return []byte(n), nil
}

// IsSet reports whether a value was supplied.
func (n NumberArg) IsSet() bool {
	return strings.TrimSpace(string(n)) != ""
}

// Float64 parses the value. Non-finite values are rejected.
func (n NumberArg) Float64() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", string(n))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", string(n))
	}
	return v, nil
}

// Int parses the value and truncates it towards zero.
func (n NumberArg) Int() (int, error) {
	v, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Number builds a NumberArg from a float.
func Number(v float64) NumberArg {
	return NumberArg(strconv.FormatFloat(v, 'f', -1, 64))
}
