package models

import "fmt"

// Package is a bookable service package. Price is a whole currency amount,
// never negative.
type Package struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsVideo     bool   `json:"isVideo"`
}

// PackageDetails is the create/update input for a package.
type PackageDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	IsVideo     bool   `json:"isVideo"`
}

func (d PackageDetails) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
