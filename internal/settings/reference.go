package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stripe2qbo/console/internal/qbo"
)

// API is the slice of the backend the settings screen and CLI need.
type API interface {
	Accounts(ctx context.Context) ([]qbo.Account, error)
	Vendors(ctx context.Context) ([]qbo.Vendor, error)
	TaxCodes(ctx context.Context) ([]qbo.TaxCode, error)
	Settings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// ReferenceData bundles everything the settings form renders from.
type ReferenceData struct {
	Accounts []qbo.Account
	Vendors  []qbo.Vendor
	TaxCodes []qbo.TaxCode
	Saved    *Settings
}

// LoadReferenceData fetches accounts, vendors, tax codes and saved settings
// concurrently and waits for all four. Every task runs to completion and
// every failure is reported, not just the first.
func LoadReferenceData(ctx context.Context, api API) (ReferenceData, error) {
	var (
		rd   ReferenceData
		wg   sync.WaitGroup
		errs [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		accounts, err := api.Accounts(ctx)
		if err != nil {
			errs[0] = fmt.Errorf("accounts: %w", err)
			return
		}
		rd.Accounts = accounts
	}()
	go func() {
		defer wg.Done()
		vendors, err := api.Vendors(ctx)
		if err != nil {
			errs[1] = fmt.Errorf("vendors: %w", err)
			return
		}
		rd.Vendors = vendors
	}()
	go func() {
		defer wg.Done()
		taxCodes, err := api.TaxCodes(ctx)
		if err != nil {
			errs[2] = fmt.Errorf("tax codes: %w", err)
			return
		}
		rd.TaxCodes = taxCodes
	}()
	go func() {
		defer wg.Done()
		saved, err := api.Settings(ctx)
		if err != nil {
			errs[3] = fmt.Errorf("settings: %w", err)
			return
		}
		rd.Saved = saved
	}()
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return ReferenceData{}, err
	}
	return rd, nil
}

// Effective returns the mapping the form should show: computed defaults
// overlaid with whatever was previously saved.
func (rd ReferenceData) Effective() Settings {
	defaults := Defaults(rd.Accounts, rd.Vendors, rd.TaxCodes)
	if rd.Saved == nil {
		return defaults
	}
	return Merge(defaults, *rd.Saved)
}
