package order

import (
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/domain/model/kernel"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/errs"
)

// Address is a postal address tied to an order by foreign id. It is created
// once by the pull step and read-only afterwards, so it is modeled as a plain
// record rather than a guarded aggregate.
type Address struct {
	ID          kernel.UUID
	Name        string
	Company     string
	Street      string
	HouseNumber string
	City        string
	ZipCode     string
	CountryCode string
	Email       string
	Phone       string
}

// Validate checks the minimal field set a carrier needs to address a parcel.
func (a *Address) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return err
	}
	if a.Name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if a.Street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if a.City == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if a.ZipCode == "" {
		return errs.NewValueIsRequiredError("zipCode")
	}
	if a.CountryCode == "" {
		return errs.NewValueIsRequiredError("countryCode")
	}
	return nil
}
