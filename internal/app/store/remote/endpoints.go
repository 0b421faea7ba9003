package remote

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// API endpoint tables, one per entity.
var (
	CouponEndpoints = Endpoints{
		List:         "/coupons/index",
		Show:         "/coupons/{id}",
		Create:       "/coupons/create",
		Update:       "/coupons/update/{id}",
		Delete:       "/coupons/{id}",
		UpdateMethod: "POST",
	}
	CategoryEndpoints = Endpoints{
		List:   "/categories/index",
		Show:   "/categories/{id}",
		Create: "/categories/create",
		Update: "/categories/{id}",
		Delete: "/categories/{id}",
	}
	ComplaintEndpoints = Endpoints{
		List:   "/complains/all",
		Delete: "/complains/{id}",
	}
	PackageEndpoints = Endpoints{
		List:   "/packages/index",
		Create: "/packages/create",
		Delete: "/packages/{id}",
	}
	CouponTypeEndpoints = Endpoints{
		List:   "/coupon-types/index",
		Create: "/coupon-types/create",
		Delete: "/coupon-types/{id}",
	}
	ReelEndpoints = Endpoints{
		List:   "/reels/index",
		Create: "/reels/create",
		Delete: "/reels/{id}",
	}
	RedeemEndpoints = Endpoints{
		List: "/redeems/my-redeems",
	}
	BannerEndpoints = Endpoints{
		List:   "/banners/index",
		Create: "/banners/create",
		Delete: "/banners/{id}",
	}
	SeasonalEventEndpoints = Endpoints{
		List:   "/seasonal-events/index",
		Create: "/seasonal-events/create",
		Delete: "/seasonal-events/{id}",
	}
	ProviderEndpoints = Endpoints{
		List:   "/providers/index",
		Delete: "/providers/{id}",
	}
)

// Stores bundles every entity store.
type Stores struct {
	Coupons        *Store[models.Coupon]
	Categories     *Store[models.Category]
	Complaints     *Store[models.Complaint]
	Packages       *Store[models.Package]
	CouponTypes    *Store[models.CouponType]
	Reels          *Store[models.Reel]
	Redeems        *Store[models.Redeem]
	Banners        *Store[models.Banner]
	SeasonalEvents *Store[models.SeasonalEvent]
	Providers      *Store[models.Provider]
}

// NewStores builds every entity store on api.
func NewStores(api *apiclient.Client, logger *zap.Logger) *Stores {
	return &Stores{
		Coupons:        New[models.Coupon](api, "coupon", CouponEndpoints, logger),
		Categories:     New[models.Category](api, "category", CategoryEndpoints, logger),
		Complaints:     New[models.Complaint](api, "complaint", ComplaintEndpoints, logger),
		Packages:       New[models.Package](api, "package", PackageEndpoints, logger),
		CouponTypes:    New[models.CouponType](api, "coupon type", CouponTypeEndpoints, logger),
		Reels:          New[models.Reel](api, "reel", ReelEndpoints, logger),
		Redeems:        New[models.Redeem](api, "redeem", RedeemEndpoints, logger),
		Banners:        New[models.Banner](api, "banner", BannerEndpoints, logger),
		SeasonalEvents: New[models.SeasonalEvent](api, "seasonal event", SeasonalEventEndpoints, logger),
		Providers:      New[models.Provider](api, "provider", ProviderEndpoints, logger),
	}
}

// choiceLimit bounds the records offered in a dialog select.
const choiceLimit = 100

// CouponChoices lists coupons for attach pickers.
func (s *Stores) CouponChoices(ctx context.Context) ([]models.Coupon, error) {
	page, err := s.Coupons.List(ctx, listctl.Query{Page: 1, PerPage: choiceLimit})
	return page.Items, err
}

// ProviderChoices lists providers for category assignment.
func (s *Stores) ProviderChoices(ctx context.Context) ([]models.Provider, error) {
	page, err := s.Providers.List(ctx, listctl.Query{Page: 1, PerPage: choiceLimit})
	return page.Items, err
}

// CouponTypeChoices lists coupon types for the coupon dialog.
func (s *Stores) CouponTypeChoices(ctx context.Context) ([]models.CouponType, error) {
	page, err := s.CouponTypes.List(ctx, listctl.Query{Page: 1, PerPage: choiceLimit})
	return page.Items, err
}
