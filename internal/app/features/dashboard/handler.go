// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Counter reports how many records a list holds.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type source struct {
	label string
	path  string
	c     Counter
}

// Card is one count tile.
type Card struct {
	Label  string
	Path   string
	Value  string
	Failed bool
	Error  string
}

type dashboardData struct {
	viewdata.BaseVM
	Cards []Card
}

type Handler struct {
	Admin    []source
	Provider []source
	Log      *zap.Logger
}

func NewHandler(stores *remote.Stores, logger *zap.Logger) *Handler {
	coupons := source{"Coupons", "/coupons", stores.Coupons}
	packages := source{"Packages", "/coupons/packages", stores.Packages}
	reels := source{"Reels", "/reels", stores.Reels}
	redeems := source{"Redemptions", "/redeems", stores.Redeems}
	return &Handler{
		Admin: []source{
			coupons, packages, reels, redeems,
			{"Providers", "/providers", stores.Providers},
			{"Complaints", "/complaints", stores.Complaints},
		},
		Provider: []source{coupons, packages, reels, redeems},
		Log:      logger,
	}
}

func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Admin dashboard", h.Admin)
}

func (h *Handler) ServeProvider(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "Provider dashboard", h.Provider)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, title string, sources []source) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(w, r, title, "/"),
		Cards:  h.cards(ctx, sources),
	}
	templates.Render(w, r, "dashboard", data)
}

// cards fetches every count concurrently. A failed count marks its own
// card and leaves the others intact.
func (h *Handler) cards(ctx context.Context, sources []source) []Card {
	cards := make([]Card, len(sources))
	var g errgroup.Group
	for i, s := range sources {
		g.Go(func() error {
			card := Card{Label: s.label, Path: s.path}
			n, err := s.c.Count(ctx)
			if err != nil {
				h.Log.Warn("dashboard count failed", zap.String("card", s.label), zap.Error(err))
				card.Value, card.Failed, card.Error = "-", true, apiclient.Describe(err)
			} else {
				card.Value = normalize.Count(int64(n))
			}
			cards[i] = card
			return nil
		})
	}
	_ = g.Wait()
	return cards
}
