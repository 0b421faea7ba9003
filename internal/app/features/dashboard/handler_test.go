package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"go.uber.org/zap"
)

type fixedCount struct {
	n     int
	err   error
	calls *atomic.Int32
}

func (f fixedCount) Count(ctx context.Context) (int, error) {
	if f.calls != nil {
		f.calls.Add(1)
	}
	return f.n, f.err
}

func TestCards_KeepsOrderAndIsolatesFailures(t *testing.T) {
	var calls atomic.Int32
	h := &Handler{Log: zap.NewNop()}
	cards := h.cards(context.Background(), []source{
		{"Coupons", "/coupons", fixedCount{n: 1234, calls: &calls}},
		{"Reels", "/reels", fixedCount{err: &apiclient.Error{Status: 500, Message: "boom"}, calls: &calls}},
		{"Redemptions", "/redeems", fixedCount{err: errors.Join(apiclient.ErrNetwork, errors.New("dial")), calls: &calls}},
	})

	if calls.Load() != 3 {
		t.Errorf("calls: %d", calls.Load())
	}
	if cards[0].Label != "Coupons" || cards[0].Value != "1,234" || cards[0].Failed {
		t.Errorf("card 0: %+v", cards[0])
	}
	if !cards[1].Failed || cards[1].Error != "500: boom" || cards[1].Value != "-" {
		t.Errorf("card 1: %+v", cards[1])
	}
	if !cards[2].Failed {
		t.Errorf("card 2: %+v", cards[2])
	}
}

func TestNewHandler_CountsFromAPI(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("GET", "/coupons/index", 200, `{"data":{"data":[{"id":1}],"total":42,"last_page":42}}`)
	h := NewHandler(remote.NewStores(api.Client(t), zap.NewNop()), zap.NewNop())

	if len(h.Provider) != 4 || len(h.Admin) != 6 {
		t.Fatalf("sources: admin %d provider %d", len(h.Admin), len(h.Provider))
	}
	cards := h.cards(context.Background(), h.Provider[:1])
	if cards[0].Value != "42" {
		t.Errorf("coupons card: %+v", cards[0])
	}
	calls := api.CallsTo("GET", "/coupons/index")
	if len(calls) != 1 || calls[0].Query != "page=1&per_page=1" {
		t.Errorf("calls: %+v", calls)
	}
}
