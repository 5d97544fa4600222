// internal/circulation/invariant_test.go
package circulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"libtrack/internal/catalog"
	"libtrack/internal/config"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

// TestAvailabilityLedgerLockstep drives the engine with arbitrary
// interleavings of issue, return and pay actions and checks after every step
// that an item is unavailable exactly when one open loan references it.
func TestAvailabilityLedgerLockstep(t *testing.T) {
	bookNames := []string{"1984", "Brave New World", "The Great Gatsby"}
	usernames := []string{"user1", "user2", "user3"}

	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		cat := catalog.NewService()
		mem := membership.NewService()
		led := ledger.NewService()
		policy := config.PolicyConfig{LoanPeriodDays: 7, FineRatePerDay: 1.00}
		engine := NewService(cat, mem, led, policy, zap.NewNop())

		for _, name := range bookNames {
			_, err := cat.AddItem(ctx, catalog.TypeBook, name, "author")
			require.NoError(t, err)
		}
		for _, username := range usernames {
			_, err := mem.AddUser(ctx, username, username+"pass", membership.RoleUser, membership.SubscriptionNone)
			require.NoError(t, err)
		}

		now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			username := rapid.SampledFrom(usernames).Draw(rt, "username")
			book := rapid.SampledFrom(bookNames).Draw(rt, "book")
			now = now.Add(time.Duration(rapid.IntRange(0, 72).Draw(rt, "hours")) * time.Hour)

			switch rapid.IntRange(0, 2).Draw(rt, "action") {
			case 0:
				_, err := engine.IssueItem(ctx, username, catalog.TypeBook, book, now)
				if err != nil && !errors.Is(err, ErrItemUnavailable) {
					rt.Fatalf("unexpected issue error: %v", err)
				}
			case 1:
				_, err := engine.ReturnItem(ctx, username, catalog.TypeBook, book, now)
				if err != nil && !errors.Is(err, ledger.ErrNoOpenLoan) {
					rt.Fatalf("unexpected return error: %v", err)
				}
			case 2:
				if _, err := engine.PayFines(ctx, username, now); err != nil {
					rt.Fatalf("unexpected pay error: %v", err)
				}
			}

			checkLockstep(rt, ctx, cat, led)
		}
	})
}

func checkLockstep(rt *rapid.T, ctx context.Context, cat catalog.Service, led ledger.Service) {
	active, err := led.ListActive(ctx, "")
	if err != nil {
		rt.Fatalf("list active: %v", err)
	}
	onLoan := map[string]int{}
	for _, record := range active {
		onLoan[record.ItemName]++
	}
	for name, count := range onLoan {
		if count > 1 {
			rt.Fatalf("item %q has %d open loans", name, count)
		}
	}

	items, err := cat.ListItems(ctx, catalog.TypeBook, catalog.FilterAll)
	if err != nil {
		rt.Fatalf("list items: %v", err)
	}
	for _, item := range items {
		if item.Available == (onLoan[item.Name] == 1) {
			rt.Fatalf("item %q availability %v disagrees with %d open loans", item.Name, item.Available, onLoan[item.Name])
		}
	}
}
