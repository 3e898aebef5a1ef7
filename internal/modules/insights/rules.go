package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrinedata/varejo-backend/internal/modules/inventory"
)

// A rule inspects the context and either produces an insight or stays quiet.
// Rules are independent: every applicable rule fires, in list order.
type rule func(c *Context) *Insight

var rules = []rule{
	lowStockTopSeller,
	expiringSoon,
	slowMovers,
	mostProfitable,
}

const lowStockThreshold = 10

// lowStockTopSeller warns when the best-selling product of the last 30 days
// is nearly out of stock.
func lowStockTopSeller(c *Context) *Insight {
	var top *inventory.ProductView
	for _, v := range c.Views {
		if v.QuantitySold30d == 0 {
			continue
		}
		if top == nil || v.QuantitySold30d > top.QuantitySold30d {
			top = v
		}
	}
	if top == nil || top.TotalStock >= lowStockThreshold {
		return nil
	}
	return &Insight{
		Kind:        KindWarning,
		Title:       "Low stock on your top seller",
		Description: fmt.Sprintf("%s sold %d units in the last 30 days but only %d remain in stock.", top.Name, top.QuantitySold30d, top.TotalStock),
		Metric:      fmt.Sprintf("%d units left", top.TotalStock),
		Action:      "inventory",
	}
}

const expiryHorizonDays = 15

// expiringSoon warns about the batch closest to expiry within the next 15
// days. Already-expired batches are not reported here.
func expiringSoon(c *Context) *Insight {
	soonestDays := 0
	var soonest *inventory.ProductView
	today := c.Now.Truncate(24 * time.Hour)
	for _, v := range c.Views {
		for _, b := range v.Batches {
			if b.Quantity == 0 {
				continue
			}
			days := int(b.ExpiresAt.Truncate(24 * time.Hour).Sub(today).Hours() / 24)
			if days < 1 || days > expiryHorizonDays {
				continue
			}
			if soonest == nil || days < soonestDays {
				soonest = v
				soonestDays = days
			}
		}
	}
	if soonest == nil {
		return nil
	}
	return &Insight{
		Kind:        KindWarning,
		Title:       "Stock expiring soon",
		Description: fmt.Sprintf("A batch of %s expires in %d day(s). Consider a promotion before it is lost.", soonest.Name, soonestDays),
		Metric:      fmt.Sprintf("%d day(s)", soonestDays),
		Action:      "inventory",
	}
}

const slowMoverStock = 50

// slowMovers flags products sitting on heavy stock with zero sales in the
// last 30 days.
func slowMovers(c *Context) *Insight {
	count := 0
	var heaviest *inventory.ProductView
	for _, v := range c.Views {
		if v.TotalStock <= slowMoverStock || v.QuantitySold30d > 0 {
			continue
		}
		count++
		if heaviest == nil || v.TotalStock > heaviest.TotalStock {
			heaviest = v
		}
	}
	if heaviest == nil {
		return nil
	}
	return &Insight{
		Kind:        KindInfo,
		Title:       "Slow-moving stock",
		Description: fmt.Sprintf("%d product(s) with more than %d units had no sales in 30 days. %s is the largest, with %d units.", count, slowMoverStock, heaviest.Name, heaviest.TotalStock),
		Metric:      fmt.Sprintf("%d product(s)", count),
		Action:      "inventory",
	}
}

var profitFloor = decimal.NewFromInt(100)

// mostProfitable highlights the product with the highest aggregate profit
// over the last 30 days, when that profit clears the floor.
func mostProfitable(c *Context) *Insight {
	var best *inventory.ProductView
	var bestProfit decimal.Decimal
	for _, v := range c.Views {
		if v.QuantitySold30d == 0 {
			continue
		}
		profit := v.Revenue30d.Sub(v.AvgCost.Mul(decimal.NewFromInt(int64(v.QuantitySold30d))))
		if profit.IsNegative() {
			continue
		}
		if best == nil || profit.GreaterThan(bestProfit) {
			best = v
			bestProfit = profit
		}
	}
	if best == nil || !bestProfit.GreaterThan(profitFloor) {
		return nil
	}
	return &Insight{
		Kind:        KindSuccess,
		Title:       "Most profitable product",
		Description: fmt.Sprintf("%s generated %s in profit over the last 30 days.", best.Name, bestProfit.StringFixed(2)),
		Metric:      bestProfit.StringFixed(2),
		Action:      "dashboard",
	}
}

// noInsight is the neutral placeholder emitted when no rule fires.
func noInsight() *Insight {
	return &Insight{
		Kind:        KindNeutral,
		Title:       "No insights yet",
		Description: "Record sales and keep your inventory up to date to unlock recommendations.",
	}
}
