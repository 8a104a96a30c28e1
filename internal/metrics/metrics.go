// Package metrics derives KPI snapshots from the sales ledger and
// customer list. Compute is a pure function over already-fetched
// extents; it never touches the store.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"bizdash/m/domain"
)

// Compute aggregates the given sales and customers into a
// MetricsSnapshot. Empty extents yield zero-valued KPIs; no aggregate
// ever divides by zero.
func Compute(sales []domain.Sale, customers []domain.Customer) domain.MetricsSnapshot {
	snap := domain.MetricsSnapshot{
		WeeklyRevenue:    []domain.WeekRevenue{},
		RevenueByProduct: map[string]float64{},
		ChurnBreakdown:   map[string]int64{"Active": 0, "Churned": 0},
	}

	var totalSelling float64
	weekly := map[string]float64{}
	for _, sale := range sales {
		snap.TotalRevenue += sale.Revenue
		snap.TotalQuantity += sale.Quantity
		totalSelling += sale.TotalSellingPrice
		snap.RevenueByProduct[sale.Product] += sale.Revenue

		if ts, err := time.Parse(domain.TimeLayout, sale.SaleDate); err == nil {
			year, week := ts.ISOWeek()
			weekly[fmt.Sprintf("%d-W%02d", year, week)] += sale.Revenue
		}
	}
	if len(sales) > 0 {
		snap.AvgOrderValue = totalSelling / float64(len(sales))
	}
	if totalSelling > 0 {
		snap.ProfitMargin = snap.TotalRevenue / totalSelling * 100
	}

	weeks := make([]string, 0, len(weekly))
	for week := range weekly {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	for _, week := range weeks {
		snap.WeeklyRevenue = append(snap.WeeklyRevenue, domain.WeekRevenue{Week: week, Revenue: weekly[week]})
	}

	snap.TotalCustomers = int64(len(customers))
	for _, customer := range customers {
		if customer.IsActive {
			snap.ActiveCustomers++
			snap.ChurnBreakdown["Active"]++
		} else {
			snap.ChurnBreakdown["Churned"]++
		}
	}
	if snap.TotalCustomers > 0 {
		snap.ChurnRate = float64(snap.TotalCustomers-snap.ActiveCustomers) / float64(snap.TotalCustomers) * 100
	}

	return snap
}
