package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"
)

var customerCSVHeader = []string{
	"Phone", "Name", "Email", "Total Orders", "Total Spent", "Avg Order Value",
	"Last Order", "Days Since Last Order", "Status",
}

func (s *AnalyticsService) ExportCustomers(ctx context.Context, format domain.ExportFormat) ([]byte, error) {
	analytics, err := s.Customers(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case domain.ExportJSON:
		return json.MarshalIndent(analytics.Customers, "", "  ")
	case domain.ExportCSV:
		return customersCSV(analytics.Customers)
	default:
		return nil, domain.ErrUnknownFormat
	}
}

func customersCSV(customers []domain.CustomerInsight) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(customerCSVHeader); err != nil {
		return nil, err
	}
	for _, c := range customers {
		email := ""
		if c.CustomerEmail != nil {
			email = *c.CustomerEmail
		}
		status := "Active"
		if c.IsInactive {
			status = "Inactive"
		}
		record := []string{
			c.CustomerPhone,
			c.CustomerName,
			email,
			strconv.Itoa(c.TotalOrders),
			c.TotalSpent.StringFixed(2),
			c.AverageOrderValue.StringFixed(2),
			c.LastOrderDate.UTC().Format(time.RFC3339),
			strconv.Itoa(c.DaysSinceLastOrder),
			status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write customers csv: %w", err)
	}
	return buf.Bytes(), nil
}
