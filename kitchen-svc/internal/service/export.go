package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud-kitchen/kitchen-svc/internal/domain"
)

var orderCSVHeader = []string{
	"Order ID", "Customer Name", "Phone", "Email", "Address", "Items",
	"Total Amount", "Status", "Payment Status", "Created At",
}

// Export renders the orders matching filters as indented JSON or CSV.
func (s *OrderService) Export(ctx context.Context, format domain.ExportFormat, filters domain.OrderFilters) ([]byte, error) {
	orders, err := s.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	switch format {
	case domain.ExportJSON:
		return json.MarshalIndent(orders, "", "  ")
	case domain.ExportCSV:
		return ordersCSV(orders)
	default:
		return nil, domain.NewValidationError("format", "format must be csv or json")
	}
}

func ordersCSV(orders []domain.OrderResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(orderCSVHeader); err != nil {
		return nil, err
	}
	for _, o := range orders {
		email := ""
		if o.CustomerEmail != nil {
			email = *o.CustomerEmail
		}
		record := []string{
			strconv.Itoa(o.ID),
			o.CustomerName,
			o.CustomerPhone,
			email,
			o.CustomerAddress,
			itemSummary(o.Items),
			o.TotalAmount.StringFixed(2),
			string(o.Status),
			string(o.PaymentStatus),
			o.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write orders csv: %w", err)
	}
	return buf.Bytes(), nil
}

// itemSummary renders lines as "Name (Size) x2; Other x1".
func itemSummary(items []domain.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.DisplayName()
		if item.SelectedSize != nil {
			name += " (" + *item.SelectedSize + ")"
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
