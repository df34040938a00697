package models

import "testing"

func TestStockStatusFor(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		threshold int
		want      StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, StockStatusOut},
		{"zero quantity wins over zero threshold", 0, 0, StockStatusOut},
		{"zero quantity wins over negative threshold", 0, -5, StockStatusOut},
		{"quantity below threshold is low", 3, 10, StockStatusLow},
		{"quantity equal to threshold is low", 10, 10, StockStatusLow},
		{"one above threshold is in stock", 11, 10, StockStatusIn},
		{"large quantity is in stock", 500, 10, StockStatusIn},
		{"threshold zero and positive quantity is in stock", 1, 0, StockStatusIn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StockStatusFor(tc.quantity, tc.threshold); got != tc.want {
				t.Errorf("StockStatusFor(%d, %d) = %q, want %q", tc.quantity, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestInventoryRowStatus(t *testing.T) {
	row := InventoryRow{Quantity: 4, Threshold: 10}
	if row.Status() != StockStatusLow {
		t.Errorf("expected low stock, got %q", row.Status())
	}
}
