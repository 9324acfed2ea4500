package models

import "testing"

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       Pagination
		total      int
		wantLimit  int
		wantOffset int
		wantPages  int
	}{
		{"default", DefaultPagination(), 60, 25, 0, 3},
		{"second page", Pagination{Page: 2, PageSize: 10}, 35, 10, 10, 4},
		{"oversized page is clamped", Pagination{Page: 2, PageSize: 500}, 250, 100, 100, 3},
		{"unset size", Pagination{Page: 3}, 60, 25, 50, 3},
		{"page below one", Pagination{Page: 0, PageSize: 10}, 5, 10, 0, 1},
		{"empty result", Pagination{Page: 1, PageSize: 10}, 0, 10, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Limit(); got != tt.wantLimit {
				t.Errorf("Limit() = %d, want %d", got, tt.wantLimit)
			}
			if got := tt.page.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := tt.page.TotalPages(tt.total); got != tt.wantPages {
				t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.wantPages)
			}
		})
	}
}
