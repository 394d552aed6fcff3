package product

import "testing"

func TestOffset(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{page: -3, want: 0},
		{page: 0, want: 0},
		{page: 1, want: 0},
		{page: 2, want: 12},
		{page: 10, want: 108},
	}

	for _, tt := range tests {
		if got := Offset(tt.page); got != tt.want {
			t.Fatalf("Offset(%d): expected %d, got %d", tt.page, tt.want, got)
		}
	}
}

func TestPages(t *testing.T) {
	for total := 0; total <= 100; total++ {
		want := total / PageSize
		if total%PageSize != 0 {
			want++
		}
		if got := Pages(total); got != want {
			t.Fatalf("Pages(%d): expected %d, got %d", total, want, got)
		}
	}
}
