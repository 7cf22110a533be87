package domain

import "testing"

func TestTransactionComplete(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "all fields present",
			tx:   Transaction{TransactionDate: "2022-09-08", ProductName: "Coffee", Price: "4.50", Category: "Dining"},
			want: true,
		},
		{
			name: "missing category",
			tx:   Transaction{TransactionDate: "2022-09-08", ProductName: "Coffee", Price: "4.50"},
			want: false,
		},
		{
			name: "whitespace only price",
			tx:   Transaction{TransactionDate: "2022-09-08", ProductName: "Coffee", Price: "   ", Category: "Dining"},
			want: false,
		},
		{
			name: "zero value",
			tx:   Transaction{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
