package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anviet/tuition-api/internal/domain/entity"
)

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		rate     float64
		discount float64
		want     float64
	}{
		{"group fee with discount", 1, 1600000, 10, 1440000},
		{"no discount", 2, 30000, 0, 60000},
		{"zero quantity", 0, 110000, 10, 0},
		{"full discount", 3, 100000, 100, 0},
		{"negative discount is a surcharge", 1, 100000, -10, 110000},
		{"discount over 100 goes negative", 1, 100000, 150, -50000},
		{"fractional quantity", 1.5, 100000, 0, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineAmount(tt.qty, tt.rate, tt.discount), 1e-9)
		})
	}
}

func TestLineAmount_NonIncreasingInDiscount(t *testing.T) {
	pairs := []struct{ qty, rate float64 }{
		{1, 1600000},
		{22, 110000},
		{2.5, 30000},
		{0, 500000},
	}
	const step = 0.5

	for _, p := range pairs {
		prev := LineAmount(p.qty, p.rate, 0)
		for d := step; d <= 100; d += step {
			cur := LineAmount(p.qty, p.rate, d)
			assert.LessOrEqualf(t, cur, prev, "qty=%v rate=%v discount=%v", p.qty, p.rate, d)
			prev = cur
		}
		assert.InDelta(t, 0, prev, 1e-6)
	}
}

func TestIsRefundLine(t *testing.T) {
	assert.True(t, IsRefundLine("Hoàn tiền ăn"))
	assert.True(t, IsRefundLine("HOÀN PHÍ can thiệp"))
	assert.True(t, IsRefundLine("Tiền ăn (hoàn lại)"))
	// decomposed form of "Hoàn"
	assert.True(t, IsRefundLine("Hoa\u0300n phí"))
	assert.False(t, IsRefundLine("Tiền ăn"))
	assert.False(t, IsRefundLine("Hoan phi"))
	assert.False(t, IsRefundLine(""))
}

func TestSignedAmount(t *testing.T) {
	charge := entity.TuitionLineItem{Content: "Tiền ăn", Quantity: 2, Rate: 30000}
	refund := entity.TuitionLineItem{Content: "Hoàn tiền ăn", Quantity: 2, Rate: 30000}

	assert.Equal(t, 60000.0, SignedAmount(charge))
	assert.Equal(t, -60000.0, SignedAmount(refund))
}

func TestGrandTotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, GrandTotal(nil))
	assert.Equal(t, 0.0, GrandTotal([]entity.TuitionLineItem{}))
}

func TestGrandTotal_DaycareScenario(t *testing.T) {
	items := []entity.TuitionLineItem{
		{Content: "Phí lớp nhóm", Quantity: 1, Rate: 1600000, Discount: 10},
		{Content: "Hoàn tiền ăn", Quantity: 5, Rate: 30000, Discount: 0},
	}

	assert.Equal(t, 1440000.0, SignedAmount(items[0]))
	assert.Equal(t, -150000.0, SignedAmount(items[1]))
	assert.Equal(t, 1290000.0, GrandTotal(items))
}

func TestGrandTotal_OrderIndependent(t *testing.T) {
	items := []entity.TuitionLineItem{
		{Content: "Phí lớp nhóm", Quantity: 1, Rate: 1600000, Discount: 10},
		{Content: "Tiền ăn", Quantity: 5, Rate: 30000},
		{Content: "Hoàn tiền ăn", Quantity: 2, Rate: 30000},
		{Content: "Phụ phí", Quantity: 1, Rate: 30000},
	}
	reversed := make([]entity.TuitionLineItem, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}

	assert.Equal(t, GrandTotal(items), GrandTotal(reversed))
}

func TestGrandTotal_RefundOnly(t *testing.T) {
	items := []entity.TuitionLineItem{
		{Content: "Hoàn phí can thiệp cá nhân 1", Quantity: 2, Rate: 135000, Discount: 10},
	}
	assert.InDelta(t, -243000.0, GrandTotal(items), 1e-6)
}
