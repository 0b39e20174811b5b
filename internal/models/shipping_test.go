package models

import "testing"

func TestComputeShippingBelowThreshold(t *testing.T) {
	s := Settings{ShippingCost: 6.5, FreeShippingThreshold: 50, ShippingEnabled: true}
	calc := ComputeShipping(s, 30)

	if calc.IsFree {
		t.Fatal("expected paid shipping below threshold")
	}
	if calc.ShippingCost != 6.5 || calc.Total != 36.5 {
		t.Fatalf("unexpected calculation: %+v", calc)
	}
}

func TestComputeShippingFreeAtThreshold(t *testing.T) {
	s := Settings{ShippingCost: 6.5, FreeShippingThreshold: 50, ShippingEnabled: true}
	calc := ComputeShipping(s, 50)

	if !calc.IsFree || calc.ShippingCost != 0 || calc.Total != 50 {
		t.Fatalf("expected free shipping at threshold, got %+v", calc)
	}
}

func TestComputeShippingDisabled(t *testing.T) {
	s := Settings{ShippingCost: 6.5, FreeShippingThreshold: 50, ShippingEnabled: false}
	calc := ComputeShipping(s, 10)

	if !calc.IsFree || calc.Total != 10 {
		t.Fatalf("expected no shipping cost when disabled, got %+v", calc)
	}
}

func TestComputeShippingZeroThresholdNeverFree(t *testing.T) {
	s := Settings{ShippingCost: 6.5, FreeShippingThreshold: 0, ShippingEnabled: true}
	calc := ComputeShipping(s, 1000)

	if calc.IsFree {
		t.Fatal("threshold 0 means no free-shipping offer")
	}
}

func TestOrderStatusEnum(t *testing.T) {
	for _, valid := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if !IsValidOrderStatus(valid) {
			t.Fatalf("%q should be a valid status", valid)
		}
	}
	for _, invalid := range []string{"", "Pending", "refunded", "done"} {
		if IsValidOrderStatus(invalid) {
			t.Fatalf("%q should not be a valid status", invalid)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	p := Product{Price: 6.9, Formati: map[string]float64{"9": 14.5, "16": 24.0}}

	if got := p.FormatPrice("9"); got != 14.5 {
		t.Fatalf("expected format price 14.5, got %v", got)
	}
	if got := p.FormatPrice("25"); got != 6.9 {
		t.Fatalf("unknown format must fall back to base price, got %v", got)
	}
	if got := p.FormatPrice(""); got != 6.9 {
		t.Fatalf("empty format must use base price, got %v", got)
	}
}
