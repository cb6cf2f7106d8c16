package hisab

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{INR(1250.5), "₹1,250.50"},
		{INR(0), "₹0.00"},
		{NO(12), "₹12.00"},
		{INR(-40), "-₹40.00"},
		{M(3.456, "USD"), "$3.46"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	sum := INR(0.1).Add(INR(0.2))
	if !sum.Equal(INR(0.3)) {
		t.Errorf("0.1+0.2 = %v, want exact 0.3", sum.Decimal())
	}
	if got := NO(5).Sub(INR(8)); got.Currency() != "INR" || !got.Equal(INR(-3)) {
		t.Errorf("Sub() = %v %q, want -3 INR", got, got.Currency())
	}
	if !INR(-3).Abs().Equal(INR(3)) || !INR(3).Neg().IsNegative() {
		t.Errorf("Abs/Neg are wrong")
	}
	if INR(1).Equal(M(1, "USD")) {
		t.Errorf("1 INR equals 1 USD")
	}
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(INR(1250.505))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "1250.51" {
		t.Errorf("Marshal() = %s, want 1250.51", b)
	}
	var m Money
	if err := json.Unmarshal([]byte("42.5"), &m); err != nil {
		t.Fatal(err)
	}
	if !m.Equal(INR(42.5)) {
		t.Errorf("Unmarshal() = %v, want 42.5", m.Decimal())
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney(" 99.90 ", "INR")
	if err != nil || !m.Equal(INR(99.9)) {
		t.Errorf("ParseMoney() = %v, %v", m, err)
	}
	if _, err := ParseMoney("ninety", "INR"); err == nil {
		t.Errorf("ParseMoney(ninety) succeeded")
	}
}
