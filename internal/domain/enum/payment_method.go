package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod is how a bill was settled. The zero value means no method
// has been chosen yet.
type PaymentMethod int

const (
	PaymentMethodNone  PaymentMethod = 0
	PaymentMethodCash  PaymentMethod = 1
	PaymentMethodQR    PaymentMethod = 2
	PaymentMethodCard  PaymentMethod = 3
	PaymentMethodOther PaymentMethod = 4
)

var paymentMethodNames = [...]string{"", "cash", "qr", "card", "other"}

func (m PaymentMethod) String() string {
	if m < 0 || int(m) >= len(paymentMethodNames) {
		return ""
	}
	return paymentMethodNames[m]
}

// IsValid reports whether m names a real settlement method.
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodOther
}

// PaymentMethods lists every valid method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodQR, PaymentMethodCard, PaymentMethodOther}
}

// ParsePaymentMethod maps a name (case-insensitive) to a method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, nil
	case "qr", "qr code", "promptpay":
		return PaymentMethodQR, nil
	case "card", "credit card":
		return PaymentMethodCard, nil
	case "other":
		return PaymentMethodOther, nil
	}
	return PaymentMethodNone, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	if str == "" {
		*m = PaymentMethodNone
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
