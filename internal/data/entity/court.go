package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Amount is a money value as returned by the reservation API. The backend
// serializes decimals as strings ("25.00"), older endpoints as numbers.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", s, err)
		}
		*a = Amount(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	*a = Amount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.String())), nil
}

// String formats the amount with two decimals, e.g. "25.00".
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}

type Court struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PricePerHour Amount `json:"price_per_hour"`
	OpeningTime  string `json:"opening_time,omitempty"`
	ClosingTime  string `json:"closing_time,omitempty"`
	Image        string `json:"image,omitempty"`
}

// Hours returns the opening range label, empty when the backend sent no hours.
func (c Court) Hours() string {
	if c.OpeningTime == "" || c.ClosingTime == "" {
		return ""
	}
	return ClockLabel(c.OpeningTime) + " - " + ClockLabel(c.ClosingTime)
}
