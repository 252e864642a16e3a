package enums

import "fmt"

// LotStatus tracks where a physical inventory lot sits in its stock lifecycle.
type LotStatus string

const (
	LotStatusInBond   LotStatus = "in_bond"
	LotStatusInStock  LotStatus = "in_stock"
	LotStatusReserved LotStatus = "reserved"
	LotStatusSold     LotStatus = "sold"
	LotStatusConsumed LotStatus = "consumed"
	LotStatusOther    LotStatus = "other"
)

var validLotStatuses = []LotStatus{
	LotStatusInBond,
	LotStatusInStock,
	LotStatusReserved,
	LotStatusSold,
	LotStatusConsumed,
	LotStatusOther,
}

var lotStatusDisplayNames = map[LotStatus]string{
	LotStatusInBond:   "In Bond",
	LotStatusInStock:  "In Stock",
	LotStatusReserved: "Reserved",
	LotStatusSold:     "Sold",
	LotStatusConsumed: "Consumed",
	LotStatusOther:    "Other",
}

// String implements fmt.Stringer.
func (s LotStatus) String() string {
	return string(s)
}

// Display returns the human-readable label used in exports.
func (s LotStatus) Display() string {
	if label, ok := lotStatusDisplayNames[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the value is a known LotStatus.
func (s LotStatus) IsValid() bool {
	for _, candidate := range validLotStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLotStatus converts raw input into a LotStatus.
func ParseLotStatus(value string) (LotStatus, error) {
	for _, candidate := range validLotStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lot status %q", value)
}
