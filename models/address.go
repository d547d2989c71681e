package models

import "strings"

// ZeroAddress is the all-zero account the front-ends treat as "unassigned".
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Address is a normalized caller identity. The empty Address means unassigned.
type Address string

// NewAddress trims and lowercases s. The zero account normalizes to the empty Address.
func NewAddress(s string) Address {
	a := strings.ToLower(strings.TrimSpace(s))
	if a == ZeroAddress {
		return ""
	}
	return Address(a)
}

// IsZero reports whether the address is unassigned
func (a Address) IsZero() bool {
	return a == ""
}

func (a Address) String() string {
	return string(a)
}
