package ifsc_integration_models

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// BankDetails is the branch payload returned by the IFSC lookup API. Every field is optional,
// the upstream service omits or nulls fields freely.
type BankDetails struct {
	Address  *string   `json:"ADDRESS"`
	Bank     *string   `json:"BANK"`
	BankCode *string   `json:"BANKCODE"`
	Branch   *string   `json:"BRANCH"`
	Centre   *string   `json:"CENTRE"`
	City     *string   `json:"CITY"`
	Contact  *string   `json:"CONTACT"`
	District *string   `json:"DISTRICT"`
	IFSC     *string   `json:"IFSC"`
	IMPS     *bool     `json:"IMPS"`
	ISO3166  *string   `json:"ISO3166"`
	MICR     *string   `json:"MICR"`
	NEFT     *bool     `json:"NEFT"`
	RTGS     *bool     `json:"RTGS"`
	State    *string   `json:"STATE"`
	SWIFT    SwiftCode `json:"SWIFT"`
	UPI      *bool     `json:"UPI"`
}

type SwiftKind uint8

const (
	SwiftAbsent SwiftKind = iota // Key missing or null
	SwiftString                  // Regular string value, may be empty
	SwiftOther                   // Any other JSON value, kept verbatim
)

func (k SwiftKind) String() string {
	switch k {
	case SwiftString:
		return "string"
	case SwiftOther:
		return "other"
	default:
		return "absent"
	}
}

// SwiftCode models the SWIFT field, which the upstream API returns inconsistently typed.
type SwiftCode struct {
	Kind  SwiftKind
	Value string          // Populated when Kind is SwiftString
	Raw   json.RawMessage // Populated when Kind is SwiftOther
}

func NewSwiftString(value string) SwiftCode {
	return SwiftCode{Kind: SwiftString, Value: value}
}

func NewSwiftOther(raw json.RawMessage) SwiftCode {
	return SwiftCode{Kind: SwiftOther, Raw: append(json.RawMessage(nil), raw...)}
}

func (s SwiftCode) IsAbsent() bool {
	return s.Kind == SwiftAbsent
}

// Display returns the textual form of the value and false when the field is absent.
func (s SwiftCode) Display() (string, bool) {
	switch s.Kind {
	case SwiftString:
		return s.Value, true
	case SwiftOther:
		return string(s.Raw), true
	default:
		return "", false
	}
}

func (s *SwiftCode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = SwiftCode{}
		return nil
	}

	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return eris.Wrap(err, "decoding swift string")
		}
		*s = NewSwiftString(value)
		return nil
	}

	if !json.Valid(trimmed) {
		return eris.New("invalid swift value")
	}
	*s = NewSwiftOther(trimmed)
	return nil
}

func (s SwiftCode) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SwiftString:
		return json.Marshal(s.Value)
	case SwiftOther:
		if len(s.Raw) == 0 {
			return []byte("null"), nil
		}
		return s.Raw, nil
	default:
		return []byte("null"), nil
	}
}
