package ifsc_integration_utils

import "strings"

// NormalizeCode uppercases an IFSC code before it is sent upstream. Nothing else is checked,
// malformed codes are left for the upstream service to reject.
func NormalizeCode(code string) string {
	return strings.ToUpper(code)
}
