// Package render turns lookup outcomes into the text shown to users.
package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	iiModels "github.com/voxtmault/ifsc-integration/models"
)

const (
	NotFound        = "Not Found"
	NoInternet      = "No internet"
	UnknownIssueMsg = "Unknown Issue"
)

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Rows lists every bank detail in display order. Missing values read NotFound.
func Rows(details iiModels.BankDetails) []Row {
	swift, ok := details.SWIFT.Display()
	if !ok {
		swift = NotFound
	}

	return []Row{
		{"Address", str(details.Address)},
		{"Bank", str(details.Bank)},
		{"Bank Code", str(details.BankCode)},
		{"Branch", str(details.Branch)},
		{"Centre", str(details.Centre)},
		{"City", str(details.City)},
		{"Contact", str(details.Contact)},
		{"District", str(details.District)},
		{"IFSC", str(details.IFSC)},
		{"IMPS", boolean(details.IMPS)},
		{"ISO3166", str(details.ISO3166)},
		{"MICR", str(details.MICR)},
		{"NEFT", boolean(details.NEFT)},
		{"RTGS", boolean(details.RTGS)},
		{"State", str(details.State)},
		{"SWIFT", swift},
		{"UPI", boolean(details.UPI)},
	}
}

// ErrorMessage is the text shown for a failed lookup. Empty on Success.
func ErrorMessage(outcome *iiModels.LookupOutcome) string {
	kind, message, ok := outcome.Failure()
	if !ok {
		return ""
	}

	if kind == iiModels.NetworkIssue {
		return NoInternet
	}
	if message != nil {
		return *message
	}
	return UnknownIssueMsg
}

// Write prints the aligned detail rows, or the error message for a Failure.
func Write(w io.Writer, outcome *iiModels.LookupOutcome) error {
	details, ok := outcome.Details()
	if !ok {
		if _, err := fmt.Fprintln(w, ErrorMessage(outcome)); err != nil {
			return eris.Wrap(err, "writing error message")
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range Rows(details) {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}

	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "writing bank details")
	}
	return nil
}

func str(v *string) string {
	if v == nil {
		return NotFound
	}
	return *v
}

func boolean(v *bool) string {
	if v == nil {
		return NotFound
	}
	return strconv.FormatBool(*v)
}
