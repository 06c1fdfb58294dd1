package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const textSeparatorWidth = 40

// WriteJSON writes v as two-space indented JSON. Non-ASCII text such as
// Arabic names and flag glyphs is written verbatim.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteText writes a short human-readable summary of a single result.
func WriteText(w io.Writer, r Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Number: %s\n", r.PhoneNumber.Original)
	fmt.Fprintf(&b, "Valid: %s\n", yesNo(r.IsValid()))
	if r.Success && r.Details != nil {
		fmt.Fprintf(&b, "Country: %s\n", r.Location.CountryName)
		fmt.Fprintf(&b, "Carrier: %s\n", r.Carrier.Name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTextBulk writes every result followed by a dashed separator line.
func WriteTextBulk(w io.Writer, results []Result) error {
	separator := strings.Repeat("-", textSeparatorWidth) + "\n"
	for _, r := range results {
		if err := WriteText(w, r); err != nil {
			return err
		}
		if _, err := io.WriteString(w, separator); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
