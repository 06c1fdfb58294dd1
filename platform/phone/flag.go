package phone

import "strings"

// NeutralFlag is returned for region codes that cannot be mapped to a flag.
const NeutralFlag = "🏳️"

// regionalIndicatorOffset shifts 'A' (0x41) to REGIONAL INDICATOR SYMBOL LETTER A (0x1F1E6).
const regionalIndicatorOffset = 0x1F1E6 - 'A'

// FlagEmoji maps a two-letter region code to its pair of regional indicator
// symbols. Lower-case letters are accepted. Anything other than exactly two
// ASCII letters yields NeutralFlag.
func FlagEmoji(regionCode string) string {
	if len(regionCode) != 2 {
		return NeutralFlag
	}

	upper := strings.ToUpper(regionCode)
	var b strings.Builder
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if c < 'A' || c > 'Z' {
			return NeutralFlag
		}
		b.WriteRune(rune(c) + regionalIndicatorOffset)
	}
	return b.String()
}
