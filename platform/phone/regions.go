package phone

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	englishRegions = display.Regions(language.English)
	arabicRegions  = display.Regions(language.Arabic)
)

// CountryName returns the display name of a region in English ("en") or
// Arabic ("ar"). Unknown regions and languages yield "".
func CountryName(regionCode, lang string) string {
	region, err := language.ParseRegion(NormalizeRegion(regionCode))
	if err != nil {
		return ""
	}

	switch lang {
	case "ar":
		return arabicRegions.Name(region)
	case "en":
		return englishRegions.Name(region)
	default:
		return ""
	}
}
