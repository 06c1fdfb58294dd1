// Package validation checks phone numbers against the numbering plan and
// reports formats, location, carrier, type and time zones.
package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"phonechecker/platform/logger"
	"phonechecker/platform/phone"

	"github.com/nyaruka/phonenumbers"
)

// SupportedRegions are the default regions offered to API clients.
var SupportedRegions = []string{
	"SA", "AE", "KW", "QA", "BH", "OM", "JO", "LB", "SY", "IQ",
	"EG", "MA", "TN", "DZ", "LY", "US", "GB", "FR", "DE", "IT",
}

type Service struct {
	log *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{log: log}
}

// Validate parses number against the optional default region and describes it.
// Failures are reported in the Result, never returned or panicked.
func (s *Service) Validate(ctx context.Context, number, region string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(number, fmt.Sprintf("Unexpected error: %v", r), ErrUnexpected)
		}
		s.log.WithContext(ctx).NumberValidated(number, result.Success, result.IsValid(), string(result.ErrorType))
	}()

	parsed, err := phone.Parse(number, region)
	if err != nil {
		return failure(number, err.Error(), classifyParseError(err))
	}

	regionCode := phonenumbers.GetRegionCodeForNumber(parsed)
	numType := numberTypeFrom(phonenumbers.GetNumberType(parsed))

	return Result{
		Success: true,
		Details: &Details{
			Valid:     phonenumbers.IsValidNumber(parsed),
			Possible:  phonenumbers.IsPossibleNumber(parsed),
			Location:  describeLocation(parsed, regionCode),
			Carrier:   describeCarrier(parsed, numType),
			Type:      TypeInfo{Code: numType, Name: numType.String()},
			Timezones: timezones(parsed),
		},
		PhoneNumber: NumberInfo{
			Original:       number,
			International:  phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL),
			National:       phonenumbers.Format(parsed, phonenumbers.NATIONAL),
			E164:           phonenumbers.Format(parsed, phonenumbers.E164),
			CountryCode:    parsed.GetCountryCode(),
			NationalNumber: strconv.FormatUint(parsed.GetNationalNumber(), 10),
		},
	}
}

// ValidateBulk validates every number independently; results keep input order.
func (s *Service) ValidateBulk(ctx context.Context, numbers []string, region string) []Result {
	results := make([]Result, 0, len(numbers))
	for _, number := range numbers {
		results = append(results, s.Validate(ctx, strings.TrimSpace(number), region))
	}
	return results
}

// Regions describes SupportedRegions with their display names and flags.
func (s *Service) Regions() []RegionInfo {
	out := make([]RegionInfo, 0, len(SupportedRegions))
	for _, code := range SupportedRegions {
		out = append(out, RegionInfo{
			Code:      code,
			Name:      phone.CountryName(code, "en"),
			NameAr:    phone.CountryName(code, "ar"),
			FlagEmoji: phone.FlagEmoji(code),
		})
	}
	return out
}

// SplitBulk splits comma-separated input into trimmed numbers.
func SplitBulk(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func failure(number, message string, errType ErrorType) Result {
	return Result{
		Success:     false,
		PhoneNumber: NumberInfo{Original: number},
		Error:       message,
		ErrorType:   errType,
	}
}

func classifyParseError(err error) ErrorType {
	switch {
	case errors.Is(err, phonenumbers.ErrInvalidCountryCode):
		return ErrInvalidCountryCode
	case errors.Is(err, phonenumbers.ErrNotANumber):
		return ErrNotANumber
	case errors.Is(err, phonenumbers.ErrTooShortAfterIDD):
		return ErrTooShortAfterIDD
	case errors.Is(err, phonenumbers.ErrTooShortNSN):
		return ErrTooShortNSN
	case errors.Is(err, phonenumbers.ErrNumTooLong):
		return ErrTooLong
	default:
		return ErrUnexpected
	}
}

func describeLocation(num *phonenumbers.PhoneNumber, regionCode string) Location {
	nameEn, _ := phonenumbers.GetGeocodingForNumber(num, "en")
	if nameEn == "" {
		nameEn = phone.CountryName(regionCode, "en")
	}
	if nameEn == "" {
		nameEn = Unknown
	}

	nameAr, _ := phonenumbers.GetGeocodingForNumber(num, "ar")
	if nameAr == "" {
		nameAr = phone.CountryName(regionCode, "ar")
	}
	if nameAr == "" {
		nameAr = nameEn
	}

	code := regionCode
	if code == "" {
		code = Unknown
	}

	return Location{
		CountryName:   nameEn,
		CountryNameAr: nameAr,
		RegionCode:    code,
		FlagEmoji:     phone.FlagEmoji(regionCode),
	}
}

// describeCarrier only looks up carriers for mobile-like types. Invalid
// numbers classify as TypeUnknown and so report Unknown.
func describeCarrier(num *phonenumbers.PhoneNumber, t NumberType) Carrier {
	if !hasCarrier(t) {
		return Carrier{Name: Unknown, NameAr: Unknown}
	}
	nameEn, _ := phonenumbers.GetCarrierForNumber(num, "en")
	nameAr, _ := phonenumbers.GetCarrierForNumber(num, "ar")
	if nameAr == "" {
		nameAr = nameEn
	}
	if nameEn == "" {
		nameEn = Unknown
	}
	if nameAr == "" {
		nameAr = Unknown
	}
	return Carrier{Name: nameEn, NameAr: nameAr}
}

func hasCarrier(t NumberType) bool {
	switch t {
	case TypeMobile, TypeFixedLineOrMobile, TypePager:
		return true
	default:
		return false
	}
}

func timezones(num *phonenumbers.PhoneNumber) []string {
	zones, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil || len(zones) == 0 {
		return []string{}
	}
	return zones
}
