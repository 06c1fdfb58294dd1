package validation

import "github.com/nyaruka/phonenumbers"

// Unknown is reported for lookups the numbering plan has no data for.
const Unknown = "Unknown"

// Result is the outcome of validating a single phone number. Details is nil
// when the number could not be parsed; Error and ErrorType are set instead.
type Result struct {
	Success bool `json:"success"`
	*Details
	PhoneNumber NumberInfo `json:"phone_number"`
	Error       string     `json:"error,omitempty"`
	ErrorType   ErrorType  `json:"error_type,omitempty"`
}

// IsValid reports whether the number parsed and passed the strict check.
func (r Result) IsValid() bool {
	return r.Details != nil && r.Details.Valid
}

// IsPossible reports whether the number parsed and has a plausible length.
func (r Result) IsPossible() bool {
	return r.Details != nil && r.Details.Possible
}

// Details holds everything known about a successfully parsed number.
type Details struct {
	Valid     bool     `json:"valid"`
	Possible  bool     `json:"possible"`
	Location  Location `json:"location"`
	Carrier   Carrier  `json:"carrier"`
	Type      TypeInfo `json:"type"`
	Timezones []string `json:"timezones"`
}

// NumberInfo carries the input and its formatted representations.
type NumberInfo struct {
	Original       string `json:"original"`
	International  string `json:"international,omitempty"`
	National       string `json:"national,omitempty"`
	E164           string `json:"e164,omitempty"`
	CountryCode    int32  `json:"country_code,omitempty"`
	NationalNumber string `json:"national_number,omitempty"`
}

// Location describes where the number is allocated.
type Location struct {
	CountryName   string `json:"country_name"`
	CountryNameAr string `json:"country_name_ar"`
	RegionCode    string `json:"region_code"`
	FlagEmoji     string `json:"flag_emoji"`
}

// Carrier names the original network operator, if known.
type Carrier struct {
	Name   string `json:"name"`
	NameAr string `json:"name_ar"`
}

// TypeInfo is the number type classification.
type TypeInfo struct {
	Code NumberType `json:"code"`
	Name string     `json:"name"`
}

// NumberType is the fixed number type enumeration reported to callers.
type NumberType int

const (
	TypeFixedLine NumberType = iota
	TypeMobile
	TypeFixedLineOrMobile
	TypeTollFree
	TypePremiumRate
	TypeSharedCost
	TypeVoIP
	TypePersonalNumber
	TypePager
	TypeUAN
	TypeVoicemail
	TypeUnknown
)

var numberTypeNames = map[NumberType]string{
	TypeFixedLine:         "Fixed Line",
	TypeMobile:            "Mobile",
	TypeFixedLineOrMobile: "Fixed Line or Mobile",
	TypeTollFree:          "Toll Free",
	TypePremiumRate:       "Premium Rate",
	TypeSharedCost:        "Shared Cost",
	TypeVoIP:              "VoIP",
	TypePersonalNumber:    "Personal Number",
	TypePager:             "Pager",
	TypeUAN:               "UAN",
	TypeVoicemail:         "Voicemail",
	TypeUnknown:           Unknown,
}

// String returns the human-readable name, "Unknown" for values outside the enumeration.
func (t NumberType) String() string {
	if name, ok := numberTypeNames[t]; ok {
		return name
	}
	return Unknown
}

// numberTypeFrom maps the library classification onto NumberType.
func numberTypeFrom(t phonenumbers.PhoneNumberType) NumberType {
	switch t {
	case phonenumbers.FIXED_LINE:
		return TypeFixedLine
	case phonenumbers.MOBILE:
		return TypeMobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return TypeFixedLineOrMobile
	case phonenumbers.TOLL_FREE:
		return TypeTollFree
	case phonenumbers.PREMIUM_RATE:
		return TypePremiumRate
	case phonenumbers.SHARED_COST:
		return TypeSharedCost
	case phonenumbers.VOIP:
		return TypeVoIP
	case phonenumbers.PERSONAL_NUMBER:
		return TypePersonalNumber
	case phonenumbers.PAGER:
		return TypePager
	case phonenumbers.UAN:
		return TypeUAN
	case phonenumbers.VOICEMAIL:
		return TypeVoicemail
	default:
		return TypeUnknown
	}
}

// ErrorType classifies why a number could not be parsed.
type ErrorType string

const (
	ErrInvalidCountryCode ErrorType = "INVALID_COUNTRY_CODE"
	ErrNotANumber         ErrorType = "NOT_A_NUMBER"
	ErrTooShortAfterIDD   ErrorType = "TOO_SHORT_AFTER_IDD"
	ErrTooShortNSN        ErrorType = "TOO_SHORT_NSN"
	ErrTooLong            ErrorType = "TOO_LONG"
	ErrUnexpected         ErrorType = "UNEXPECTED"
)

// CheckRequest is the body of POST /phone/check.
type CheckRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=64"`
	Region      string `json:"region" binding:"omitempty,len=2,alpha"`
}

// BulkCheckRequest is the body of POST /phone/bulk-check.
type BulkCheckRequest struct {
	PhoneNumbers     []string `json:"phone_numbers" binding:"required,min=1,dive,max=64"`
	Region           string   `json:"region" binding:"omitempty,len=2,alpha"`
	TelegramUsername string   `json:"telegram_username" binding:"omitempty,max=64"`
}

// BulkCheckResponse is the payload returned by the bulk endpoint.
type BulkCheckResponse struct {
	TotalProcessed int      `json:"total_processed"`
	Results        []Result `json:"results"`
}

// RegionInfo describes a supported default region.
type RegionInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	NameAr    string `json:"name_ar"`
	FlagEmoji string `json:"flag_emoji"`
}
