package survey

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidationError is a user-correctable rejection of one answer. It carries a
// short machine reason for logs and the fixed Ukrainian message shown to the
// user. It is a value, not a Go error: handlers re-prompt, nothing bubbles.
type ValidationError struct {
	Reason  string
	Message string
}

func invalid(reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

var phonePattern = regexp.MustCompile(`^\+380\d{9}$`)

// ValidateName checks a full name: 2..100 characters, letters, whitespace and
// hyphens only, at least two words.
func ValidateName(raw string) (string, *ValidationError) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("empty", ErrNameEmpty)
	}
	n := utf8.RuneCountInString(name)
	if n < 2 {
		return "", invalid("too_short", ErrNameTooShort)
	}
	if n > 100 {
		return "", invalid("too_long", ErrNameTooLong)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' {
			return "", invalid("bad_chars", ErrNameBadChars)
		}
	}
	if len(strings.Fields(name)) < 2 {
		return "", invalid("single_word", ErrNameSingleWord)
	}
	return name, nil
}

// ValidatePhone checks free-text phone input against the +380XXXXXXXXX
// pattern. Contact-share payloads are trusted and bypass this.
func ValidatePhone(raw string) (string, *ValidationError) {
	phone := strings.TrimSpace(raw)
	if !phonePattern.MatchString(phone) {
		return "", invalid("bad_format", ErrPhoneFormat)
	}
	return phone, nil
}

// ValidateAge checks an all-digit age in [18,100]. Whitespace anywhere in
// the input, including trailing, is rejected rather than trimmed.
func ValidateAge(raw string) (int, *ValidationError) {
	text := raw
	if text == "" {
		return 0, invalid("empty", ErrAgeNotNumber)
	}
	if strings.ContainsFunc(text, unicode.IsSpace) {
		return 0, invalid("has_spaces", ErrAgeNotNumber)
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, invalid("not_digits", ErrAgeNotNumber)
		}
	}
	age, err := strconv.Atoi(text)
	if err != nil {
		return 0, invalid("not_digits", ErrAgeNotNumber)
	}
	if age < 18 || age > 100 {
		return 0, invalid("out_of_range", ErrAgeRange)
	}
	return age, nil
}

// ValidateCity checks a settlement name: 2..100 characters, not all digits.
func ValidateCity(raw string) (string, *ValidationError) {
	city := strings.TrimSpace(raw)
	if city == "" {
		return "", invalid("empty", ErrCityEmpty)
	}
	n := utf8.RuneCountInString(city)
	if n < 2 {
		return "", invalid("too_short", ErrCityTooShort)
	}
	if n > 100 {
		return "", invalid("too_long", ErrCityTooLong)
	}
	allDigits := true
	for _, r := range city {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "", invalid("all_digits", ErrCityDigits)
	}
	return city, nil
}

// ValidateVehicles checks the free-text vehicle list: 3..500 characters,
// Latin script only, and at least one comma-separated entry shaped like
// "Make Model".
func ValidateVehicles(raw string) (string, *ValidationError) {
	text := strings.TrimSpace(raw)
	if text == "" || utf8.RuneCountInString(text) < 3 {
		return "", invalid("too_short", ErrVehiclesShort)
	}
	if utf8.RuneCountInString(text) > 500 {
		return "", invalid("too_long", ErrVehiclesLong)
	}
	hasLetter := false
	for _, r := range text {
		if r >= 0x0400 && r <= 0x04FF {
			return "", invalid("cyrillic", ErrVehiclesCyr)
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		case r == ' ', r == ',', r == '-', r == '.':
		default:
			return "", invalid("bad_chars", ErrVehiclesChars)
		}
	}
	if !hasLetter {
		return "", invalid("no_letters", ErrVehiclesChars)
	}
	wellFormed := false
	for _, entry := range strings.Split(text, ",") {
		fields := strings.Fields(entry)
		if len(fields) < 2 {
			continue
		}
		for _, f := range fields {
			if strings.ContainsFunc(f, unicode.IsLetter) {
				wellFormed = true
				break
			}
		}
		if wellFormed {
			break
		}
	}
	if !wellFormed {
		return "", invalid("bad_entry_format", ErrVehiclesFormat)
	}
	return text, nil
}

// SplitVehicles turns validated vehicle free text into the stored list:
// split on commas, trim, drop empties.
func SplitVehicles(text string) []string {
	var out []string
	for _, entry := range strings.Split(text, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// ValidateExperience checks per-category driving experience: a non-negative
// float up to 100, no internal spaces.
func ValidateExperience(raw string) (float64, *ValidationError) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.ContainsAny(text, " \t") {
		return 0, invalid("not_numeric", ErrExpNotNumber)
	}
	years, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, invalid("not_numeric", ErrExpNotNumber)
	}
	if years < 0 || years > 100 {
		return 0, invalid("out_of_range", ErrExpRange)
	}
	return years, nil
}

// ValidateSalary checks desired salary: digits after stripping spaces, commas
// and periods, in [1000,1000000].
func ValidateSalary(raw string) (int, *ValidationError) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, invalid("empty", ErrSalaryNotNum)
	}
	cleaned := strings.NewReplacer(" ", "", ",", "", ".", "").Replace(text)
	if cleaned == "" {
		return 0, invalid("not_digits", ErrSalaryNotNum)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0, invalid("not_digits", ErrSalaryNotNum)
		}
	}
	salary, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, invalid("not_digits", ErrSalaryNotNum)
	}
	if salary < 1000 {
		return 0, invalid("too_low", ErrSalaryTooLow)
	}
	if salary > 1000000 {
		return 0, invalid("too_high", ErrSalaryTooHigh)
	}
	return salary, nil
}

// ValidateDescription checks the optional free-form description, up to 2000
// characters. Emoji stripping happens at finalize, not here.
func ValidateDescription(raw string) (string, *ValidationError) {
	text := strings.TrimSpace(raw)
	if utf8.RuneCountInString(text) > 2000 {
		return "", invalid("too_long", ErrDescTooLong)
	}
	return text, nil
}
