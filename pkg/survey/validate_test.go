package survey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		in     string
		ok     bool
		reason string
	}{
		{"Петренко Іван", true, ""},
		{"  Петренко Іван  ", true, ""},
		{"Сидоренко-Коваль Марія", true, ""},
		{"", false, "empty"},
		{"Іван", false, "single_word"},
		{"І", false, "too_short"},
		{strings.Repeat("а", 101), false, "too_long"},
		{"Петренко Іван 2", false, "bad_chars"},
		{"Петренко_Іван разом", false, "bad_chars"},
	}
	for _, c := range cases {
		got, verr := ValidateName(c.in)
		if c.ok {
			require.Nil(t, verr, "input %q", c.in)
			assert.Equal(t, strings.TrimSpace(c.in), got)
		} else {
			require.NotNil(t, verr, "input %q", c.in)
			assert.Equal(t, c.reason, verr.Reason, "input %q", c.in)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	_, verr := ValidatePhone("+380501234567")
	require.Nil(t, verr)

	for _, in := range []string{
		"380501234567",
		"+38050123456",
		"+3805012345678",
		"+38050123456a",
		"0501234567",
		"",
	} {
		_, verr := ValidatePhone(in)
		assert.NotNil(t, verr, "input %q", in)
	}
}

func TestValidateAge(t *testing.T) {
	for _, in := range []string{"18", "100", "42"} {
		_, verr := ValidateAge(in)
		assert.Nil(t, verr, "input %q", in)
	}
	for _, in := range []string{"17", "101", "18 ", " 18", "1 8", "abc", "", "18.5"} {
		_, verr := ValidateAge(in)
		assert.NotNil(t, verr, "input %q", in)
	}
}

func TestValidateCity(t *testing.T) {
	city, verr := ValidateCity(" Львів ")
	require.Nil(t, verr)
	assert.Equal(t, "Львів", city)

	for _, in := range []string{"", "Л", "12345", strings.Repeat("м", 101)} {
		_, verr := ValidateCity(in)
		assert.NotNil(t, verr, "input %q", in)
	}
}

func TestValidateVehicles(t *testing.T) {
	for _, in := range []string{
		"DAF XF 106",
		"DAF XF 106, Renault Magnum",
		"Mercedes-Benz Actros",
	} {
		_, verr := ValidateVehicles(in)
		assert.Nil(t, verr, "input %q", in)
	}
	cases := []struct {
		in     string
		reason string
	}{
		{"", "too_short"},
		{"DA", "too_short"},
		{strings.Repeat("a", 501), "too_long"},
		{"ДАФ XF 106", "cyrillic"},
		{"DAF XF 106!", "bad_chars"},
		{"123, 456", "no_letters"},
		{"DAF, Renault", "bad_entry_format"},
	}
	for _, c := range cases {
		_, verr := ValidateVehicles(c.in)
		require.NotNil(t, verr, "input %q", c.in)
		assert.Equal(t, c.reason, verr.Reason, "input %q", c.in)
	}
}

func TestSplitVehicles(t *testing.T) {
	assert.Equal(t,
		[]string{"DAF XF 106", "Renault Magnum"},
		SplitVehicles("DAF XF 106, Renault Magnum,, "))
}

func TestValidateExperience(t *testing.T) {
	years, verr := ValidateExperience("2.5")
	require.Nil(t, verr)
	assert.Equal(t, 2.5, years)

	_, verr = ValidateExperience("0")
	assert.Nil(t, verr)
	_, verr = ValidateExperience("100")
	assert.Nil(t, verr)

	for _, in := range []string{"", "2 5", "-1", "101", "abc"} {
		_, verr := ValidateExperience(in)
		assert.NotNil(t, verr, "input %q", in)
	}
}

func TestValidateSalary(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"45000", 45000},
		{"45 000", 45000},
		{"45,000", 45000},
		{"45.000", 45000},
		{"1000", 1000},
		{"1000000", 1000000},
	}
	for _, c := range cases {
		got, verr := ValidateSalary(c.in)
		require.Nil(t, verr, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
	for _, in := range []string{"", "999", "1000001", "45000грн", "abc"} {
		_, verr := ValidateSalary(in)
		assert.NotNil(t, verr, "input %q", in)
	}
}

func TestValidateDescription(t *testing.T) {
	text, verr := ValidateDescription("  Працював 10 років у міжнародних перевезеннях.  ")
	require.Nil(t, verr)
	assert.Equal(t, "Працював 10 років у міжнародних перевезеннях.", text)

	_, verr = ValidateDescription(strings.Repeat("о", 2001))
	assert.NotNil(t, verr)

	text, verr = ValidateDescription("")
	require.Nil(t, verr)
	assert.Equal(t, "", text)
}
