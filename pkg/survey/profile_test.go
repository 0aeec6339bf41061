package survey

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripEmoji(t *testing.T) {
	assert.Equal(t, "Привіт", StripEmoji("Привіт 😀"))
	assert.Equal(t, "DAF XF", StripEmoji("🚛 DAF 🚛 XF 🚛"))
	assert.Equal(t, "Не маю", StripEmoji(NoDocsSentinel))
	assert.Equal(t, "звичайний текст", StripEmoji("звичайний текст"))
	assert.Equal(t, "", StripEmoji("😀🚛🇺🇦"))

	// Code points outside the named pictograph blocks still go.
	assert.Equal(t, "Досвідчений водій", StripEmoji("Досвідчений водій ⭐"))
	assert.Equal(t, "назад", StripEmoji("⬅ назад"))
	assert.Equal(t, "вперед", StripEmoji("вперед ⬆⬇⭕"))
	assert.Equal(t, "", StripEmoji("🀄🅰🈲"))

	// The variation selector never survives on its own.
	assert.Equal(t, "Привіт", StripEmoji("Привіт ✌️"))
}

func containsEmoji(s string) bool {
	for _, r := range s {
		if unicode.Is(emojiRanges, r) {
			return true
		}
	}
	return false
}

func TestSanitizeKeepsIdentityAndDropsEmoji(t *testing.T) {
	p := &Profile{
		UserID:   42,
		Username: "driver_🚛",
		Name:     "Петренко 😀 Іван",
		Phone:    "+380501234567",
		Age:      35,
		PlaceOfLiving: Place{
			RegionKey:  "lviv",
			RegionName: "Львівська обл.",
			City:       "Львів 🏙",
		},
		Categories:    []string{"B", "CE"},
		Experience:    map[string]float64{"B": 3, "CE": 5.5},
		SemiTrailers:  []string{"Тентований ✅"},
		WorkTypes:     []string{"Міжнародні перевезення"},
		Vehicles:      []string{"DAF XF 106"},
		RaceDurations: []string{"1-2 тижні"},
		DocsAbroad:    []string{NoDocsSentinel},
		Description:   "Досвідчений водій 🚛🚛",
	}

	p.Sanitize()

	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, "driver_🚛", p.Username)
	assert.Equal(t, "Петренко Іван", p.Name)
	assert.Equal(t, "Львів", p.PlaceOfLiving.City)
	assert.Equal(t, []string{"Тентований"}, p.SemiTrailers)
	assert.Equal(t, []string{"Не маю"}, p.DocsAbroad)
	assert.Equal(t, "Досвідчений водій", p.Description)
	assert.Equal(t, 5.5, p.Experience["CE"])

	formatted := FormatProfile(p)
	assert.False(t, containsEmoji(formatted), "formatted summary must be pictograph-free")
	assert.Contains(t, formatted, "Петренко Іван")
	assert.Contains(t, formatted, "+380501234567")
	assert.Contains(t, formatted, "Львівська обл., Львів")
	assert.Contains(t, formatted, "CE: 5.5 р.")
	assert.Contains(t, formatted, "B: 3 р.")
}

func TestNeedsSemiTrailer(t *testing.T) {
	assert.True(t, NeedsSemiTrailer([]string{"B", "C1E"}))
	assert.True(t, NeedsSemiTrailer([]string{"CE"}))
	assert.False(t, NeedsSemiTrailer([]string{"B", "C", "D"}))
	assert.False(t, NeedsSemiTrailer(nil))
}

func TestRegionName(t *testing.T) {
	require.Equal(t, "м. Київ", RegionName("kyiv_city"))
	require.Equal(t, "", RegionName("atlantis"))
}
