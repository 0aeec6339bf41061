package survey

// Package survey holds the fixed questionnaire content: option vocabularies,
// user-facing messages, answer validators and the profile document model.

// Field identifiers used by callback payloads, the edit menu and partial updates.
const (
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldAge          = "age"
	FieldLocation     = "location"
	FieldCategories   = "driving_categories"
	FieldExperience   = "driving_experience"
	FieldSemiTrailers = "semi_trailer_types"
	FieldWorkTypes    = "type_of_work"
	FieldVehicles     = "types_of_cars"
	FieldADR          = "adr"
	FieldRaceDuration = "race_duration"
	FieldSalary       = "salary"
	FieldDocsAbroad   = "docs_abroad"
	FieldMilitary     = "military"
	FieldDescription  = "description"
)

// Region is one selectable place-of-living option.
type Region struct {
	Key  string
	Name string
}

// Regions lists the selectable oblasts plus Kyiv, in display order.
var Regions = []Region{
	{Key: "kyiv_city", Name: "м. Київ"},
	{Key: "vinnytsia", Name: "Вінницька обл."},
	{Key: "volyn", Name: "Волинська обл."},
	{Key: "dnipro", Name: "Дніпропетровська обл."},
	{Key: "donetsk", Name: "Донецька обл."},
	{Key: "zhytomyr", Name: "Житомирська обл."},
	{Key: "zakarpattia", Name: "Закарпатська обл."},
	{Key: "zaporizhzhia", Name: "Запорізька обл."},
	{Key: "ivano_frankivsk", Name: "Івано-Франківська обл."},
	{Key: "kyiv_region", Name: "Київська обл."},
	{Key: "kirovohrad", Name: "Кіровоградська обл."},
	{Key: "luhansk", Name: "Луганська обл."},
	{Key: "lviv", Name: "Львівська обл."},
	{Key: "mykolaiv", Name: "Миколаївська обл."},
	{Key: "odesa", Name: "Одеська обл."},
	{Key: "poltava", Name: "Полтавська обл."},
	{Key: "rivne", Name: "Рівненська обл."},
	{Key: "sumy", Name: "Сумська обл."},
	{Key: "ternopil", Name: "Тернопільська обл."},
	{Key: "kharkiv", Name: "Харківська обл."},
	{Key: "kherson", Name: "Херсонська обл."},
	{Key: "khmelnytskyi", Name: "Хмельницька обл."},
	{Key: "cherkasy", Name: "Черкаська обл."},
	{Key: "chernivtsi", Name: "Чернівецька обл."},
	{Key: "chernihiv", Name: "Чернігівська обл."},
}

// RegionName resolves a region key to its display name, "" when unknown.
func RegionName(key string) string {
	for _, r := range Regions {
		if r.Key == key {
			return r.Name
		}
	}
	return ""
}

// DrivingCategories is the selectable licence-category list.
var DrivingCategories = []string{"B", "C", "C1", "C1E", "CE", "D", "D1", "BE"}

// trailerCategories are the categories that pull in the semi-trailer sub-survey.
var trailerCategories = map[string]bool{
	"C1E": true,
	"CE":  true,
}

// NeedsSemiTrailer reports whether any selected category requires the
// semi-trailer type question.
func NeedsSemiTrailer(categories []string) bool {
	for _, c := range categories {
		if trailerCategories[c] {
			return true
		}
	}
	return false
}

// SemiTrailerTypes lists the selectable semi-trailer bodies.
var SemiTrailerTypes = []string{
	"Тентований",
	"Рефрижератор",
	"Ізотермічний",
	"Контейнеровоз",
	"Зерновоз",
	"Цистерна",
	"Платформа",
	"Самоскид",
}

// TypesOfWork lists the selectable work formats.
var TypesOfWork = []string{
	"Міжнародні перевезення",
	"Перевезення по Україні",
	"Перевезення по місту",
	"Вахтовий метод",
}

// RaceDurations lists the selectable trip-length preferences.
var RaceDurations = []string{
	"До 1 тижня",
	"1-2 тижні",
	"2-4 тижні",
	"Більше місяця",
}

// NoDocsSentinel is mutually exclusive with every other abroad-documents
// option: picking it clears the rest, picking anything else clears it.
const NoDocsSentinel = "❌ Не маю"

// DocsAbroadOptions lists the selectable documents for driving abroad.
var DocsAbroadOptions = []string{
	"Закордонний паспорт",
	"Біометричний паспорт",
	"Віза",
	"Чіп-карта водія",
	NoDocsSentinel,
}
