package flow

// Survey states, one per question step. StateIdle means no survey or edit in
// progress.
const (
	StateIdle         = "idle"
	StateName         = "name"
	StatePhone        = "phone"
	StateAge          = "age"
	StateRegion       = "region"
	StateCity         = "city"
	StateCategories   = "categories"
	StateExperience   = "experience"
	StateSemiTrailers = "semi_trailers"
	StateWorkTypes    = "work_types"
	StateVehicles     = "vehicles"
	StateADR          = "adr"
	StateRaceDuration = "race_duration"
	StateSalary       = "salary"
	StateDocsAbroad   = "docs_abroad"
	StateMilitary     = "military"
	StateDescription  = "description"
)

// Machine events.
const (
	EventBegin          = "begin"
	EventToPhone        = "to_phone"
	EventToAge          = "to_age"
	EventToRegion       = "to_region"
	EventToCity         = "to_city"
	EventToCategories   = "to_categories"
	EventToExperience   = "to_experience"
	EventToSemiTrailers = "to_semi_trailers"
	EventToWorkTypes    = "to_work_types"
	EventToVehicles     = "to_vehicles"
	EventToADR          = "to_adr"
	EventToRaceDuration = "to_race_duration"
	EventToSalary       = "to_salary"
	EventToDocs         = "to_docs"
	EventToMilitary     = "to_military"
	EventToDescription  = "to_description"
	EventFinish         = "finish"
	EventCancel         = "cancel"
)

// Callback-data prefixes. Payloads are "<prefix><index>" into the step's
// option list, or "<prefix>submit". Everything after the first colon is the
// value.
const (
	CallbackRegionPrefix       = "region:"
	CallbackCategoriesPrefix   = "cats:"
	CallbackSemiTrailersPrefix = "semi:"
	CallbackWorkTypesPrefix    = "work:"
	CallbackRacePrefix         = "race:"
	CallbackDocsPrefix         = "docs:"
	CallbackADRPrefix          = "adr:"
	CallbackMilitaryPrefix     = "mil:"
	CallbackDescPrefix         = "desc:"
	CallbackMenuPrefix         = "menu:"
	CallbackEditPrefix         = "edit:"
)

// SubmitSentinel finalizes a multi-select step.
const SubmitSentinel = "submit"

// Menu and action callback values.
const (
	ActionEdit          = "edit"
	ActionDelete        = "delete"
	ActionDeleteConfirm = "delete_confirm"
	ActionDeleteCancel  = "delete_cancel"
	ActionSkip          = "skip"
	ActionCancelEdit    = "cancel"
	ActionYes           = "yes"
	ActionNo            = "no"
)

// Telegram caps callback data at 64 bytes.
const maxCallbackDataBytes = 64
