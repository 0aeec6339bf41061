package survey

// User-facing texts. The bot speaks Ukrainian; everything a user can read
// lives here so handlers never build strings ad hoc.

// Prompts.
const (
	MsgAskName         = "Вкажіть ваше прізвище та ім'я:"
	MsgAskPhone        = "Вкажіть ваш номер телефону у форматі +380XXXXXXXXX або поділіться контактом:"
	MsgAskAge          = "Вкажіть ваш вік:"
	MsgAskRegion       = "Оберіть вашу область:"
	MsgAskCity         = "Вкажіть ваше місто або населений пункт:"
	MsgAskCategories   = "Оберіть ваші категорії посвідчення водія (можна декілька):"
	MsgAskSemiTrailers = "Оберіть типи напівпричепів, з якими ви працювали (можна декілька):"
	MsgAskWorkTypes    = "Оберіть бажані види роботи (можна декілька):"
	MsgAskVehicles     = "Вкажіть марки та моделі авто, на яких ви працювали (наприклад: DAF XF 106, Renault Magnum):"
	MsgAskADR          = "Чи маєте ви посвідчення ADR?"
	MsgAskRaceDuration = "Оберіть бажану тривалість рейсів (можна декілька):"
	MsgAskSalary       = "Вкажіть бажану зарплату в гривнях:"
	MsgAskDocsAbroad   = "Оберіть документи для роботи за кордоном, які ви маєте (можна декілька):"
	MsgAskMilitary     = "Чи маєте ви бронювання від мобілізації?"
	MsgAskDescription  = "Розкажіть про себе у довільній формі або пропустіть цей крок:"
)

// MsgAskExperiencePrefix prefixes the per-category experience prompt, the
// category is appended by the renderer.
const MsgAskExperiencePrefix = "Вкажіть ваш стаж водіння (у роках) для категорії "

// Validation failures, one fixed message per rule.
const (
	ErrNameEmpty      = "Будь ласка, вкажіть прізвище та ім'я."
	ErrNameTooShort   = "Занадто коротке ім'я. Спробуйте ще раз."
	ErrNameTooLong    = "Занадто довге ім'я. Спробуйте ще раз."
	ErrNameBadChars   = "Ім'я може містити лише літери, пробіли та дефіси."
	ErrNameSingleWord = "Вкажіть і прізвище, і ім'я."
	ErrPhoneFormat    = "Невірний формат номера. Потрібен формат +380XXXXXXXXX."
	ErrAgeNotNumber   = "Вік має бути числом без пробілів."
	ErrAgeRange       = "Вік має бути від 18 до 100 років."
	ErrCityEmpty      = "Будь ласка, вкажіть місто."
	ErrCityTooShort   = "Занадто коротка назва міста."
	ErrCityTooLong    = "Занадто довга назва міста."
	ErrCityDigits     = "Назва міста не може складатися лише з цифр."
	ErrVehiclesShort  = "Занадто короткий опис авто. Вкажіть марку та модель."
	ErrVehiclesLong   = "Занадто довгий опис авто."
	ErrVehiclesCyr    = "Будь ласка, вкажіть марки авто латиницею (наприклад: DAF XF 106)."
	ErrVehiclesChars  = "Допустимі лише латинські літери, цифри, пробіли, коми, дефіси та крапки."
	ErrVehiclesFormat = "Вкажіть хоча б одне авто у форматі «Марка Модель»."
	ErrExpNotNumber   = "Стаж має бути числом без пробілів, наприклад 2.5."
	ErrExpRange       = "Стаж має бути від 0 до 100 років."
	ErrSalaryNotNum   = "Зарплата має бути числом, наприклад 45000."
	ErrSalaryTooLow   = "Занадто мала сума. Мінімум 1000 грн."
	ErrSalaryTooHigh  = "Занадто велика сума. Максимум 1000000 грн."
	ErrDescTooLong    = "Занадто довгий опис. Максимум 2000 символів."
	ErrNoSelection    = "Оберіть хоча б один варіант."
)

// Flow and menu texts.
const (
	MsgMainMenu          = "Головне меню:"
	MsgSurveyDone        = "Дякуємо! Ваше резюме збережено."
	MsgSaveFailed        = "Не вдалося зберегти дані. Спробуйте пізніше."
	MsgProfileNotFound   = "У вас ще немає резюме. Натисніть «Створити резюме»."
	MsgProfileDeleted    = "Резюме видалено."
	MsgEditPrompt        = "Оберіть поле для редагування:"
	MsgEditSaved         = "Зміни збережено."
	MsgConfirmDelete     = "Ви впевнені, що хочете видалити резюме?"
	MsgSurveyCancelled   = "Анкету скасовано."
	MsgUnknownAction     = "Невідома дія. Скористайтеся меню."
	MsgInternalError     = "Сталася внутрішня помилка. Спробуйте пізніше."
	MsgProfileHeader     = "Ваше резюме:"
	MsgUseButtonsHint    = "Скористайтеся кнопками під повідомленням."
	MsgSelectionAccepted = "Прийнято"
)

// Button labels.
const (
	ButtonCreateProfile = "Створити резюме"
	ButtonMyProfile     = "Моє резюме"
	ButtonSubmit        = "✅ Готово"
	ButtonYes           = "Так"
	ButtonNo            = "Ні"
	ButtonSkip          = "Пропустити"
	ButtonEdit          = "✏️ Редагувати"
	ButtonDelete        = "🗑 Видалити"
	ButtonConfirmDelete = "Так, видалити"
	ButtonCancelDelete  = "Скасувати"
	ButtonShareContact  = "📱 Поділитися контактом"
	ButtonBack          = "⬅️ Назад"
)

// EditFieldLabels maps editable fields to their edit-menu labels, ordered by
// EditFieldOrder.
var EditFieldLabels = map[string]string{
	FieldName:         "Прізвище та ім'я",
	FieldPhone:        "Телефон",
	FieldAge:          "Вік",
	FieldLocation:     "Місце проживання",
	FieldCategories:   "Категорії посвідчення",
	FieldWorkTypes:    "Види роботи",
	FieldVehicles:     "Марки авто",
	FieldADR:          "Посвідчення ADR",
	FieldRaceDuration: "Тривалість рейсів",
	FieldSalary:       "Бажана зарплата",
	FieldDocsAbroad:   "Документи для закордону",
	FieldMilitary:     "Бронювання",
	FieldDescription:  "Про себе",
}

// EditFieldOrder fixes the edit-menu rendering order.
var EditFieldOrder = []string{
	FieldName,
	FieldPhone,
	FieldAge,
	FieldLocation,
	FieldCategories,
	FieldWorkTypes,
	FieldVehicles,
	FieldADR,
	FieldRaceDuration,
	FieldSalary,
	FieldDocsAbroad,
	FieldMilitary,
	FieldDescription,
}
