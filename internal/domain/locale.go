package domain

// Locale selects the bilingual site copy. It is threaded explicitly through
// function parameters; there is no ambient locale state.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleDE Locale = "de"
)

// ParseLocale falls back to English for anything it does not recognize.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleDE {
		return LocaleDE
	}
	return LocaleEN
}

// Pick returns the variant matching the locale, falling back to English
// when the German copy is empty.
func (l Locale) Pick(en, de string) string {
	if l == LocaleDE && de != "" {
		return de
	}
	return en
}
