package bring

// DefaultLocale is the catalog's native language. Item names in this locale
// are stored verbatim on the server, so translation to or from it is a no-op.
const DefaultLocale = "de-CH"

// SupportedLocales lists every locale the article catalog ships a dictionary
// for. Locales outside this set cannot be used as a list article language.
var SupportedLocales = []string{
	"de-AT",
	"de-CH",
	"de-DE",
	"en-AU",
	"en-CA",
	"en-GB",
	"en-US",
	"es-ES",
	"fr-CH",
	"fr-FR",
	"hu-HU",
	"it-CH",
	"it-IT",
	"nb-NO",
	"nl-NL",
	"pl-PL",
	"pt-BR",
	"ru-RU",
	"sv-SE",
	"tr-TR",
}

// langToLocale maps a bare language code to its canonical representative
// locale, for account locales whose language-COUNTRY pair is unsupported.
var langToLocale = map[string]string{
	"de": "de-DE",
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"hu": "hu-HU",
	"it": "it-IT",
	"nb": "nb-NO",
	"nl": "nl-NL",
	"pl": "pl-PL",
	"pt": "pt-BR",
	"ru": "ru-RU",
	"sv": "sv-SE",
	"tr": "tr-TR",
}

// LocaleSupported reports whether the catalog ships a dictionary for locale.
func LocaleSupported(locale string) bool {
	for _, supported := range SupportedLocales {
		if locale == supported {
			return true
		}
	}
	return false
}

// MapUserLanguageToLocale maps an account's raw language/country pair to a
// supported locale. The pair reported by the service reflects the user's
// device settings and is not guaranteed to be one of the catalog locales: the
// exact language-COUNTRY combination is used when supported, otherwise the
// bare language picks its canonical locale, falling back to DefaultLocale for
// unrecognized languages.
func MapUserLanguageToLocale(userLocale UserLocale) string {
	locale := userLocale.Language + "-" + userLocale.Country
	if LocaleSupported(locale) {
		return locale
	}
	if mapped, ok := langToLocale[userLocale.Language]; ok {
		return mapped
	}
	return DefaultLocale
}
