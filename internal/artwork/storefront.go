package artwork

import (
	"github.com/lepinkainen/reelmeta/internal/envelope"
)

// StoreFront is a region of the Apple media store.
type StoreFront struct {
	CountryCode  string `json:"countryCode"`
	LanguageCode string `json:"languageCode"`
	StoreFrontID int    `json:"storeFrontId"`
}

// Locale returns the store front as a language-COUNTRY tag.
func (s StoreFront) Locale() string {
	return s.LanguageCode + "-" + s.CountryCode
}

var storeFronts = []StoreFront{
	{CountryCode: "US", LanguageCode: "en", StoreFrontID: 143441},
	{CountryCode: "GB", LanguageCode: "en", StoreFrontID: 143444},
	{CountryCode: "AU", LanguageCode: "en", StoreFrontID: 143460},
	{CountryCode: "CA", LanguageCode: "en", StoreFrontID: 143455},
	{CountryCode: "DE", LanguageCode: "de", StoreFrontID: 143443},
	{CountryCode: "FR", LanguageCode: "fr", StoreFrontID: 143442},
	{CountryCode: "IT", LanguageCode: "it", StoreFrontID: 143450},
	{CountryCode: "JP", LanguageCode: "ja", StoreFrontID: 143462},
	{CountryCode: "NL", LanguageCode: "nl", StoreFrontID: 143452},
	{CountryCode: "ES", LanguageCode: "es", StoreFrontID: 143454},
	{CountryCode: "SE", LanguageCode: "sv", StoreFrontID: 143457},
	{CountryCode: "NO", LanguageCode: "no", StoreFrontID: 143458},
	{CountryCode: "DK", LanguageCode: "da", StoreFrontID: 143459},
	{CountryCode: "FI", LanguageCode: "fi", StoreFrontID: 143447},
	{CountryCode: "NZ", LanguageCode: "en", StoreFrontID: 143461},
	{CountryCode: "IE", LanguageCode: "en", StoreFrontID: 143446},
	{CountryCode: "CH", LanguageCode: "de", StoreFrontID: 143445},
	{CountryCode: "AT", LanguageCode: "de", StoreFrontID: 143448},
	{CountryCode: "BE", LanguageCode: "fr", StoreFrontID: 143449},
	{CountryCode: "LU", LanguageCode: "fr", StoreFrontID: 143451},
	{CountryCode: "SG", LanguageCode: "en", StoreFrontID: 143464},
	{CountryCode: "HK", LanguageCode: "en", StoreFrontID: 143465},
	{CountryCode: "KR", LanguageCode: "ko", StoreFrontID: 143466},
	{CountryCode: "TW", LanguageCode: "zh", StoreFrontID: 143467},
	{CountryCode: "CN", LanguageCode: "zh", StoreFrontID: 143468},
	{CountryCode: "IN", LanguageCode: "en", StoreFrontID: 143470},
	{CountryCode: "RU", LanguageCode: "ru", StoreFrontID: 143469},
	{CountryCode: "TR", LanguageCode: "tr", StoreFrontID: 143473},
	{CountryCode: "AE", LanguageCode: "en", StoreFrontID: 143474},
}

// ResolveStoreFront picks the store front for a locale preference. Matches
// are tried as language and country, then language, then country, always
// taking the first catalog entry that fits. Without any preference the first
// entry is used; a preference nothing matches is a NotFound error.
func ResolveStoreFront(opts Options) envelope.Response[StoreFront] {
	lang, country := opts.LanguageCode, opts.CountryCode
	if lang == "" && country == "" {
		return envelope.Success(storeFronts[0], 0)
	}

	matchers := []func(StoreFront) bool{
		func(s StoreFront) bool { return lang != "" && country != "" && s.LanguageCode == lang && s.CountryCode == country },
		func(s StoreFront) bool { return lang != "" && s.LanguageCode == lang },
		func(s StoreFront) bool { return country != "" && s.CountryCode == country },
	}
	for _, match := range matchers {
		for _, s := range storeFronts {
			if match(s) {
				return envelope.Success(s, 0)
			}
		}
	}
	return envelope.NotFound[StoreFront]("No store front found for language %q and country %q", lang, country)
}
