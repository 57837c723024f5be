package registry

import "strings"

// Language is a registry partition key
type Language string

const (
	LangZH Language = "zh" // default
	LangEN Language = "en"
	LangJA Language = "ja"
	LangES Language = "es"
	LangDE Language = "de"
	LangPT Language = "pt"
	LangFR Language = "fr"
)

// DefaultLanguage is used when a caller names no language or an unknown one
const DefaultLanguage = LangZH

// AllLanguages lists every supported language in display order
var AllLanguages = []Language{LangZH, LangEN, LangJA, LangES, LangDE, LangPT, LangFR}

// LanguageName returns the human-readable display name of a language
func LanguageName(lang Language) string {
	switch lang {
	case LangZH:
		return "中文"
	case LangEN:
		return "English"
	case LangJA:
		return "日本語"
	case LangES:
		return "Español"
	case LangDE:
		return "Deutsch"
	case LangPT:
		return "Português"
	case LangFR:
		return "Français"
	default:
		return string(lang)
	}
}

// IsValidLanguage checks if a language code is supported
func IsValidLanguage(code string) bool {
	for _, l := range AllLanguages {
		if Language(code) == l {
			return true
		}
	}
	return false
}

// ResolveLanguage maps code onto a supported language, falling back to
// fallback (or DefaultLanguage when fallback is itself unsupported)
func ResolveLanguage(code string, fallback Language) Language {
	code = strings.ToLower(strings.TrimSpace(code))
	if IsValidLanguage(code) {
		return Language(code)
	}
	if IsValidLanguage(string(fallback)) {
		return fallback
	}
	return DefaultLanguage
}

// ParseLanguages splits a comma-separated list, keeping supported codes only.
// An empty string selects every language.
func ParseLanguages(s string) []Language {
	if strings.TrimSpace(s) == "" {
		return append([]Language(nil), AllLanguages...)
	}

	var langs []Language
	seen := make(map[Language]bool)
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if IsValidLanguage(p) && !seen[Language(p)] {
			seen[Language(p)] = true
			langs = append(langs, Language(p))
		}
	}
	return langs
}
