package language

import (
	"errors"
	"fmt"
	"strings"

	textlang "golang.org/x/text/language"
)

// ErrUnknownLanguage is returned by Parse for input outside the supported set.
var ErrUnknownLanguage = errors.New("unknown language")

// Code is an ISO 639-1 language code from the supported set.
type Code string

// Supported language codes.
const (
	Spanish    Code = "es"
	English    Code = "en"
	French     Code = "fr"
	German     Code = "de"
	Italian    Code = "it"
	Portuguese Code = "pt"
	Dutch      Code = "nl"
	Polish     Code = "pl"
	Swedish    Code = "sv"
	Danish     Code = "da"
	Norwegian  Code = "no"
	Finnish    Code = "fi"
	Russian    Code = "ru"
	Japanese   Code = "ja"
	Korean     Code = "ko"
	Chinese    Code = "zh"
	Arabic     Code = "ar"
	Hindi      Code = "hi"
)

type entry struct {
	code    Code     // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
	tag     textlang.Tag
}

var languages = []entry{
	{Spanish, "spa", "", "Spanish", []string{"spanish", "español"}, textlang.Spanish},
	{English, "eng", "", "English", []string{"english"}, textlang.English},
	{French, "fra", "fre", "French", []string{"french", "français"}, textlang.French},
	{German, "deu", "ger", "German", []string{"german", "deutsch"}, textlang.German},
	{Italian, "ita", "", "Italian", []string{"italian"}, textlang.Italian},
	{Portuguese, "por", "", "Portuguese", []string{"portuguese"}, textlang.Portuguese},
	{Dutch, "nld", "dut", "Dutch", []string{"dutch"}, textlang.Dutch},
	{Polish, "pol", "", "Polish", []string{"polish"}, textlang.Polish},
	{Swedish, "swe", "", "Swedish", []string{"swedish"}, textlang.Swedish},
	{Danish, "dan", "", "Danish", []string{"danish"}, textlang.Danish},
	{Norwegian, "nor", "", "Norwegian", []string{"norwegian"}, textlang.Norwegian},
	{Finnish, "fin", "", "Finnish", []string{"finnish"}, textlang.Finnish},
	{Russian, "rus", "", "Russian", []string{"russian"}, textlang.Russian},
	{Japanese, "jpn", "", "Japanese", []string{"japanese"}, textlang.Japanese},
	{Korean, "kor", "", "Korean", []string{"korean"}, textlang.Korean},
	{Chinese, "zho", "chi", "Chinese", []string{"chinese"}, textlang.Chinese},
	{Arabic, "ara", "", "Arabic", []string{"arabic"}, textlang.Arabic},
	{Hindi, "hin", "", "Hindi", []string{"hindi"}, textlang.Hindi},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[string(e.code)] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// Parse resolves a 2-letter code, 3-letter code or English language name to
// a supported Code.
func Parse(value string) (Code, error) {
	e := lookup(value)
	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, strings.TrimSpace(value))
	}
	return e.code, nil
}

// MustParse is like Parse but panics on unknown input. Intended for
// package-level tables and tests.
func MustParse(value string) Code {
	code, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return code
}

// Known reports whether c belongs to the supported set.
func (c Code) Known() bool {
	_, ok := byCode2[string(c)]
	return ok
}

func (c Code) String() string { return string(c) }

// ISO3 returns the ISO 639-2 code, or "und" when c is not supported.
func (c Code) ISO3() string {
	if e, ok := byCode2[string(c)]; ok {
		return e.code3
	}
	return "und"
}

// Tag returns the x/text language tag for c. Unsupported codes map to
// language.Und, which selects language-neutral casing rules.
func (c Code) Tag() textlang.Tag {
	if e, ok := byCode2[string(c)]; ok {
		return e.tag
	}
	return textlang.Und
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Supported returns the supported codes in table order.
func Supported() []Code {
	out := make([]Code, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.code)
	}
	return out
}
