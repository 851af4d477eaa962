package language

import "strings"

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-3 (3-letter), as used by Apertium
	display string
}

var languages = []entry{
	{"af", "afr", "Afrikaans"},
	{"an", "arg", "Aragonese"},
	{"ar", "ara", "Arabic"},
	{"ast", "ast", "Asturian"},
	{"be", "bel", "Belarusian"},
	{"bg", "bul", "Bulgarian"},
	{"br", "bre", "Breton"},
	{"ca", "cat", "Catalan"},
	{"cs", "ces", "Czech"},
	{"cy", "cym", "Welsh"},
	{"da", "dan", "Danish"},
	{"de", "deu", "German"},
	{"el", "ell", "Greek"},
	{"en", "eng", "English"},
	{"eo", "epo", "Esperanto"},
	{"es", "spa", "Spanish"},
	{"eu", "eus", "Basque"},
	{"fr", "fra", "French"},
	{"ga", "gle", "Irish"},
	{"gl", "glg", "Galician"},
	{"hr", "hrv", "Croatian"},
	{"id", "ind", "Indonesian"},
	{"is", "isl", "Icelandic"},
	{"it", "ita", "Italian"},
	{"kk", "kaz", "Kazakh"},
	{"mk", "mkd", "Macedonian"},
	{"ms", "msa", "Malay"},
	{"mt", "mlt", "Maltese"},
	{"nb", "nob", "Norwegian Bokmål"},
	{"nl", "nld", "Dutch"},
	{"nn", "nno", "Norwegian Nynorsk"},
	{"oc", "oci", "Occitan"},
	{"pl", "pol", "Polish"},
	{"pt", "por", "Portuguese"},
	{"ro", "ron", "Romanian"},
	{"ru", "rus", "Russian"},
	{"sc", "srd", "Sardinian"},
	{"se", "sme", "Northern Sami"},
	{"sk", "slk", "Slovak"},
	{"sl", "slv", "Slovenian"},
	{"sr", "srp", "Serbian"},
	{"sv", "swe", "Swedish"},
	{"tt", "tat", "Tatar"},
	{"uk", "ukr", "Ukrainian"},
	{"ur", "urd", "Urdu"},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if base, _, ok := strings.Cut(code, "_"); ok {
		code = base
	}
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return nil
}

// Known reports whether the base code (variant ignored) is in the table.
func Known(code string) bool {
	return lookup(code) != nil
}

// DisplayName returns a human-readable name for a code such as "es",
// "spa" or "ca_valencia". Unknown codes are returned uppercased.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	_, variant, _ := strings.Cut(code, "_")
	e := lookup(code)
	if e == nil {
		return strings.ToUpper(code)
	}
	if variant != "" {
		return e.display + " (" + variant + ")"
	}
	return e.display
}
