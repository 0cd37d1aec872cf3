// Package langid wraps trigram language detection and the allow-list mapping
// the translation pipeline depends on. Detection is pure and never fails:
// anything indeterminate or off the allow-list comes back as "unknown".
package langid

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"millcreek_parks/internal/domain"
)

// iso1 maps detected ISO 639-3 codes to the 2-letter codes the translation
// service accepts. Only allow-list languages appear; the last three rows are
// special-cased fallbacks for codes with no exact match.
var iso1 = map[string]string{
	"eng": "en",
	"urd": "ur",
	"spa": "es",
	"fra": "fr",
	"hin": "hi",
	"arb": "ar",
	"ara": "ar",
	"deu": "de",
	"cmn": "zh",
	"zho": "zh",
	"rus": "ru",
	"tur": "tr",

	"sco": "en",
	"quy": "es",
	"mad": "en",
}

type Detector struct{}

func New() Detector { return Detector{} }

// Detect returns an allow-list ISO 639-1 code or domain.LangUnknown.
func (Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.LangUnknown
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return domain.LangUnknown
	}
	if code, ok := iso1[whatlanggo.LangToString(info.Lang)]; ok {
		return code
	}
	return domain.LangUnknown
}

// Supported reports whether a 2-letter code is on the translation allow-list.
// "en" and "unknown" are not translatable.
func Supported(code string) bool {
	switch code {
	case "ur", "es", "fr", "hi", "ar", "de", "zh", "ru", "tr":
		return true
	}
	return false
}
