package i18n

// Translator retrieves localized messages for record codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "wrong_type":
			return withShapes("型が不正です", data)
		case "value_missing":
			return "値がありません"
		case "validation_failed":
			return "検証に失敗しました"
		case "conversion_failed":
			return "変換に失敗しました"
		case "text_encoding":
			return "テキストが UTF-8 ではありません"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "wrong_type":
			return withShapes("wrong type", data)
		case "value_missing":
			return "value missing"
		case "validation_failed":
			return "validation failed"
		case "conversion_failed":
			return "conversion failed"
		case "text_encoding":
			return "text is not valid UTF-8"
		case "parse_error":
			return "JSON parsing failed"
		}
	}
	return code
}

func withShapes(msg string, data map[string]string) string {
	exp, got := data["expected"], data["got"]
	if exp == "" || got == "" {
		return msg
	}
	return msg + " (" + exp + " <- " + got + ")"
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
