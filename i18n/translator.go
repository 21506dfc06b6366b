package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "null_value":
			return "null は分類できません"
		case "required":
			return "必須フィールドが不足しています"
		case "wrong_kind":
			return "フィールドの種別が不正です"
		case "wrong_arity":
			return "呼び出し可能フィールドの引数の数が不正です"
		case "wrong_result":
			return "呼び出し結果の種別が不正です"
		case "call_failed":
			return "呼び出しに失敗しました"
		case "unknown_key":
			return "未知のフィールドです"
		case "duplicate_key":
			return "キーが重複しています"
		case "discriminant_missing":
			return "判別タグがありません"
		case "discriminant_mismatch":
			return "判別タグが一致しません"
		case "no_identity":
			return "構築識別子がありません"
		case "identity_mismatch":
			return "構築識別子が一致しません"
		case "unknown_variant":
			return "未知のバリアントです"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "null_value":
			return "null value cannot be classified"
		case "required":
			return "required field missing"
		case "wrong_kind":
			return "field has wrong kind"
		case "wrong_arity":
			return "callable field has wrong arity"
		case "wrong_result":
			return "callable returned wrong kind"
		case "call_failed":
			return "call failed"
		case "unknown_key":
			return "unknown field"
		case "duplicate_key":
			return "duplicate key"
		case "discriminant_missing":
			return "discriminant tag missing"
		case "discriminant_mismatch":
			return "discriminant tag mismatch"
		case "no_identity":
			return "no construction identity"
		case "identity_mismatch":
			return "construction identity mismatch"
		case "unknown_variant":
			return "unknown variant"
		case "parse_error":
			return "parse error"
		}
	}
	return code
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
