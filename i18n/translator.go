package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for error message keys.
// data provides optional parameters referenced from the message as
// {name} placeholders (for example "property" or "field").
type Translator interface {
	Message(key string, data map[string]string) string
}

var catalogue = map[string]map[string]string{
	"en": {
		"json_syntax":                           "the payload is not valid JSON",
		"duplicate_json_property":               "duplicate JSON property {field}",
		"duplicate_property":                    "duplicate property {field}",
		"io_error":                              "the payload could not be read",
		"max_depth":                             "the payload is nested too deeply",
		"truncated":                             "the payload exceeds the size limit",
		"value_array_not_present":               "could not find the value array",
		"value_tag_must_be_array":               "the content of the value tag must be an array",
		"invalid_entity":                        "an entity must be a JSON object",
		"invalid_null_property":                 "property {property} must not be null",
		"invalid_value_for_property":            "invalid value for property {property}",
		"invalid_value_for_navigation_property": "invalid value for navigation property {property}",
		"unknown_primitive_type":                "unknown primitive type {type} for property {property}",
		"invalid_type_for_property":             "invalid type kind {kind} for property {property}",
		"not_implemented":                       "not supported: {field}",
		"unknown_content":                       "unknown content {field}",
	},
	"ja": {
		"json_syntax":                           "JSONとして解析できません",
		"duplicate_json_property":               "JSONプロパティ {field} が重複しています",
		"duplicate_property":                    "プロパティ {field} が重複しています",
		"io_error":                              "ペイロードを読み込めません",
		"max_depth":                             "ネストが深すぎます",
		"truncated":                             "サイズ上限を超えています",
		"value_array_not_present":               "value 配列がありません",
		"value_tag_must_be_array":               "value は配列でなければなりません",
		"invalid_entity":                        "エンティティはJSONオブジェクトでなければなりません",
		"invalid_null_property":                 "プロパティ {property} に null は指定できません",
		"invalid_value_for_property":            "プロパティ {property} の値が不正です",
		"invalid_value_for_navigation_property": "ナビゲーションプロパティ {property} の値が不正です",
		"unknown_primitive_type":                "プロパティ {property} のプリミティブ型 {type} は未知です",
		"invalid_type_for_property":             "プロパティ {property} の型種別 {kind} は不正です",
		"not_implemented":                       "未対応です: {field}",
		"unknown_content":                       "未知の内容です: {field}",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(key string, data map[string]string) string {
	msg, ok := catalogue[t.lang][key]
	if !ok {
		return key
	}
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogue[lang]; !ok {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string { return current.Load().tr.Message(key, data) }
