// Package i18n provides the translation seam used for user-facing strings in
// the settings bag and the widget markup.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingKey is returned by Catalog when no message exists for a key.
	ErrMissingKey = errors.New("i18n: translation missing")
)

// Translator resolves a message key for a locale. Keys are source-language
// strings, so a missing translation can always fall back to the key itself.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the string used when a translation cannot
// be resolved.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// SourceFallback returns the key formatted with args, which is the source
// string for source-keyed catalogs.
func SourceFallback(_ string, key string, args []any, _ error) string {
	return format(key, args)
}

// T translates key with t, falling back to the source string when t is nil,
// the key is missing, or the translation is blank.
func T(t Translator, locale, key string, args ...any) string {
	return TWithFallback(t, SourceFallback, locale, key, args...)
}

// TWithFallback is T with an explicit missing-translation handler.
func TWithFallback(t Translator, onMissing MissingTranslationHandler, locale, key string, args ...any) string {
	if onMissing == nil {
		onMissing = SourceFallback
	}
	if strings.TrimSpace(key) == "" {
		return ""
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}

func format(message string, args []any) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
