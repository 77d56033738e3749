// Package i18n provides the bilingual label helper used by every console
// surface. Labels are stored as zh/en pairs in the "labels" catalog namespace.
package i18n

import (
	"strings"
	"sync"

	"github.com/louisbranch/kafkaview/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// English is the locale that selects English labels.
	English = "en"
	// Chinese is the default locale.
	Chinese = "zh"

	labelsNamespace = "labels"
)

var matcher = language.NewMatcher([]language.Tag{language.Chinese, language.English})

// NormalizeLocale maps a locale input onto "en" or "zh". en-US and en-GB become
// "en"; everything unmatched falls back to "zh".
func NormalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return Chinese
	}
	tags, _, err := language.ParseAcceptLanguage(trimmed)
	if err != nil || len(tags) == 0 {
		return Chinese
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No || index != 1 {
		return Chinese
	}
	return English
}

// Labeler resolves label keys for one locale.
type Labeler struct {
	locale string
	zh     map[string]string
	en     map[string]string
}

// NewLabeler returns a Labeler backed by the embedded catalogs.
func NewLabeler(locale string) *Labeler {
	bundle := catalog.Default()
	return &Labeler{
		locale: NormalizeLocale(locale),
		zh:     bundle.NamespaceMessages(catalog.ChineseLocale, labelsNamespace),
		en:     bundle.NamespaceMessages(catalog.BaseLocale, labelsNamespace),
	}
}

// Locale returns the normalized locale ("en" or "zh").
func (l *Labeler) Locale() string {
	return l.locale
}

// Label returns "<zh> (<en>)" for a known key, or the key itself.
func (l *Labeler) Label(key string) string {
	zh, okZh := l.zh[key]
	en, okEn := l.en[key]
	if !okZh || !okEn {
		return key
	}
	return zh + " (" + en + ")"
}

// T returns the entry for the labeler's locale, or the key itself.
func (l *Labeler) T(key string) string {
	entries := l.zh
	if l.locale == English {
		entries = l.en
	}
	if value, ok := entries[key]; ok {
		return value
	}
	return key
}

// Message returns any catalog message in the labeler's locale, falling back
// to English and then to the key itself.
func (l *Labeler) Message(key string) string {
	catalogLocale := catalog.ChineseLocale
	if l.locale == English {
		catalogLocale = catalog.BaseLocale
	}
	if value, ok := catalog.Default().Message(catalogLocale, key); ok {
		return value
	}
	return key
}

// Printer returns an x/text printer for number formatting in the labeler's
// locale.
func (l *Labeler) Printer() *message.Printer {
	if l.locale == English {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(language.Chinese)
}

// Number formats an integer with locale grouping separators.
func (l *Labeler) Number(n int64) string {
	return l.Printer().Sprintf("%d", n)
}

var (
	mu      sync.RWMutex
	current = NewLabeler(Chinese)
)

// SetLocale changes the process-wide locale used by Label and T.
func SetLocale(locale string) {
	next := NewLabeler(locale)
	mu.Lock()
	current = next
	mu.Unlock()
}

// Locale returns the process-wide locale.
func Locale() string {
	return Default().Locale()
}

// Default returns the process-wide labeler.
func Default() *Labeler {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Label returns "<zh> (<en>)" for key using the process-wide labeler.
func Label(key string) string {
	return Default().Label(key)
}

// T translates key using the process-wide locale.
func T(key string) string {
	return Default().T(key)
}
