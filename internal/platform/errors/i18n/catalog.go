// Package i18n provides localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"

	i18ncatalog "github.com/louisbranch/kafkaview/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

const errorsNamespace = "errors"

// Catalog renders the messages of one locale. Messages may be text/template
// strings over the error metadata, for example "Invalid {{.field}}".
type Catalog struct {
	locale    string
	raw       map[Code]string
	templates map[Code]*template.Template
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}

	matcherOnce sync.Once
	matcher     language.Matcher
	supported   []string
)

// GetCatalog returns the catalog that best matches locale. Short tags such
// as "zh" or "en" resolve to the catalog regions; anything unknown falls back
// to en-US.
func GetCatalog(locale string) *Catalog {
	resolved := resolveLocale(locale)

	catalogsMu.RLock()
	cached, ok := catalogs[resolved]
	catalogsMu.RUnlock()
	if ok {
		return cached
	}

	_, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(resolved, errorsNamespace)
	built := NewCatalog(resolved, messages)

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[resolved]; ok {
		return existing
	}
	catalogs[resolved] = built
	return built
}

func resolveLocale(locale string) string {
	matcherOnce.Do(func() {
		supported = []string{i18ncatalog.BaseLocale}
		for _, candidate := range i18ncatalog.Default().Locales() {
			if candidate != i18ncatalog.BaseLocale {
				supported = append(supported, candidate)
			}
		}
		tags := make([]language.Tag, 0, len(supported))
		for _, candidate := range supported {
			tags = append(tags, language.Make(candidate))
		}
		matcher = language.NewMatcher(tags)
	})
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return i18ncatalog.BaseLocale
	}
	_, index, confidence := matcher.Match(language.Make(trimmed))
	if confidence == language.No {
		return i18ncatalog.BaseLocale
	}
	return supported[index]
}

// NewCatalog compiles messages for locale. A message that is not a valid
// template is rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		raw:       make(map[Code]string, len(messages)),
		templates: map[Code]*template.Template{},
	}
	for code, message := range messages {
		c.raw[code] = message
		if !strings.Contains(message, "{{") {
			continue
		}
		if tmpl, err := template.New(code).Option("missingkey=zero").Parse(message); err == nil {
			c.templates[code] = tmpl
		}
	}
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. Unknown codes render as
// the code itself.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	message, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return message
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return message
	}
	return buf.String()
}
