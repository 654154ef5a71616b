package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	mu sync.RWMutex
	i  *I18N
)

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
	tag       language.Tag
}

type MessageFile struct {
	Name    string
	Content []byte
}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func embeddedBundle() (*i18n.Bundle, error) {
	bundle := newBundle()

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

func current() *I18N {
	mu.RLock()
	cur := i
	mu.RUnlock()
	if cur != nil {
		return cur
	}

	mu.Lock()
	defer mu.Unlock()
	if i == nil {
		bundle, err := embeddedBundle()
		if err != nil {
			bundle = newBundle()
		}
		i = &I18N{localizer: i18n.NewLocalizer(bundle, language.English.String()), bundle: bundle, tag: language.English}
	}
	return i
}

// InitI18N loads the embedded messages plus any message files on disk.
// Files on disk override embedded messages with the same ID.
func InitI18N(messageFilePaths []string) error {
	bundle, err := embeddedBundle()
	if err != nil {
		return err
	}

	for _, messageFile := range messageFilePaths {
		if _, err := bundle.LoadMessageFile(messageFile); err != nil {
			return err
		}
	}

	mu.Lock()
	i = &I18N{localizer: i18n.NewLocalizer(bundle, language.English.String()), bundle: bundle, tag: language.English}
	mu.Unlock()

	return nil
}

func InitI18NFromBytes(messageFiles []MessageFile) error {
	bundle, err := embeddedBundle()
	if err != nil {
		return err
	}

	for _, messageFile := range messageFiles {
		if _, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name); err != nil {
			return err
		}
	}

	mu.Lock()
	i = &I18N{localizer: i18n.NewLocalizer(bundle, language.English.String()), bundle: bundle, tag: language.English}
	mu.Unlock()

	return nil
}

func SetLanguage(lang language.Tag) {
	cur := current()
	localizer := i18n.NewLocalizer(cur.bundle, lang.String(), language.English.String())

	mu.Lock()
	i = &I18N{localizer: localizer, bundle: cur.bundle, tag: lang}
	mu.Unlock()
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

// Language returns the active language.
func Language() language.Tag {
	return current().tag
}

// Languages returns the languages with loaded messages.
func Languages() []language.Tag {
	return current().bundle.LanguageTags()
}

// GetString retrieves a localized string by key, falling back to English.
// If the key is not found in any language, it returns the key itself.
func GetString(key string) string {
	msg, err := current().localizer.Localize(&i18n.LocalizeConfig{
		MessageID: key,
	})
	// a fallback language match renders along with a not-found error
	if err != nil && msg == "" {
		return key
	}
	return msg
}

// GetStringWithData retrieves a localized string by key with template data.
func GetStringWithData(key string, templateData map[string]any) string {
	msg, err := current().localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil && msg == "" {
		return key
	}
	return msg
}

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

// Localize retrieves a localized string using the go-i18n struct pattern.
// The DefaultMessage provides the message ID and fallback text.
func Localize(message *Message, templateData map[string]any) string {
	if message == nil {
		return ""
	}

	config := &i18n.LocalizeConfig{
		DefaultMessage: message,
	}
	if templateData != nil {
		config.TemplateData = templateData
	}

	msg, err := current().localizer.Localize(config)
	if err != nil && msg == "" {
		return message.Other
	}
	return msg
}

var captionIDs = map[string]string{
	"backspace": "key_backspace",
	"tab":       "key_tab",
	"capsLock":  "key_caps",
	"shift":     "key_shift",
	"enter":     "key_enter",
	"space":     "key_space",
}

// Caption returns the localized caption for a control key kind, or "" when the
// kind has no caption of its own.
func Caption(kind string) string {
	id, ok := captionIDs[kind]
	if !ok {
		return ""
	}
	return GetString(id)
}
