// Package i18n holds the localized strings used in API responses and stored
// notifications. English is the fallback locale.
package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

const (
	LocaleEnglish    = "en"
	LocaleVietnamese = "vi"
)

type Translator struct {
	uni *ut.UniversalTranslator
}

func New() (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, vi.New())

	for locale, messages := range catalog {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, errors.Errorf("no translator registered for locale %q", locale)
		}
		for key, text := range messages {
			if err := trans.Add(key, text, false); err != nil {
				return nil, errors.Wrapf(err, "failed to add %q for locale %q", key, locale)
			}
		}
	}

	return &Translator{uni}, nil
}

// ForLocale returns the translator for the given locale, falling back to
// English when the locale isn't supported.
func (t *Translator) ForLocale(locale string) ut.Translator {
	trans, _ := t.uni.FindTranslator(locale)
	return trans
}

// ForAcceptLanguage picks the best supported translator for the value of an
// Accept-Language header.
func (t *Translator) ForAcceptLanguage(header string) ut.Translator {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return t.uni.GetFallback()
	}

	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		base, _ := tag.Base()
		locales = append(locales, base.String())
	}

	trans, _ := t.uni.FindTranslator(locales...)
	return trans
}

// Message translates key, returning fallback if the translator doesn't know
// the key.
func Message(trans ut.Translator, key, fallback string, params ...string) string {
	if trans == nil || key == "" {
		return fallback
	}
	msg, err := trans.T(key, params...)
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
