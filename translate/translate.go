// Package translate formats user-facing messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FALLBACK_LOCALE is used when the host reports no locale.
const FALLBACK_LOCALE = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Locales returns the host locales, best match first.
func Locales() (locales []string) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("chip8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{FALLBACK_LOCALE}
	}

	return
}

// Printer returns the message printer for the host locale.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		tag := message.MatchLanguage(Locales()...)
		if tag == language.Und {
			tag = language.MustParse(FALLBACK_LOCALE)
		}
		printer = message.NewPrinter(tag)
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
