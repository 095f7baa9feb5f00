package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func TestMatchLanguage(t *testing.T) {
	assert.Equal(t, "en", baseOf(MatchLanguage("en-US,en;q=0.9")))
	assert.Equal(t, "es", baseOf(MatchLanguage("es-ES,es;q=0.9")))
	// Unsupported languages fall back to the default.
	assert.Equal(t, "en", baseOf(MatchLanguage("fr-FR")))
}

func TestNewCLIPrinterLocaleEnv(t *testing.T) {
	t.Setenv("LC_ALL", "es_ES.UTF-8")
	assert.NotNil(t, NewCLIPrinter())

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	assert.NotNil(t, NewCLIPrinter())
}
