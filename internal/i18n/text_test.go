package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	assert.Equal(t, EN, ParseLang("en-US"))
	assert.Equal(t, EN, ParseLang(" EN "))
	assert.Equal(t, RU, ParseLang("ru_RU"))
	assert.Equal(t, RU, ParseLang("de"))
	assert.Equal(t, RU, ParseLang(""))
}

func TestText_Get(t *testing.T) {
	txt := Text{En: "Kazakhstan", Ru: "Казахстан"}
	assert.Equal(t, "Kazakhstan", txt.Get(EN))
	assert.Equal(t, "Казахстан", txt.Get(RU))

	t.Run("falls back to the other language", func(t *testing.T) {
		onlyRu := Text{Ru: "Памир"}
		assert.Equal(t, "Памир", onlyRu.Get(EN))

		onlyEn := Text{En: "Pamir", Ru: "  "}
		assert.Equal(t, "Pamir", onlyEn.Get(RU))
	})

	t.Run("zero value", func(t *testing.T) {
		assert.True(t, Text{}.IsZero())
		assert.Equal(t, "", Text{}.Get(EN))
	})
}

func TestParse(t *testing.T) {
	t.Run("json object", func(t *testing.T) {
		txt, err := Parse(`{"en":"Silk Road","ru":"Шёлковый путь"}`)
		require.NoError(t, err)
		assert.Equal(t, Text{En: "Silk Road", Ru: "Шёлковый путь"}, txt)
	})

	t.Run("plain string used for both languages", func(t *testing.T) {
		txt, err := Parse("Самарканд")
		require.NoError(t, err)
		assert.Equal(t, Text{En: "Самарканд", Ru: "Самарканд"}, txt)
	})

	t.Run("json string literal", func(t *testing.T) {
		txt, err := Parse(`"Бухара"`)
		require.NoError(t, err)
		assert.Equal(t, "Бухара", txt.Ru)
	})

	t.Run("broken object", func(t *testing.T) {
		_, err := Parse(`{"en": `)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		txt, err := Parse("   ")
		require.NoError(t, err)
		assert.True(t, txt.IsZero())
	})
}

func TestText_ScanValue(t *testing.T) {
	orig := Text{En: "Popular", Ru: "Популярные"}
	v, err := orig.Value()
	require.NoError(t, err)

	var back Text
	require.NoError(t, back.Scan(v))
	assert.Equal(t, orig, back)

	require.NoError(t, back.Scan([]byte(`{"ru":"Хива"}`)))
	assert.Equal(t, "Хива", back.Get(EN))

	require.NoError(t, back.Scan(nil))
	assert.True(t, back.IsZero())

	assert.Error(t, back.Scan(42))
}
