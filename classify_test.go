package normdoc_test

import (
	"testing"

	"github.com/fwojciec/normdoc"
	"github.com/stretchr/testify/assert"
)

func TestClassifyType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want normdoc.DocType
	}{
		{"https://meganorm.ru/mega_doc/fire/standart/gost-r-53280.html", normdoc.DocTypeGOST},
		{"/mega_doc/fire/gost_12.html", normdoc.DocTypeGOST},
		{"https://meganorm.ru/mega_doc/fire/federalnyj-zakon/fz-123.html", normdoc.DocTypeFederalLaw},
		{"https://meganorm.ru/mega_doc/fire/prikaz/prikaz-mchs-806.html", normdoc.DocTypeOrder},
		{"https://meganorm.ru/mega_doc/fire/postanovlenie/pp-1479.html", normdoc.DocTypeResolution},
		{"https://meganorm.ru/mega_doc/norm/snip/snip-21-01-97.html", normdoc.DocTypeSNiP},
		{"https://meganorm.ru/mega_doc/norm/sp/sp-1-13130.html", normdoc.DocTypeSP},
		{"https://meganorm.ru/mega_doc/fire/pismo/pismo-1.html", normdoc.DocTypeGeneric},
		{"https://meganorm.ru/MEGA_DOC/FIRE/PRIKAZ/X.HTML", normdoc.DocTypeOrder},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normdoc.ClassifyType(tt.url))
		})
	}
}

func TestClassifyType_IgnoresTitleLikeText(t *testing.T) {
	t.Parallel()

	// The query string is not part of the path and must not influence the type.
	got := normdoc.ClassifyType("https://meganorm.ru/mega_doc/fire/pismo/p.html?ref=/prikaz/")
	assert.Equal(t, normdoc.DocTypeGeneric, got)
}

func TestClassifyType_StandartBeforeOrder(t *testing.T) {
	t.Parallel()

	got := normdoc.ClassifyType("https://meganorm.ru/mega_doc/fire/standart/prikaz-appendix.html")
	assert.Equal(t, normdoc.DocTypeGOST, got)
}

func TestMatchSummaryNumber(t *testing.T) {
	t.Parallel()

	t.Run("number sign pattern wins over generic pattern", func(t *testing.T) {
		t.Parallel()

		got := normdoc.MatchSummaryNumber("Приказ 2020-15 МЧС России № 123-45", "/mega_doc/fire/prikaz/a.html")
		assert.Equal(t, "123-45", got)
	})

	t.Run("generic pattern precedes specific ones", func(t *testing.T) {
		t.Parallel()

		// The generic rule precedes the ГОСТ rule and matches the first
		// dash-separated run.
		got := normdoc.MatchSummaryNumber("ГОСТ Р 12.2.143-2009 Системы", "/mega_doc/fire/standart/x.html")
		assert.Equal(t, "143-2009", got)
	})

	t.Run("falls back to url", func(t *testing.T) {
		t.Parallel()

		got := normdoc.MatchSummaryNumber("Свод правил", "/mega_doc/fire/sp/sp_5-13130.html")
		assert.Equal(t, "5-13130", got)
	})

	t.Run("returns empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		got := normdoc.MatchSummaryNumber("Технический регламент", "/mega_doc/fire/zakon.html")
		assert.Empty(t, got)
	})
}

func TestMatchDate(t *testing.T) {
	t.Parallel()

	t.Run("prefers date after от", func(t *testing.T) {
		t.Parallel()

		got := normdoc.MatchDate("Редакция 01.02.2020. Приказ ОТ 25.03.2009 № 182")
		// The "от" rule is first in the table, so it wins even though another
		// date occurs earlier in the text.
		assert.Equal(t, "25.03.2009", got)
	})

	t.Run("bare dotted date", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "1.7.2021", normdoc.MatchDate("Вступает в силу 1.7.2021"))
	})

	t.Run("iso date", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "2021-07-01", normdoc.MatchDate("Обновлено 2021-07-01"))
	})

	t.Run("no date", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, normdoc.MatchDate("без даты"))
	})
}

func TestMatchDetailNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "806", normdoc.MatchDetailNumber("Приказ МЧС России от 18.10.2023 №806 (ред.)"))
	assert.Equal(t, "123-", normdoc.MatchDetailNumber("Федеральный закон N 123-ФЗ"))
	assert.Equal(t, "45/2", normdoc.MatchDetailNumber("Номер: 45/2"))
	assert.Empty(t, normdoc.MatchDetailNumber("нет номера"))
}

func TestMatchStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, normdoc.StatusActive, normdoc.MatchStatus("Статус: ДЕЙСТВУЕТ"))
	assert.Equal(t, normdoc.StatusRepealed, normdoc.MatchStatus("Документ отменен"))
	assert.Equal(t, normdoc.StatusExpired, normdoc.MatchStatus("Утратил силу с 2020 года"))
	assert.Equal(t, normdoc.StatusSuspended, normdoc.MatchStatus("Приостановлен"))
	assert.Empty(t, normdoc.MatchStatus("Статус неизвестен"))

	// Table order decides when several keywords are present.
	assert.Equal(t, normdoc.StatusActive, normdoc.MatchStatus("отменен; действует новая редакция"))
}

func TestMatchOrganization(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Министерство Российской Федерации по делам гражданской обороны",
		normdoc.MatchOrganization("Издан: Министерство Российской Федерации по делам гражданской обороны. Далее"))
	assert.Equal(t, "ПРАВИТЕЛЬСТВО РОССИЙСКОЙ ФЕДЕРАЦИИ",
		normdoc.MatchOrganization("ПРАВИТЕЛЬСТВО РОССИЙСКОЙ ФЕДЕРАЦИИ\nПОСТАНОВЛЕНИЕ"))
	assert.Equal(t, "Росстандарт", normdoc.MatchOrganization("Утвержден Росстандарт 2019"))
	assert.Empty(t, normdoc.MatchOrganization("без органа"))
}

func TestExtractMetadata(t *testing.T) {
	t.Parallel()

	text := "Приказ МЧС России от 18.10.2023 № 806\nСтатус: действует\nМинистерство чрезвычайных ситуаций"
	md := normdoc.ExtractMetadata(text)

	assert.Equal(t, normdoc.Metadata{
		Date:         "18.10.2023",
		Number:       "806",
		Status:       normdoc.StatusActive,
		Organization: "Министерство чрезвычайных ситуаций",
	}, md)
}
