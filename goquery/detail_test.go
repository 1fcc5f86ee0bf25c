package goquery_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/normdoc"
	"github.com/fwojciec/normdoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderPage = `<!DOCTYPE html>
<html>
<head>
	<title>Приказ МЧС России от 18.10.2023 № 806 | МегаНорм</title>
	<style>.lead { color: red; }</style>
</head>
<body>
<header><a href="/">МегаНорм</a> Главная</header>
<nav class="menu"><a href="/fire">Меню раздела</a></nav>
<div class="doc-header"><h1 class="doc-title">Приказ МЧС России от 18.10.2023 № 806</h1></div>
<div class="document-content" id="doc" style="margin: 0">
<h2>Общие положения</h2>
<p class="lead" onclick="track()">Настоящий приказ <a href="/x">утвержден</a> Министерство Российской Федерации по делам гражданской обороны.</p>
<p>Статус: действует</p>
<h3>Область применения</h3>
<p>Первый абзац.</p>
<p>Второй абзац.</p>
<p>Третий абзац.</p>
<p>Четвертый абзац.</p>
<script>var tracked = true;</script>
</div>
<footer>Подвал сайта</footer>
</body>
</html>`

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newDetailExtractor() *goquery.DetailExtractor {
	e := goquery.NewDetailExtractor()
	e.Now = fixedNow
	return e
}

func TestDetailExtractor_ExtractDetail(t *testing.T) {
	t.Parallel()

	const sourceURL = "https://meganorm.ru/mega_doc/fire/prikaz/prikaz-806.html"

	t.Run("extracts title from the most specific selector", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Приказ МЧС России от 18.10.2023 № 806", doc.Title)
		assert.Equal(t, sourceURL, doc.SourceURL)
		assert.Equal(t, fixedNow(), doc.FetchedAt)
	})

	t.Run("extracts metadata from page text", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, normdoc.Metadata{
			Date:         "18.10.2023",
			Number:       "806",
			Status:       normdoc.StatusActive,
			Organization: "Министерство Российской Федерации по делам гражданской обороны",
		}, doc.Metadata)
	})

	t.Run("isolates content container and strips page chrome", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(doc.ContentText, "Общие положения\n"))
		assert.Contains(t, doc.ContentText, "Четвертый абзац.")
		assert.NotContains(t, doc.ContentText, "Меню раздела")
		assert.NotContains(t, doc.ContentText, "Подвал сайта")
		assert.NotContains(t, doc.ContentText, "tracked")
		assert.NotContains(t, doc.ContentText, "Приказ МЧС России")
	})

	t.Run("sanitizes content markup", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(doc.ContentHTML, `<div class="document-content">`))
		assert.Contains(t, doc.ContentHTML, `<h2>Общие положения</h2>`)
		assert.Contains(t, doc.ContentHTML, `<p class="lead">Настоящий приказ утвержден Министерство`)
		assert.NotContains(t, doc.ContentHTML, "onclick")
		assert.NotContains(t, doc.ContentHTML, "style=")
		assert.NotContains(t, doc.ContentHTML, `id="doc"`)
		assert.NotContains(t, doc.ContentHTML, "<a")
		assert.NotContains(t, doc.ContentHTML, "<script")
	})

	t.Run("sanitized content is stable under re-sanitizing", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)
		require.NoError(t, err)

		again, err := goquery.SanitizeHTML(doc.ContentHTML)

		require.NoError(t, err)
		assert.Equal(t, doc.ContentHTML, again)
	})

	t.Run("stores content that re-parses unchanged", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><h1>Свод правил СП 1.13130.2020 Системы противопожарной защиты</h1>
<div class="document-content"><p><object><div>Пункт 4.1</div></object></p>
<table><caption><span>Таблица 1</span></caption><tr><td>R 60</td></tr><tfoot><tr><td>Итого</td></tr></tfoot></table></div>
</body></html>`

		doc, err := newDetailExtractor().ExtractDetail(page, sourceURL)
		require.NoError(t, err)

		again, err := goquery.SanitizeHTML(doc.ContentHTML)

		require.NoError(t, err)
		assert.Equal(t, doc.ContentHTML, again)
		assert.Contains(t, doc.ContentHTML, `<caption>Таблица 1</caption>`)
		assert.Contains(t, doc.ContentHTML, `<tfoot><tr><td>Итого</td></tr></tfoot>`)
	})

	t.Run("builds outline with excerpts", func(t *testing.T) {
		t.Parallel()

		doc, err := newDetailExtractor().ExtractDetail(orderPage, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, []normdoc.Section{
			{
				Level:   2,
				Title:   "Общие положения",
				ID:      "section_0",
				Content: "Настоящий приказ утвержден Министерство Российской Федерации по делам гражданской обороны.\nСтатус: действует",
			},
			{
				Level:   3,
				Title:   "Область применения",
				ID:      "section_1",
				Content: "Первый абзац.\nВторой абзац.\nТретий абзац.",
			},
		}, doc.Sections)
	})

	t.Run("preserves heading order and levels", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body><main>
<h1>Свод правил СП 1.13130.2020</h1>
<p>Вступление.</p>
<h2>Термины</h2>
<h3>Определения</h3>
<p>Текст.</p>
<h2>Требования</h2>
</main></body></html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		require.Len(t, doc.Sections, 4)
		var levels []int
		var titles []string
		for i, s := range doc.Sections {
			levels = append(levels, s.Level)
			titles = append(titles, s.Title)
			assert.Equal(t, "section_"+string(rune('0'+i)), s.ID)
		}
		assert.Equal(t, []int{1, 2, 3, 2}, levels)
		assert.Equal(t, []string{"Свод правил СП 1.13130.2020", "Термины", "Определения", "Требования"}, titles)
		assert.Equal(t, "Вступление.", doc.Sections[0].Content)
		assert.Empty(t, doc.Sections[1].Content)
		assert.Empty(t, doc.Sections[3].Content)
	})

	t.Run("falls back to later title selectors", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Постановление Правительства РФ № 1479</title></head>
<body><h1>Кратко</h1><div class="content"><p>Текст</p></div></body>
</html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Постановление Правительства РФ № 1479", doc.Title)
	})

	t.Run("uses placeholder when no title is long enough", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><head><title>Документ</title></head><body><h1>Кратко</h1></body></html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, goquery.UntitledDocument, doc.Title)
	})

	t.Run("prefers the first matching content selector", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<div class="content"><p>Общий контент</p>
<div class="doc-content"><p>Текст документа</p></div>
</div>
</body></html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Текст документа", doc.ContentText)
		assert.Equal(t, `<div class="doc-content"><p>Текст документа</p></div>`, doc.ContentHTML)
	})

	t.Run("falls back to body content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body><p>Первый</p><aside>Реклама</aside><p>Второй</p></body></html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, "Первый\nВторой", doc.ContentText)
		assert.Equal(t, "<p>Первый</p><p>Второй</p>", doc.ContentHTML)
	})

	t.Run("leaves metadata empty when nothing matches", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body><div class="content"><p>Без реквизитов</p></div></body></html>`

		doc, err := newDetailExtractor().ExtractDetail(html, sourceURL)

		require.NoError(t, err)
		assert.Equal(t, normdoc.Metadata{}, doc.Metadata)
		assert.NotNil(t, doc.Sections)
		assert.Empty(t, doc.Sections)
	})

	t.Run("content hash depends only on content text", func(t *testing.T) {
		t.Parallel()

		a := `<!DOCTYPE html><html><head><title>Первая версия заголовка</title></head><body><main><p>Одинаковый текст</p></main></body></html>`
		b := `<!DOCTYPE html><html><head><title>Вторая версия заголовка</title></head><body><main><p class="x">Одинаковый текст</p></main></body></html>`
		c := `<!DOCTYPE html><html><body><main><p>Другой текст</p></main></body></html>`

		e := newDetailExtractor()
		docA, err := e.ExtractDetail(a, sourceURL)
		require.NoError(t, err)
		docB, err := e.ExtractDetail(b, sourceURL)
		require.NoError(t, err)
		docC, err := e.ExtractDetail(c, sourceURL)
		require.NoError(t, err)

		assert.Len(t, docA.ContentHash, 16)
		assert.Equal(t, docA.ContentHash, docB.ContentHash)
		assert.NotEqual(t, docA.ContentHash, docC.ContentHash)
	})

	t.Run("returns extract error for blank markup", func(t *testing.T) {
		t.Parallel()

		_, err := newDetailExtractor().ExtractDetail("  \n\t", sourceURL)

		require.Error(t, err)
		assert.Equal(t, normdoc.EEXTRACT, normdoc.ErrorCode(err))
		assert.Equal(t, sourceURL, normdoc.ErrorURL(err))
	})
}
