package model

// Page : извлечённый текст одной страницы PDF (нумерация с единицы)
type Page struct {
	Number int
	Text   string
}
