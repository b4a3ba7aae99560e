// Package i18n holds the response messages in Indonesian and English
// and picks one per request from the Accept-Language header.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Key string

const (
	BookAdded            Key = "book.added"
	AddFailed            Key = "book.add.failed"
	AddNameRequired      Key = "book.add.name_required"
	AddReadPageTooLarge  Key = "book.add.read_page_too_large"
	AddNegativePages     Key = "book.add.negative_pages"
	BooksListed          Key = "books.listed"
	BookFound            Key = "book.found"
	BookNotFound         Key = "book.not_found"
	BookUpdated          Key = "book.updated"
	UpdateIDRequired     Key = "book.update.id_required"
	UpdateNameRequired   Key = "book.update.name_required"
	UpdateReadPageTooBig Key = "book.update.read_page_too_large"
	UpdateNegativePages  Key = "book.update.negative_pages"
	UpdateNotFound       Key = "book.update.not_found"
	BookDeleted          Key = "book.deleted"
	DeleteNotFound       Key = "book.delete.not_found"
	InvalidBody          Key = "request.invalid_body"
	TooManyRequests      Key = "request.too_many"
	ServerError          Key = "server.error"
	ServerHealthy        Key = "server.healthy"
	ServiceInfo          Key = "server.info"
	RouteNotFound        Key = "request.route_not_found"
	MethodNotAllowed     Key = "request.method_not_allowed"
)

var texts = map[Key][2]string{ // {id, en}
	BookAdded:            {"Buku berhasil ditambahkan", "Book added successfully"},
	AddFailed:            {"Buku gagal ditambahkan", "Failed to add book"},
	AddNameRequired:      {"Gagal menambahkan buku. Mohon isi nama buku", "Failed to add book. Please provide the book name"},
	AddReadPageTooLarge:  {"Gagal menambahkan buku. readPage tidak boleh lebih besar dari pageCount", "Failed to add book. readPage must not be greater than pageCount"},
	AddNegativePages:     {"Gagal menambahkan buku. pageCount dan readPage tidak boleh negatif", "Failed to add book. pageCount and readPage must not be negative"},
	BooksListed:          {"Daftar buku berhasil didapatkan", "Books retrieved successfully"},
	BookFound:            {"Buku ditemukan", "Book found"},
	BookNotFound:         {"Buku tidak ditemukan", "Book not found"},
	BookUpdated:          {"Buku berhasil diperbarui", "Book updated successfully"},
	UpdateIDRequired:     {"Gagal memperbarui buku. Id buku wajib diisi", "Failed to update book. Book id is required"},
	UpdateNameRequired:   {"Gagal memperbarui buku. Mohon isi nama buku", "Failed to update book. Please provide the book name"},
	UpdateReadPageTooBig: {"Gagal memperbarui buku. readPage tidak boleh lebih besar dari pageCount", "Failed to update book. readPage must not be greater than pageCount"},
	UpdateNegativePages:  {"Gagal memperbarui buku. pageCount dan readPage tidak boleh negatif", "Failed to update book. pageCount and readPage must not be negative"},
	UpdateNotFound:       {"Gagal memperbarui buku. Id tidak ditemukan", "Failed to update book. Id not found"},
	BookDeleted:          {"Buku berhasil dihapus", "Book deleted successfully"},
	DeleteNotFound:       {"Buku gagal dihapus. Id tidak ditemukan", "Failed to delete book. Id not found"},
	InvalidBody:          {"Gagal memproses permintaan. Body harus berupa JSON yang valid", "Failed to process request. Body must be valid JSON"},
	TooManyRequests:      {"Terlalu banyak permintaan. Coba lagi nanti", "Too many requests. Try again later"},
	ServerError:          {"Terjadi kegagalan pada server kami", "An internal server error occurred"},
	ServerHealthy:        {"Server berjalan", "Server is running"},
	ServiceInfo:          {"Bookshelf API", "Bookshelf API"},
	RouteNotFound:        {"Halaman tidak ditemukan", "Route not found"},
	MethodNotAllowed:     {"Metode tidak diizinkan", "Method not allowed"},
}

var supported = []language.Tag{language.Indonesian, language.English}

// Translator resolves message keys for a preferred language.
type Translator struct {
	cat      catalog.Catalog
	matcher  language.Matcher
	fallback language.Tag
}

// New builds a translator whose default language is lang ("id" or "en").
func New(lang string) (*Translator, error) {
	fallback := language.Indonesian
	if lang != "" {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", lang, err)
		}
		_, idx, conf := language.NewMatcher(supported).Match(tag)
		if conf == language.No {
			return nil, fmt.Errorf("unsupported language %q", lang)
		}
		fallback = supported[idx]
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for k, v := range texts {
		if err := b.SetString(language.Indonesian, string(k), v[0]); err != nil {
			return nil, err
		}
		if err := b.SetString(language.English, string(k), v[1]); err != nil {
			return nil, err
		}
	}

	// The default goes first so it wins ties and unmatched headers.
	order := []language.Tag{fallback}
	for _, t := range supported {
		if t != fallback {
			order = append(order, t)
		}
	}
	return &Translator{cat: b, matcher: language.NewMatcher(order), fallback: fallback}, nil
}

// Tag picks the supported language best matching an Accept-Language header.
func (t *Translator) Tag(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return t.fallback
	}
	tag, _ := language.MatchStrings(t.matcher, acceptLanguage)
	base, _ := tag.Base()
	for _, s := range supported {
		if sb, _ := s.Base(); sb == base {
			return s
		}
	}
	return t.fallback
}

// Text returns the message for k in the language chosen by acceptLanguage.
func (t *Translator) Text(acceptLanguage string, k Key) string {
	p := message.NewPrinter(t.Tag(acceptLanguage), message.Catalog(t.cat))
	return p.Sprintf(string(k))
}
