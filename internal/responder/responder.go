package responder

import (
	"strings"

	"documind/internal/model"
)

// Entry pairs keywords with a canned answer. Any keyword contained in the query selects it.
type Entry struct {
	Keywords []string
	Answer   string
}

// Table is an ordered keyword lookup, first matching entry wins.
type Table struct {
	Entries  []Entry
	Fallback string
}

// Lookup returns the answer of the first matching entry and whether one matched.
func (t Table) Lookup(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, e := range t.Entries {
		for _, kw := range e.Keywords {
			if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
				return e.Answer, true
			}
		}
	}
	return "", false
}

// Respond returns the first matching answer or the table fallback.
func (t Table) Respond(query string) string {
	if ans, ok := t.Lookup(query); ok {
		return ans
	}
	return t.Fallback
}

// Responder answers chat queries against the active document, if any.
type Responder struct {
	general    Table
	byCategory map[model.Category]Table
	noDocument string
}

// Option customizes a Responder.
type Option func(*Responder)

// WithCategoryTable registers the table used for documents of category c.
func WithCategoryTable(c model.Category, t Table) Option {
	return func(r *Responder) { r.byCategory[c] = t }
}

// WithGeneralTable replaces the table used for documents without a category table.
func WithGeneralTable(t Table) Option {
	return func(r *Responder) { r.general = t }
}

// New builds a Responder with the built-in tables.
func New(opts ...Option) *Responder {
	r := &Responder{
		general: GeneralTable,
		byCategory: map[model.Category]Table{
			model.CategoryAuction: AuctionTable,
		},
		noDocument: NoDocumentAnswer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond is a pure function of (query, doc). A nil doc yields the no-document answer
// without scanning any table.
func (r *Responder) Respond(query string, doc *model.Document) string {
	if doc == nil {
		return r.noDocument
	}
	return r.tableFor(doc.Category).Respond(query)
}

// RespondGeneral answers without a document context using the general assistant table.
func (r *Responder) RespondGeneral(query string) string {
	return r.general.Respond(query)
}

func (r *Responder) tableFor(c model.Category) Table {
	if t, ok := r.byCategory[c]; ok {
		return t
	}
	return r.general
}
