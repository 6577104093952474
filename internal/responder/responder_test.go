package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"documind/internal/model"
)

func TestTable_Respond(t *testing.T) {
	tbl := Table{
		Entries: []Entry{
			{Keywords: []string{"alpha"}, Answer: "A"},
			{Keywords: []string{"beta", "gamma"}, Answer: "B"},
		},
		Fallback: "fallback",
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "exact keyword", query: "alpha", want: "A"},
		{name: "surrounding text and case", query: "Tell me about GAMMA rays", want: "B"},
		{name: "first entry wins", query: "beta then alpha", want: "A"},
		{name: "no match", query: "delta", want: "fallback"},
		{name: "empty query", query: "", want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Respond(tt.query))
		})
	}
}

func TestResponder_AuctionDocument(t *testing.T) {
	r := New()
	doc := &model.Document{ID: "doc-1", Title: "KMRL Public Auction Notice", Category: model.CategoryAuction}

	tests := []struct {
		query string
		want  string
	}{
		{query: "What is the reserve price?", want: AnswerReservePrice},
		{query: "WHAT IS THE RESERVE PRICE", want: AnswerReservePrice},
		{query: "When is the auction date?", want: AnswerAuctionDate},
		{query: "What items are included in the auction?", want: AnswerAuctionItems},
		{query: "What is the Earnest Money Deposit (EMD)?", want: AnswerEMD},
		{query: "What documents are required?", want: AnswerRequiredDocs},
		{query: "Who can participate in the auction?", want: AnswerParticipation},
		{query: "What is this document about?", want: AnswerAuctionOverview},
		{query: "Where is the location?", want: AnswerAuctionLocation},
		{query: "xyz", want: AnswerAuctionFallback},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Respond(tt.query, doc))
		})
	}
}

func TestResponder_NoDocument(t *testing.T) {
	r := New()

	assert.Equal(t, NoDocumentAnswer, r.Respond("What is the reserve price?", nil))
	assert.NotEqual(t, AnswerReservePrice, r.Respond("What is the reserve price?", nil))
}

func TestResponder_GeneralTable(t *testing.T) {
	r := New()
	doc := &model.Document{ID: "doc-2", Category: model.CategoryFinancial}

	assert.Equal(t, GeneralTable.Entries[2].Answer, r.Respond("Summarize invoice trends", doc))
	assert.Equal(t, AnswerGeneralFallback, r.Respond("hello", doc))
	assert.Equal(t, GeneralTable.Entries[0].Answer, r.RespondGeneral("Show me safety bulletins from last week"))
}

func TestResponder_Options(t *testing.T) {
	custom := Table{Entries: []Entry{{Keywords: []string{"payroll"}, Answer: "Payroll runs on the 28th."}}, Fallback: "hr fallback"}
	r := New(WithCategoryTable(model.CategoryHR, custom))
	doc := &model.Document{Category: model.CategoryHR}

	assert.Equal(t, "Payroll runs on the 28th.", r.Respond("when is PAYROLL", doc))
	assert.Equal(t, "hr fallback", r.Respond("leave policy", doc))
}
