package responder

// NoDocumentAnswer is returned when a query arrives without an active document.
const NoDocumentAnswer = "I can help you with document queries once you upload or process documents."

// Auction answers.
const (
	AnswerAuctionOverview = "This is a public auction notice issued by KMRL (Kochi Metro Rail Limited) for the sale of movable property under the Public Premises (Eviction of Unauthorised Occupants) Act, 1971."
	AnswerReservePrice    = "The reserve price for the KMRL movable property auction is Rs. 25,000/- (Rupees Twenty five thousand only)."
	AnswerAuctionDate     = "The auction is scheduled for 14/03/2024 at 11:30 AM at JLN Stadium Metro Station."
	AnswerAuctionItems    = "The auction includes various items like kiosk structure, electronic equipment, kitchen items, and 143 glass bottles among others."
	AnswerEMD             = "The Earnest Money Deposit (EMD) required is Rs. 5,000/- (Rupees Five Thousand Only)."
	AnswerRequiredDocs    = "Participants need to bring valid ID proof, PAN card, and the EMD payment receipt. All documents should be in original along with photocopies."
	AnswerParticipation   = "Any interested party can participate in the auction by paying the required EMD and following the terms and conditions mentioned in the notice."
	AnswerAuctionLocation = "The auction will be held at JLN Stadium Metro Station, Kochi. This is one of the major metro stations in the KMRL network."
	AnswerAuctionFallback = "Based on the uploaded KMRL auction document, I can help you with information about the auction details, items, pricing, and procedures."
	AnswerGeneralFallback = "I understand you're looking for information. Could you please be more specific? I can help you with safety bulletins, regulatory directives, invoice trends, maintenance reports, or general document status queries."
)

// AuctionTable answers questions about an auction notice. "reserve price" is listed before
// the broader date keywords so "What is the reserve price?" never lands on the date answer.
var AuctionTable = Table{
	Entries: []Entry{
		{Keywords: []string{"this document about", "what is this"}, Answer: AnswerAuctionOverview},
		{Keywords: []string{"reserve price", "price", "cost"}, Answer: AnswerReservePrice},
		{Keywords: []string{"emd", "deposit"}, Answer: AnswerEMD},
		{Keywords: []string{"auction date", "date", "time", "when"}, Answer: AnswerAuctionDate},
		{Keywords: []string{"items", "auction list"}, Answer: AnswerAuctionItems},
		{Keywords: []string{"document", "paper"}, Answer: AnswerRequiredDocs},
		{Keywords: []string{"participate", "who"}, Answer: AnswerParticipation},
		{Keywords: []string{"location", "where"}, Answer: AnswerAuctionLocation},
		{Keywords: []string{"about", "auction", "sale"}, Answer: AnswerAuctionOverview},
	},
	Fallback: AnswerAuctionFallback,
}

// GeneralTable serves the dashboard assistant and documents without a dedicated table.
var GeneralTable = Table{
	Entries: []Entry{
		{Keywords: []string{"safety bulletins"}, Answer: "Found 3 safety bulletins from last week: Platform Safety Guidelines (Malayalam), Emergency Evacuation Procedures, and Track Worker Safety Protocol. All require immediate review."},
		{Keywords: []string{"regulatory directives"}, Answer: "Current regulatory directives expiring soon: CMRS Compliance Report (5 days), Environmental Impact Assessment (12 days), and Fire Safety Certification (18 days)."},
		{Keywords: []string{"invoice trends"}, Answer: "Invoice processing has improved by 23% this month. Average processing time: 2.3 days. Pending invoices reduced from 18 to 12. Major vendors: Siemens, BEML, Alstom."},
		{Keywords: []string{"document status"}, Answer: "System currently processing 1,247 documents. 156 pending review, 23 require immediate attention, and 8 are awaiting approval. Processing efficiency up 15% this quarter."},
		{Keywords: []string{"maintenance reports"}, Answer: "Latest maintenance reports show 12 active items: 3 critical track sections, 5 rolling stock issues, and 4 station equipment updates. All scheduled for completion within 10 days."},
	},
	Fallback: AnswerGeneralFallback,
}
