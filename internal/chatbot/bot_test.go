package chatbot

import (
	"testing"

	"maison-heritage-store/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"Hello there", IntentGreeting},
		{"namaste", IntentGreeting},
		{"show me your perfumes", IntentProductInquiry},
		{"can you recommend a gift?", IntentRecommendation},
		{"how much does it cost", IntentPriceInquiry},
		{"is this in stock?", IntentStockCheck},
		{"where is my order", IntentOrderTracking},
		{"how do I clean my watch", IntentCareGuide},
		{"I want to pay with upi", IntentCheckoutHelp},
		{"I have a problem with my delivery", IntentOrderTracking},
		{"I need a refund", IntentSupport},
		{"thanks, bye", IntentGoodbye},
		{"asdfghjkl", IntentFallback},
		{"", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIntent(tt.message))
		})
	}
}

func TestDetectIntentMatchesWholeTokensOnly(t *testing.T) {
	// "history" contains "hi" as a substring but is not a greeting
	assert.Equal(t, IntentFallback, DetectIntent("history"))
}

func TestReplyLanguages(t *testing.T) {
	for _, lang := range []Language{LangEnglish, LangHindi, LangMarathi} {
		bot := New(lang)
		resp := bot.Reply("hello", nil)

		assert.Equal(t, IntentGreeting, resp.Intent)
		assert.Equal(t, lang, resp.Language)
		assert.NotEmpty(t, resp.Message)
	}
}

func TestNormalizeUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, LangEnglish, Normalize("fr"))
	assert.Equal(t, LangEnglish, Normalize(""))
	assert.Equal(t, LangHindi, Normalize("hi"))
	assert.Equal(t, LangMarathi, Normalize("mr"))
}

func TestReplySuggestsMatchingProducts(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Name: "Velvet Oud Perfume", Tags: "perfume,oud", Price: 450},
		{ID: "p2", Name: "Heritage Chronograph", Tags: "watch,chronograph", Price: 2500},
	}

	bot := New(LangEnglish)
	resp := bot.Reply("I'm looking for a perfume", products)

	assert.Equal(t, IntentProductInquiry, resp.Intent)
	assert.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "p1", resp.Suggestions[0].Product.ID)
}

func TestReplySuggestionsCappedAtThree(t *testing.T) {
	var products []model.Product
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		products = append(products, model.Product{ID: id, Name: "Perfume " + id, Tags: "perfume"})
	}

	bot := New(LangEnglish)
	resp := bot.Reply("show me perfume options", products)

	assert.Len(t, resp.Suggestions, 3)
}

func TestRecommendationFallsBackToBestsellers(t *testing.T) {
	products := []model.Product{
		{ID: "p1", Name: "Quiet Item", Tags: "zzz"},
		{ID: "p2", Name: "Star Item", Tags: "zzz", IsBestseller: true},
	}

	bot := New(LangEnglish)
	resp := bot.Reply("recommend something", products)

	assert.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "p2", resp.Suggestions[0].Product.ID)
	assert.Equal(t, "bestseller", resp.Suggestions[0].Reason)
}

func TestGreetingCarriesQuickReplies(t *testing.T) {
	bot := New(LangEnglish)
	resp := bot.Reply("hey", nil)

	assert.NotEmpty(t, resp.QuickReplies)
}
