package chatbot

import (
	"strings"

	"maison-heritage-store/internal/model"
)

type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentProductInquiry Intent = "product_inquiry"
	IntentRecommendation Intent = "recommendation"
	IntentOrderTracking  Intent = "order_tracking"
	IntentPriceInquiry   Intent = "price_inquiry"
	IntentStockCheck     Intent = "stock_check"
	IntentCheckoutHelp   Intent = "checkout_help"
	IntentCareGuide      Intent = "care_guide"
	IntentSupport        Intent = "support"
	IntentGoodbye        Intent = "goodbye"
	IntentFallback       Intent = "fallback"
)

type QuickReply struct {
	Text   string
	Action string
}

type Suggestion struct {
	Product model.Product
	Reason  string
}

type Response struct {
	Intent       Intent
	Message      string
	Language     Language
	QuickReplies []QuickReply
	Suggestions  []Suggestion
}

// Bot answers storefront questions with canned multilingual responses and
// keyword-matched product suggestions. Construct one per conversation.
type Bot struct {
	language Language
}

func New(language Language) *Bot {
	return &Bot{language: language}
}

func (b *Bot) SetLanguage(language Language) {
	b.language = language
}

// Intent keywords are checked in order; the first hit wins. Multi-word
// entries match as phrases, single words as whole tokens.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentGoodbye, []string{"bye", "goodbye", "thank you", "thanks"}},
	{IntentGreeting, []string{"hello", "hi", "hey", "namaste", "good morning", "good evening"}},
	{IntentOrderTracking, []string{"track", "order status", "where is my order", "shipment", "delivery"}},
	{IntentRecommendation, []string{"recommend", "suggest", "gift", "best seller", "what should"}},
	{IntentPriceInquiry, []string{"price", "cost", "how much", "expensive", "cheap"}},
	{IntentStockCheck, []string{"stock", "available", "availability", "in store"}},
	{IntentCareGuide, []string{"care", "clean", "maintain", "preserve", "polish"}},
	{IntentCheckoutHelp, []string{"checkout", "payment", "pay", "buy", "purchase", "upi", "card"}},
	{IntentSupport, []string{"help", "support", "problem", "complaint", "refund", "return", "broken"}},
	{IntentProductInquiry, []string{"perfume", "fragrance", "watch", "scent", "collection", "show me", "looking for"}},
}

// Reply classifies the message and builds a response. Product suggestions are
// drawn from the catalog slice the caller passes in.
func (b *Bot) Reply(message string, products []model.Product) Response {
	intent := DetectIntent(message)

	resp := Response{
		Intent:   intent,
		Message:  translations[b.language][intent],
		Language: b.language,
	}

	switch intent {
	case IntentGreeting, IntentFallback:
		resp.QuickReplies = []QuickReply{
			{Text: "Show perfumes", Action: "show_perfumes"},
			{Text: "Show watches", Action: "show_watches"},
			{Text: "Track my order", Action: "track_order"},
		}
	case IntentProductInquiry, IntentRecommendation, IntentPriceInquiry, IntentStockCheck:
		resp.Suggestions = matchProducts(message, products)
		if len(resp.Suggestions) == 0 && intent == IntentRecommendation {
			resp.Suggestions = bestsellers(products)
		}
	case IntentSupport:
		resp.QuickReplies = []QuickReply{
			{Text: "Talk to a specialist", Action: "call_human"},
		}
	}

	return resp
}

// DetectIntent classifies a message by keyword. Unmatched messages fall back
// to a generic reply.
func DetectIntent(message string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(message))
	tokens := tokenSet(normalized)

	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(normalized, kw) {
					return entry.intent
				}
			} else if tokens[kw] {
				return entry.intent
			}
		}
	}

	return IntentFallback
}

func tokenSet(message string) map[string]bool {
	tokens := map[string]bool{}
	for _, tok := range strings.FieldsFunc(message, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '?' || r == '!'
	}) {
		tokens[tok] = true
	}
	return tokens
}

// matchProducts scores products against message keywords (name, description,
// tags) and returns up to three hits.
func matchProducts(message string, products []model.Product) []Suggestion {
	normalized := strings.ToLower(message)
	var keywords []string
	for tok := range tokenSet(normalized) {
		if len(tok) > 2 {
			keywords = append(keywords, tok)
		}
	}

	var suggestions []Suggestion
	for _, p := range products {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		tags := strings.ToLower(p.Tags)

		for _, kw := range keywords {
			if strings.Contains(name, kw) || strings.Contains(desc, kw) || strings.Contains(tags, kw) {
				suggestions = append(suggestions, Suggestion{
					Product: p,
					Reason:  "matches \"" + kw + "\"",
				})
				break
			}
		}
		if len(suggestions) == 3 {
			break
		}
	}

	return suggestions
}

func bestsellers(products []model.Product) []Suggestion {
	var suggestions []Suggestion
	for _, p := range products {
		if !p.IsBestseller {
			continue
		}
		suggestions = append(suggestions, Suggestion{Product: p, Reason: "bestseller"})
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}
