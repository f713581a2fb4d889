package chatbot

type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
	LangMarathi Language = "mr"
)

// Canned responses per language. The bot is a keyword matcher, not a model;
// every reply comes from this table.
var translations = map[Language]map[Intent]string{
	LangEnglish: {
		IntentGreeting:       "Welcome to Maison Heritage! I'm your personal luxury consultant. How may I assist you with our exquisite perfumes and timepieces today?",
		IntentProductInquiry: "I'd be delighted to help you find the perfect piece. What are you looking for today?",
		IntentRecommendation: "Based on your preferences, here are some recommendations from our exclusive collection:",
		IntentOrderTracking:  "I can help you track your order. Please provide your order number.",
		IntentPriceInquiry:   "Here are the current prices for our luxury collection:",
		IntentStockCheck:     "Let me check the availability for you.",
		IntentCheckoutHelp:   "I'm here to guide you through our seamless checkout experience.",
		IntentCareGuide:      "Here's how to care for your luxury purchase to maintain its timeless elegance:",
		IntentSupport:        "I understand your concern. Let me connect you with our heritage specialists.",
		IntentGoodbye:        "Thank you for choosing Maison Heritage. Have a wonderful day!",
		IntentFallback:       "I apologize, but I didn't quite understand. Could you please rephrase your question?",
	},
	LangHindi: {
		IntentGreeting:       "मैसन हेरिटेज में आपका स्वागत है! मैं आपका व्यक्तिगत लक्जरी सलाहकार हूं। आज मैं आपकी सुगंध और घड़ियों के साथ कैसे सहायता कर सकता हूं?",
		IntentProductInquiry: "मुझे आपके लिए सही उत्पाद खोजने में खुशी होगी। आज आप क्या ढूंढ रहे हैं?",
		IntentRecommendation: "आपकी पसंद के आधार पर, यहाँ हमारे विशेष संग्रह की कुछ सिफारिशें हैं:",
		IntentOrderTracking:  "मैं आपके आर्डर को ट्रैक करने में आपकी मदद कर सकता हूं। कृपया अपना आर्डर नंबर बताएं।",
		IntentPriceInquiry:   "यहाँ हमारे लक्जरी संग्रह की वर्तमान कीमतें हैं:",
		IntentStockCheck:     "मैं आपके लिए उपलब्धता की जांच करता हूं।",
		IntentCheckoutHelp:   "मैं आपको हमारे सहज चेकआउट अनुभव के माध्यम से मार्गदर्शन करने के लिए यहाँ हूं।",
		IntentCareGuide:      "यहाँ बताया गया है कि अपनी लक्जरी खरीदारी की देखभाल कैसे करें:",
		IntentSupport:        "मैं आपकी चिंता समझता हूं। मुझे आपको हमारे हेरिटेज विशेषज्ञों से जोड़ने दें।",
		IntentGoodbye:        "मैसन हेरिटेज चुनने के लिए धन्यवाद। आपका दिन शुभ हो!",
		IntentFallback:       "क्षमा करें, मैं पूरी तरह से समझ नहीं पाया। क्या आप कृपया अपना प्रश्न दोबारा पूछ सकते हैं?",
	},
	LangMarathi: {
		IntentGreeting:       "मेसन हेरिटेजमध्ये आपले स्वागत आहे! मी तुमचा वैयक्तिक लक्झरी सल्लागार आहे. आज मी तुमच्या सुगंध आणि घड्याळांसाठी कशी मदत करू शकतो?",
		IntentProductInquiry: "तुमच्यासाठी योग्य उत्पादन शोधण्यात मला आनंद होईल. आज तुम्ही काय शोधत आहात?",
		IntentRecommendation: "तुमच्या आवडीनुसार, आमच्या खास संग्रहातील काही शिफारसी:",
		IntentOrderTracking:  "मी तुमचा ऑर्डर ट्रॅक करण्यात तुमची मदत करू शकतो. कृपया तुमचा ऑर्डर नंबर द्या.",
		IntentPriceInquiry:   "आमच्या लक्झरी संग्रहाच्या सध्याच्या किमती येथे आहेत:",
		IntentStockCheck:     "मी तुमच्यासाठी उपलब्धता तपासतो.",
		IntentCheckoutHelp:   "मी तुम्हाला आमच्या सहज चेकआउट अनुभवाद्वारे मार्गदर्शन करण्यासाठी येथे आहे.",
		IntentCareGuide:      "तुमच्या लक्झरी खरेदीची काळजी कशी घ्यावी:",
		IntentSupport:        "मी तुमची चिंता समजतो. मला तुम्हाला आमच्या हेरिटेज तज्ञांशी जोडू द्या.",
		IntentGoodbye:        "मेसन हेरिटेज निवडल्याबद्दल धन्यवाद. तुमचा दिवस चांगला जावो!",
		IntentFallback:       "माफ करा, मी पूर्णपणे समजू शकलो नाही. तुम्ही कृपया तुमचा प्रश्न पुन्हा विचारू शकता का?",
	},
}

// Normalize maps unknown language codes to English.
func Normalize(lang string) Language {
	switch Language(lang) {
	case LangHindi:
		return LangHindi
	case LangMarathi:
		return LangMarathi
	default:
		return LangEnglish
	}
}
