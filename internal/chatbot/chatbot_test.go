package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

var faqs = []model.FAQ{
	{ID: 1, Keywords: "billing, refund policy", Answer: "Refunds are processed in 7 days."},
	{ID: 2, Keywords: "hours", Answer: "9-5"},
	{ID: 3, Keywords: "refund", Answer: "later entry"},
}

func TestReplyFirstMatchWins(t *testing.T) {
	assert.Equal(t, "Refunds are processed in 7 days.", Reply(faqs, "what is your refund policy"))
	assert.Equal(t, "Refunds are processed in 7 days.", Reply(faqs, "What is your REFUND POLICY?"))
	assert.Equal(t, "9-5", Reply(faqs, "office hours please"))
	assert.Equal(t, "later entry", Reply(faqs, "can I get a refund"))
}

func TestReplyFallback(t *testing.T) {
	assert.Equal(t, Fallback, Reply(faqs, "tell me a joke"))
	assert.Equal(t, Fallback, Reply(nil, "billing"))
	assert.Equal(t, Fallback, Reply(faqs, ""))
}

func TestEmptyKeywordNeverMatches(t *testing.T) {
	entries := []model.FAQ{{Keywords: "billing,", Answer: "a"}}
	assert.Equal(t, Fallback, Reply(entries, "anything at all"))
}

func TestGreeting(t *testing.T) {
	assert.Contains(t, Greeting("", false), "Hi there!")
	assert.Contains(t, Greeting("Asha", false), "Hi Asha! Welcome to Vetri Consultancy.")
	assert.Contains(t, Greeting("Asha", true), "Pro member")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Asha", DisplayName("Asha", "Ravi", "a@x.io"))
	assert.Equal(t, "Ravi", DisplayName(" ", "Ravi", "a@x.io"))
	assert.Equal(t, "a@x.io", DisplayName("", "", "a@x.io"))
}
