// Package chatbot answers free text with keyword matched FAQ entries.
//
// Entries are scanned in the order they are given and the first entry with
// a keyword occurring anywhere in the lowercased input wins. There is no
// ranking by specificity or number of hits, so storage order matters.
package chatbot

import (
	"fmt"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// Fallback is returned when no entry matches.
const Fallback = "Sorry, I couldn't find an answer for that. Please contact support or try asking differently."

const guestGreeting = "👋 Hi there! Welcome to Vetri Consultancy. How can I help you today?"

// Match returns the first entry whose keywords occur in input.
func Match(entries []model.FAQ, input string) (model.FAQ, bool) {
	text := strings.ToLower(input)
	for _, e := range entries {
		for _, kw := range e.KeywordList() {
			if strings.Contains(text, kw) {
				return e, true
			}
		}
	}
	return model.FAQ{}, false
}

// Reply returns the matched answer or Fallback.
func Reply(entries []model.FAQ, input string) string {
	if e, ok := Match(entries, input); ok {
		return e.Answer
	}
	return Fallback
}

// Greeting builds the opening line. An empty name means a guest.
func Greeting(name string, pro bool) string {
	if name == "" {
		return guestGreeting
	}
	if pro {
		return fmt.Sprintf("👋 Hi %s! Welcome back 🌟 You’re a Pro member. How can I help you today?", name)
	}
	return fmt.Sprintf("👋 Hi %s! Welcome to Vetri Consultancy. How can I help you today?", name)
}

// DisplayName picks what to call a signed in user: the candidate first
// name, then the consultant first name, then the email.
func DisplayName(candidateFirst, consultantFirst, email string) string {
	if s := strings.TrimSpace(candidateFirst); s != "" {
		return s
	}
	if s := strings.TrimSpace(consultantFirst); s != "" {
		return s
	}
	return email
}
