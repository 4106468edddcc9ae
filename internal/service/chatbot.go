package service

import (
	"context"
	"errors"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/chatbot"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
)

// ChatbotService answers questions from the FAQ table.
type ChatbotService struct {
	FAQs          FAQStore
	Users         UserStore
	Profiles      ProfileStore
	Subscriptions *SubscriptionService
}

func NewChatbotService(faqs FAQStore, users UserStore, subs *SubscriptionService) *ChatbotService {
	if faqs == nil || users == nil || subs == nil {
		panic("nil dependency passed to NewChatbotService")
	}
	return &ChatbotService{FAQs: faqs, Users: users, Profiles: subs.Provisioner.Profiles, Subscriptions: subs}
}

// Reply returns the answer of the first FAQ whose keywords occur in
// message, or chatbot.Fallback.
func (s *ChatbotService) Reply(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", invalid("message", "this field is required")
	}
	faqs, err := s.FAQs.List(ctx)
	if err != nil {
		return "", err
	}
	return chatbot.Reply(faqs, message), nil
}

// Greeting addresses userID by name, or greets a guest when userID is 0.
// Profiles are only read here; a missing one falls back to the email.
func (s *ChatbotService) Greeting(ctx context.Context, userID uint64) (string, error) {
	if userID == 0 {
		return chatbot.Greeting("", false), nil
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return chatbot.Greeting("", false), nil
		}
		return "", err
	}
	var candidateFirst, consultantFirst string
	if p, err := s.Profiles.GetCandidate(ctx, userID); err == nil {
		candidateFirst = p.FirstName
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if u.Role == model.RoleConsultant {
		if p, err := s.Profiles.GetConsultant(ctx, userID); err == nil {
			consultantFirst = p.FirstName
		} else if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	pro, err := s.Subscriptions.IsPro(ctx, userID)
	if err != nil {
		return "", err
	}
	return chatbot.Greeting(chatbot.DisplayName(candidateFirst, consultantFirst, u.Email), pro), nil
}

func (s *ChatbotService) FAQList(ctx context.Context) ([]model.FAQ, error) {
	return s.FAQs.List(ctx)
}

type FAQInput struct {
	Question string
	Answer   string
	Keywords string
}

// AddFAQ appends an entry. New entries match after every existing one.
func (s *ChatbotService) AddFAQ(ctx context.Context, a policy.Actor, in FAQInput) (model.FAQ, error) {
	if !policy.CanAdminister(a) {
		return model.FAQ{}, ErrForbidden
	}
	f := model.FAQ{
		Question: strings.TrimSpace(in.Question),
		Answer:   strings.TrimSpace(in.Answer),
		Keywords: strings.TrimSpace(in.Keywords),
	}
	fe := fieldErrors{}
	if f.Question == "" {
		fe.add("question", "this field is required")
	}
	if f.Answer == "" {
		fe.add("answer", "this field is required")
	}
	if len(f.KeywordList()) == 0 {
		fe.add("keywords", "at least one keyword is required")
	}
	if err := fe.err(); err != nil {
		return model.FAQ{}, err
	}
	return s.FAQs.Create(ctx, f)
}
