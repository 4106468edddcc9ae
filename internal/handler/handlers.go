package handler

// Handlers groups every HTTP handler so the router can be wired from one
// value.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Query        *QueryHandler
	Subscription *SubscriptionHandler
	Training     *TrainingHandler
	Chatbot      *ChatbotHandler
	Dashboard    *DashboardHandler
}
