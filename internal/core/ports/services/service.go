package services

// ServiceContainer bundles the services RegisterRoutes builds handlers from.
// Handler tests fill it with mocks.
type ServiceContainer struct {
	User    UserSvcFacade
	Auth    AuthSvcFacade
	Expense ExpenseSvcFacade
	Goal    GoalSvcFacade
}
