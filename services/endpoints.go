package services

import "fmt"

// Endpoint describes one backend route the client consumes.
type Endpoint struct {
	Method      string
	Path        string
	OperationID string
	Description string
}

// Endpoints returns every backend route the client depends on. This is
// the whole contract: domain modules build their requests from these
// paths and nothing else.
func Endpoints() []Endpoint {
	return []Endpoint{
		{Method: "POST", Path: "/api/auth/login", OperationID: "login", Description: "Exchange username and password for an access token"},
		{Method: "POST", Path: "/api/auth/register", OperationID: "register", Description: "Create a new resident account"},
		{Method: "GET", Path: "/api/users/me", OperationID: "getCurrentUser", Description: "Resolve the credential to its user"},
		{Method: "PUT", Path: "/api/users/me", OperationID: "updateProfile", Description: "Update own profile fields"},
		{Method: "GET", Path: "/api/users/", OperationID: "listUsers", Description: "List residents for participant selection"},

		{Method: "GET", Path: "/api/ideas/", OperationID: "listIdeas", Description: "List ideas, optionally limited"},
		{Method: "GET", Path: "/api/ideas/{id}", OperationID: "getIdea", Description: "Fetch one idea"},
		{Method: "POST", Path: "/api/ideas/", OperationID: "createIdea", Description: "Propose an idea"},
		{Method: "PUT", Path: "/api/ideas/{id}", OperationID: "updateIdea", Description: "Edit an idea"},
		{Method: "DELETE", Path: "/api/ideas/{id}", OperationID: "deleteIdea", Description: "Delete an idea"},
		{Method: "POST", Path: "/api/ideas/{id}/vote", OperationID: "voteIdea", Description: "Cast an up or down vote"},

		{Method: "GET", Path: "/api/alerts/", OperationID: "listAlerts", Description: "List all alerts"},
		{Method: "GET", Path: "/api/alerts/active", OperationID: "listActiveAlerts", Description: "List active alerts"},
		{Method: "POST", Path: "/api/alerts/", OperationID: "createAlert", Description: "Report an alert"},
		{Method: "PUT", Path: "/api/alerts/{id}", OperationID: "updateAlert", Description: "Edit an alert"},
		{Method: "POST", Path: "/api/alerts/{id}/resolve", OperationID: "resolveAlert", Description: "Mark an alert resolved"},
		{Method: "DELETE", Path: "/api/alerts/{id}", OperationID: "deleteAlert", Description: "Delete an alert"},

		{Method: "GET", Path: "/api/marketplace/", OperationID: "listItems", Description: "List marketplace items"},
		{Method: "GET", Path: "/api/marketplace/my-items", OperationID: "listMyItems", Description: "List own items"},
		{Method: "GET", Path: "/api/marketplace/borrowed", OperationID: "listBorrowedItems", Description: "List items currently borrowed"},
		{Method: "POST", Path: "/api/marketplace/", OperationID: "createItem", Description: "List a new item"},
		{Method: "PUT", Path: "/api/marketplace/{id}", OperationID: "updateItem", Description: "Edit an item"},
		{Method: "POST", Path: "/api/marketplace/{id}/borrow", OperationID: "borrowItem", Description: "Borrow an item for N days"},
		{Method: "POST", Path: "/api/marketplace/{id}/return", OperationID: "returnItem", Description: "Return a borrowed item"},
		{Method: "DELETE", Path: "/api/marketplace/{id}", OperationID: "deleteItem", Description: "Delete an item"},

		{Method: "GET", Path: "/api/expenses/", OperationID: "listExpenses", Description: "List expenses, optionally only own"},
		{Method: "GET", Path: "/api/expenses/my-splits", OperationID: "listMySplits", Description: "List own splits"},
		{Method: "GET", Path: "/api/expenses/pending-payments", OperationID: "listPendingPayments", Description: "List splits awaiting payment"},
		{Method: "POST", Path: "/api/expenses/", OperationID: "createExpense", Description: "Create a shared expense"},
		{Method: "PUT", Path: "/api/expenses/{id}", OperationID: "updateExpense", Description: "Edit an expense"},
		{Method: "POST", Path: "/api/expenses/{id}/pay", OperationID: "payExpense", Description: "Pay toward own split"},
		{Method: "DELETE", Path: "/api/expenses/{id}", OperationID: "deleteExpense", Description: "Delete an expense"},
	}
}

// Route paths used by the domain modules. Parameterized paths are
// fmt strings taking the entity ID.
const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"

	pathUsers = "/api/users/"
	pathMe    = "/api/users/me"

	pathIdeas    = "/api/ideas/"
	pathIdea     = "/api/ideas/%d"
	pathIdeaVote = "/api/ideas/%d/vote"

	pathAlerts       = "/api/alerts/"
	pathAlertsActive = "/api/alerts/active"
	pathAlert        = "/api/alerts/%d"
	pathAlertResolve = "/api/alerts/%d/resolve"

	pathItems         = "/api/marketplace/"
	pathItemsMine     = "/api/marketplace/my-items"
	pathItemsBorrowed = "/api/marketplace/borrowed"
	pathItem          = "/api/marketplace/%d"
	pathItemBorrow    = "/api/marketplace/%d/borrow"
	pathItemReturn    = "/api/marketplace/%d/return"

	pathExpenses        = "/api/expenses/"
	pathExpensesSplits  = "/api/expenses/my-splits"
	pathExpensesPending = "/api/expenses/pending-payments"
	pathExpense         = "/api/expenses/%d"
	pathExpensePay      = "/api/expenses/%d/pay"
)

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
