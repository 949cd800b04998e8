package flows

// NewOrderFlowData данные флоу оформления заказа.
type NewOrderFlowData struct {
	Idea string
}

// OrderAdminFlowData данные админских флоу над заказом.
type OrderAdminFlowData struct {
	OrderID string
}
