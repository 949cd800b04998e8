package states

// State диалоговое состояние чата.
type State string

const (
	StateNone State = "none"

	// оформление заказа
	OrderWaitIdea  State = "ord_wt_idea"
	OrderWaitToken State = "ord_wt_token"

	// действия админа над заказом
	AdminWaitPrice State = "adm_wt_price"
	AdminWaitNote  State = "adm_wt_note"
)
