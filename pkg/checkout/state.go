package checkout

// State is the position of the session in the checkout protocol.
type State string

const (
	StateBrowsing        State = "BROWSING"
	StateReviewing       State = "REVIEWING"
	StatePaymentSelected State = "PAYMENT_SELECTED"
	StateCommitted       State = "COMMITTED"
)

// IsTerminal reports whether the state ends a checkout instance.
func (s State) IsTerminal() bool {
	return s == StateCommitted
}

func (s State) String() string {
	return string(s)
}
