package insight

// Ids of the synthetic error result.
const (
	ErrorSectionID = "error"
	ErrorItemID    = "handler_error"
)

// ErrorResult wraps a failure message in a single red section holding one
// error item so failures render through the same path as results.
func ErrorResult(message string) []Node {
	return []Node{
		Section{
			Base:  Base{Type: KindSection, ID: ErrorSectionID, Title: "Error"},
			Color: ColorRed,
			Items: []Node{NewErrorItem(ErrorItemID, "Error from the model handler", message)},
		},
	}
}
