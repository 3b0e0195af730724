package entities

// Intent is the classified purpose of a raw command. It selects which
// plan builder handles the command.
type Intent string

const (
	IntentNavigate   Intent = "navigate"
	IntentSearch     Intent = "search"
	IntentPlay       Intent = "play"
	IntentFill       Intent = "fill"
	IntentClick      Intent = "click"
	IntentPressKey   Intent = "press_key"
	IntentWait       Intent = "wait"
	IntentScreenshot Intent = "screenshot"
	IntentBookFlight Intent = "book_flight"

	// IntentNone means no category matched the command
	IntentNone Intent = ""
)

// Entities holds loosely-structured values extracted from a command.
// All fields are optional; zero values mean "use the default".
type Entities struct {
	Website    string
	Platform   string
	Screenshot bool
}
