package entities

// BookingStage names the sequential stages of the flight search flow.
// Transitions are strictly forward; a stage failure terminates the
// whole booking action.
type BookingStage string

const (
	StageFormOpened        BookingStage = "form_opened"
	StageOriginSet         BookingStage = "origin_set"
	StageDestinationSet    BookingStage = "destination_set"
	StageDateSet           BookingStage = "date_set"
	StageModalClosed       BookingStage = "modal_closed"
	StageSubmitted         BookingStage = "submitted"
	StageResultsClassified BookingStage = "results_classified"
)

// BookingOutcome is the terminal classification of a booking flow run
type BookingOutcome string

const (
	FlightsFound       BookingOutcome = "flights_found"
	NoFlightsAvailable BookingOutcome = "no_flights_available"
	BookingError       BookingOutcome = "error"
)
