package game

// Events receives notifications while a game runs. Implementations must not
// block for long; the engine calls them inline between agent turns. The
// engine has no opinion on presentation; console printers and socket
// broadcasters both hang off this interface.
type Events interface {
	PhaseChange(gameIndex int, phase Phase)
	Message(gameIndex int, msg Message)
	GameComplete(gameIndex int, res *Result)
}

// NopEvents discards everything.
type NopEvents struct{}

func (NopEvents) PhaseChange(int, Phase)    {}
func (NopEvents) Message(int, Message)      {}
func (NopEvents) GameComplete(int, *Result) {}

// MultiEvents fans out to several sinks in order.
type MultiEvents []Events

func (m MultiEvents) PhaseChange(gameIndex int, phase Phase) {
	for _, e := range m {
		e.PhaseChange(gameIndex, phase)
	}
}

func (m MultiEvents) Message(gameIndex int, msg Message) {
	for _, e := range m {
		e.Message(gameIndex, msg)
	}
}

func (m MultiEvents) GameComplete(gameIndex int, res *Result) {
	for _, e := range m {
		e.GameComplete(gameIndex, res)
	}
}
