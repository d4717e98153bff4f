package events

// TrialEvent is emitted by the weight search for every evaluated vector.
type TrialEvent struct {
	Method string
	Trial  int
	Score  int
	Best   int
}
