package events

// SignupEvent is published when a library begins its signup.
type SignupEvent struct {
	LibraryID int
	Day       int
}

// ActivationEvent is published when a library completes signup.
type ActivationEvent struct {
	LibraryID int
	Day       int
	QueueLen  int
}

// RefreshEvent is published after the candidate queue is rebuilt.
type RefreshEvent struct {
	Day        int
	Activated  int
	Candidates int
}
