package sequence

type State int

const (
	Idle State = iota
	ShowingLoader
	Phase1
	Delay
	Phase2
	AwaitingAssets
	Phase3
	HidingLoader
	IntroAnimating
	Done
	Failed
)

var stateNames = [...]string{
	Idle:           "Idle",
	ShowingLoader:  "ShowingLoader",
	Phase1:         "Phase1",
	Delay:          "Delay",
	Phase2:         "Phase2",
	AwaitingAssets: "AwaitingAssets",
	Phase3:         "Phase3",
	HidingLoader:   "HidingLoader",
	IntroAnimating: "IntroAnimating",
	Done:           "Done",
	Failed:         "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
