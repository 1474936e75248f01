package services

// Alert is a non-fatal message shown to the user in a modal.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func newAlert(message string) *Alert {
	return &Alert{Title: alertTitle, Message: message}
}

const (
	NavPush = "push"
	NavBack = "back"
)

// Navigation tells the app where to go next.
type Navigation struct {
	Action string            `json:"action"`
	Path   string            `json:"path,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

func pushTo(path string, params map[string]string) *Navigation {
	return &Navigation{Action: NavPush, Path: path, Params: params}
}

func goBack() *Navigation {
	return &Navigation{Action: NavBack}
}

// Outcome is the result of submitting a form. Without Navigate the app
// stays on the form and keeps what the user typed.
type Outcome struct {
	Submitted bool        `json:"submitted"`
	Navigate  *Navigation `json:"navigate,omitempty"`
	Alert     *Alert      `json:"alert,omitempty"`

	Err error `json:"-"`
}

// Recorder receives screen and form events, usually monitor.Metrics.
type Recorder interface {
	SetOpenScreens(count int)
	ObserveForm(form, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) SetOpenScreens(int)         {}
func (nopRecorder) ObserveForm(string, string) {}
