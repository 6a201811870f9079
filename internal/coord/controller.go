package coord

import "github.com/DjordjeVuckovic/raglens/internal/domain"

// Outcome is the result of dispatching one event.
type Outcome struct {
	State State `json:"state"`
	// NavigateTo is set when the event asked the host to open a run's detail.
	NavigateTo string `json:"navigateTo,omitempty"`
}

// Controller holds the point list of one dashboard together with its state.
// It is not safe for concurrent use.
type Controller struct {
	points []domain.MetricPoint
	state  State
}

func NewController(points []domain.MetricPoint) *Controller {
	return &Controller{points: points, state: NewState()}
}

func (c *Controller) Dispatch(e Event) Outcome {
	c.state = Reduce(c.state, e)

	out := Outcome{State: c.state.clone()}
	if pt, ok := e.(PointToggled); ok && pt.RunID != "" {
		out.NavigateTo = pt.RunID
	}
	return out
}

func (c *Controller) State() State {
	return c.state.clone()
}

func (c *Controller) Points() []domain.MetricPoint {
	return c.points
}

// Restore replaces the state wholesale, e.g. when a session is reloaded.
func (c *Controller) Restore(s State) {
	if !s.Mode.Valid() {
		s.Mode = domain.ModeHighlight
	}
	c.state = s.clone()
}

func (c *Controller) HighlightIDs() domain.RunSet {
	return HighlightIDs(c.points, c.state)
}

func (c *Controller) ActiveSubset() []domain.MetricPoint {
	return ActiveSubset(c.points, c.state)
}

func (c *Controller) DetailRun() (string, bool) {
	return DetailRun(c.points, c.state)
}
