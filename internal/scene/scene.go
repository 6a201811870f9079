// Package scene describes rendered views as flat lists of positioned primitives.
// Any front-end can paint a Scene; no rendering library is involved here.
package scene

type Kind string

const (
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindLine   Kind = "line"
	KindText   Kind = "text"
)

// Role tells the front-end which user event a primitive answers to.
type Role string

const (
	RolePoint     Role = "point"
	RoleBin       Role = "bin"
	RoleSegment   Role = "segment"
	RoleGap       Role = "gap"
	RoleRow       Role = "row"
	RoleTrack     Role = "track"
	RoleDocLabel  Role = "doc-label"
	RoleBadge     Role = "badge"
	RoleAxis      Role = "axis"
	RoleTick      Role = "tick"
	RoleMeanLine  Role = "mean-line"
	RoleMeanLabel Role = "mean-label"
	RoleTitle     Role = "title"
)

type Primitive struct {
	Kind Kind `json:"kind"`
	Role Role `json:"role,omitempty"`
	// Target identifies the datum behind the primitive (run id, bin index, chunk key, doc title).
	Target string `json:"target,omitempty"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Radius float64 `json:"r,omitempty"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dash        string  `json:"dash,omitempty"`
	Opacity     float64 `json:"opacity"`

	Text   string `json:"text,omitempty"`
	Anchor string `json:"anchor,omitempty"`
}

// Scene is a single view: its canvas size and the primitives in paint order.
type Scene struct {
	Name       string      `json:"name"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Primitives []Primitive `json:"primitives"`
}

func New(name string, width, height float64) *Scene {
	return &Scene{
		Name:       name,
		Width:      width,
		Height:     height,
		Primitives: make([]Primitive, 0),
	}
}

func (s *Scene) Add(p ...Primitive) {
	s.Primitives = append(s.Primitives, p...)
}

// ByRole returns the primitives with the given role, in paint order.
func (s *Scene) ByRole(role Role) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the first primitive with the given role and target.
func (s *Scene) Find(role Role, target string) (Primitive, bool) {
	for _, p := range s.Primitives {
		if p.Role == role && p.Target == target {
			return p, true
		}
	}
	return Primitive{}, false
}

func Text(role Role, x, y float64, text, anchor string) Primitive {
	return Primitive{
		Kind:    KindText,
		Role:    role,
		X:       x,
		Y:       y,
		Text:    text,
		Anchor:  anchor,
		Fill:    "#333333",
		Opacity: 1,
	}
}

func Line(role Role, x1, y1, x2, y2 float64, stroke string) Primitive {
	return Primitive{
		Kind:        KindLine,
		Role:        role,
		X:           x1,
		Y:           y1,
		X2:          x2,
		Y2:          y2,
		Stroke:      stroke,
		StrokeWidth: 1,
		Opacity:     1,
	}
}

// Margin is the inner padding between the canvas edge and the plotting area.
type Margin struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}
