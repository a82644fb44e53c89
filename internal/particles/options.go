package particles

import "encoding/json"

// Options mirrors the tsParticles v2 options object. Field names and nesting
// must match what the browser engine expects, so every field is tagged.
type Options struct {
	Background    Background    `json:"background"`
	FPSLimit      int           `json:"fpsLimit"`
	Interactivity Interactivity `json:"interactivity"`
	Particles     ParticleRules `json:"particles"`
	DetectRetina  bool          `json:"detectRetina"`
}

type Background struct {
	Color ColorValue `json:"color"`
}

type Interactivity struct {
	Events Events `json:"events"`
	Modes  Modes  `json:"modes"`
}

type Events struct {
	OnClick ModeEvent `json:"onClick"`
	OnHover ModeEvent `json:"onHover"`
	Resize  bool      `json:"resize"`
}

type ModeEvent struct {
	Enable bool   `json:"enable"`
	Mode   string `json:"mode"`
}

type Modes struct {
	Push    Push    `json:"push"`
	Repulse Repulse `json:"repulse"`
}

type Push struct {
	Quantity int `json:"quantity"`
}

type Repulse struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type ParticleRules struct {
	Color   ColorValue `json:"color"`
	Links   Links      `json:"links"`
	Move    Move       `json:"move"`
	Number  Number     `json:"number"`
	Opacity Opacity    `json:"opacity"`
	Shape   Shape      `json:"shape"`
	Size    Size       `json:"size"`
}

type Links struct {
	Color    string  `json:"color"`
	Distance float64 `json:"distance"`
	Enable   bool    `json:"enable"`
	Opacity  float64 `json:"opacity"`
	Width    float64 `json:"width"`
}

type Move struct {
	Direction string   `json:"direction"`
	Enable    bool     `json:"enable"`
	OutModes  OutModes `json:"outModes"`
	Random    bool     `json:"random"`
	Speed     float64  `json:"speed"`
	Straight  bool     `json:"straight"`
}

type OutModes struct {
	Default string `json:"default"`
}

type Number struct {
	Density Density `json:"density"`
	Value   int     `json:"value"`
}

type Density struct {
	Enable bool    `json:"enable"`
	Area   float64 `json:"area"`
}

type Opacity struct {
	Value float64 `json:"value"`
}

type Shape struct {
	Type string `json:"type"`
}

type Size struct {
	Value Range `json:"value"`
}

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ColorValue holds one color or a set of colors. It encodes as
// {"value": "#hex"} for a single color and {"value": ["#a", "#b"]} otherwise,
// which is how the engine distinguishes a fixed color from a random pick.
type ColorValue struct {
	Values []string
}

// Single returns a ColorValue holding exactly one color.
func Single(hex string) ColorValue {
	return ColorValue{Values: []string{hex}}
}

// Set returns a ColorValue holding a multi-color set.
func Set(hex ...string) ColorValue {
	return ColorValue{Values: append([]string(nil), hex...)}
}

// IsSet reports whether the value encodes as an array.
func (c ColorValue) IsSet() bool {
	return len(c.Values) > 1
}

func (c ColorValue) MarshalJSON() ([]byte, error) {
	var payload struct {
		Value any `json:"value"`
	}
	switch len(c.Values) {
	case 0:
		payload.Value = ""
	case 1:
		payload.Value = c.Values[0]
	default:
		payload.Value = c.Values
	}
	return json.Marshal(payload)
}

func (c *ColorValue) UnmarshalJSON(data []byte) error {
	var payload struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	var one string
	if err := json.Unmarshal(payload.Value, &one); err == nil {
		c.Values = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(payload.Value, &many); err != nil {
		return err
	}
	c.Values = many
	return nil
}
