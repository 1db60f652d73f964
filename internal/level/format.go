package level

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gravity-sling/internal/core"
)

// yamlFile is either a single level or a pack with a top-level levels list.
// JSON level files decode through the same structs.
type yamlFile struct {
	Levels    []yamlLevel `yaml:"levels"`
	yamlLevel `yaml:",inline"`
}

type yamlLevel struct {
	ID           *int              `yaml:"id"`
	Name         string            `yaml:"name"`
	Start        *yamlStart        `yaml:"start"`
	TargetIndex  *int              `yaml:"targetIndex"`
	Params       yamlParams        `yaml:"params"`
	Planets      []yamlBody        `yaml:"planets"`
	Collectibles []yamlCollectible `yaml:"collectibles"`
}

type yamlStart struct {
	X *float64 `yaml:"x"`
	Y *float64 `yaml:"y"`
}

type yamlParams struct {
	GlobalG      *float64    `yaml:"globalG"`
	MaxSpeed     *float64    `yaml:"maxSpeed"`
	FrictionAir  *float64    `yaml:"frictionAir"`
	Fuel         *float64    `yaml:"fuel"`
	NearClampAdd *float64    `yaml:"nearClampAdd"`
	CaptureExtra *float64    `yaml:"captureExtra"`
	TimeScale    *float64    `yaml:"timeScale"`
	Launch       *yamlLaunch `yaml:"launch"`
	Burn         *yamlBurn   `yaml:"burn"`
}

type yamlLaunch struct {
	BaseCost *float64 `yaml:"baseCost"`
	PerPower *float64 `yaml:"perPower"`
	Scale    *float64 `yaml:"scale"`
	Cap      *float64 `yaml:"cap"`
}

type yamlBurn struct {
	TapCost    *float64 `yaml:"tapCost"`
	TapImpulse *float64 `yaml:"tapImpulse"`
	CooldownMs *float64 `yaml:"cooldownMs"`
}

type yamlBody struct {
	Name   string     `yaml:"name"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	R      float64    `yaml:"r"`
	Mass   float64    `yaml:"mass"`
	IsStar bool       `yaml:"isStar"`
	Color  *colorSpec `yaml:"color"`
}

type yamlCollectible struct {
	Type       string   `yaml:"type"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Amount     *float64 `yaml:"amount"`
	Seconds    *float64 `yaml:"seconds"`
	DurationMs *float64 `yaml:"durationMs"`
	Mul        *float64 `yaml:"mul"`
}

// colorSpec accepts a palette name, a "#rrggbb" string or an RGB integer.
type colorSpec struct {
	color core.Color
}

func (c *colorSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", n.Line)
	}
	v := strings.TrimSpace(n.Value)
	if rgb, err := strconv.ParseUint(v, 0, 32); err == nil {
		c.color = core.NearestColor(uint32(rgb))
		return nil
	}
	if strings.HasPrefix(v, "#") {
		rgb, err := strconv.ParseUint(v[1:], 16, 32)
		if err != nil {
			return fmt.Errorf("line %d: bad color %q", n.Line, v)
		}
		c.color = core.NearestColor(uint32(rgb))
		return nil
	}
	color, ok := core.ParseColor(v)
	if !ok {
		return fmt.Errorf("line %d: unknown color %q", n.Line, v)
	}
	c.color = color
	return nil
}

// Parse decodes level data and applies defaults. The source name is used
// in errors. The result is not validated.
func Parse(data []byte, source string) ([]Descriptor, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}

	raw := f.Levels
	if len(raw) == 0 {
		if f.ID == nil && len(f.Planets) == 0 {
			return nil, malformed(source, 0, "no levels defined")
		}
		raw = []yamlLevel{f.yamlLevel}
	}

	out := make([]Descriptor, 0, len(raw))
	for i, yl := range raw {
		if yl.ID == nil {
			return nil, malformed(source, 0, "level #%d has no id", i+1)
		}
		out = append(out, yl.toDescriptor(source))
	}
	return out, nil
}

func (yl yamlLevel) toDescriptor(source string) Descriptor {
	d := Descriptor{
		ID:       *yl.ID,
		Name:     yl.Name,
		Start:    DefaultStart(),
		Params:   yl.Params.resolve(),
		FilePath: source,
	}
	if d.Name == "" {
		d.Name = fmt.Sprintf("Level %d", d.ID)
	}
	if yl.Start != nil {
		d.Start.X = or(yl.Start.X, d.Start.X)
		d.Start.Y = or(yl.Start.Y, d.Start.Y)
	}
	if yl.TargetIndex != nil {
		d.TargetIndex = *yl.TargetIndex
	}

	for _, yb := range yl.Planets {
		b := Body{
			Name:  yb.Name,
			Pos:   Point{X: yb.X, Y: yb.Y},
			R:     yb.R,
			Mass:  yb.Mass,
			Star:  yb.IsStar,
			Color: core.ColorBlue,
		}
		if b.Star {
			b.Color = core.ColorBrightYellow
		}
		if yb.Color != nil {
			b.Color = yb.Color.color
		}
		if b.Name == "" {
			b.Name = "P"
			if b.Star {
				b.Name = "Star"
			}
		}
		d.Bodies = append(d.Bodies, b)
	}

	for _, yc := range yl.Collectibles {
		d.Collectibles = append(d.Collectibles, yc.toCollectible())
	}
	return d
}

func (yc yamlCollectible) toCollectible() Collectible {
	c := Collectible{
		Type: CollectibleType(strings.ToLower(yc.Type)),
		Pos:  Point{X: yc.X, Y: yc.Y},
	}
	switch c.Type {
	case CollectFuel:
		c.Amount = or(yc.Amount, DefaultFuelAmount)
	case CollectScore:
		c.Amount = or(yc.Amount, DefaultScoreAmount)
	case CollectTime:
		c.Seconds = or(yc.Seconds, DefaultTimeSeconds)
	case CollectShield:
		c.DurationMs = or(yc.DurationMs, DefaultShieldDurationMs)
	case CollectGravity:
		c.Mul = or(yc.Mul, DefaultGravityMul)
		c.DurationMs = or(yc.DurationMs, DefaultGravityDuration)
	}
	return c
}

func (yp yamlParams) resolve() Params {
	p := DefaultParams()
	p.GlobalG = or(yp.GlobalG, p.GlobalG)
	p.MaxSpeed = or(yp.MaxSpeed, p.MaxSpeed)
	p.FrictionAir = or(yp.FrictionAir, p.FrictionAir)
	p.Fuel = or(yp.Fuel, p.Fuel)
	p.NearClampAdd = or(yp.NearClampAdd, p.NearClampAdd)
	p.CaptureExtra = or(yp.CaptureExtra, p.CaptureExtra)
	p.TimeScale = or(yp.TimeScale, p.TimeScale)
	if l := yp.Launch; l != nil {
		p.Launch.BaseCost = or(l.BaseCost, p.Launch.BaseCost)
		p.Launch.PerPower = or(l.PerPower, p.Launch.PerPower)
		p.Launch.Scale = or(l.Scale, p.Launch.Scale)
		p.Launch.Cap = or(l.Cap, p.Launch.Cap)
	}
	if b := yp.Burn; b != nil {
		p.Burn.TapCost = or(b.TapCost, p.Burn.TapCost)
		p.Burn.TapImpulse = or(b.TapImpulse, p.Burn.TapImpulse)
		p.Burn.CooldownMs = or(b.CooldownMs, p.Burn.CooldownMs)
	}
	return p
}

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}
