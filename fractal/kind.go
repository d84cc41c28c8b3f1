package fractal

import (
	"fmt"
	"strings"
)

const (
	Mandelbrot Kind = iota
	Julia
	BurningShip
	Tricorn
	Newton
)

// Kind selects the iteration function.
type Kind int

func Kinds() []Kind {
	return []Kind{Mandelbrot, Julia, BurningShip, Tricorn, Newton}
}

func (k Kind) String() string {
	if k < Mandelbrot || k > Newton {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return []string{
		"Mandelbrot", "Julia", "BurningShip", "Tricorn", "Newton",
	}[k]
}

// Next cycles through the kinds in declaration order.
func (k Kind) Next() Kind {
	return (k + 1) % Kind(len(Kinds()))
}

// ParseKind accepts a kind name ignoring case, spaces, dashes and underscores.
func ParseKind(name string) (Kind, error) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))
	for _, k := range Kinds() {
		if strings.ToLower(k.String()) == normalized {
			return k, nil
		}
	}
	return Mandelbrot, fmt.Errorf("unknown fractal type: %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
