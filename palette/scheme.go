package palette

import (
	"fmt"
	"strings"
)

const (
	Classic Scheme = iota
	Fire
	Ocean
	Rainbow
	Grayscale
	BlueRed
)

// Scheme selects the mapping from a normalized escape value to a colour.
type Scheme int

func Schemes() []Scheme {
	return []Scheme{Classic, Fire, Ocean, Rainbow, Grayscale, BlueRed}
}

func (s Scheme) String() string {
	if s < Classic || s > BlueRed {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return []string{
		"Classic", "Fire", "Ocean", "Rainbow", "Grayscale", "BlueRed",
	}[s]
}

func (s Scheme) Next() Scheme {
	return (s + 1) % Scheme(len(Schemes()))
}

func ParseScheme(name string) (Scheme, error) {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))
	for _, s := range Schemes() {
		if strings.ToLower(s.String()) == normalized {
			return s, nil
		}
	}
	if normalized == "greyscale" {
		return Grayscale, nil
	}
	return Classic, fmt.Errorf("unknown palette: %q", name)
}

func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
