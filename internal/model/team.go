package model

import "fmt"

type Team uint8

const (
	Black Team = iota
	White
)

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == Black {
		return White
	}
	return Black
}

func (t Team) String() string {
	switch t {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("Team(%d)", uint8(t))
}

func ParseTeam(s string) (Team, error) {
	switch s {
	case "black", "Black", "b":
		return Black, nil
	case "white", "White", "w":
		return White, nil
	}
	return Black, fmt.Errorf("unknown team %q", s)
}

func (t Team) MarshalText() ([]byte, error) {
	if t != Black && t != White {
		return nil, fmt.Errorf("invalid team %d", uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	parsed, err := ParseTeam(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
