package model

// Move is the relocation a pair of snapshots was explained by.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) String() string {
	return m.From.Square() + "-" + m.To.Square()
}
