package model

// Sign is the polarity of a charge.
// Keep the string values stable; they show up in API responses.
type Sign string

const (
	Positive Sign = "positive"
	Negative Sign = "negative"
)

func SignFromBool(positive bool) Sign {
	if positive {
		return Positive
	}
	return Negative
}

// Factor is +1 for positive charges and -1 for negative ones.
func (s Sign) Factor() float64 {
	if s == Negative {
		return -1
	}
	return 1
}

func (s Sign) Label() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

func (s Sign) Opposite() Sign {
	if s == Negative {
		return Positive
	}
	return Negative
}
