package constant

// DrawOrder classes determine render priority and hit-test precedence
// Higher values render on top
type DrawOrder uint8

const (
	OrderBackground DrawOrder = iota
	OrderSettled
	OrderDefault
	OrderWrong
	OrderSelected
)

func (o DrawOrder) String() string {
	switch o {
	case OrderBackground:
		return "background"
	case OrderSettled:
		return "settled"
	case OrderDefault:
		return "default"
	case OrderWrong:
		return "wrong"
	case OrderSelected:
		return "selected"
	}
	return "unknown"
}
