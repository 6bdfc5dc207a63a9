package param

import "fmt"

// AutomationRate selects how often the parameter value is computed.
type AutomationRate uint8

const (
	// ARate computes a value for every sample frame.
	ARate AutomationRate = iota
	// KRate computes one value per render quantum.
	KRate
)

func (r AutomationRate) String() string {
	switch r {
	case ARate:
		return "a-rate"
	case KRate:
		return "k-rate"
	default:
		return fmt.Sprintf("AutomationRate(%d)", r)
	}
}

// ParseAutomationRate parses "a-rate" or "k-rate".
func ParseAutomationRate(s string) (AutomationRate, error) {
	switch s {
	case "a-rate":
		return ARate, nil
	case "k-rate":
		return KRate, nil
	default:
		return 0, fmt.Errorf("param: unknown automation rate %q", s)
	}
}
