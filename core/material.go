package core

import "fmt"

// Material is the visual state tag a piece reports to the host
type Material uint8

const (
	MaterialDefault Material = iota
	MaterialSelected
	MaterialWrong
)

func (m Material) String() string {
	switch m {
	case MaterialSelected:
		return "selected"
	case MaterialWrong:
		return "wrong"
	}
	return "default"
}

// JointType selects the tab geometry carved into piece images
type JointType uint8

const (
	JointNone JointType = iota
	JointCircle
	JointRect
)

func (j JointType) String() string {
	switch j {
	case JointCircle:
		return "circle"
	case JointRect:
		return "rect"
	}
	return "none"
}

// ParseJointType accepts the names produced by String
func ParseJointType(s string) (JointType, error) {
	switch s {
	case "none", "":
		return JointNone, nil
	case "circle":
		return JointCircle, nil
	case "rect":
		return JointRect, nil
	}
	return JointNone, fmt.Errorf("unknown joint type %q", s)
}

// MarshalText lets config files carry the joint name
func (j JointType) MarshalText() ([]byte, error) {
	return []byte(j.String()), nil
}

func (j *JointType) UnmarshalText(b []byte) error {
	v, err := ParseJointType(string(b))
	if err != nil {
		return err
	}
	*j = v
	return nil
}
