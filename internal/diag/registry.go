package diag

import "fmt"

// NewInspector creates an inspector based on the specified variant
func NewInspector(variant string) (Inspector, error) {
	switch variant {
	case "kinematics", "":
		return NewKinematicsInspector(), nil
	case "curvature":
		return nil, fmt.Errorf("curvature inspector not yet implemented")
	default:
		return nil, fmt.Errorf("unknown inspector variant: %s", variant)
	}
}
