package request

import "fmt"

const MaxInspectValueLength = 64 * 1024

type InspectRequest struct {
	Value *string `json:"value"`
}

func (r *InspectRequest) Validate() error {
	if r.Value == nil {
		return fmt.Errorf("value is required")
	}
	if len(*r.Value) > MaxInspectValueLength {
		return fmt.Errorf("value must not exceed %d bytes", MaxInspectValueLength)
	}
	return nil
}
