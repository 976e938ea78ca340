package carrier

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads the carrier list from a JSON file. The catalog is operator
// data, not code; deployments point the server at their own file.
func LoadFile(path string) ([]Carrier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read carrier file: %w", err)
	}
	var carriers []Carrier
	if err := json.Unmarshal(data, &carriers); err != nil {
		return nil, fmt.Errorf("parse carrier file %s: %w", path, err)
	}
	return carriers, nil
}
