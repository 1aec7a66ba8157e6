package advisor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agrosphere/smartfarm/internal/model/entities"
)

// LoadFields reads the static field registry from a JSON file: an array
// of field states keyed by their IDs.
func LoadFields(path string) (map[string]entities.FieldState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []entities.FieldState
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}

	out := make(map[string]entities.FieldState, len(list))
	for _, f := range list {
		if f.ID == "" {
			return nil, fmt.Errorf("field without id in %s", path)
		}
		if f.AreaHectares <= 0 {
			return nil, fmt.Errorf("field %s: area %.3f ha must be > 0", f.ID, f.AreaHectares)
		}
		if f.SoilMoisture < 0 || f.SoilMoisture > 1 {
			return nil, fmt.Errorf("field %s: soil moisture %.3f outside [0,1]", f.ID, f.SoilMoisture)
		}
		out[f.ID] = f
	}
	return out, nil
}
