package scheduler

import "github.com/agrosphere/smartfarm/internal/model/entities"

// mmHectareToM3 converts a water depth over an area into a volume:
// 1 mm over 1 hectare = 10 m³.
const mmHectareToM3 = 10.0

// CropWaterDemand converts the reference evapotranspiration into the
// crop's volumetric daily requirement (m³) over the field area.
func (e *Engine) CropWaterDemand(crop string, stage entities.GrowthStage, et0, areaHectares float64) float64 {
	kc := e.crops.Kc(crop, stage)
	cropET := et0 * kc
	return cropET * areaHectares * mmHectareToM3
}
