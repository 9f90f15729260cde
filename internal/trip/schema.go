package trip

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed plan_schema.json
var planSchemaJSON []byte

var loadPlanSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(planSchemaJSON))
})

// ValidatePlan checks raw against the embedded TripPlan schema.
func ValidatePlan(raw []byte) error {
	schema, err := loadPlanSchema()
	if err != nil {
		return fmt.Errorf("load plan schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("plan validation failed: %v", errs)
	}
	return nil
}
