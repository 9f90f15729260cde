package trip

import (
	"fmt"

	"packntrack/internal/ai"
)

const SystemPrompt = "You are a travel assistant API. Output JSON only. No markdown."

const schemaBlock = `
Return JSON with this exact structure:
{
    "trip_name": "Title",
    "center_lat": 0.0,
    "center_lon": 0.0,
    "days": [
        { "day": 1, "activities": [ {"name": "Place", "coords": [0.0, 0.0], "time": "9AM", "desc": "Info"} ] }
    ]
}`

// BuildPrompt interpolates the request into the fixed prompt pair.
func BuildPrompt(req TripRequest) ai.Prompt {
	return BuildInputPrompt(req.Input())
}

// BuildInputPrompt is BuildPrompt for an already rendered body. No field is
// validated or escaped.
func BuildInputPrompt(in Input) ai.Prompt {
	user := fmt.Sprintf("Plan a %s-day trip to %s for someone who likes %s.", in.Days, in.City, in.Prefs)
	return ai.Prompt{
		System: SystemPrompt,
		User:   user + schemaBlock,
	}
}
