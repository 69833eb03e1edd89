package artifacts

// Bundle holds everything produced by one training run that the service
// needs to answer requests: the run parameters and the performance report.
// A bundle is loaded once at startup and never mutated afterward.
type Bundle struct {
	RunID       string         `json:"run_id"`
	Params      map[string]any `json:"params"`
	Performance map[string]any `json:"performance"`
}

// Prediction is the per-text result returned by the prediction service.
type Prediction struct {
	InputText     string   `json:"input_text"`
	PredictedTags []string `json:"predicted_tags"`
}
