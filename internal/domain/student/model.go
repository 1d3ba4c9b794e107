package student

// Student is one row of the preloaded fee dataset. The dataset is read-only
// from the service's point of view and replaced wholesale on reload.
type Student struct {
	Name            string `json:"name" ch:"name"`
	AdmissionNumber string `json:"admission_number" ch:"admission_number"`
	School          string `json:"school" ch:"school"`
	Class           string `json:"class" ch:"class"`
	Section         string `json:"section" ch:"section"`
	FeeDue          string `json:"fee_due" ch:"fee_due"`
}
