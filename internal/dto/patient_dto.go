package dto

type CreatePatientRequest struct {
	ID        string  `json:"id"      validate:"required"`
	Name      string  `json:"name"    validate:"required"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Date      string  `json:"date"`
	Treatment *string `json:"treatmentOrMedicine"`
}

// UpdatePatientRequest is a partial merge: only supplied fields change.
type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Date      *string `json:"date"`
	Treatment *string `json:"treatmentOrMedicine"`
}

type PatientResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Date      string  `json:"date"`
	Treatment *string `json:"treatmentOrMedicine,omitempty"`
	CreatedAt string  `json:"createdAt"`
}
