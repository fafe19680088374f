package dto

import (
	"time"

	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// RegisterPatientRequest alta de un paciente en la clínica antirrábica.
// BiteDate en formato AAAA-MM-DD (calendario gregoriano); BiteDateBS es solo informativo.
type RegisterPatientRequest struct {
	Name             string `json:"name" validate:"required"`
	Age              int    `json:"age" validate:"min=0,max=130"`
	Sex              string `json:"sex" validate:"oneof=M F O"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	BiteDate         string `json:"bite_date" validate:"required"`
	BiteDateBS       string `json:"bite_date_bs"`
	Animal           string `json:"animal" validate:"required"`
	BiteSite         string `json:"bite_site"`
	ExposureCategory string `json:"exposure_category" validate:"required,oneof=I II III"`
	Regimen          string `json:"regimen" validate:"omitempty,oneof=IM ID"`
	RIGGiven         bool   `json:"rig_given"`
}

// RecordDoseRequest registro de una dosis aplicada. GivenDate vacío = hoy.
type RecordDoseRequest struct {
	Day       int    `json:"day"`
	GivenDate string `json:"given_date"`
	BatchNo   string `json:"batch_no"`
}

// PatientListResponse lista paginada de pacientes.
type PatientListResponse struct {
	Items []entity.RabiesPatient `json:"items"`
	Page  PageResponse           `json:"page"`
}

// DueDose dosis pendiente para la lista del día.
type DueDose struct {
	PatientID      string    `json:"patient_id"`
	RegistrationNo int       `json:"registration_no"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Day            int       `json:"day"`
	DueDate        time.Time `json:"due_date"`
	Overdue        bool      `json:"overdue"`
}

// DueListResponse dosis que vencen hasta la fecha consultada.
type DueListResponse struct {
	Date  time.Time `json:"date"`
	Items []DueDose `json:"items"`
}
