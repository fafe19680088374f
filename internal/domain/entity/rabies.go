package entity

import "time"

// Categorías de exposición OMS.
const (
	ExposureCategoryI   = "I"   // contacto sin lesión: no requiere vacuna
	ExposureCategoryII  = "II"  // arañazo / mordisco leve: vacuna
	ExposureCategoryIII = "III" // mordisco transdérmico: vacuna + inmunoglobulina (RIG)
)

// Esquemas de vacunación antirrábica post-exposición.
const (
	RegimenEssenIM  = "IM" // intramuscular Essen: días 0, 3, 7, 14, 28
	RegimenUpdateID = "ID" // intradérmico: días 0, 3, 7, 28
)

// RegimenDays días de aplicación por esquema.
var RegimenDays = map[string][]int{
	RegimenEssenIM:  {0, 3, 7, 14, 28},
	RegimenUpdateID: {0, 3, 7, 28},
}

// Dose una dosis programada del esquema.
type Dose struct {
	Day       int        `bson:"day" json:"day"`
	DueDate   time.Time  `bson:"due_date" json:"due_date"`
	GivenDate *time.Time `bson:"given_date,omitempty" json:"given_date,omitempty"`
	BatchNo   string     `bson:"batch_no,omitempty" json:"batch_no,omitempty"`
	GivenBy   string     `bson:"given_by,omitempty" json:"given_by,omitempty"`
}

// Given indica si la dosis ya se aplicó.
func (d Dose) Given() bool { return d.GivenDate != nil }

// RabiesPatient registro de la clínica antirrábica.
type RabiesPatient struct {
	ID               string    `bson:"_id" json:"id"`
	RegistrationNo   int       `bson:"registration_no" json:"registration_no"`
	FiscalYear       string    `bson:"fiscal_year" json:"fiscal_year"`
	Name             string    `bson:"name" json:"name"`
	Age              int       `bson:"age" json:"age"`
	Sex              string    `bson:"sex" json:"sex"`
	Address          string    `bson:"address" json:"address"`
	Phone            string    `bson:"phone,omitempty" json:"phone,omitempty"`
	BiteDate         time.Time `bson:"bite_date" json:"bite_date"`
	BiteDateBS       string    `bson:"bite_date_bs,omitempty" json:"bite_date_bs,omitempty"`
	Animal           string    `bson:"animal" json:"animal"` // perro, gato, mono...
	BiteSite         string    `bson:"bite_site,omitempty" json:"bite_site,omitempty"`
	ExposureCategory string    `bson:"exposure_category" json:"exposure_category"`
	Regimen          string    `bson:"regimen" json:"regimen"`
	RIGGiven         bool      `bson:"rig_given" json:"rig_given"`
	Doses            []Dose    `bson:"doses" json:"doses"`
	CreatedBy        string    `bson:"created_by" json:"created_by"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// Completed indica si se aplicaron todas las dosis del esquema (categoría I no tiene dosis).
func (p RabiesPatient) Completed() bool {
	for _, d := range p.Doses {
		if !d.Given() {
			return false
		}
	}
	return true
}
