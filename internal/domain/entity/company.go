package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// Todos los demás registros están particionados por CompanyID.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIT con o sin dígito de verificación
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
