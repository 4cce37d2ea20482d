package customers

import (
	"regexp"
	"strings"
	"time"

	"commerce-core/internal/apperrors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer representa um cliente registrado
type Customer struct {
	ID              int64     `json:"customer_id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	FirstName       string    `json:"first_name" db:"first_name"`
	LastName        string    `json:"last_name" db:"last_name"`
	PhoneNumber     string    `json:"phone_number" db:"phone_number"`
	ShippingAddress string    `json:"shipping_address" db:"shipping_address"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// NewCustomer cria uma nova instância de Customer. O hash da credencial
// já deve vir calculado; a senha em texto puro nunca chega aqui.
func NewCustomer(email, passwordHash, firstName, lastName, phoneNumber, shippingAddress string) (*Customer, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validation("malformed email")
	}
	if passwordHash == "" {
		return nil, apperrors.Validation("credential hash is required")
	}
	for field, value := range map[string]string{
		"first_name":       firstName,
		"last_name":        lastName,
		"shipping_address": shippingAddress,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, apperrors.Validation("%s is required", field)
		}
	}

	return &Customer{
		Email:           email,
		PasswordHash:    passwordHash,
		FirstName:       firstName,
		LastName:        lastName,
		PhoneNumber:     phoneNumber,
		ShippingAddress: shippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}, nil
}
