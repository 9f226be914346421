package entity

import "time"

// User representa un usuario del sistema. El Ledger solo necesita su ID
// para atribuir movimientos; la autorización ocurre antes, en el middleware.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	DisplayName  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
