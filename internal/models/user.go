package models

// Role is a user role. The Spanish values are the persisted contract.
type Role string

const (
	RoleVisitor  Role = "Visitante"
	RoleReporter Role = "Reportero"
	RoleEditor   Role = "Editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleVisitor, RoleReporter, RoleEditor:
		return true
	}
	return false
}

// User mirrors the usuarios collection. The UID matches the identity the
// auth token was issued for.
type User struct {
	UID       string `gorm:"primaryKey;column:uid" json:"uid"`
	Email     string `gorm:"unique" json:"email"`
	Password  string `json:"-"`
	FirstName string `gorm:"column:nombre" json:"nombre"`
	LastName  string `gorm:"column:apellido" json:"apellido"`
	Phone     string `gorm:"column:numero" json:"numero"`
	Role      Role   `gorm:"column:rol;default:Visitante" json:"rol" example:"Reportero"`
}

func (User) TableName() string {
	return "usuarios"
}
