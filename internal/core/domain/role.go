package domain

// Role identifies who is acting on a transaction.
type Role string

const (
	RoleClient     Role = "client"
	RoleStaff      Role = "staff"
	RoleBookkeeper Role = "bookkeeper"
	RoleTaxAgent   Role = "tax_agent"
	RoleAdmin      Role = "admin"
	RoleSystem     Role = "system"
)
