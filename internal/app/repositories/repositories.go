package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AdminRepository   *AdminRepository
	StudentRepository *StudentRepository
	ResultRepository  *ResultRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AdminRepository:   NewAdminRepository(db),
		StudentRepository: NewStudentRepository(db),
		ResultRepository:  NewResultRepository(db),
	}
}
