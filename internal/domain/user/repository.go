package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (int, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int, role Role) error
	UpdateSecondFactor(ctx context.Context, id int, enabled bool) error
	Delete(ctx context.Context, id int) error
}
