// internal/app/system/identity/identity.go
package identity

import (
	"context"
	"errors"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/status"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Resolver turns an authenticated principal into an Actor the policy
// layer can evaluate. Admin and superadmin are stored on the user
// record; the lead role never is — it is derived here from project
// membership, so a plain member who leads at least one project
// resolves as a lead.
type Resolver struct {
	users *userstore.Store
	db    *mongo.Database
}

var ErrDisabled = errors.New("user account is disabled")

func New(users *userstore.Store, db *mongo.Database) *Resolver {
	return &Resolver{users: users, db: db}
}

// ActorForEmail resolves the actor for a (folded) email address.
func (r *Resolver) ActorForEmail(ctx context.Context, email string) (models.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	u, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		return models.Actor{}, err
	}
	return r.actorFor(ctx, u)
}

// ActorForID resolves the actor for a user id.
func (r *Resolver) ActorForID(ctx context.Context, id primitive.ObjectID) (models.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	u, err := r.users.GetByID(ctx, id)
	if err != nil {
		return models.Actor{}, err
	}
	return r.actorFor(ctx, u)
}

func (r *Resolver) actorFor(ctx context.Context, u models.User) (models.Actor, error) {
	if u.Status == status.Disabled {
		return models.Actor{}, ErrDisabled
	}
	role := u.Role
	if role == authz.RoleMember {
		leads, err := projectpolicy.LeadsAnyProject(ctx, r.db, u.ID)
		if err != nil {
			return models.Actor{}, err
		}
		if leads {
			role = authz.RoleLead
		}
	}
	return models.Actor{UserID: u.ID, Name: u.Name, Role: role}, nil
}
