// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db            *gorm.DB
	sqlDB         *sql.DB
	namespace     uuid.UUID
	cancelMonitor context.CancelFunc
	closeOnce     sync.Once
	closeErr      error
}

// NewUserRepository migrates the users table and returns the repository.
// The repository owns db from here on: Close stops the pool monitor and closes the pool.
func NewUserRepository(ctx context.Context, db *gorm.DB, namespace uuid.UUID, logger *slog.Logger) (repository.UserRepository, error) {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to migrate users table")
	}
	if migrator := db.WithContext(ctx).Migrator(); migrator.HasIndex(&model.UserModel{}, model.LegacyUsernameUniqueIndex) {
		if err := migrator.DropIndex(&model.UserModel{}, model.LegacyUsernameUniqueIndex); err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to drop unique username index")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

	return &userRepository{
		db:            db,
		sqlDB:         sqlDB,
		namespace:     namespace,
		cancelMonitor: cancelMonitor,
	}, nil
}

// CreateUser inserts the user unless the username or its derived id is already stored.
// The username check and the insert run under an advisory lock on the username,
// which UpdateUser takes as well.
func (repo *userRepository) CreateUser(ctx context.Context, username string) (*entity.User, bool, error) {
	userM := fromUserDomain(entity.NewUser(repo.namespace, username))

	created := false
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsername(tx, username); err != nil {
			return err
		}

		var held int64
		if err := tx.Model(&model.UserModel{}).Where("username = ?", username).Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return nil
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(userM)
		created = result.RowsAffected > 0

		return result.Error
	})
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}
	if !created {
		return nil, false, nil
	}

	return toUserDomain(userM), true, nil
}

// UpdateUser renames the user in place and reads the row back with RETURNING.
// The new username is not checked against other users.
func (repo *userRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	if user == nil {
		return nil, false, nil
	}

	var updated []model.UserModel
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUsername(tx, user.Username); err != nil {
			return err
		}

		return tx.Model(&updated).
			Clauses(clause.Returning{}).
			Where("id = ?", user.ID).
			Update("username", user.Username).Error
	})
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if len(updated) == 0 {
		return nil, false, nil
	}

	return toUserDomain(&updated[0]), true, nil
}

// lockUsername serialises writers of one username until the transaction ends.
func lockUsername(tx *gorm.DB, username string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", username).Error
}

func (repo *userRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	var userMs []*model.UserModel
	if err := repo.db.WithContext(ctx).Order("seq").Find(&userMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	return toUserDomains(userMs), nil
}

func (repo *userRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), true, nil
}

// DeleteUser removes the row and returns it in the same statement.
func (repo *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	var deleted []model.UserModel
	result := repo.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted)
	if result.Error != nil {
		return nil, false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, false, nil
	}

	return toUserDomain(&deleted[0]), true, nil
}

// FindUsersByName uses strpos instead of LIKE so '%' and '_' in the query match literally.
func (repo *userRepository) FindUsersByName(ctx context.Context, query string) ([]*entity.User, error) {
	var userMs []*model.UserModel
	err := repo.db.WithContext(ctx).
		Where("strpos(lower(username), lower(?)) > 0", query).
		Order("seq").
		Find(&userMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by name")
	}

	return toUserDomains(userMs), nil
}

func (repo *userRepository) Close(_ context.Context) error {
	repo.closeOnce.Do(func() {
		repo.cancelMonitor()
		repo.closeErr = repo.sqlDB.Close()
	})

	return errors.WithStack(repo.closeErr)
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:       data.ID,
		Username: data.Username,
	}
}

func toUserDomains(data []*model.UserModel) []*entity.User {
	users := make([]*entity.User, 0, len(data))
	for _, userM := range data {
		users = append(users, toUserDomain(userM))
	}

	return users
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:       data.ID,
		Username: data.Username,
	}
}
