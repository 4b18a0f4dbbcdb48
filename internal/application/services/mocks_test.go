package services_test

import (
	"context"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// ============================================
// Mock Implementations (Test Doubles)
// ============================================

// MockUnitOfWork runs the function inline so service logic is exercised
// without a database.
type MockUnitOfWork struct {
	ExecuteFunc          func(ctx context.Context, fn func(txCtx context.Context) error) error
	ExecuteWithRetryFunc func(ctx context.Context, maxRetries int, fn func(txCtx context.Context) error) error
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, fn)
	}
	return fn(ctx)
}

func (m *MockUnitOfWork) ExecuteWithRetry(ctx context.Context, maxRetries int, fn func(txCtx context.Context) error) error {
	if m.ExecuteWithRetryFunc != nil {
		return m.ExecuteWithRetryFunc(ctx, maxRetries, fn)
	}
	return fn(ctx)
}

// MockPasswordHasher uses a reversible fake encoding so tests can assert
// which plaintext produced a stored hash.
type MockPasswordHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(encodedHash, password string) (bool, error)
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordHasher) Verify(encodedHash, password string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(encodedHash, password)
	}
	return encodedHash == "hashed:"+password, nil
}

type MockTokenIssuer struct {
	GenerateFunc func(userID int64, email, username string, stayLoggedIn bool) (string, error)
	VerifyFunc   func(token string) (*ports.TokenPayload, error)
}

func (m *MockTokenIssuer) Generate(userID int64, email, username string, stayLoggedIn bool) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, email, username, stayLoggedIn)
	}
	return "test-token", nil
}

func (m *MockTokenIssuer) Verify(token string) (*ports.TokenPayload, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return &ports.TokenPayload{}, nil
}

type MockObjectStorage struct {
	PutFunc    func(ctx context.Context, key string, data []byte, contentType string) error
	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *MockObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	return nil
}

func (m *MockObjectStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, ports.ErrNotFound
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

type MockUserRepository struct {
	FindByIDFunc              func(ctx context.Context, id int64) (*entities.User, error)
	SaveFunc                  func(ctx context.Context, user *entities.User) error
	DeleteFunc                func(ctx context.Context, id int64) error
	FindByEmailFunc           func(ctx context.Context, email string) (*entities.User, error)
	FindByUsernameFunc        func(ctx context.Context, username string) (*entities.User, error)
	ExistsByEmailFunc         func(ctx context.Context, email string) (bool, error)
	ExistsByUsernameFunc      func(ctx context.Context, username string) (bool, error)
	PasswordHistoryFunc       func(ctx context.Context, userID int64, limit int) ([]entities.PasswordHistory, error)
	AppendPasswordHistoryFunc func(ctx context.Context, userID int64, hash string) error
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *MockUserRepository) Save(ctx context.Context, user *entities.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ports.ErrNotFound
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ports.ErrNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *MockUserRepository) PasswordHistory(ctx context.Context, userID int64, limit int) ([]entities.PasswordHistory, error) {
	if m.PasswordHistoryFunc != nil {
		return m.PasswordHistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockUserRepository) AppendPasswordHistory(ctx context.Context, userID int64, hash string) error {
	if m.AppendPasswordHistoryFunc != nil {
		return m.AppendPasswordHistoryFunc(ctx, userID, hash)
	}
	return nil
}

type MockTitleRepository struct {
	FindByIDFunc     func(ctx context.Context, id int64) (*entities.Title, error)
	SaveFunc         func(ctx context.Context, title *entities.Title) error
	DeleteFunc       func(ctx context.Context, id int64) error
	ListFunc         func(ctx context.Context, filter ports.TitleFilter) ([]*entities.Title, error)
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
	AddTagsFunc      func(ctx context.Context, titleID int64, tagIDs []int64) error
	RemoveTagsFunc   func(ctx context.Context, titleID int64, tagIDs []int64) error
	SetCoverFunc     func(ctx context.Context, titleID int64, coverKey string) error
}

func (m *MockTitleRepository) FindByID(ctx context.Context, id int64) (*entities.Title, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *MockTitleRepository) Save(ctx context.Context, title *entities.Title) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, title)
	}
	return nil
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTitleRepository) List(ctx context.Context, filter ports.TitleFilter) ([]*entities.Title, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockTitleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name)
	}
	return false, nil
}

func (m *MockTitleRepository) AddTags(ctx context.Context, titleID int64, tagIDs []int64) error {
	if m.AddTagsFunc != nil {
		return m.AddTagsFunc(ctx, titleID, tagIDs)
	}
	return nil
}

func (m *MockTitleRepository) RemoveTags(ctx context.Context, titleID int64, tagIDs []int64) error {
	if m.RemoveTagsFunc != nil {
		return m.RemoveTagsFunc(ctx, titleID, tagIDs)
	}
	return nil
}

func (m *MockTitleRepository) SetCover(ctx context.Context, titleID int64, coverKey string) error {
	if m.SetCoverFunc != nil {
		return m.SetCoverFunc(ctx, titleID, coverKey)
	}
	return nil
}

type MockTagRepository struct {
	FindByIDFunc     func(ctx context.Context, id int64) (*entities.Tag, error)
	SaveFunc         func(ctx context.Context, tag *entities.Tag) error
	DeleteFunc       func(ctx context.Context, id int64) error
	ListFunc         func(ctx context.Context, includeInactive bool) ([]*entities.Tag, error)
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
}

func (m *MockTagRepository) FindByID(ctx context.Context, id int64) (*entities.Tag, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *MockTagRepository) Save(ctx context.Context, tag *entities.Tag) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTagRepository) List(ctx context.Context, includeInactive bool) ([]*entities.Tag, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, includeInactive)
	}
	return nil, nil
}

func (m *MockTagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name)
	}
	return false, nil
}

type MockRatingRepository struct {
	UpsertFunc             func(ctx context.Context, rating *entities.Rating) error
	FindByUserAndTitleFunc func(ctx context.Context, userID, titleID int64) (*entities.Rating, error)
	SummaryFunc            func(ctx context.Context, titleID int64) (*entities.RatingSummary, error)
	DeleteFunc             func(ctx context.Context, userID, titleID int64) error
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *entities.Rating) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, rating)
	}
	return nil
}

func (m *MockRatingRepository) FindByUserAndTitle(ctx context.Context, userID, titleID int64) (*entities.Rating, error) {
	if m.FindByUserAndTitleFunc != nil {
		return m.FindByUserAndTitleFunc(ctx, userID, titleID)
	}
	return nil, ports.ErrNotFound
}

func (m *MockRatingRepository) Summary(ctx context.Context, titleID int64) (*entities.RatingSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, titleID)
	}
	return &entities.RatingSummary{TitleID: titleID}, nil
}

func (m *MockRatingRepository) Delete(ctx context.Context, userID, titleID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, titleID)
	}
	return nil
}

type MockGroupRepository struct {
	FindByIDFunc     func(ctx context.Context, id int64) (*entities.Group, error)
	SaveFunc         func(ctx context.Context, group *entities.Group) error
	DeleteFunc       func(ctx context.Context, id int64) error
	ListFunc         func(ctx context.Context, name string) ([]*entities.Group, error)
	FindByOwnerFunc  func(ctx context.Context, ownerID int64) (*entities.Group, error)
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
	MembersFunc      func(ctx context.Context, groupID int64) ([]*entities.User, error)
	FollowersFunc    func(ctx context.Context, groupID int64) ([]*entities.User, error)
	FollowFunc       func(ctx context.Context, groupID, userID int64) error
	UnfollowFunc     func(ctx context.Context, groupID, userID int64) error
	IsFollowingFunc  func(ctx context.Context, groupID, userID int64) (bool, error)
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id int64) (*entities.Group, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *MockGroupRepository) Save(ctx context.Context, group *entities.Group) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, group)
	}
	return nil
}

func (m *MockGroupRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockGroupRepository) List(ctx context.Context, name string) ([]*entities.Group, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockGroupRepository) FindByOwner(ctx context.Context, ownerID int64) (*entities.Group, error) {
	if m.FindByOwnerFunc != nil {
		return m.FindByOwnerFunc(ctx, ownerID)
	}
	return nil, ports.ErrNotFound
}

func (m *MockGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name)
	}
	return false, nil
}

func (m *MockGroupRepository) Members(ctx context.Context, groupID int64) ([]*entities.User, error) {
	if m.MembersFunc != nil {
		return m.MembersFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *MockGroupRepository) Followers(ctx context.Context, groupID int64) ([]*entities.User, error) {
	if m.FollowersFunc != nil {
		return m.FollowersFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *MockGroupRepository) Follow(ctx context.Context, groupID, userID int64) error {
	if m.FollowFunc != nil {
		return m.FollowFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *MockGroupRepository) Unfollow(ctx context.Context, groupID, userID int64) error {
	if m.UnfollowFunc != nil {
		return m.UnfollowFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *MockGroupRepository) IsFollowing(ctx context.Context, groupID, userID int64) (bool, error) {
	if m.IsFollowingFunc != nil {
		return m.IsFollowingFunc(ctx, groupID, userID)
	}
	return false, nil
}
