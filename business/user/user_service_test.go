package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myShopSense/domain"
	redisrepo "myShopSense/internal/repository/redis"
	"myShopSense/pkg/utils"
)

const testVerificationKey = "0123456789abcdef0123456789abcdef"

type fakeUserRepo struct {
	byEmail map[string]domain.User
	byID    map[uint]domain.User
	nextID  uint
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		byEmail: map[string]domain.User{},
		byID:    map[uint]domain.User{},
		nextID:  1,
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = *user
	r.byID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	u, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	u, ok := r.byID[id]
	if !ok {
		return errors.New("user not found")
	}
	u.IsVerified = isVerified
	r.byID[id] = u
	r.byEmail[u.Email] = u
	return nil
}

type fakeNotifier struct {
	sent []string // email bodies
	err  error
}

func (n *fakeNotifier) SendEmail(toName, toEmail, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, body)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]string // token -> user id
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (s *fakeTokenStore) StoreToken(ctx context.Context, userID, token string, data redisrepo.TokenData, ttl time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeTokenStore) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return userID, nil
}

func (s *fakeTokenStore) DeleteToken(ctx context.Context, userID, token string) error {
	delete(s.tokens, token)
	return nil
}

func newTestUserService(t *testing.T, repo *fakeUserRepo, notifier *fakeNotifier, tokens *fakeTokenStore) *userService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	return NewUserService(repo, validator.New(), notifier, tokens, testVerificationKey, "http://localhost:8080")
}

func verifiedUser(t *testing.T, password string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return domain.User{
		ID:         3,
		FullName:   "Test User",
		Email:      "test@example.com",
		Password:   hash,
		IsVerified: true,
		Role:       RoleCustomer,
	}
}

func TestRegisterSendsVerificationEmail(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := newTestUserService(t, repo, notifier, newFakeTokenStore())

	user, err := svc.Register(context.Background(), &domain.User{
		FullName: "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, RoleCustomer, user.Role)
	assert.False(t, user.IsVerified)
	assert.Empty(t, user.Password)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "/api/v1/users/email-verification/")

	stored, err := repo.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "Other",
		Email:    "test@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestUserService(t, newFakeUserRepo(), &fakeNotifier{}, newFakeTokenStore())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "New User",
		Email:    "new@example.com",
		Password: "short",
	})
	require.Error(t, err)
}

func TestRegisterSucceedsWhenEmailDeliveryFails(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("mailer down")}
	svc := newTestUserService(t, newFakeUserRepo(), notifier, newFakeTokenStore())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestLoginStoresSessionToken(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	tokens := newFakeTokenStore()
	svc := newTestUserService(t, repo, &fakeNotifier{}, tokens)

	token, user, err := svc.Login(context.Background(), "test@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)
	assert.Equal(t, "3", tokens.tokens[token])

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "3", userID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	_, _, err := svc.Login(context.Background(), "test@example.com", "wrong", "127.0.0.1", "go-test")
	require.Error(t, err)
}

func TestLoginUnverifiedEmail(t *testing.T) {
	u := verifiedUser(t, "secret123")
	u.IsVerified = false
	svc := newTestUserService(t, newFakeUserRepo(u), &fakeNotifier{}, newFakeTokenStore())

	_, _, err := svc.Login(context.Background(), "test@example.com", "secret123", "127.0.0.1", "go-test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verified")
}

func TestLogoutRevokesToken(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	tokens := newFakeTokenStore()
	svc := newTestUserService(t, repo, &fakeNotifier{}, tokens)

	token, user, err := svc.Login(context.Background(), "test@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID, token))

	_, err = svc.ValidateTokenFromRedis(context.Background(), token)
	require.Error(t, err)
}

func encodeVerification(t *testing.T, email string, expAt int64) string {
	t.Helper()
	code := fmt.Sprintf("%v|%v", email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(code), []byte(testVerificationKey))
	require.NoError(t, err)
	return goshortcute.StringtoBase64Encode(encrypted)
}

func TestVerifyEmail(t *testing.T) {
	u := verifiedUser(t, "secret123")
	u.IsVerified = false
	repo := newFakeUserRepo(u)
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	code := encodeVerification(t, u.Email, time.Now().Add(5*time.Minute).Unix())
	require.NoError(t, svc.VerifyEmail(context.Background(), code))

	stored, err := repo.FindByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
}

func TestVerifyEmailExpiredLink(t *testing.T) {
	u := verifiedUser(t, "secret123")
	u.IsVerified = false
	svc := newTestUserService(t, newFakeUserRepo(u), &fakeNotifier{}, newFakeTokenStore())

	code := encodeVerification(t, u.Email, time.Now().Add(-time.Minute).Unix())
	err := svc.VerifyEmail(context.Background(), code)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	u := verifiedUser(t, "secret123")
	svc := newTestUserService(t, newFakeUserRepo(u), &fakeNotifier{}, newFakeTokenStore())

	code := encodeVerification(t, u.Email, time.Now().Add(5*time.Minute).Unix())
	err := svc.VerifyEmail(context.Background(), code)
	require.Error(t, err)
}

func TestVerifyEmailGarbageCode(t *testing.T) {
	svc := newTestUserService(t, newFakeUserRepo(), &fakeNotifier{}, newFakeTokenStore())

	err := svc.VerifyEmail(context.Background(), "bm90LWEtcmVhbC1jb2Rl")
	require.Error(t, err)
}

func TestGetAllUsersStripsPasswords(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, users)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	_, err := svc.UpdateUser(context.Background(), 3, &domain.User{Role: "superuser"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid role"))
}

func TestUpdateUserChangesNameAndPassword(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	updated, err := svc.UpdateUser(context.Background(), 3, &domain.User{
		FullName: "Renamed User",
		Password: "newsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed User", updated.FullName)
	assert.Empty(t, updated.Password)

	_, _, err = svc.Login(context.Background(), "test@example.com", "newsecret", "127.0.0.1", "go-test")
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo(verifiedUser(t, "secret123"))
	svc := newTestUserService(t, repo, &fakeNotifier{}, newFakeTokenStore())

	require.NoError(t, svc.DeleteUser(context.Background(), 3))
	require.Error(t, svc.DeleteUser(context.Background(), 3))
}
