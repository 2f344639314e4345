package usecase

import (
	"context"
	"errors"
	"math/rand"
	"net/mail"
	"strings"
	"time"

	"team-roster-service/internal/domain"

	"github.com/sirupsen/logrus"
)

// UserUseCase реализует регистрацию, вход и управление профилем.
type UserUseCase struct {
	userRepo  domain.UserRepository
	teamRepo  domain.TeamRepository
	hasher    domain.PasswordHasher
	tokens    domain.TokenIssuer
	publisher domain.EventPublisher
	logger    *logrus.Logger
}

// NewUserUseCase создает новый экземпляр UserUseCase.
func NewUserUseCase(
	userRepo domain.UserRepository,
	teamRepo domain.TeamRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	publisher domain.EventPublisher,
	logger *logrus.Logger,
) domain.UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}

// Register создает пользователя. Переданный код приглашения оформляет заявку
// на вступление в команду; заявку по-прежнему подтверждает менеджер.
// Заявка вторична: если её не удалось сохранить, пользователь всё равно
// зарегистрирован и может вступить через RequestJoin.
func (uc *UserUseCase) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if input.Password == "" {
		return nil, domain.ErrPasswordRequired
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	team, err := uc.invitingTeam(ctx, input.InviteCode)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	avatar := strings.TrimSpace(input.Avatar)
	if avatar == "" {
		avatar = domain.DefaultAvatarURL(rand.Intn(99999) + 1)
	}

	user := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		Firstname:    strings.TrimSpace(input.Firstname),
		Lastname:     strings.TrimSpace(input.Lastname),
		Email:        email,
		PasswordHash: hash,
		Avatar:       avatar,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.publish(ctx, domain.EventUserRegistered, user.ID, "")

	if team != nil {
		if err := uc.teamRepo.AddPending(ctx, team.ID, user.ID); err != nil {
			uc.logger.WithFields(logrus.Fields{
				"user_id": user.ID,
				"team_id": team.ID,
				"error":   err,
			}).Warn("Join request after registration failed")
		} else {
			uc.publish(ctx, domain.EventMemberRequested, user.ID, team.ID)
		}
	}

	profile := user.ToProfile()
	return &profile, nil
}

// invitingTeam находит команду по коду приглашения. Пустой или неизвестный код дает nil.
func (uc *UserUseCase) invitingTeam(ctx context.Context, inviteCode string) (*domain.Team, error) {
	code := domain.NormalizeInviteCode(inviteCode)
	if code == "" {
		return nil, nil
	}

	team, err := uc.teamRepo.GetByInviteCode(ctx, code)
	if errors.Is(err, domain.ErrTeamNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Login проверяет пароль и выпускает токен доступа.
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		User:  user.ToProfile(),
		Token: token,
	}, nil
}

// GetUsers возвращает профили всех пользователей.
func (uc *UserUseCase) GetUsers(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.ToProfile())
	}
	return profiles, nil
}

// GetUser возвращает профиль по имени пользователя.
func (uc *UserUseCase) GetUser(ctx context.Context, username string) (*domain.UserProfile, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

// UpdateUser меняет профиль. Пользователь может менять только свой профиль.
func (uc *UserUseCase) UpdateUser(ctx context.Context, callerID, username string, input domain.UpdateUserInput) (*domain.UserProfile, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user.ID != callerID {
		return nil, domain.ErrNotProfileOwner
	}

	if input.Username != nil {
		if v := strings.TrimSpace(*input.Username); v != "" && v != user.Username {
			if err := uc.ensureFree(ctx, v, ""); err != nil {
				return nil, err
			}
			user.Username = v
		}
	}
	if input.Email != nil {
		if v := strings.TrimSpace(*input.Email); v != "" && v != user.Email {
			if _, err := mail.ParseAddress(v); err != nil {
				return nil, domain.ErrInvalidEmail
			}
			if err := uc.ensureFree(ctx, "", v); err != nil {
				return nil, err
			}
			user.Email = v
		}
	}
	if input.Firstname != nil && strings.TrimSpace(*input.Firstname) != "" {
		user.Firstname = strings.TrimSpace(*input.Firstname)
	}
	if input.Lastname != nil && strings.TrimSpace(*input.Lastname) != "" {
		user.Lastname = strings.TrimSpace(*input.Lastname)
	}
	if input.Avatar != nil && strings.TrimSpace(*input.Avatar) != "" {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := uc.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	profile := user.ToProfile()
	return &profile, nil
}

func (uc *UserUseCase) ensureFree(ctx context.Context, username, email string) error {
	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrUserAlreadyExists
	}
	return nil
}

func (uc *UserUseCase) publish(ctx context.Context, eventType domain.EventType, userID, teamID string) {
	uc.publisher.Publish(ctx, domain.Event{
		Type:       eventType,
		ActorID:    userID,
		TeamID:     teamID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	})
}
