package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/wingedflyer/portal/internal/domain"
	"github.com/wingedflyer/portal/internal/usecase"
)

var tracer = otel.Tracer("service")

// ErrBadCredentials is returned for any login failure. Username lookup
// misses and password mismatches are indistinguishable on purpose.
var ErrBadCredentials = errors.New("invalid username or password")

// ErrLoginUnavailable covers internal failures during login; the
// message is what the UI shows verbatim.
var ErrLoginUnavailable = errors.New("login is unavailable, please contact your administrator")

const sessionKeyPrefix = "session:"

// Session is the resolved login state kept in redis for the lifetime of
// a token.
type Session struct {
	Token     string           `json:"token"`
	Kind      domain.ActorKind `json:"kind"`
	ActorID   int64            `json:"actorId"`
	ContextID int64            `json:"contextId"`
	Display   string           `json:"display"`
}

type AuthService struct {
	rdb          *redis.Client
	participants usecase.ParticipantRepository
	institutions usecase.InstitutionRepository
	ttl          time.Duration
}

func NewAuthService(
	rdb *redis.Client,
	participants usecase.ParticipantRepository,
	institutions usecase.InstitutionRepository,
	ttl time.Duration,
) *AuthService {
	return &AuthService{
		rdb:          rdb,
		participants: participants,
		institutions: institutions,
		ttl:          ttl,
	}
}

// Login checks credentials for either surface and mints a session
// token.
func (s *AuthService) Login(ctx context.Context, kind domain.ActorKind, username, password string) (Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	var (
		actorID   int64
		contextID int64
		display   string
		hash      string
	)

	switch kind {
	case domain.ActorParticipant:
		participant, err := s.participants.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return Session{}, ErrBadCredentials
			}
			span.RecordError(err)
			return Session{}, ErrLoginUnavailable
		}
		actorID = participant.ID
		contextID = participant.ContextID
		display = participant.RealName
		hash = participant.PasswordHash
	case domain.ActorInstitution:
		institution, err := s.institutions.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return Session{}, ErrBadCredentials
			}
			span.RecordError(err)
			return Session{}, ErrLoginUnavailable
		}
		actorID = institution.ID
		contextID = institution.ContextID
		display = institution.Name
		hash = institution.PasswordHash
	default:
		return Session{}, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Session{}, ErrBadCredentials
		}
		// malformed stored hash or cost problem, not a user mistake
		span.RecordError(err)
		return Session{}, ErrLoginUnavailable
	}

	session := Session{
		Token:     uuid.New().String(),
		Kind:      kind,
		ActorID:   actorID,
		ContextID: contextID,
		Display:   display,
	}

	payload, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		return Session{}, ErrLoginUnavailable
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+session.Token, payload, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return Session{}, ErrLoginUnavailable
	}

	return session, nil
}

// Resolve loads the session for a token and slides its expiry.
func (s *AuthService) Resolve(ctx context.Context, token string) (Session, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Resolve")
	defer span.End()

	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, domain.NotFoundError{Resource: "session"}
		}
		span.RecordError(err)
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		span.RecordError(err)
		return Session{}, err
	}

	if err := s.rdb.Expire(ctx, sessionKeyPrefix+token, s.ttl).Err(); err != nil {
		span.RecordError(err)
	}

	return session, nil
}

// Logout drops the session immediately.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}
