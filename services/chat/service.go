package chat

import (
	"context"
	"sort"
	"strings"
	"time"

	chatRepo "brightsite/database/repository/chat"
	userRepo "brightsite/database/repository/user"
	"brightsite/models"
	"brightsite/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultChatService is the production chat session service.
type DefaultChatService struct {
	Repo     chatRepo.ChatRepository
	UserRepo userRepo.UserRepository
	Notifier Notifier         // optional
	Cache    SessionListCache // optional

	// Serializes appends per session so broadcast order matches store order.
	appendLocks *utils.KeyedMutex
}

// NewDefaultChatService wires the service with its collaborators.
func NewDefaultChatService(repo chatRepo.ChatRepository, users userRepo.UserRepository, notifier Notifier, cache SessionListCache) *DefaultChatService {
	return &DefaultChatService{
		Repo:        repo,
		UserRepo:    users,
		Notifier:    notifier,
		Cache:       cache,
		appendLocks: utils.NewKeyedMutex(),
	}
}

// invalidateSessionList drops the cached admin list after any session write.
func (s *DefaultChatService) invalidateSessionList(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}

func validChatType(t string) bool {
	return t == models.ChatTypeBooking || t == models.ChatTypeSupport
}

// resolveIdentity resolves in priority order: registered user first,
// then a valid guest token, then a freshly minted guest identity. A present
// but invalid token is an authentication failure, not a reason to re-mint.
func (s *DefaultChatService) resolveIdentity(ctx context.Context, req StartSessionRequest) (models.ChatIdentity, *utils.GuestIdentity, bool, error) {
	if req.UserID != "" {
		user, err := s.UserRepo.GetByID(ctx, req.UserID)
		if err == nil {
			return models.ChatIdentity{UserID: user.ID}, nil, false, nil
		}
		if err != mongo.ErrNoDocuments {
			return models.ChatIdentity{}, nil, false, err
		}
		// Fall through: an unresolvable user id degrades to guest handling.
	}

	if req.GuestToken != "" {
		guest, err := utils.ParseGuestToken(req.GuestToken)
		if err != nil {
			return models.ChatIdentity{}, nil, false, utils.ErrInvalidGuestToken
		}
		return models.ChatIdentity{
			GuestUID:   guest.UID,
			GuestName:  guest.Name,
			GuestEmail: guest.Email,
		}, &guest, false, nil
	}

	minted := utils.MintGuestIdentity(req.GuestName, req.GuestEmail)
	return models.ChatIdentity{
		GuestUID:   minted.UID,
		GuestName:  minted.Name,
		GuestEmail: minted.Email,
	}, &minted, true, nil
}

func (s *DefaultChatService) StartOrResumeSession(ctx context.Context, req StartSessionRequest) (*StartSessionResult, error) {
	logger := utils.GetLogger()

	if !validChatType(req.Type) {
		return nil, ErrInvalidChatType
	}

	identity, guest, minted, err := s.resolveIdentity(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindActive(ctx, identity, req.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &StartSessionResult{Session: existing, Guest: guest, MintedGuest: minted}, nil
	}

	session := &models.ChatSession{
		ID:         uuid.New().String(),
		UserID:     identity.UserID,
		GuestUID:   identity.GuestUID,
		GuestName:  identity.GuestName,
		GuestEmail: identity.GuestEmail,
		Type:       req.Type,
		Status:     models.ChatStatusActive,
		Messages:   []models.ChatMessage{},
		StartedAt:  time.Now(),
	}

	if err := s.Repo.Create(ctx, session); err != nil {
		// A concurrent request for the same identity may have won the unique
		// index; reuse its session.
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := s.Repo.FindActive(ctx, identity, req.Type)
			if findErr == nil && existing != nil {
				return &StartSessionResult{Session: existing, Guest: guest, MintedGuest: minted}, nil
			}
		}
		return nil, err
	}

	logger.Info("chat session started",
		zap.String("sessionID", session.ID),
		zap.String("type", session.Type),
		zap.Bool("guest", identity.IsGuest()))

	s.invalidateSessionList(ctx)
	if s.Notifier != nil {
		s.Notifier.NotifySessionStarted(session)
	}
	return &StartSessionResult{Session: session, Guest: guest, MintedGuest: minted, Created: true}, nil
}

func (s *DefaultChatService) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	session, err := s.Repo.GetByID(ctx, sessionID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *DefaultChatService) AppendMessage(ctx context.Context, sessionID, sender, text string) (*models.ChatMessage, error) {
	if sender != models.ChatSenderUser && sender != models.ChatSenderAdmin {
		return nil, ErrInvalidSender
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	msg := models.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    sender,
		Message:   text,
		Timestamp: time.Now(),
	}

	// Append and fan-out happen under the session lock so every subscriber
	// observes messages in persisted order.
	s.appendLocks.Lock(sessionID)
	defer s.appendLocks.Unlock(sessionID)

	if err := s.Repo.AppendMessage(ctx, sessionID, msg); err != nil {
		if err == chatRepo.ErrNotActive {
			if _, getErr := s.GetSession(ctx, sessionID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrSessionEnded
		}
		return nil, err
	}

	s.invalidateSessionList(ctx)
	if s.Notifier != nil {
		s.Notifier.NotifyMessage(sessionID, msg)
	}
	return &msg, nil
}

func (s *DefaultChatService) MarkRead(ctx context.Context, sessionID, side, messageID string) ([]string, error) {
	if side != models.ChatSenderUser && side != models.ChatSenderAdmin {
		return nil, ErrInvalidSender
	}

	var flipped []string
	if messageID != "" {
		updated, err := s.Repo.MarkMessageRead(ctx, sessionID, messageID, side)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrSessionNotFound
			}
			return nil, err
		}
		if updated {
			flipped = []string{messageID}
		}
	} else {
		session, err := s.GetSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		for _, msg := range session.Messages {
			if side == models.ChatSenderAdmin && !msg.IsReadByAdmin {
				flipped = append(flipped, msg.ID)
			} else if side == models.ChatSenderUser && !msg.IsReadByUser {
				flipped = append(flipped, msg.ID)
			}
		}
		if err := s.Repo.MarkMessagesRead(ctx, sessionID, flipped, side); err != nil {
			return nil, err
		}
	}

	if len(flipped) > 0 {
		s.invalidateSessionList(ctx)
		if s.Notifier != nil {
			s.Notifier.NotifyRead(sessionID, side, flipped)
		}
	}
	return flipped, nil
}

func (s *DefaultChatService) EndSession(ctx context.Context, sessionID string) error {
	err := s.Repo.End(ctx, sessionID, time.Now())
	if err == chatRepo.ErrNotActive {
		// Either missing or already ended; ending twice is a no-op.
		session, getErr := s.GetSession(ctx, sessionID)
		if getErr != nil {
			return getErr
		}
		if session.Status == models.ChatStatusEnded {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	s.invalidateSessionList(ctx)
	if s.Notifier != nil {
		s.Notifier.NotifySessionEnded(sessionID)
	}
	return nil
}

func (s *DefaultChatService) ListSessionsForAdmin(ctx context.Context) ([]models.AdminSessionView, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if views, ok := s.Cache.Get(ctx); ok {
			return views, nil
		}
	}

	sessions, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.AdminSessionView, 0, len(sessions))
	for _, session := range sessions {
		view := models.AdminSessionView{ChatSession: session}
		for _, msg := range session.Messages {
			if !msg.IsReadByAdmin {
				view.UnreadCount++
			}
		}
		if session.UserID != "" {
			user, err := s.UserRepo.GetByID(ctx, session.UserID)
			if err == nil {
				view.UserName = user.Name
				view.UserEmail = user.Email
			} else if err != mongo.ErrNoDocuments {
				logger.Warn("failed to enrich session with user details",
					zap.String("sessionID", session.ID), zap.Error(err))
			}
		} else {
			view.UserName = session.GuestName
			view.UserEmail = session.GuestEmail
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		si, sj := views[i], views[j]
		if si.Status != sj.Status {
			return si.Status == models.ChatStatusActive
		}
		return si.LastMessageAt().After(sj.LastMessageAt())
	})

	if s.Cache != nil {
		s.Cache.Set(ctx, views)
	}
	return views, nil
}
