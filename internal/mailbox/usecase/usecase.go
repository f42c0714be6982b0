package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"edupath-backend/internal/mailbox/domain"
	"edupath-backend/internal/mailbox/repository"
	"edupath-backend/pkg/config"
	"edupath-backend/pkg/crypto"
	"edupath-backend/pkg/metrics"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var (
	// ErrNoValidConnection signals the expected no-credential state: the
	// student never connected Gmail, or disconnected it. Pollers treat it
	// as a soft result, not a failure.
	ErrNoValidConnection = errors.New("no valid connection")

	// ErrRefreshFailed wraps a failed refresh-token grant. The connection
	// should be marked expired so the UI can prompt re-authorization.
	ErrRefreshFailed = errors.New("token refresh failed")
)

// SyncResult reports how many messages a sync run upserted.
type SyncResult struct {
	Synced int `json:"synced"`
}

// MailboxUsecase drives the per-student delegated Gmail subsystem.
type MailboxUsecase interface {
	ConnectURL(studentID string) (string, error)
	HandleCallback(ctx context.Context, code, state string) (*domain.GmailConnection, error)
	Disconnect(studentID string) error
	Status(studentID string) (*domain.GmailConnection, error)

	// GetClient returns nil, nil when the student has no usable connection.
	GetClient(ctx context.Context, studentID string) (domain.MailClient, error)
	Sync(ctx context.Context, studentID string) (*SyncResult, error)
	Send(ctx context.Context, studentID, to, subject, htmlBody string, opts domain.SendOptions) (string, error)

	ListMessages(studentID, query string, limit, offset int) ([]*domain.EmailMessage, int64, error)
	GetMessage(studentID, gmailMessageID string) (*domain.EmailMessage, error)
}

// refreshFunc performs a refresh-token grant. Swappable in tests.
type refreshFunc func(ctx context.Context, refreshToken string) (*oauth2.Token, error)

// mailboxUsecase implements MailboxUsecase
type mailboxUsecase struct {
	connRepo  repository.ConnectionRepository
	msgRepo   repository.MessageRepository
	gateway   domain.MailGateway
	vault     *crypto.Vault
	config    *config.Config
	collector metrics.Collector
	oauthCfg  *oauth2.Config
	sanitizer *bluemonday.Policy
	limiter   *rate.Limiter
	refresh   refreshFunc
	now       func() time.Time

	// One lock per student serializes refresh-and-persist so concurrent
	// requests cannot both write a fresh access token.
	locksMu      sync.Mutex
	refreshLocks map[string]*sync.Mutex
}

func NewMailboxUsecase(
	connRepo repository.ConnectionRepository,
	msgRepo repository.MessageRepository,
	gateway domain.MailGateway,
	vault *crypto.Vault,
	cfg *config.Config,
	collector metrics.Collector,
	oauthCfg *oauth2.Config,
) MailboxUsecase {
	u := &mailboxUsecase{
		connRepo:     connRepo,
		msgRepo:      msgRepo,
		gateway:      gateway,
		vault:        vault,
		config:       cfg,
		collector:    collector,
		oauthCfg:     oauthCfg,
		sanitizer:    bluemonday.UGCPolicy(),
		limiter:      rate.NewLimiter(rate.Limit(cfg.SyncFetchRate), 1),
		now:          time.Now,
		refreshLocks: make(map[string]*sync.Mutex),
	}
	u.refresh = func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
		source := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
		return source.Token()
	}
	return u
}

func (u *mailboxUsecase) studentLock(studentID string) *sync.Mutex {
	u.locksMu.Lock()
	defer u.locksMu.Unlock()
	lock, ok := u.refreshLocks[studentID]
	if !ok {
		lock = &sync.Mutex{}
		u.refreshLocks[studentID] = lock
	}
	return lock
}
