package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"edupath-backend/internal/mailbox/domain"
	"edupath-backend/pkg/config"
	"edupath-backend/pkg/crypto"

	"golang.org/x/oauth2"
)

// fakeConnRepo is an in-memory ConnectionRepository.
type fakeConnRepo struct {
	mu              sync.Mutex
	conns           map[string]*domain.GmailConnection
	lastSyncUpdates int
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{conns: make(map[string]*domain.GmailConnection)}
}

func (r *fakeConnRepo) FindByStudentID(studentID string) (*domain.GmailConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[studentID]
	if !ok {
		return nil, nil
	}
	copied := *conn
	return &copied, nil
}

func (r *fakeConnRepo) Save(conn *domain.GmailConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *conn
	r.conns[conn.StudentID] = &copied
	return nil
}

func (r *fakeConnRepo) Update(conn *domain.GmailConnection) error {
	return r.Save(conn)
}

func (r *fakeConnRepo) UpdateStatus(studentID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if conn, ok := r.conns[studentID]; ok {
		conn.Status = status
	}
	return nil
}

func (r *fakeConnRepo) UpdateLastSync(studentID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSyncUpdates++
	if conn, ok := r.conns[studentID]; ok {
		conn.LastSyncAt = at
	}
	return nil
}

func (r *fakeConnRepo) Delete(studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, studentID)
	return nil
}

// fakeMsgRepo is an in-memory MessageRepository upserting on the natural key.
type fakeMsgRepo struct {
	mu       sync.Mutex
	messages map[string]*domain.EmailMessage // key: studentID + "/" + gmailMessageID
	upserts  int
}

func newFakeMsgRepo() *fakeMsgRepo {
	return &fakeMsgRepo{messages: make(map[string]*domain.EmailMessage)}
}

func (r *fakeMsgRepo) Upsert(msg *domain.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	key := msg.StudentID + "/" + msg.GmailMessageID
	if existing, ok := r.messages[key]; ok {
		existing.Snippet = msg.Snippet
		existing.Body = msg.Body
		existing.LabelIDs = msg.LabelIDs
		existing.UpdatedAt = msg.UpdatedAt
		return nil
	}
	copied := *msg
	r.messages[key] = &copied
	return nil
}

func (r *fakeMsgRepo) ListByStudent(studentID string, limit, offset int) ([]*domain.EmailMessage, int64, error) {
	all, _ := r.ListAllByStudent(studentID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeMsgRepo) ListAllByStudent(studentID string) ([]*domain.EmailMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.EmailMessage
	for _, msg := range r.messages {
		if msg.StudentID == studentID {
			copied := *msg
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMsgRepo) FindByGmailID(studentID, gmailMessageID string) (*domain.EmailMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg, ok := r.messages[studentID+"/"+gmailMessageID]; ok {
		copied := *msg
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMsgRepo) CountByStudent(studentID string) (int64, error) {
	all, _ := r.ListAllByStudent(studentID)
	return int64(len(all)), nil
}

// fakeGateway hands out fakeClients and counts how often it is asked.
type fakeGateway struct {
	mu          sync.Mutex
	clients     int
	lastToken   string
	labelIDs    map[string][]string               // label -> message ids
	messageData map[string]*domain.MessageData    // id -> message
	sentRaw     []string
	sendID      string
	sendErr     error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		labelIDs:    make(map[string][]string),
		messageData: make(map[string]*domain.MessageData),
		sendID:      "sent-msg-1",
	}
}

func (g *fakeGateway) NewClient(ctx context.Context, accessToken string) (domain.MailClient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients++
	g.lastToken = accessToken
	return &fakeClient{gw: g}, nil
}

func (g *fakeGateway) clientCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clients
}

type fakeClient struct {
	gw *fakeGateway
}

func (c *fakeClient) ListMessageIDs(ctx context.Context, labelID string, maxResults int64) ([]string, error) {
	c.gw.mu.Lock()
	defer c.gw.mu.Unlock()
	return c.gw.labelIDs[labelID], nil
}

func (c *fakeClient) GetMessage(ctx context.Context, messageID string) (*domain.MessageData, error) {
	c.gw.mu.Lock()
	defer c.gw.mu.Unlock()
	data, ok := c.gw.messageData[messageID]
	if !ok {
		return nil, errors.New("message not found")
	}
	copied := *data
	return &copied, nil
}

func (c *fakeClient) SendRaw(ctx context.Context, raw string) (string, error) {
	c.gw.mu.Lock()
	defer c.gw.mu.Unlock()
	if c.gw.sendErr != nil {
		return "", c.gw.sendErr
	}
	c.gw.sentRaw = append(c.gw.sentRaw, raw)
	return c.gw.sendID, nil
}

func (c *fakeClient) Profile(ctx context.Context) (string, error) {
	return "student@gmail.example", nil
}

// countingCollector records metric calls for assertions.
type countingCollector struct {
	mu          sync.Mutex
	synced      int
	syncFails   int
	sent        int
	sendFails   int
	refreshes   int
	refreshErrs int
}

func (c *countingCollector) RecordMessagesSynced(count int) { c.mu.Lock(); c.synced += count; c.mu.Unlock() }
func (c *countingCollector) RecordSyncFailure()             { c.mu.Lock(); c.syncFails++; c.mu.Unlock() }
func (c *countingCollector) RecordMessageSent()             { c.mu.Lock(); c.sent++; c.mu.Unlock() }
func (c *countingCollector) RecordSendFailure()             { c.mu.Lock(); c.sendFails++; c.mu.Unlock() }
func (c *countingCollector) RecordTokenRefresh()            { c.mu.Lock(); c.refreshes++; c.mu.Unlock() }
func (c *countingCollector) RecordTokenRefreshFailure()     { c.mu.Lock(); c.refreshErrs++; c.mu.Unlock() }

// testHarness bundles one fully wired usecase with its fakes.
type testHarness struct {
	uc        *mailboxUsecase
	connRepo  *fakeConnRepo
	msgRepo   *fakeMsgRepo
	gateway   *fakeGateway
	vault     *crypto.Vault
	collector *countingCollector
	now       time.Time

	refreshCalls int
	refreshToken *oauth2.Token
	refreshErr   error
}

func newTestHarness() *testHarness {
	vault, err := crypto.NewVault("unit-test-secret-of-good-length")
	if err != nil {
		panic(err)
	}

	h := &testHarness{
		connRepo:  newFakeConnRepo(),
		msgRepo:   newFakeMsgRepo(),
		gateway:   newFakeGateway(),
		vault:     vault,
		collector: &countingCollector{},
		now:       time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC),
	}

	cfg := &config.Config{
		JWTSecret:      "unit-test-jwt-secret",
		SyncMaxResults: 50,
		SyncFetchRate:  10000,
	}

	oauthCfg := &oauth2.Config{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost:8080/api/mailbox/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example/o/oauth2/auth",
			TokenURL: "https://accounts.example/o/oauth2/token",
		},
	}

	uc := NewMailboxUsecase(h.connRepo, h.msgRepo, h.gateway, vault, cfg, h.collector, oauthCfg).(*mailboxUsecase)
	uc.now = func() time.Time { return h.now }
	uc.refresh = func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
		h.refreshCalls++
		if h.refreshErr != nil {
			return nil, h.refreshErr
		}
		if h.refreshToken != nil {
			return h.refreshToken, nil
		}
		return &oauth2.Token{
			AccessToken: "fresh-access-token",
			Expiry:      h.now.Add(time.Hour),
		}, nil
	}
	h.uc = uc
	return h
}

// seedConnection stores an encrypted connection for the student.
func (h *testHarness) seedConnection(studentID, accessToken, refreshToken, status string, expiry time.Time) {
	conn := &domain.GmailConnection{
		ID:         "conn-" + studentID,
		StudentID:  studentID,
		Email:      "student@gmail.example",
		Status:     status,
		ExpiryDate: expiry,
	}
	if accessToken != "" {
		enc, err := h.vault.Encrypt(accessToken)
		if err != nil {
			panic(err)
		}
		conn.AccessTokenEncrypted = enc
	}
	if refreshToken != "" {
		enc, err := h.vault.Encrypt(refreshToken)
		if err != nil {
			panic(err)
		}
		conn.RefreshTokenEncrypted = enc
	}
	_ = h.connRepo.Save(conn)
}

func (h *testHarness) seedMessage(label, id, subject, snippet, body string) {
	h.gateway.labelIDs[label] = append(h.gateway.labelIDs[label], id)
	if _, ok := h.gateway.messageData[id]; !ok {
		h.gateway.messageData[id] = &domain.MessageData{
			ID:           id,
			ThreadID:     "thread-" + id,
			From:         "Admissions <admissions@uni.example>",
			To:           "student@gmail.example",
			Subject:      subject,
			Snippet:      snippet,
			BodyHTML:     body,
			LabelIDs:     []string{label},
			InternalDate: h.now.Add(-time.Hour),
		}
	}
}
