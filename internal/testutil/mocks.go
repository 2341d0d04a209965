package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pratik-mahalle/paddock/internal/domain/billing"
	"github.com/pratik-mahalle/paddock/internal/domain/motorcycle"
	"github.com/pratik-mahalle/paddock/internal/domain/session"
	"github.com/pratik-mahalle/paddock/internal/domain/team"
	"github.com/pratik-mahalle/paddock/internal/domain/user"
	"github.com/pratik-mahalle/paddock/internal/email"
	"github.com/pratik-mahalle/paddock/internal/payments"
	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users          map[int64]*user.User
	NextID         int64
	CreateError    error
	GetError       error
	UpdateError    error
	IncrementError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*user.User),
		NextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) GetByStripeSubscriptionID(ctx context.Context, subID string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if u.StripeSubscriptionID != nil && *u.StripeSubscriptionID == subID {
			return u, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	return nil
}

func (m *MockUserRepository) IncrementUsage(ctx context.Context, id int64) error {
	if m.IncrementError != nil {
		return m.IncrementError
	}
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.UsageCount++
	return nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if u, ok := m.Users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (m *MockUserRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	var changed int64
	for _, u := range m.Users {
		if u.IsAdmin {
			continue
		}
		lapsedTrial := u.SubscriptionStatus == user.StatusTrial &&
			u.TrialEnd != nil && u.TrialEnd.Before(now)
		lapsedSub := u.SubscriptionStatus == user.StatusActive &&
			u.SubscriptionEnd != nil && u.SubscriptionEnd.Before(now)
		if lapsedTrial || lapsedSub {
			u.SubscriptionStatus = user.StatusExpired
			changed++
		}
	}
	return changed, nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockTeamRepository is a mock implementation of team.Repository
type MockTeamRepository struct {
	Teams       map[int64]*team.Team
	Memberships map[int64]*team.Membership
	Invitations map[int64]*team.Invitation
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockTeamRepository() *MockTeamRepository {
	return &MockTeamRepository{
		Teams:       make(map[int64]*team.Team),
		Memberships: make(map[int64]*team.Membership),
		Invitations: make(map[int64]*team.Invitation),
		NextID:      1,
	}
}

func (m *MockTeamRepository) nextID() int64 {
	id := m.NextID
	m.NextID++
	return id
}

func (m *MockTeamRepository) CreateWithOwner(ctx context.Context, t *team.Team) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	t.ID = m.nextID()
	m.Teams[t.ID] = t
	now := time.Now()
	mem := &team.Membership{
		ID:       m.nextID(),
		TeamID:   t.ID,
		UserID:   t.OwnerID,
		Role:     team.RoleOwner,
		Status:   team.MembershipActive,
		JoinedAt: &now,
	}
	m.Memberships[mem.ID] = mem
	return nil
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*team.Team, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	t, ok := m.Teams[id]
	if !ok {
		return nil, errors.NotFound("Team")
	}
	return t, nil
}

func (m *MockTeamRepository) CountActiveOwnedBy(ctx context.Context, ownerID int64) (int, error) {
	count := 0
	for _, t := range m.Teams {
		if t.OwnerID == ownerID && t.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *MockTeamRepository) ListByUser(ctx context.Context, userID int64) ([]*team.Team, error) {
	var teams []*team.Team
	for _, mem := range m.Memberships {
		if mem.UserID == userID && mem.Status == team.MembershipActive {
			if t, ok := m.Teams[mem.TeamID]; ok {
				teams = append(teams, t)
			}
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (m *MockTeamRepository) Update(ctx context.Context, t *team.Team) error {
	if _, ok := m.Teams[t.ID]; !ok {
		return errors.NotFound("Team")
	}
	m.Teams[t.ID] = t
	return nil
}

func (m *MockTeamRepository) GetMembership(ctx context.Context, teamID, userID int64) (*team.Membership, error) {
	for _, mem := range m.Memberships {
		if mem.TeamID == teamID && mem.UserID == userID {
			return mem, nil
		}
	}
	return nil, errors.NotFound("Membership")
}

func (m *MockTeamRepository) ListMembers(ctx context.Context, teamID int64) ([]*team.Membership, error) {
	var members []*team.Membership
	for _, mem := range m.Memberships {
		if mem.TeamID == teamID {
			members = append(members, mem)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (m *MockTeamRepository) DeleteMembership(ctx context.Context, membershipID int64) error {
	if _, ok := m.Memberships[membershipID]; !ok {
		return errors.NotFound("Membership")
	}
	delete(m.Memberships, membershipID)
	return nil
}

func (m *MockTeamRepository) HasActiveMembership(ctx context.Context, teamID, userID int64) (bool, error) {
	for _, mem := range m.Memberships {
		if mem.TeamID == teamID && mem.UserID == userID && mem.Status == team.MembershipActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTeamRepository) CreateInvitation(ctx context.Context, inv *team.Invitation) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	for id, existing := range m.Invitations {
		if existing.TeamID == inv.TeamID &&
			strings.EqualFold(existing.Email, inv.Email) &&
			existing.Status == team.InvitationPending {
			delete(m.Invitations, id)
		}
	}
	inv.ID = m.nextID()
	m.Invitations[inv.ID] = inv
	return nil
}

func (m *MockTeamRepository) GetInvitationByToken(ctx context.Context, token string) (*team.Invitation, error) {
	for _, inv := range m.Invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, errors.NotFound("Invitation")
}

func (m *MockTeamRepository) GetInvitationByID(ctx context.Context, id int64) (*team.Invitation, error) {
	inv, ok := m.Invitations[id]
	if !ok {
		return nil, errors.NotFound("Invitation")
	}
	return inv, nil
}

func (m *MockTeamRepository) ListInvitations(ctx context.Context, teamID int64) ([]*team.Invitation, error) {
	var invitations []*team.Invitation
	for _, inv := range m.Invitations {
		if inv.TeamID == teamID && inv.Status == team.InvitationPending {
			invitations = append(invitations, inv)
		}
	}
	sort.Slice(invitations, func(i, j int) bool { return invitations[i].ID < invitations[j].ID })
	return invitations, nil
}

func (m *MockTeamRepository) DeleteInvitation(ctx context.Context, id int64) error {
	if _, ok := m.Invitations[id]; !ok {
		return errors.NotFound("Invitation")
	}
	delete(m.Invitations, id)
	return nil
}

func (m *MockTeamRepository) AcceptInvitation(ctx context.Context, invitationID int64, userID int64) error {
	inv, ok := m.Invitations[invitationID]
	if !ok || inv.Status != team.InvitationPending {
		return errors.NotFound("Invitation")
	}
	inv.Status = team.InvitationAccepted
	now := time.Now()
	mem := &team.Membership{
		ID:       m.nextID(),
		TeamID:   inv.TeamID,
		UserID:   userID,
		Role:     team.RoleMember,
		Status:   team.MembershipActive,
		JoinedAt: &now,
	}
	m.Memberships[mem.ID] = mem
	return nil
}

// MockMotorcycleRepository is a mock implementation of motorcycle.Repository
type MockMotorcycleRepository struct {
	Motorcycles map[int64]*motorcycle.Motorcycle
	// Memberships maps team id to active member user ids, used by ListVisible
	Memberships map[int64][]int64
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockMotorcycleRepository() *MockMotorcycleRepository {
	return &MockMotorcycleRepository{
		Motorcycles: make(map[int64]*motorcycle.Motorcycle),
		Memberships: make(map[int64][]int64),
		NextID:      1,
	}
}

func (m *MockMotorcycleRepository) Create(ctx context.Context, mc *motorcycle.Motorcycle) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	mc.ID = m.NextID
	m.NextID++
	m.Motorcycles[mc.ID] = mc
	return nil
}

func (m *MockMotorcycleRepository) GetByID(ctx context.Context, id int64) (*motorcycle.Motorcycle, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	mc, ok := m.Motorcycles[id]
	if !ok {
		return nil, errors.NotFound("Motorcycle")
	}
	return mc, nil
}

func (m *MockMotorcycleRepository) ListVisible(ctx context.Context, userID int64) ([]*motorcycle.Motorcycle, error) {
	var visible []*motorcycle.Motorcycle
	for _, mc := range m.Motorcycles {
		if m.isVisible(mc, userID) {
			visible = append(visible, mc)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].ID < visible[j].ID })
	return visible, nil
}

func (m *MockMotorcycleRepository) isVisible(mc *motorcycle.Motorcycle, userID int64) bool {
	if mc.IsUnowned() {
		return true
	}
	if mc.UserID != nil && *mc.UserID == userID {
		return true
	}
	if mc.TeamID != nil {
		for _, member := range m.Memberships[*mc.TeamID] {
			if member == userID {
				return true
			}
		}
	}
	return false
}

func (m *MockMotorcycleRepository) Update(ctx context.Context, mc *motorcycle.Motorcycle) error {
	if _, ok := m.Motorcycles[mc.ID]; !ok {
		return errors.NotFound("Motorcycle")
	}
	m.Motorcycles[mc.ID] = mc
	return nil
}

func (m *MockMotorcycleRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Motorcycles[id]; !ok {
		return errors.NotFound("Motorcycle")
	}
	delete(m.Motorcycles, id)
	return nil
}

// MockSessionRepository is a mock implementation of session.Repository
type MockSessionRepository struct {
	Sessions    map[int64]*session.Session
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[int64]*session.Session),
		NextID:   1,
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	s.ID = m.NextID
	m.NextID++
	m.Sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*session.Session, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	s, ok := m.Sessions[id]
	if !ok {
		return nil, errors.NotFound("Session")
	}
	return s, nil
}

func (m *MockSessionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*session.Session, int64, error) {
	var result []*session.Session
	for _, s := range m.Sessions {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockSessionRepository) ListByMotorcycle(ctx context.Context, motorcycleID int64, limit, offset int) ([]*session.Session, int64, error) {
	var result []*session.Session
	for _, s := range m.Sessions {
		if s.MotorcycleID == motorcycleID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, int64(len(result)), nil
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	if _, ok := m.Sessions[s.ID]; !ok {
		return errors.NotFound("Session")
	}
	m.Sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Sessions[id]; !ok {
		return errors.NotFound("Session")
	}
	delete(m.Sessions, id)
	return nil
}

// MockPlanRepository is a mock implementation of billing.PlanRepository
type MockPlanRepository struct {
	Plans    map[string]*billing.Plan
	GetError error
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		Plans: make(map[string]*billing.Plan),
	}
}

func (m *MockPlanRepository) List(ctx context.Context) ([]*billing.Plan, error) {
	var plans []*billing.Plan
	for _, p := range m.Plans {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].PriceCents < plans[j].PriceCents })
	return plans, nil
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id string) (*billing.Plan, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.Plans[id]
	if !ok {
		return nil, errors.NotFound("Plan")
	}
	return p, nil
}

// MockPaymentsProvider is a mock implementation of payments.Provider
type MockPaymentsProvider struct {
	CheckoutURL    string
	CheckoutParams *payments.CheckoutParams
	CheckoutError  error
	CancelledSubs  []string
	CancelError    error
	WebhookEvent   *billing.Event
	WebhookError   error
}

func NewMockPaymentsProvider() *MockPaymentsProvider {
	return &MockPaymentsProvider{CheckoutURL: "https://checkout.example.com/cs_test"}
}

func (m *MockPaymentsProvider) CreateCheckoutSession(ctx context.Context, params payments.CheckoutParams) (string, error) {
	if m.CheckoutError != nil {
		return "", m.CheckoutError
	}
	m.CheckoutParams = &params
	return m.CheckoutURL, nil
}

func (m *MockPaymentsProvider) CancelAtPeriodEnd(ctx context.Context, subscriptionID string) error {
	if m.CancelError != nil {
		return m.CancelError
	}
	m.CancelledSubs = append(m.CancelledSubs, subscriptionID)
	return nil
}

func (m *MockPaymentsProvider) VerifyWebhook(payload []byte, signature string) (*billing.Event, error) {
	if m.WebhookError != nil {
		return nil, m.WebhookError
	}
	return m.WebhookEvent, nil
}

// MockEmailSender records outbound messages
type MockEmailSender struct {
	Sent      []email.Message
	SendError error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, msg)
	return nil
}
