package http

import (
	"context"
	"errors"
	"sync"

	"account/internal/domain"
	"account/internal/events"
	"account/internal/service"

	"github.com/google/uuid"
)

// callLog counts collaborator invocations across all stubs.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *callLog) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, got := range c.calls {
		if got == name {
			n++
		}
	}
	return n
}

func (c *callLog) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type stubUsers struct {
	log       *callLog
	users     map[string]*domain.User
	passwords map[string]string
	tokens    map[string]string
	failWith  error
}

func newStubUsers(log *callLog) *stubUsers {
	return &stubUsers{log: log, users: map[string]*domain.User{}, passwords: map[string]string{}, tokens: map[string]string{}}
}

func (s *stubUsers) seed(email, password string, activated bool) *domain.User {
	u := &domain.User{ID: uuid.New(), Email: email, APIKey: "key-" + email, IsActivated: activated}
	s.users[email] = u
	s.passwords[email] = password
	return u
}

func (s *stubUsers) Register(_ context.Context, email, password string) (*domain.User, error) {
	s.log.add("users.Register")
	if s.failWith != nil {
		return nil, s.failWith
	}
	if _, ok := s.users[email]; ok {
		return nil, domain.ErrEmailExists
	}
	return s.seed(email, password, false), nil
}

func (s *stubUsers) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	s.log.add("users.Authenticate")
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.users[email]
	if !ok || s.passwords[email] != password {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *stubUsers) SetPassword(_ context.Context, email, newPassword string) error {
	s.log.add("users.SetPassword")
	if _, ok := s.users[email]; !ok {
		return domain.ErrUserNotFound
	}
	s.passwords[email] = newPassword
	return nil
}

func (s *stubUsers) ResetToken(_ context.Context, email, token string) (*domain.User, error) {
	s.log.add("users.ResetToken")
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	s.tokens[email] = token
	return u, nil
}

func (s *stubUsers) Activate(_ context.Context, email, token string) (*domain.User, string, error) {
	s.log.add("users.Activate")
	if s.failWith != nil {
		return nil, "", s.failWith
	}
	u, ok := s.users[email]
	if !ok || s.tokens[email] != token {
		return nil, "Activation link is invalid!", nil
	}
	delete(s.tokens, email)
	u.IsActivated = true
	return u, "", nil
}

func (s *stubUsers) ResetPassword(_ context.Context, email, newPassword, token string) (*domain.User, error) {
	s.log.add("users.ResetPassword")
	u, ok := s.users[email]
	if !ok || s.tokens[email] != token {
		return nil, domain.ErrTokenMismatch
	}
	delete(s.tokens, email)
	s.passwords[email] = newPassword
	return u, nil
}

type stubDevices struct {
	log     *callLog
	devices map[string]*domain.Device
	listErr error
	saveErr error
}

func newStubDevices(log *callLog) *stubDevices {
	return &stubDevices{log: log, devices: map[string]*domain.Device{}}
}

func (s *stubDevices) put(apikey, deviceID, name string) *domain.Device {
	d := &domain.Device{ID: uuid.New(), DeviceID: deviceID, APIKey: apikey, Name: name, Type: deviceID[:2], Traits: []string{}}
	s.devices[deviceID] = d
	return d
}

func (s *stubDevices) ListByAPIKey(_ context.Context, apikey string) ([]*domain.Device, error) {
	s.log.add("devices.ListByAPIKey")
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.Device
	for _, d := range s.devices {
		if d.APIKey == apikey {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDevices) Get(_ context.Context, apikey, deviceID string) (*domain.Device, error) {
	s.log.add("devices.Get")
	d, ok := s.devices[deviceID]
	if !ok || d.APIKey != apikey {
		return nil, domain.ErrDeviceNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *stubDevices) FindByDeviceID(_ context.Context, deviceID string) (*domain.Device, error) {
	s.log.add("devices.FindByDeviceID")
	d, ok := s.devices[deviceID]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *stubDevices) Create(_ context.Context, d *domain.Device) error {
	s.log.add("devices.Create")
	if d.DeviceID == "" {
		d.DeviceID = "GEN0000001"
	}
	if _, ok := s.devices[d.DeviceID]; ok {
		return domain.ErrDeviceExists
	}
	d.ID = uuid.New()
	cp := *d
	s.devices[d.DeviceID] = &cp
	return nil
}

func (s *stubDevices) Save(_ context.Context, d *domain.Device) error {
	s.log.add("devices.Save")
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *d
	s.devices[d.DeviceID] = &cp
	return nil
}

func (s *stubDevices) Remove(_ context.Context, d *domain.Device) error {
	s.log.add("devices.Remove")
	delete(s.devices, d.DeviceID)
	return nil
}

func (s *stubDevices) DefaultTraitsForType(deviceType string) []string {
	if deviceType == "LT" {
		return []string{"action.devices.traits.OnOff"}
	}
	return []string{}
}

type stubFactory struct {
	log   *callLog
	known map[string]string // deviceid -> apikey
	err   error
}

func (s *stubFactory) Exists(_ context.Context, apikey, deviceID string) (bool, error) {
	s.log.add("factory.Exists")
	if s.err != nil {
		return false, s.err
	}
	return s.known[deviceID] == apikey, nil
}

func (s *stubFactory) Add(_ context.Context, apikey, deviceID string) error {
	s.known[deviceID] = apikey
	return nil
}

type sentMail struct {
	kind string
	to   string
	link string
}

type stubEmails struct {
	log  *callLog
	sent []sentMail
	err  error
}

func (s *stubEmails) SendActivation(_ context.Context, to, link string) error {
	s.log.add("emails.SendActivation")
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{kind: "activation", to: to, link: link})
	return nil
}

func (s *stubEmails) SendPasswordReset(_ context.Context, to, link string) error {
	s.log.add("emails.SendPasswordReset")
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{kind: "reset", to: to, link: link})
	return nil
}

type stubCaptcha struct {
	log *callLog
	err error
}

func (s *stubCaptcha) Verify(context.Context, string) error {
	s.log.add("captcha.Verify")
	return s.err
}

type stubEvents struct {
	published []events.DeviceEvent
}

func (s *stubEvents) PublishDevice(_ context.Context, ev events.DeviceEvent) error {
	s.published = append(s.published, ev)
	return nil
}

var (
	_ service.UserService     = (*stubUsers)(nil)
	_ service.DeviceService   = (*stubDevices)(nil)
	_ service.FactoryCatalog  = (*stubFactory)(nil)
	_ service.EmailService    = (*stubEmails)(nil)
	_ service.CaptchaVerifier = (*stubCaptcha)(nil)
	_ service.EventPublisher  = (*stubEvents)(nil)
)

var errBoom = errors.New("boom")
