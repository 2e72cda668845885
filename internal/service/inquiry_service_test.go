package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rivieracrest/villa-bookings/internal/domain"
	"github.com/rivieracrest/villa-bookings/internal/service"
)

// ---------- Mocks ----------

type sentMail struct {
	kind string // "alert" or "confirmation"
	inq  *domain.Inquiry
	prop *domain.Property
}

type mockMailer struct {
	sent    chan sentMail
	sendErr error
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan sentMail, 4)}
}

func (m *mockMailer) SendInquiryAlert(inq *domain.Inquiry, prop *domain.Property) error {
	m.sent <- sentMail{kind: "alert", inq: inq, prop: prop}
	return m.sendErr
}

func (m *mockMailer) SendInquiryConfirmation(inq *domain.Inquiry, prop *domain.Property) error {
	m.sent <- sentMail{kind: "confirmation", inq: inq, prop: prop}
	return m.sendErr
}

func (m *mockMailer) waitFor(t *testing.T, n int) []sentMail {
	t.Helper()
	var got []sentMail
	for len(got) < n {
		select {
		case mail := <-m.sent:
			got = append(got, mail)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d emails, got %d", n, len(got))
		}
	}
	return got
}

type mockInquiryRepo struct {
	inquiries map[int64]*domain.Inquiry
	nextID    int64
	createErr error
}

func newMockInquiryRepo() *mockInquiryRepo {
	return &mockInquiryRepo{inquiries: make(map[int64]*domain.Inquiry), nextID: 1}
}

func (m *mockInquiryRepo) Create(_ context.Context, in *domain.Inquiry) (*domain.Inquiry, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	out := *in
	out.ID = m.nextID
	out.Status = domain.InquiryNew
	out.CreatedAt = time.Now()
	m.nextID++
	m.inquiries[out.ID] = &out
	return &out, nil
}

func (m *mockInquiryRepo) GetByID(_ context.Context, id int64) (*domain.Inquiry, error) {
	return m.inquiries[id], nil
}

func (m *mockInquiryRepo) List(_ context.Context, status *domain.InquiryStatus, limit, offset int) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	for _, inq := range m.inquiries {
		if status == nil || inq.Status == *status {
			out = append(out, *inq)
		}
	}
	return out, nil
}

func (m *mockInquiryRepo) UpdateStatus(_ context.Context, id int64, status domain.InquiryStatus) (*domain.Inquiry, error) {
	inq, ok := m.inquiries[id]
	if !ok {
		return nil, nil
	}
	inq.Status = status
	return inq, nil
}

type mockPropertyRepo struct {
	bySlug map[string]*domain.Property
	getErr error
}

func newMockPropertyRepo() *mockPropertyRepo {
	return &mockPropertyRepo{bySlug: make(map[string]*domain.Property)}
}

func (m *mockPropertyRepo) List(_ context.Context, _ *domain.PropertyKind, _ bool) ([]domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) GetBySlug(_ context.Context, slug string) (*domain.Property, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bySlug[slug], nil
}

func (m *mockPropertyRepo) GetByID(_ context.Context, _ int64) (*domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) Create(_ context.Context, _ *domain.PropertyUpsert) (*domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) Update(_ context.Context, _ int64, _ *domain.PropertyUpsert) (*domain.Property, error) {
	return nil, nil
}

func (m *mockPropertyRepo) Delete(_ context.Context, _ int64) (bool, error) { return false, nil }

type mockCustomerRepo struct {
	customers []*domain.Customer
	createErr error
}

func (m *mockCustomerRepo) List(_ context.Context) ([]domain.Customer, error) { return nil, nil }

func (m *mockCustomerRepo) GetByID(_ context.Context, _ int64) (*domain.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) Create(_ context.Context, in *domain.CustomerUpsert) (*domain.Customer, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	c := &domain.Customer{
		ID:     int64(len(m.customers) + 1),
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Notes:  in.Notes,
		Source: in.Source,
		Status: in.Status,
	}
	m.customers = append(m.customers, c)
	return c, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, _ int64, _ *domain.CustomerUpsert) (*domain.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, _ int64) (bool, error) { return false, nil }

// ---------- Helpers ----------

func validRequest() *domain.InquiryCreateReq {
	in := domain.NewDate(2025, time.August, 1)
	out := domain.NewDate(2025, time.August, 8)
	guests := 4
	return &domain.InquiryCreateReq{
		PropertySlug: "villa-azura",
		CheckIn:      &in,
		CheckOut:     &out,
		Guests:       &guests,
		FullName:     "Jane Doe",
		Email:        "  Jane@Example.COM ",
		Phone:        "+1 555 123 4567",
		Message:      "Is the pool heated?",
		Locale:       "de",
	}
}

func setup() (service.InquiryService, *mockInquiryRepo, *mockPropertyRepo, *mockCustomerRepo, *mockMailer) {
	inquiries := newMockInquiryRepo()
	properties := newMockPropertyRepo()
	properties.bySlug["villa-azura"] = &domain.Property{
		ID: 7, Slug: "villa-azura", Kind: domain.KindVilla, NameEN: "Villa Azura",
	}
	customers := &mockCustomerRepo{}
	mail := newMockMailer()
	svc := service.NewInquiryService(inquiries, properties, customers, mail)
	return svc, inquiries, properties, customers, mail
}

// ---------- Tests ----------

func TestCreate_Success(t *testing.T) {
	svc, inquiries, _, _, mail := setup()

	created, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if created.Status != domain.InquiryNew {
		t.Errorf("status = %q, want new", created.Status)
	}
	if created.Email != "jane@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.PropertyID == nil || *created.PropertyID != 7 {
		t.Errorf("property not resolved: %v", created.PropertyID)
	}
	if created.Locale != domain.LocaleDE {
		t.Errorf("locale = %q, want de", created.Locale)
	}
	if len(inquiries.inquiries) != 1 {
		t.Errorf("expected 1 stored inquiry, got %d", len(inquiries.inquiries))
	}

	sent := mail.waitFor(t, 2)
	kinds := map[string]bool{}
	for _, mSent := range sent {
		kinds[mSent.kind] = true
		if mSent.prop == nil || mSent.prop.Slug != "villa-azura" {
			t.Errorf("%s email missing property context", mSent.kind)
		}
	}
	if !kinds["alert"] || !kinds["confirmation"] {
		t.Errorf("expected both alert and confirmation, got %v", kinds)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, inquiries, _, _, mail := setup()

	req := validRequest()
	req.Email = "not-an-email"

	_, err := svc.Create(context.Background(), req)
	var fieldErrs domain.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if _, ok := fieldErrs["email"]; !ok {
		t.Errorf("expected email field error, got %v", fieldErrs)
	}
	if len(inquiries.inquiries) != 0 {
		t.Error("invalid submission must not be stored")
	}
	select {
	case mSent := <-mail.sent:
		t.Errorf("no email expected, got %s", mSent.kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreate_UnknownPropertySlug(t *testing.T) {
	svc, _, _, _, mail := setup()

	req := validRequest()
	req.PropertySlug = "no-such-villa"

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PropertyID != nil {
		t.Errorf("unknown slug must leave property unset, got %v", *created.PropertyID)
	}

	// Emails still go out, just without the property block.
	for _, mSent := range mail.waitFor(t, 2) {
		if mSent.prop != nil {
			t.Errorf("%s email should carry no property", mSent.kind)
		}
	}
}

func TestCreate_PropertyLookupErrorIsNonFatal(t *testing.T) {
	svc, _, properties, _, _ := setup()
	properties.getErr = errors.New("connection refused")

	created, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("lookup failure must not block the lead: %v", err)
	}
	if created.PropertyID != nil {
		t.Error("failed lookup must leave property unset")
	}
}

func TestCreate_MailerErrorDoesNotFailCreate(t *testing.T) {
	svc, _, _, _, mail := setup()
	mail.sendErr = errors.New("smtp: 550")

	created, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || created.ID == 0 {
		t.Fatal("inquiry must be stored despite mailer failure")
	}
	mail.waitFor(t, 2)
}

func TestCreate_RepoError(t *testing.T) {
	svc, inquiries, _, _, _ := setup()
	inquiries.createErr = errors.New("database is down")

	_, err := svc.Create(context.Background(), validRequest())
	if err == nil || !strings.Contains(err.Error(), "failed to store inquiry") {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestConvertToCustomer(t *testing.T) {
	svc, inquiries, _, customers, mail := setup()

	created, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mail.waitFor(t, 2)

	customer, err := svc.ConvertToCustomer(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ConvertToCustomer: %v", err)
	}
	if customer.Name != "Jane Doe" || customer.Email != "jane@example.com" {
		t.Errorf("contact details not copied: %+v", customer)
	}
	if customer.Source != "inquiry" {
		t.Errorf("source = %q, want inquiry", customer.Source)
	}
	if customer.Status != domain.CustomerActive {
		t.Errorf("status = %q, want active", customer.Status)
	}
	if !strings.Contains(customer.Notes, "2025-08-01") {
		t.Errorf("requested dates missing from notes: %q", customer.Notes)
	}

	if inquiries.inquiries[created.ID].Status != domain.InquiryBooked {
		t.Errorf("inquiry status = %q, want booked", inquiries.inquiries[created.ID].Status)
	}
	if len(customers.customers) != 1 {
		t.Errorf("expected 1 customer, got %d", len(customers.customers))
	}
}

func TestConvertToCustomer_UnknownInquiry(t *testing.T) {
	svc, _, _, _, _ := setup()

	customer, err := svc.ConvertToCustomer(context.Background(), 999)
	if err != nil {
		t.Fatalf("ConvertToCustomer: %v", err)
	}
	if customer != nil {
		t.Errorf("expected nil for unknown inquiry, got %+v", customer)
	}
}
