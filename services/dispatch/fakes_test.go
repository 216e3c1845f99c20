package dispatch

import (
	"context"
	"sync"
	"time"

	catalogRepo "servitech/database/repository/catalog"
	paymentRepo "servitech/database/repository/payment"
	requestRepo "servitech/database/repository/request"
	"servitech/models"
)

// memStore is an in-memory stand-in for the Mongo repositories. All methods
// take the store lock, so the conditional writes (Claim, Settle, the cancels)
// are atomic the same way the real transactions are.
type memStore struct {
	mu         sync.Mutex
	requests   map[string]*models.ServiceRequest
	order      []string
	events     map[string][]models.ProgressEvent
	payments   map[string]*models.Payment
	reports    []models.Report
	capacities map[string]int
	types      map[string]models.ServiceType

	settleErr error
}

func newMemStore() *memStore {
	return &memStore{
		requests:   make(map[string]*models.ServiceRequest),
		events:     make(map[string][]models.ProgressEvent),
		payments:   make(map[string]*models.Payment),
		capacities: make(map[string]int),
		types:      make(map[string]models.ServiceType),
	}
}

func (s *memStore) addServiceType(name string, basePrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[name] = models.ServiceType{ID: name, Name: name, BasePrice: basePrice}
}

func (s *memStore) eventCount(requestID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events[requestID])
}

func (s *memStore) request(id string) models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.requests[id]
}

func (s *memStore) countAssigned(technicianID string) int {
	n := 0
	for _, req := range s.requests {
		if req.TechnicianID == technicianID && req.Status == models.StatusAssigned {
			n++
		}
	}
	return n
}

// fakeRequests implements requestRepo.RequestRepository.
type fakeRequests struct{ *memStore }

func (f fakeRequests) Create(ctx context.Context, req *models.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *req
	cp.CreatedAt = time.Now()
	f.requests[req.ID] = &cp
	f.order = append(f.order, req.ID)
	return nil
}

func (f fakeRequests) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (f fakeRequests) ListPending(ctx context.Context) ([]models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServiceRequest
	for _, id := range f.order {
		if f.requests[id].Status == models.StatusPending {
			out = append(out, *f.requests[id])
		}
	}
	return out, nil
}

func (f fakeRequests) ListByTechnician(ctx context.Context, technicianID, status string) ([]models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServiceRequest
	for _, id := range f.order {
		req := f.requests[id]
		if req.TechnicianID == technicianID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f fakeRequests) ListByCustomer(ctx context.Context, customerID, status string) ([]models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServiceRequest
	for _, id := range f.order {
		req := f.requests[id]
		if req.CustomerID == customerID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f fakeRequests) LatestActiveByCustomer(ctx context.Context, customerID string) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.order) - 1; i >= 0; i-- {
		req := f.requests[f.order[i]]
		if req.CustomerID == customerID && req.Status != models.StatusCancelled {
			cp := *req
			return &cp, nil
		}
	}
	return nil, requestRepo.ErrNotFound
}

func (f fakeRequests) HasPendingForCustomer(ctx context.Context, customerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.CustomerID == customerID && req.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeRequests) Claim(ctx context.Context, requestID, technicianID, code string, maxActive int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countAssigned(technicianID) >= maxActive {
		return requestRepo.ErrCapacityReached
	}
	req, ok := f.requests[requestID]
	if !ok || req.Status != models.StatusPending {
		return requestRepo.ErrNotPending
	}
	req.Status = models.StatusAssigned
	req.TechnicianID = technicianID
	req.ConfirmationCode = code
	return nil
}

func (f fakeRequests) CancelByTechnician(ctx context.Context, requestID, technicianID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok || req.Status != models.StatusAssigned || req.TechnicianID != technicianID {
		return requestRepo.ErrStatusConflict
	}
	req.Status = models.StatusCancelled
	req.TechnicianID = ""
	req.ConfirmationCode = ""
	return nil
}

func (f fakeRequests) CancelByCustomer(ctx context.Context, requestID, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok || req.CustomerID != customerID ||
		(req.Status != models.StatusPending && req.Status != models.StatusAssigned) {
		return requestRepo.ErrStatusConflict
	}
	req.Status = models.StatusCancelled
	req.TechnicianID = ""
	req.ConfirmationCode = ""
	return nil
}

func (f fakeRequests) Capacity(ctx context.Context, technicianID string, defaultMax int) (*models.TechnicianCapacity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.capacities[technicianID]; !ok {
		f.capacities[technicianID] = defaultMax
	}
	return &models.TechnicianCapacity{
		TechnicianID:  technicianID,
		MaxConcurrent: f.capacities[technicianID],
	}, nil
}

func (f fakeRequests) CountActiveByTechnician(ctx context.Context, technicianID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(f.countAssigned(technicianID)), nil
}

// fakeEvents implements progressRepo.ProgressRepository.
type fakeEvents struct{ *memStore }

func (f fakeEvents) Append(ctx context.Context, event *models.ProgressEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *event
	cp.Timestamp = time.Now()
	f.events[event.RequestID] = append(f.events[event.RequestID], cp)
	return nil
}

func (f fakeEvents) Latest(ctx context.Context, requestID string) (*models.ProgressEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	evs := f.events[requestID]
	if len(evs) == 0 {
		return nil, nil
	}
	cp := evs[len(evs)-1]
	return &cp, nil
}

func (f fakeEvents) ListByRequest(ctx context.Context, requestID string) ([]models.ProgressEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProgressEvent(nil), f.events[requestID]...), nil
}

func (f fakeEvents) CountByRequest(ctx context.Context, requestID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.events[requestID])), nil
}

// fakePayments implements paymentRepo.PaymentRepository with the same
// all-or-nothing semantics as the settlement transaction.
type fakePayments struct{ *memStore }

func (f fakePayments) Settle(ctx context.Context, payment *models.Payment, event *models.ProgressEvent, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settleErr != nil {
		return f.settleErr
	}
	req, ok := f.requests[payment.RequestID]
	if !ok || req.Status != models.StatusAssigned || req.CustomerID != notif.UserID {
		return paymentRepo.ErrRequestConflict
	}
	req.Status = models.StatusCompleted
	pay := *payment
	pay.Status = models.PaymentCompleted
	f.payments[payment.RequestID] = &pay
	ev := *event
	ev.Timestamp = time.Now()
	f.events[event.RequestID] = append(f.events[event.RequestID], ev)
	return nil
}

func (f fakePayments) GetByRequestID(ctx context.Context, requestID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pay, ok := f.payments[requestID]
	if !ok {
		return nil, nil
	}
	cp := *pay
	return &cp, nil
}

func (f fakePayments) ListCompletedByTechnician(ctx context.Context, technicianID string) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, id := range f.order {
		req := f.requests[id]
		if req.TechnicianID == technicianID && req.Status == models.StatusCompleted {
			if pay, ok := f.payments[id]; ok {
				out = append(out, *pay)
			}
		}
	}
	return out, nil
}

// fakeCatalog implements catalogRepo.CatalogRepository.
type fakeCatalog struct{ *memStore }

func (f fakeCatalog) List(ctx context.Context) ([]models.ServiceType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServiceType
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f fakeCatalog) GetByName(ctx context.Context, name string) (*models.ServiceType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.types[name]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return &t, nil
}

// fakeReports implements reportRepo.ReportRepository.
type fakeReports struct{ *memStore }

func (f fakeReports) Create(ctx context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, *report)
	return nil
}

func (f fakeReports) ListByTechnician(ctx context.Context, technicianID string) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Report
	for _, r := range f.reports {
		if r.TechnicianID == technicianID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeNotifier records emitted notifications and can be made to fail.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	users    []string
	err      error
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.users = append(n.users, userID)
	n.messages = append(n.messages, message)
	return nil
}

func (n *fakeNotifier) last() (string, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return "", ""
	}
	return n.users[len(n.users)-1], n.messages[len(n.messages)-1]
}

func newTestService() (*DefaultDispatchService, *memStore, *fakeNotifier) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	svc := &DefaultDispatchService{
		Requests:        fakeRequests{store},
		Events:          fakeEvents{store},
		Payments:        fakePayments{store},
		Catalog:         fakeCatalog{store},
		Reports:         fakeReports{store},
		Notifier:        notifier,
		DefaultCapacity: 3,
	}
	return svc, store, notifier
}

// seedAssigned creates a claimed request and returns it with its code.
func seedAssigned(svc *DefaultDispatchService, store *memStore, customerID, technicianID string) (models.ServiceRequest, string) {
	store.addServiceType("plomeria", 500)
	req, err := svc.CreateRequest(context.Background(), customerID, CreateRequestInput{
		ServiceType: "plomeria",
		Address:     "Av. Siempre Viva 742",
		Access:      models.AccessEasy,
	})
	if err != nil {
		panic(err)
	}
	assignment, err := svc.Claim(context.Background(), req.ID, technicianID)
	if err != nil {
		panic(err)
	}
	return store.request(req.ID), assignment.ConfirmationCode
}
