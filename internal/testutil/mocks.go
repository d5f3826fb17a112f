package testutil

import (
	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes map[int32]*domain.Income
	nextID  int32
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{
		Incomes: make(map[int32]*domain.Income),
		nextID:  1,
	}
}

// Create creates a new income record
func (m *MockIncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	income.ID = m.nextID
	m.nextID++
	m.Incomes[income.ID] = income
	return income, nil
}

// GetAllByUser retrieves all income records for a user
func (m *MockIncomeRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Income, error) {
	result := []*domain.Income{}
	for _, income := range m.Incomes {
		if income.UserID == userID {
			result = append(result, income)
		}
	}
	return result, nil
}

// Delete removes an income record owned by the user
func (m *MockIncomeRepository) Delete(userID uuid.UUID, id int32) error {
	income, ok := m.Incomes[id]
	if !ok || income.UserID != userID {
		return domain.ErrIncomeNotFound
	}
	delete(m.Incomes, id)
	return nil
}

// MockHomeExpenseRepository is a mock implementation of domain.HomeExpenseRepository
type MockHomeExpenseRepository struct {
	Expenses map[int32]*domain.HomeExpense
	nextID   int32
}

// NewMockHomeExpenseRepository creates a new MockHomeExpenseRepository
func NewMockHomeExpenseRepository() *MockHomeExpenseRepository {
	return &MockHomeExpenseRepository{
		Expenses: make(map[int32]*domain.HomeExpense),
		nextID:   1,
	}
}

// Create creates a new home expense record
func (m *MockHomeExpenseRepository) Create(expense *domain.HomeExpense) (*domain.HomeExpense, error) {
	expense.ID = m.nextID
	m.nextID++
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves a home expense owned by the user
func (m *MockHomeExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.HomeExpense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

// GetAllByUser retrieves all home expenses for a user
func (m *MockHomeExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.HomeExpense, error) {
	result := []*domain.HomeExpense{}
	for _, expense := range m.Expenses {
		if expense.UserID == userID {
			result = append(result, expense)
		}
	}
	return result, nil
}

// UpdateReceiptPath sets or clears the stored receipt path
func (m *MockHomeExpenseRepository) UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	expense.ReceiptPath = path
	return nil
}

// Delete removes a home expense owned by the user
func (m *MockHomeExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockFuelExpenseRepository is a mock implementation of domain.FuelExpenseRepository
type MockFuelExpenseRepository struct {
	Expenses map[int32]*domain.FuelExpense
	nextID   int32
}

// NewMockFuelExpenseRepository creates a new MockFuelExpenseRepository
func NewMockFuelExpenseRepository() *MockFuelExpenseRepository {
	return &MockFuelExpenseRepository{
		Expenses: make(map[int32]*domain.FuelExpense),
		nextID:   1,
	}
}

// Create creates a new fuel expense record
func (m *MockFuelExpenseRepository) Create(expense *domain.FuelExpense) (*domain.FuelExpense, error) {
	expense.ID = m.nextID
	m.nextID++
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves a fuel expense owned by the user
func (m *MockFuelExpenseRepository) GetByID(userID uuid.UUID, id int32) (*domain.FuelExpense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

// GetAllByUser retrieves all fuel expenses for a user
func (m *MockFuelExpenseRepository) GetAllByUser(userID uuid.UUID) ([]*domain.FuelExpense, error) {
	result := []*domain.FuelExpense{}
	for _, expense := range m.Expenses {
		if expense.UserID == userID {
			result = append(result, expense)
		}
	}
	return result, nil
}

// UpdateReceiptPath sets or clears the stored receipt path
func (m *MockFuelExpenseRepository) UpdateReceiptPath(userID uuid.UUID, id int32, path *string) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	expense.ReceiptPath = path
	return nil
}

// Delete removes a fuel expense owned by the user
func (m *MockFuelExpenseRepository) Delete(userID uuid.UUID, id int32) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockEmiRepository is a mock implementation of domain.EmiRepository
type MockEmiRepository struct {
	Emis   map[int32]*domain.Emi
	nextID int32
}

// NewMockEmiRepository creates a new MockEmiRepository
func NewMockEmiRepository() *MockEmiRepository {
	return &MockEmiRepository{
		Emis:   make(map[int32]*domain.Emi),
		nextID: 1,
	}
}

// Create creates a new EMI record
func (m *MockEmiRepository) Create(emi *domain.Emi) (*domain.Emi, error) {
	emi.ID = m.nextID
	m.nextID++
	if emi.PaidMonths == nil {
		emi.PaidMonths = []string{}
	}
	m.Emis[emi.ID] = emi
	return emi, nil
}

// GetByID retrieves an EMI owned by the user
func (m *MockEmiRepository) GetByID(userID uuid.UUID, id int32) (*domain.Emi, error) {
	emi, ok := m.Emis[id]
	if !ok || emi.UserID != userID {
		return nil, domain.ErrEmiNotFound
	}
	return emi, nil
}

// GetAllByUser retrieves all EMIs for a user
func (m *MockEmiRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Emi, error) {
	result := []*domain.Emi{}
	for _, emi := range m.Emis {
		if emi.UserID == userID {
			result = append(result, emi)
		}
	}
	return result, nil
}

// AddPaidMonth marks a month token as paid, ignoring duplicates
func (m *MockEmiRepository) AddPaidMonth(userID uuid.UUID, id int32, token string) (*domain.Emi, error) {
	emi, ok := m.Emis[id]
	if !ok || emi.UserID != userID {
		return nil, domain.ErrEmiNotFound
	}
	for _, existing := range emi.PaidMonths {
		if existing == token {
			return emi, nil
		}
	}
	emi.PaidMonths = append(emi.PaidMonths, token)
	return emi, nil
}

// RemovePaidMonth unmarks a month token, ignoring absent tokens
func (m *MockEmiRepository) RemovePaidMonth(userID uuid.UUID, id int32, token string) (*domain.Emi, error) {
	emi, ok := m.Emis[id]
	if !ok || emi.UserID != userID {
		return nil, domain.ErrEmiNotFound
	}
	kept := emi.PaidMonths[:0]
	for _, existing := range emi.PaidMonths {
		if existing != token {
			kept = append(kept, existing)
		}
	}
	emi.PaidMonths = kept
	return emi, nil
}

// Delete removes an EMI owned by the user
func (m *MockEmiRepository) Delete(userID uuid.UUID, id int32) error {
	emi, ok := m.Emis[id]
	if !ok || emi.UserID != userID {
		return domain.ErrEmiNotFound
	}
	delete(m.Emis, id)
	return nil
}
