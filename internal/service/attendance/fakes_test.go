package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
)

// fakeStore is an in-memory attendance.Repository. It can inject per-employee
// write failures and tracks the peak number of concurrent writes so tests can
// assert the coordinator's dispatch bounds and the per-key serialization.
type fakeStore struct {
	mu      sync.Mutex
	byID    map[string]attendance.Record
	byKey   map[attendance.Key]string
	failFor map[string]error // employeeID -> error injected on writes

	writeDelay time.Duration

	activeWrites     int
	maxActiveWrites  int
	activeKeyWrites  map[attendance.Key]int
	keyWriteOverlaps int
	createCalls      int
	updateCalls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:            make(map[string]attendance.Record),
		byKey:           make(map[attendance.Key]string),
		failFor:         make(map[string]error),
		activeKeyWrites: make(map[attendance.Key]int),
	}
}

func (f *fakeStore) beginWrite(key attendance.Key) {
	f.mu.Lock()
	f.activeWrites++
	if f.activeWrites > f.maxActiveWrites {
		f.maxActiveWrites = f.activeWrites
	}
	f.activeKeyWrites[key]++
	if f.activeKeyWrites[key] > 1 {
		f.keyWriteOverlaps++
	}
	f.mu.Unlock()

	if f.writeDelay > 0 {
		time.Sleep(f.writeDelay)
	}
}

func (f *fakeStore) endWrite(key attendance.Key) {
	f.mu.Lock()
	f.activeWrites--
	f.activeKeyWrites[key]--
	f.mu.Unlock()
}

func (f *fakeStore) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	key := record.Key()
	f.beginWrite(key)
	defer f.endWrite(key)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++
	if err, ok := f.failFor[record.EmployeeID]; ok {
		return attendance.Record{}, err
	}
	if _, exists := f.byKey[key]; exists {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.byID[record.ID] = record
	f.byKey[key] = record.ID
	return record, nil
}

func (f *fakeStore) Update(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	key := record.Key()
	f.beginWrite(key)
	defer f.endWrite(key)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++
	if err, ok := f.failFor[record.EmployeeID]; ok {
		return attendance.Record{}, err
	}
	if _, exists := f.byID[record.ID]; !exists {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	record.UpdatedAt = time.Now()
	f.byID[record.ID] = record
	return record, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, exists := f.byID[id]
	if !exists {
		return attendance.ErrRecordNotFound
	}
	delete(f.byID, id)
	delete(f.byKey, record.Key())
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, exists := f.byID[id]
	if !exists {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeStore) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, exists := f.byKey[attendance.NewKey(employeeID, date)]
	if !exists {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return f.byID[id], nil
}

func (f *fakeStore) GetByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	day := date.Format(attendance.DateLayout)
	var records []attendance.Record
	for _, r := range f.byID {
		if r.Date.Format(attendance.DateLayout) == day {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *fakeStore) GetByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month int) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []attendance.Record
	for _, r := range f.byID {
		if r.EmployeeID == employeeID && r.Date.Year() == year && int(r.Date.Month()) == month {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *fakeStore) GetByMonth(ctx context.Context, year int, month int) ([]attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var records []attendance.Record
	for _, r := range f.byID {
		if r.Date.Year() == year && int(r.Date.Month()) == month {
			records = append(records, r)
		}
	}
	return records, nil
}

func (f *fakeStore) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeDirectory is an in-memory employee.Directory.
type fakeDirectory struct {
	employees []employee.Employee
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeDirectory) ListActive(ctx context.Context) ([]employee.Employee, error) {
	active := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		if emp.IsActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

func testEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:                  id,
		Name:                "Employee " + id,
		Code:                "E-" + id,
		CompensationModel:   employee.Fixed,
		WorkingDaysPerMonth: employee.DefaultWorkingDaysPerMonth,
		StandardHoursPerDay: employee.DefaultStandardHoursPerDay,
		BasicMonthlySalary:  decimal.NewFromInt(26000),
		IsActive:            true,
	}
}
