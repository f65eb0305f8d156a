package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhr/attendance-backend-go/internal/domain/attendance"
	"github.com/tallyhr/attendance-backend-go/internal/domain/employee"
	"github.com/tallyhr/attendance-backend-go/internal/pkg/validator"
)

const testDate = "2025-06-02"

func newTestService(store *fakeStore, employees ...employee.Employee) attendance.Service {
	return NewAttendanceService(store, &fakeDirectory{employees: employees}, nil, 0)
}

func TestAttendanceService_Mark_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	record, err := svc.Mark(ctx, attendance.MarkRequest{
		EmployeeID:  "e1",
		Date:        testDate,
		IsPresent:   true,
		HoursWorked: 9,
		Notes:       "on site",
		MarkedBy:    "operator-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "e1", record.EmployeeID)
	assert.Equal(t, testDate, record.Date.Format(attendance.DateLayout))
	assert.True(t, record.IsPresent)
	assert.Equal(t, 9.0, record.HoursWorked)
	assert.Equal(t, "operator-1", record.MarkedBy)
	assert.Equal(t, 1, store.recordCount())
}

func TestAttendanceService_Mark_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	req := attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9}

	first, err := svc.Mark(ctx, req)
	require.NoError(t, err)
	second, err := svc.Mark(ctx, req)
	require.NoError(t, err)

	// Same key, same payload: one record, same identity, same end state.
	assert.Equal(t, 1, store.recordCount())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.IsPresent, second.IsPresent)
	assert.Equal(t, first.HoursWorked, second.HoursWorked)
}

func TestAttendanceService_Mark_ExistingKeyBecomesUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	created, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	updated, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: false, HoursWorked: 0, Notes: "sick"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.False(t, updated.IsPresent)
	assert.Equal(t, 0.0, updated.HoursWorked)
	assert.Equal(t, "sick", updated.Notes)
	assert.Equal(t, 1, store.recordCount())
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, 1, store.updateCalls)
}

func TestAttendanceService_Mark_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore(), testEmployee("e1"))

	cases := []struct {
		name string
		req  attendance.MarkRequest
	}{
		{"missing employee", attendance.MarkRequest{Date: testDate}},
		{"bad date", attendance.MarkRequest{EmployeeID: "e1", Date: "02/06/2025"}},
		{"negative hours", attendance.MarkRequest{EmployeeID: "e1", Date: testDate, HoursWorked: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Mark(ctx, c.req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestAttendanceService_Mark_BusyKeyRejectedImmediately(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.writeDelay = 50 * time.Millisecond
	svc := newTestService(store, testEmployee("e1"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
		assert.NoError(t, err)
	}()

	// Wait for the first mark to be holding the key inside the store write.
	time.Sleep(10 * time.Millisecond)
	_, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: false})
	assert.ErrorIs(t, err, attendance.ErrMutationInFlight)

	wg.Wait()
	assert.Zero(t, store.keyWriteOverlaps, "two writes overlapped on one key")
}

func TestAttendanceService_Mark_DifferentKeysProceedIndependently(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"), testEmployee("e2"))

	_, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)
	_, err = svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: "2025-06-03", IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)
	_, err = svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e2", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	assert.Equal(t, 3, store.recordCount())
}

func TestAttendanceService_Edit_UpdatesFields(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	created, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	hours := 7.5
	updated, err := svc.Edit(ctx, attendance.EditRequest{ID: created.ID, HoursWorked: &hours, MarkedBy: "operator-2"})
	require.NoError(t, err)

	assert.Equal(t, 7.5, updated.HoursWorked)
	assert.True(t, updated.IsPresent, "untouched fields keep their values")
	assert.Equal(t, "operator-2", updated.MarkedBy)
}

func TestAttendanceService_Edit_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore(), testEmployee("e1"))

	present := true
	_, err := svc.Edit(ctx, attendance.EditRequest{ID: "missing-id", IsPresent: &present})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceService_Delete_RemovesRecord(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	created, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 0, store.recordCount())

	// The key is back to unmarked: marking again creates a fresh record.
	again, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, again.ID)
}

func TestAttendanceService_Delete_AbsentIsNoOpSuccess(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore(), testEmployee("e1"))

	assert.NoError(t, svc.Delete(ctx, "never-existed"))
}

func TestAttendanceService_Delete_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	created, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.NoError(t, svc.Delete(ctx, created.ID))
}

func TestAttendanceService_QuickToggle_DefaultsHours(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"))

	record, err := svc.QuickToggle(ctx, attendance.ToggleRequest{EmployeeID: "e1", Date: testDate, IsPresent: true})
	require.NoError(t, err)
	assert.True(t, record.IsPresent)
	assert.Equal(t, employee.DefaultStandardHoursPerDay, record.HoursWorked)

	record, err = svc.QuickToggle(ctx, attendance.ToggleRequest{EmployeeID: "e1", Date: testDate, IsPresent: false})
	require.NoError(t, err)
	assert.False(t, record.IsPresent)
	assert.Equal(t, 0.0, record.HoursWorked)
}

func TestAttendanceService_QuickToggle_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore(), testEmployee("e1"))

	_, err := svc.QuickToggle(ctx, attendance.ToggleRequest{EmployeeID: "ghost", Date: testDate, IsPresent: true})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_ListDay_MarksAndGaps(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, testEmployee("e1"), testEmployee("e2"))

	_, err := svc.Mark(ctx, attendance.MarkRequest{EmployeeID: "e1", Date: testDate, IsPresent: true, HoursWorked: 9})
	require.NoError(t, err)

	day, err := time.Parse(attendance.DateLayout, testDate)
	require.NoError(t, err)
	entries, err := svc.ListDay(ctx, day)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	byID := map[string]attendance.DayEntry{}
	for _, e := range entries {
		byID[e.EmployeeID] = e
	}
	assert.NotNil(t, byID["e1"].Record)
	assert.Nil(t, byID["e2"].Record)
}
