// file: internals/features/onboarding/employees/service/onboarding_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "hrisku_backend/internals/databases"
	"hrisku_backend/internals/features/onboarding/employees/model"
	candmodel "hrisku_backend/internals/features/recruitment/candidates/model"
	"hrisku_backend/internals/helpers/errs"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.MigrateAll(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCandidate(t *testing.T, db *gorm.DB, email string, status candmodel.CandidateStatus) *candmodel.CandidateModel {
	t.Helper()
	c := &candmodel.CandidateModel{
		CandidateFullName: "Budi Santoso",
		CandidateEmail:    email,
		CandidateStatus:   status,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed candidate %q: %v", email, err)
	}
	return c
}

// captureMailer merekam email terakhir supaya test bisa memastikan welcome
// email terkirim setelah hire sukses.
type captureMailer struct {
	to      string
	subject string
	sent    int
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to, m.subject = to, subject
	m.sent++
	return nil
}

func TestHireFromCandidateHappyPath(t *testing.T) {
	db := newTestDB(t)
	mail := &captureMailer{}
	svc := NewOnboardingService(db, mail)
	ctx := context.Background()

	cand := seedCandidate(t, db, "budi@corp.id", candmodel.CandidateStatusOffer)

	pos := "HR Staff"
	emp, err := svc.HireFromCandidate(ctx, cand.CandidateID, &pos, nil)
	if err != nil {
		t.Fatalf("hire: %v", err)
	}
	if emp.EmployeeEmail != "budi@corp.id" {
		t.Fatalf("email karyawan = %q, mau email kandidat", emp.EmployeeEmail)
	}
	if emp.EmployeeCandidateID == nil || *emp.EmployeeCandidateID != cand.CandidateID {
		t.Fatal("employee harus menunjuk kandidat asalnya")
	}

	// Kandidat ikut ditandai hired.
	var after candmodel.CandidateModel
	if err := db.First(&after, "candidate_id = ?", cand.CandidateID).Error; err != nil {
		t.Fatalf("reload kandidat: %v", err)
	}
	if after.CandidateStatus != candmodel.CandidateStatusHired {
		t.Fatalf("status kandidat = %s, mau hired", after.CandidateStatus)
	}

	// Checklist default ter-seed urut.
	var tasks []model.OnboardingTaskModel
	if err := db.Where("onboarding_task_employee_id = ?", emp.EmployeeID).
		Order("onboarding_task_order ASC").Find(&tasks).Error; err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != len(defaultOnboardingTasks) {
		t.Fatalf("jumlah task = %d, mau %d", len(tasks), len(defaultOnboardingTasks))
	}
	for i, task := range tasks {
		if task.OnboardingTaskOrder != i+1 {
			t.Fatalf("order task ke-%d = %d", i, task.OnboardingTaskOrder)
		}
		if task.OnboardingTaskIsDone {
			t.Fatal("task baru harus belum selesai")
		}
	}

	// Welcome email terkirim sekali ke alamat karyawan.
	if mail.sent != 1 || mail.to != "budi@corp.id" {
		t.Fatalf("welcome email: sent=%d to=%q", mail.sent, mail.to)
	}
}

func TestHireRejectsWrongStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewOnboardingService(db, nil)
	ctx := context.Background()

	cand := seedCandidate(t, db, "ani@corp.id", candmodel.CandidateStatusInterview)

	_, err := svc.HireFromCandidate(ctx, cand.CandidateID, nil, nil)
	if !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("hire kandidat interview harus Conflict, dapat %v", err)
	}

	// Tidak boleh ada sisa employee atau task setelah gagal.
	var emps int64
	db.Model(&model.EmployeeModel{}).Count(&emps)
	if emps != 0 {
		t.Fatalf("employee tersisa %d setelah hire gagal", emps)
	}
}

func TestHireTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewOnboardingService(db, &captureMailer{})
	ctx := context.Background()

	cand := seedCandidate(t, db, "citra@corp.id", candmodel.CandidateStatusOffer)

	if _, err := svc.HireFromCandidate(ctx, cand.CandidateID, nil, nil); err != nil {
		t.Fatalf("hire pertama: %v", err)
	}
	// Status kandidat sekarang hired — lolos cek status, tapi kepentok
	// guard satu-employee-per-kandidat.
	if _, err := svc.HireFromCandidate(ctx, cand.CandidateID, nil, nil); !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("hire kedua harus Conflict, dapat %v", err)
	}
}

func TestHireUnknownCandidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewOnboardingService(db, nil)

	_, err := svc.HireFromCandidate(context.Background(), uuid.New(), nil, nil)
	if !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("kandidat tidak ada harus NotFound, dapat %v", err)
	}
}

func TestToggleTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewOnboardingService(db, nil)
	ctx := context.Background()

	emp := &model.EmployeeModel{
		EmployeeFullName: "Dewi Lestari",
		EmployeeEmail:    "dewi@corp.id",
	}
	if err := svc.CreateEmployee(ctx, emp); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	var task model.OnboardingTaskModel
	if err := db.First(&task, "onboarding_task_employee_id = ?", emp.EmployeeID).Error; err != nil {
		t.Fatalf("load task: %v", err)
	}

	got, err := svc.ToggleTask(ctx, emp.EmployeeID, task.OnboardingTaskID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.OnboardingTaskIsDone {
		t.Fatal("toggle pertama harus menandai selesai")
	}

	got, err = svc.ToggleTask(ctx, emp.EmployeeID, task.OnboardingTaskID)
	if err != nil {
		t.Fatalf("toggle balik: %v", err)
	}
	if got.OnboardingTaskIsDone {
		t.Fatal("toggle kedua harus membatalkan selesai")
	}

	// Task milik karyawan lain tidak boleh kena.
	if _, err := svc.ToggleTask(ctx, uuid.New(), task.OnboardingTaskID); !errs.IsKind(err, errs.KindNotFound) {
		t.Fatalf("toggle lintas karyawan harus NotFound, dapat %v", err)
	}
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewOnboardingService(db, nil)
	ctx := context.Background()

	if err := svc.CreateEmployee(ctx, &model.EmployeeModel{
		EmployeeFullName: "Eka",
		EmployeeEmail:    "eka@corp.id",
	}); err != nil {
		t.Fatalf("create pertama: %v", err)
	}
	err := svc.CreateEmployee(ctx, &model.EmployeeModel{
		EmployeeFullName: "Eka Kedua",
		EmployeeEmail:    "eka@corp.id",
	})
	if !errs.IsKind(err, errs.KindConflict) {
		t.Fatalf("email duplikat harus Conflict, dapat %v", err)
	}
}
