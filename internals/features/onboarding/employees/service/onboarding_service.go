// file: internals/features/onboarding/employees/service/onboarding_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "hrisku_backend/internals/features/onboarding/employees/model"
	candmodel "hrisku_backend/internals/features/recruitment/candidates/model"
	"hrisku_backend/internals/helpers/errs"
	"hrisku_backend/internals/helpers/mailer"
)

/* =========================================================
   SERVICE: onboarding karyawan baru
========================================================= */

// Checklist default untuk setiap karyawan baru.
var defaultOnboardingTasks = []string{
	"Lengkapi data pribadi & dokumen",
	"Setup akun email & akses internal",
	"Orientasi perusahaan (hari pertama)",
	"Perkenalan tim & buddy",
	"Selesaikan training wajib",
}

type OnboardingService struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewOnboardingService(db *gorm.DB, m mailer.Mailer) *OnboardingService {
	if m == nil {
		m = mailer.LogMailer{}
	}
	return &OnboardingService{DB: db, Mailer: m}
}

// HireFromCandidate mempromosikan kandidat berstatus offer/hired menjadi
// karyawan: buat employee, tandai kandidat hired, seed checklist default —
// semua dalam satu transaksi. Email selamat datang dikirim SETELAH commit
// (gagal kirim tidak membatalkan hire).
func (s *OnboardingService) HireFromCandidate(ctx context.Context, candidateID uuid.UUID, position *string, joinedAt *time.Time) (*model.EmployeeModel, error) {
	var emp *model.EmployeeModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cand candmodel.CandidateModel
		if err := tx.First(&cand, "candidate_id = ?", candidateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.New(errs.KindNotFound, "Kandidat tidak ditemukan")
			}
			return err
		}
		if cand.CandidateStatus != candmodel.CandidateStatusOffer &&
			cand.CandidateStatus != candmodel.CandidateStatusHired {
			return errs.Newf(errs.KindConflict,
				"Kandidat berstatus %s, hanya offer yang bisa di-hire", cand.CandidateStatus)
		}

		var dup int64
		if err := tx.Model(&model.EmployeeModel{}).
			Where("employee_candidate_id = ?", candidateID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return errs.New(errs.KindConflict, "Kandidat sudah pernah di-hire")
		}

		e := &model.EmployeeModel{
			EmployeeFullName:    cand.CandidateFullName,
			EmployeeEmail:       cand.CandidateEmail,
			EmployeePosition:    position,
			EmployeeCandidateID: &cand.CandidateID,
			EmployeeJoinedAt:    joinedAt,
		}
		if err := tx.Create(e).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return errs.New(errs.KindConflict, "Email sudah terdaftar sebagai karyawan")
			}
			return err
		}

		if err := tx.Model(&cand).
			Update("candidate_status", candmodel.CandidateStatusHired).Error; err != nil {
			return err
		}

		if err := s.seedTasksTx(tx, e.EmployeeID); err != nil {
			return err
		}

		emp = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	subject := "Selamat bergabung!"
	body := fmt.Sprintf("Halo %s, selamat datang di tim. Checklist onboarding kamu sudah disiapkan.", emp.EmployeeFullName)
	if err := s.Mailer.Send(emp.EmployeeEmail, subject, body); err != nil {
		log.Printf("[OnboardingService] WARNING gagal kirim welcome email: employee_id=%s err=%v",
			emp.EmployeeID, err)
	}

	return emp, nil
}

// CreateEmployee mendaftarkan karyawan langsung (tanpa pipeline rekrutmen)
// dan ikut menyeed checklist default.
func (s *OnboardingService) CreateEmployee(ctx context.Context, e *model.EmployeeModel) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				return errs.New(errs.KindConflict, "Email sudah terdaftar sebagai karyawan")
			}
			return err
		}
		return s.seedTasksTx(tx, e.EmployeeID)
	})
}

// ToggleTask membalik status selesai satu task milik karyawan.
func (s *OnboardingService) ToggleTask(ctx context.Context, employeeID, taskID uuid.UUID) (*model.OnboardingTaskModel, error) {
	var t model.OnboardingTaskModel
	if err := s.DB.WithContext(ctx).
		First(&t, "onboarding_task_id = ? AND onboarding_task_employee_id = ?", taskID, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.KindNotFound, "Task tidak ditemukan")
		}
		return nil, err
	}

	t.OnboardingTaskIsDone = !t.OnboardingTaskIsDone
	if err := s.DB.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *OnboardingService) seedTasksTx(tx *gorm.DB, employeeID uuid.UUID) error {
	for i, title := range defaultOnboardingTasks {
		if err := tx.Create(&model.OnboardingTaskModel{
			OnboardingTaskEmployeeID: employeeID,
			OnboardingTaskTitle:      title,
			OnboardingTaskOrder:      i + 1,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
