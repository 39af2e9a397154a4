package repository

import (
	"context"

	"clinicore/internal/model"

	"gorm.io/gorm"
)

// PatientRepository is the data access contract for patient records.
// All lookups key on the caller-assigned patient id, not the internal uuid.
type PatientRepository interface {
	Create(ctx context.Context, p *model.Patient) error
	FindByPatientID(ctx context.Context, patientID string) (*model.Patient, error)
	List(ctx context.Context) ([]model.Patient, error)
	Update(ctx context.Context, p *model.Patient) error
	Delete(ctx context.Context, patientID string) (int64, error)
}

type patientRepo struct{ db *gorm.DB }

func NewPatientRepository(db *gorm.DB) PatientRepository { return &patientRepo{db: db} }

func (r *patientRepo) Create(ctx context.Context, p *model.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *patientRepo) FindByPatientID(ctx context.Context, patientID string) (*model.Patient, error) {
	var p model.Patient
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepo) List(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&patients).Error
	return patients, err
}

func (r *patientRepo) Update(ctx context.Context, p *model.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *patientRepo) Delete(ctx context.Context, patientID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&model.Patient{})
	return res.RowsAffected, res.Error
}
